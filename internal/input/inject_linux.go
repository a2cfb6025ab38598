//go:build linux

package input

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux input event constants (linux/input-event-codes.h)
const (
	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0x00

	keySpace = 57
	keyUp    = 103
	keyLeft  = 105
	keyRight = 106
	keyDown  = 108

	busVirtual = 0x06
)

// linuxKeyCodes maps logical keys to linux KEY_* codes.
var linuxKeyCodes = map[Key]uint16{
	Space: keySpace,
	Up:    keyUp,
	Down:  keyDown,
	Left:  keyLeft,
	Right: keyRight,
}

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
)

func ioc(dir uint32, typ uint32, nr uint32, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputSetup struct {
	ID           inputID
	Name         [80]byte
	FFEffectsMax uint32
}

func uiSetEvBit() uintptr {
	// UI_SET_EVBIT = _IOW('U', 100, int)
	return ioc(iocWrite, uint32('U'), 100, uint32(unsafe.Sizeof(int32(0))))
}

func uiSetKeyBit() uintptr {
	// UI_SET_KEYBIT = _IOW('U', 101, int)
	return ioc(iocWrite, uint32('U'), 101, uint32(unsafe.Sizeof(int32(0))))
}

func uiDevSetup() uintptr {
	// UI_DEV_SETUP = _IOW('U', 3, struct uinput_setup)
	return ioc(iocWrite, uint32('U'), 3, uint32(unsafe.Sizeof(uinputSetup{})))
}

func uiDevCreate() uintptr {
	// UI_DEV_CREATE = _IO('U', 1)
	return ioc(iocNone, uint32('U'), 1, 0)
}

func uiDevDestroy() uintptr {
	// UI_DEV_DESTROY = _IO('U', 2)
	return ioc(iocNone, uint32('U'), 2, 0)
}

func ioctlPtr(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlInt(fd uintptr, req uintptr, val int32) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(val))
	if errno != 0 {
		return errno
	}
	return nil
}

// UinputInjector injects key events through a virtual keyboard device
// registered via /dev/uinput.
type UinputInjector struct {
	f *os.File
}

func newPlatformInjector() (Injector, error) {
	return NewUinput()
}

// NewUinput registers a virtual keyboard exposing only the keys the
// engine emits.
func NewUinput() (*UinputInjector, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open /dev/uinput: %w", err)
	}

	fd := f.Fd()
	if err := ioctlInt(fd, uiSetEvBit(), evKey); err != nil {
		f.Close()
		return nil, fmt.Errorf("UI_SET_EVBIT: %w", err)
	}
	for _, code := range linuxKeyCodes {
		if err := ioctlInt(fd, uiSetKeyBit(), int32(code)); err != nil {
			f.Close()
			return nil, fmt.Errorf("UI_SET_KEYBIT %d: %w", code, err)
		}
	}

	setup := uinputSetup{
		ID: inputID{
			Bustype: busVirtual,
			Vendor:  0x1b4b,
			Product: 0x0001,
			Version: 1,
		},
	}
	copy(setup.Name[:], "motion-keyboard virtual device")

	if err := ioctlPtr(fd, uiDevSetup(), unsafe.Pointer(&setup)); err != nil {
		f.Close()
		return nil, fmt.Errorf("UI_DEV_SETUP: %w", err)
	}
	if err := ioctlInt(fd, uiDevCreate(), 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("UI_DEV_CREATE: %w", err)
	}

	// Give the input subsystem a moment to register the device before
	// the first event is written, otherwise early presses are lost.
	time.Sleep(200 * time.Millisecond)

	return &UinputInjector{f: f}, nil
}

// writeEvent emits one input_event followed by a SYN_REPORT.
// Event layout on 64-bit: 16-byte timeval (kernel accepts zero),
// then type, code (u16) and value (i32).
func (u *UinputInjector) writeEvent(etype uint16, code uint16, value int32) error {
	var ev [24]byte
	binary.LittleEndian.PutUint16(ev[16:18], etype)
	binary.LittleEndian.PutUint16(ev[18:20], code)
	binary.LittleEndian.PutUint32(ev[20:24], uint32(value))
	if _, err := u.f.Write(ev[:]); err != nil {
		return err
	}

	var syn [24]byte
	binary.LittleEndian.PutUint16(syn[16:18], evSyn)
	binary.LittleEndian.PutUint16(syn[18:20], synReport)
	_, err := u.f.Write(syn[:])
	return err
}

func (u *UinputInjector) Press(k Key) error {
	code, ok := linuxKeyCodes[k]
	if !ok {
		return fmt.Errorf("no linux key code for %s", k)
	}
	return u.writeEvent(evKey, code, 1)
}

func (u *UinputInjector) Release(k Key) error {
	code, ok := linuxKeyCodes[k]
	if !ok {
		return fmt.Errorf("no linux key code for %s", k)
	}
	return u.writeEvent(evKey, code, 0)
}

// Close destroys the virtual device.
func (u *UinputInjector) Close() error {
	ioctlInt(u.f.Fd(), uiDevDestroy(), 0)
	return u.f.Close()
}
