//go:build linux

package app

import (
	"context"
	"log"
	"os"

	"golang.org/x/sys/unix"
)

// watchEscape requests termination when ESC is pressed on the
// controlling terminal. The terminal is switched to raw mode so the
// key registers without a newline; the previous mode is restored on
// cancellation. When stdin is not a terminal (e.g. running as a
// service) the watcher simply stays idle.
func watchEscape(ctx context.Context, cancel context.CancelFunc) {
	fd := int(os.Stdin.Fd())
	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		log.Printf("stdin is not a terminal, ESC shutdown disabled: %v", err)
		return
	}

	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		log.Printf("failed to set raw terminal mode, ESC shutdown disabled: %v", err)
		return
	}
	defer unix.IoctlSetTermios(fd, unix.TCSETS, old)

	keys := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 {
				select {
				case keys <- buf[0]:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	for {
		select {
		case b := <-keys:
			if b == 0x1b { // ESC
				log.Println("ESC pressed, shutting down")
				cancel()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
