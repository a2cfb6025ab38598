// Package input maps logical keys to platform key codes and performs
// OS-level synthetic key injection.
package input

import "fmt"

// Key is an abstract logical key. Platform key codes exist only inside
// the injector implementations.
type Key int

const (
	Space Key = iota
	Up
	Down
	Left
	Right
)

func (k Key) String() string {
	switch k {
	case Space:
		return "space"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// AllKeys lists every logical key the engine can emit.
var AllKeys = []Key{Space, Up, Down, Left, Right}

// Injector defines the interface for injecting key events.
type Injector interface {
	Press(k Key) error
	Release(k Key) error
	Close() error
}

// New creates an injector for the given backend ("uinput" or "log").
func New(backend string) (Injector, error) {
	switch backend {
	case "log":
		return NewLogInjector(), nil
	case "uinput":
		return newPlatformInjector()
	default:
		return nil, fmt.Errorf("unknown injector backend %q", backend)
	}
}
