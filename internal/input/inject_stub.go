//go:build !linux

package input

import "fmt"

// Stub implementation for platforms without uinput.

func newPlatformInjector() (Injector, error) {
	return nil, fmt.Errorf("uinput key injection is only supported on linux; use INJECTOR=log")
}
