package input

import "log"

// LogInjector prints key transitions instead of injecting them.
// Used for dry runs on machines where grabbing /dev/uinput is not
// possible, and as a stand-in on unsupported platforms.
type LogInjector struct{}

func NewLogInjector() *LogInjector {
	return &LogInjector{}
}

func (l *LogInjector) Press(k Key) error {
	log.Printf("inject: press %s", k)
	return nil
}

func (l *LogInjector) Release(k Key) error {
	log.Printf("inject: release %s", k)
	return nil
}

func (l *LogInjector) Close() error {
	return nil
}
