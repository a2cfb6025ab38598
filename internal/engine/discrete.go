package engine

import (
	"time"

	"github.com/relabs-tech/motion_keyboard/internal/input"
)

// DiscreteDetector maps boolean biosignal flags to pulsed key events.
// These are edge signals: only the active=true transition produces
// output, and no calibration gating applies.
type DiscreteDetector struct {
	blinkHold time.Duration
	mux       *KeyMux
}

func NewDiscreteDetector(blinkHold time.Duration, mux *KeyMux) *DiscreteDetector {
	return &DiscreteDetector{blinkHold: blinkHold, mux: mux}
}

// OnBlink presses Space and schedules its release after the minimum
// hold, long enough for downstream applications to register the
// keystroke.
func (d *DiscreteDetector) OnBlink(active bool) {
	if !active {
		return
	}
	d.mux.pulse(input.Space, d.blinkHold)
}

// OnJawClench presses and releases Up with no enforced delay.
func (d *DiscreteDetector) OnJawClench(active bool) {
	if !active {
		return
	}
	d.mux.pulse(input.Up, 0)
}
