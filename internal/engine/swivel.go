package engine

import (
	"math"

	"github.com/relabs-tech/motion_keyboard/internal/input"
)

// SwivelState is the held-key state of the swivel detector.
type SwivelState int

const (
	Centered SwivelState = iota
	HoldingLeft
	HoldingRight
)

func (s SwivelState) String() string {
	switch s {
	case Centered:
		return "centered"
	case HoldingLeft:
		return "holding_left"
	case HoldingRight:
		return "holding_right"
	default:
		return "unknown"
	}
}

// SwivelDetector maps calibrated yaw rotation to a held arrow key.
// Two distinct thresholds provide hysteresis: engaging requires
// |relZ| > engage, releasing requires |relZ| < release, and the gap
// between them is a dead band in which the previous hold persists.
// At most one of Left/Right is ever held.
type SwivelDetector struct {
	engage  float64
	release float64
	state   SwivelState
	mux     *KeyMux
}

func NewSwivelDetector(engage, release float64, mux *KeyMux) *SwivelDetector {
	return &SwivelDetector{engage: engage, release: release, mux: mux}
}

// Observe evaluates one baseline-relative yaw reading.
func (s *SwivelDetector) Observe(relZ float64) {
	switch {
	case relZ < -s.engage:
		if s.state != HoldingLeft {
			s.mux.release(input.Right, ownerSwivel)
			s.mux.press(input.Left, ownerSwivel)
			s.state = HoldingLeft
		}
	case relZ > s.engage:
		if s.state != HoldingRight {
			s.mux.release(input.Left, ownerSwivel)
			s.mux.press(input.Right, ownerSwivel)
			s.state = HoldingRight
		}
	case math.Abs(relZ) < s.release:
		if s.state != Centered {
			s.mux.release(input.Left, ownerSwivel)
			s.mux.release(input.Right, ownerSwivel)
			s.state = Centered
		}
		// Dead band: release <= |relZ| <= engage keeps the previous hold.
	}
}

// State returns the current hold state.
func (s *SwivelDetector) State() SwivelState {
	return s.state
}
