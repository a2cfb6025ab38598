package engine

import "github.com/relabs-tech/motion_keyboard/internal/input"

// TiltDetector maps calibrated left/right head tilt to arrow key
// presses. It is level-triggered: the zone is re-evaluated and
// re-emitted on every sample, with no latching. Idempotency for the
// repeated presses lives in the KeyMux.
//
// Forward/back tilt (the x axis) is deliberately not acted on.
type TiltDetector struct {
	threshold float64
	mux       *KeyMux
}

func NewTiltDetector(threshold float64, mux *KeyMux) *TiltDetector {
	return &TiltDetector{threshold: threshold, mux: mux}
}

// Observe evaluates one baseline-relative y reading.
func (t *TiltDetector) Observe(relY float64) {
	switch {
	case relY < -t.threshold:
		t.mux.press(input.Left, ownerTilt)
	case relY > t.threshold:
		t.mux.press(input.Right, ownerTilt)
	default:
		t.mux.release(input.Left, ownerTilt)
		t.mux.release(input.Right, ownerTilt)
	}
}
