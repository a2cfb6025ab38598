package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/motion_keyboard/internal/input"
)

func newTestTilt() (*TiltDetector, *recordingInjector) {
	inj := newRecordingInjector()
	mux := NewKeyMux(inj, nil)
	return NewTiltDetector(0.05, mux), inj
}

func TestTiltLevelTriggering(t *testing.T) {
	d, inj := newTestTilt()

	// y=0.2 -> press Right; y=0.01 -> release both (left is a no-op,
	// it was never down); y=0.2 -> press Right again.
	d.Observe(0.2)
	d.Observe(0.01)
	d.Observe(0.2)

	assert.Equal(t, []string{"press right", "release right", "press right"}, inj.sequence())
}

func TestTiltRepeatedSamplesAreIdempotent(t *testing.T) {
	d, inj := newTestTilt()

	for i := 0; i < 10; i++ {
		d.Observe(-0.3)
	}
	assert.Equal(t, []string{"press left"}, inj.sequence())
	assert.True(t, inj.isDown(input.Left))
}

func TestTiltWithinThresholdReleasesBothSides(t *testing.T) {
	d, inj := newTestTilt()

	d.Observe(-0.2)
	d.Observe(0.0)
	assert.False(t, inj.isDown(input.Left))
	assert.False(t, inj.isDown(input.Right))
	assert.Equal(t, []string{"press left", "release left"}, inj.sequence())
}

func TestTiltExactThresholdIsNeutral(t *testing.T) {
	d, inj := newTestTilt()

	// The zones are strict inequalities.
	d.Observe(0.05)
	d.Observe(-0.05)
	assert.Empty(t, inj.sequence())
}
