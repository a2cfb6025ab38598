package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/motion_keyboard/internal/input"
)

func newTestSwivel() (*SwivelDetector, *recordingInjector) {
	inj := newRecordingInjector()
	mux := NewKeyMux(inj, nil)
	return NewSwivelDetector(100, 50, mux), inj
}

func TestSwivelHysteresisSequence(t *testing.T) {
	s, _ := newTestSwivel()

	inputs := []float64{0, -60, -120, -60, -40}
	want := []SwivelState{Centered, Centered, HoldingLeft, HoldingLeft, Centered}

	for i, relZ := range inputs {
		s.Observe(relZ)
		assert.Equalf(t, want[i], s.State(), "after relZ=%g", relZ)
	}
}

func TestSwivelDeadBandPreservesHold(t *testing.T) {
	s, inj := newTestSwivel()

	s.Observe(-120)
	assert.Equal(t, HoldingLeft, s.State())

	// Everything in [release, engage] keeps the previous hold with no
	// extra injector traffic.
	for _, relZ := range []float64{-100, -75, -50, -99.9} {
		s.Observe(relZ)
		assert.Equal(t, HoldingLeft, s.State())
	}
	assert.Equal(t, []string{"press left"}, inj.sequence())
}

func TestSwivelMutualExclusion(t *testing.T) {
	s, inj := newTestSwivel()

	// Sweep through a hostile sequence: direct side flips, dead band
	// dwell, boundary values, large spikes.
	seq := []float64{0, -150, -60, 150, 100.1, -100.1, 49, -150, 150, -150, 0}
	for _, relZ := range seq {
		s.Observe(relZ)
		left := inj.isDown(input.Left)
		right := inj.isDown(input.Right)
		assert.Falsef(t, left && right, "left and right both held after relZ=%g", relZ)
	}
}

func TestSwivelSideFlipReleasesBeforePress(t *testing.T) {
	s, inj := newTestSwivel()

	s.Observe(-150)
	s.Observe(150)

	assert.Equal(t, HoldingRight, s.State())
	assert.Equal(t, []string{"press left", "release left", "press right"}, inj.sequence())
}

func TestSwivelCenterReleasesHeldKey(t *testing.T) {
	s, inj := newTestSwivel()

	s.Observe(150)
	s.Observe(10)
	assert.Equal(t, Centered, s.State())
	assert.Equal(t, []string{"press right", "release right"}, inj.sequence())

	// Re-centering again is silent.
	s.Observe(0)
	assert.Equal(t, []string{"press right", "release right"}, inj.sequence())
}
