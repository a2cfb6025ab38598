package transport

import (
	"testing"

	"github.com/hypebeast/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_keyboard/internal/sample"
)

type captureHandler struct {
	samples []sample.Sample
}

func (c *captureHandler) Handle(s sample.Sample) {
	c.samples = append(c.samples, s)
}

func message(addr string, args ...interface{}) *osc.Message {
	msg := osc.NewMessage(addr)
	for _, a := range args {
		msg.Append(a)
	}
	return msg
}

func TestDispatchAccelerometer(t *testing.T) {
	h := &captureHandler{}
	r := NewReceiver("127.0.0.1:5000", h)

	r.dispatch(sample.Accelerometer, message(AddrAcc, float32(0.1), float32(-0.2), float32(0.98)))

	require.Len(t, h.samples, 1)
	s := h.samples[0]
	assert.Equal(t, sample.Accelerometer, s.Kind)
	assert.InDelta(t, 0.1, s.X, 1e-6)
	assert.InDelta(t, -0.2, s.Y, 1e-6)
	assert.InDelta(t, 0.98, s.Z, 1e-6)
}

func TestDispatchGyroscopeIntArgs(t *testing.T) {
	h := &captureHandler{}
	r := NewReceiver("127.0.0.1:5000", h)

	// Some bridges forward gyro channels as int32.
	r.dispatch(sample.Gyroscope, message(AddrGyro, int32(1), int32(2), int32(-120)))

	require.Len(t, h.samples, 1)
	assert.Equal(t, -120.0, h.samples[0].Z)
}

func TestDispatchBlinkFlag(t *testing.T) {
	h := &captureHandler{}
	r := NewReceiver("127.0.0.1:5000", h)

	r.dispatch(sample.Blink, message(AddrBlink, int32(1)))
	r.dispatch(sample.Blink, message(AddrBlink, int32(0)))
	r.dispatch(sample.JawClench, message(AddrJawClench, float32(1)))

	require.Len(t, h.samples, 3)
	assert.True(t, h.samples[0].Active)
	assert.False(t, h.samples[1].Active)
	assert.Equal(t, sample.JawClench, h.samples[2].Kind)
	assert.True(t, h.samples[2].Active)
}

func TestDispatchDropsMalformedMessages(t *testing.T) {
	h := &captureHandler{}
	r := NewReceiver("127.0.0.1:5000", h)

	// Wrong arity
	r.dispatch(sample.Accelerometer, message(AddrAcc, float32(1), float32(2)))
	// Wrong type
	r.dispatch(sample.Gyroscope, message(AddrGyro, "x", "y", "z"))
	// Flag with wrong arity
	r.dispatch(sample.Blink, message(AddrBlink))
	// Flag with wrong type
	r.dispatch(sample.JawClench, message(AddrJawClench, "clench"))

	assert.Empty(t, h.samples, "malformed messages never reach the engine")
}
