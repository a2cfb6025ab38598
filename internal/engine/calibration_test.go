package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibrationCompletesAfterBothWindows(t *testing.T) {
	c := NewCalibration(3)

	assert.False(t, c.ObserveAcc(1, 10))
	assert.False(t, c.ObserveAcc(2, 20))
	assert.False(t, c.ObserveAcc(3, 30))
	assert.False(t, c.Calibrated(), "acc alone must not complete calibration")

	assert.False(t, c.ObserveGyro(100))
	assert.False(t, c.ObserveGyro(200))
	assert.True(t, c.ObserveGyro(300), "last gyro sample completes calibration")
	assert.True(t, c.Calibrated())

	assert.Equal(t, 2.0, c.BaselineAccX)
	assert.Equal(t, 20.0, c.BaselineAccY)
	assert.Equal(t, 200.0, c.BaselineGyroZ)
}

func TestCalibrationInterleavedOrder(t *testing.T) {
	c := NewCalibration(2)

	assert.False(t, c.ObserveGyro(1))
	assert.False(t, c.ObserveAcc(1, 1))
	assert.False(t, c.ObserveGyro(3))
	assert.True(t, c.ObserveAcc(3, 3))
	assert.True(t, c.Calibrated())
	assert.Equal(t, 2.0, c.BaselineAccX)
	assert.Equal(t, 2.0, c.BaselineGyroZ)
}

func TestCalibrationOneShortStaysUncalibrated(t *testing.T) {
	c := NewCalibration(30)
	for i := 0; i < 30; i++ {
		c.ObserveGyro(float64(i))
	}
	for i := 0; i < 29; i++ {
		c.ObserveAcc(float64(i), float64(i))
	}
	assert.False(t, c.Calibrated())
	assert.Equal(t, 29, c.AccSamples())
}

func TestCalibrationFlipsExactlyOnceAndFreezesBaselines(t *testing.T) {
	c := NewCalibration(1)
	require.False(t, c.ObserveAcc(5, 5))
	require.True(t, c.ObserveGyro(7))

	// Further samples change nothing and never re-report completion.
	assert.False(t, c.ObserveAcc(1000, 1000))
	assert.False(t, c.ObserveGyro(1000))
	assert.Equal(t, 5.0, c.BaselineAccX)
	assert.Equal(t, 5.0, c.BaselineAccY)
	assert.Equal(t, 7.0, c.BaselineGyroZ)
	assert.Equal(t, 1, c.AccSamples())
	assert.Equal(t, 1, c.GyroSamples())
}
