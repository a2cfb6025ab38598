package engine

// Calibration collects a fixed-size warm-up window of accelerometer and
// gyroscope samples and derives the baseline (zero-reference) values.
// The two buffers fill independently; calibration completes the moment
// both have reached the configured sample count. Baselines are frozen
// from then on, there is no re-calibration trigger.
type Calibration struct {
	n int

	accX  []float64
	accY  []float64
	gyroZ []float64

	BaselineAccX  float64
	BaselineAccY  float64
	BaselineGyroZ float64

	calibrated bool
}

func NewCalibration(samples int) *Calibration {
	return &Calibration{
		n:     samples,
		accX:  make([]float64, 0, samples),
		accY:  make([]float64, 0, samples),
		gyroZ: make([]float64, 0, samples),
	}
}

// ObserveAcc buffers one accelerometer sample while the window is still
// open. It returns true exactly once: on the sample that completes
// calibration of both sensors.
func (c *Calibration) ObserveAcc(x, y float64) bool {
	if c.calibrated || len(c.accX) >= c.n {
		return false
	}
	c.accX = append(c.accX, x)
	c.accY = append(c.accY, y)
	if len(c.accX) == c.n {
		c.BaselineAccX = mean(c.accX)
		c.BaselineAccY = mean(c.accY)
	}
	return c.tryComplete()
}

// ObserveGyro buffers the yaw axis of one gyroscope sample. Same
// completion semantics as ObserveAcc.
func (c *Calibration) ObserveGyro(z float64) bool {
	if c.calibrated || len(c.gyroZ) >= c.n {
		return false
	}
	c.gyroZ = append(c.gyroZ, z)
	if len(c.gyroZ) == c.n {
		c.BaselineGyroZ = mean(c.gyroZ)
	}
	return c.tryComplete()
}

// tryComplete flips the calibrated flag once both buffers are full.
func (c *Calibration) tryComplete() bool {
	if c.calibrated || len(c.accX) < c.n || len(c.gyroZ) < c.n {
		return false
	}
	c.calibrated = true
	return true
}

func (c *Calibration) Calibrated() bool {
	return c.calibrated
}

// AccSamples reports how many accelerometer samples have been buffered.
func (c *Calibration) AccSamples() int { return len(c.accX) }

// GyroSamples reports how many gyroscope samples have been buffered.
func (c *Calibration) GyroSamples() int { return len(c.gyroZ) }

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
