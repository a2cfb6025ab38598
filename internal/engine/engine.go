// Package engine is the motion-to-input event core: calibration,
// gesture detection and the key-state multiplexer.
package engine

import (
	"log"
	"sync"
	"time"

	"github.com/relabs-tech/motion_keyboard/internal/config"
	"github.com/relabs-tech/motion_keyboard/internal/input"
	"github.com/relabs-tech/motion_keyboard/internal/sample"
)

// Event types published to the telemetry sink.
const (
	EventKey        = "key"
	EventCalibrated = "calibrated"
)

// Event is a single observable engine transition.
type Event struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	Pressed bool   `json:"pressed,omitempty"`

	BaselineAccX  float64 `json:"baseline_acc_x,omitempty"`
	BaselineAccY  float64 `json:"baseline_acc_y,omitempty"`
	BaselineGyroZ float64 `json:"baseline_gyro_z,omitempty"`
}

// EventSink receives engine events. Implementations must not block:
// the sink is invoked from the ingestion path.
type EventSink func(Event)

// Status is a point-in-time snapshot of the engine, served by the web
// monitor and published as retained state.
type Status struct {
	Mode          string   `json:"mode"`
	Calibrated    bool     `json:"calibrated"`
	AccSamples    int      `json:"acc_samples"`
	GyroSamples   int      `json:"gyro_samples"`
	BaselineAccX  float64  `json:"baseline_acc_x"`
	BaselineAccY  float64  `json:"baseline_acc_y"`
	BaselineGyroZ float64  `json:"baseline_gyro_z"`
	SwivelState   string   `json:"swivel_state"`
	KeysDown      []string `json:"keys_down"`
}

// Engine owns all detector state behind a single mutex. Samples are
// serialized through Handle; Close is safe to call concurrently with
// ingestion and guarantees every held key is released before it
// returns.
type Engine struct {
	mu     sync.Mutex
	closed bool

	mode     string
	cal      *Calibration
	tilt     *TiltDetector
	swivel   *SwivelDetector
	discrete *DiscreteDetector
	mux      *KeyMux
	sink     EventSink
}

// New wires an engine from configuration. The sink may be nil.
func New(cfg *config.Config, inj input.Injector, sink EventSink) *Engine {
	mux := NewKeyMux(inj, sink)
	return &Engine{
		mode:     cfg.ControlMode,
		cal:      NewCalibration(cfg.CalibrationSamples),
		tilt:     NewTiltDetector(cfg.TiltThreshold, mux),
		swivel:   NewSwivelDetector(cfg.SwivelEngageThreshold, cfg.SwivelReleaseThreshold, mux),
		discrete: NewDiscreteDetector(time.Duration(cfg.BlinkHoldMS)*time.Millisecond, mux),
		mux:      mux,
		sink:     sink,
	}
}

// Handle processes one decoded wearable sample. Accelerometer and
// gyroscope samples feed calibration until the warm-up window closes,
// then the enabled detectors. Discrete gestures bypass calibration.
func (e *Engine) Handle(s sample.Sample) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	switch s.Kind {
	case sample.Accelerometer:
		if e.cal.ObserveAcc(s.X, s.Y) {
			e.announceCalibrated()
		}
		if !e.cal.Calibrated() || e.mode == config.ModeSwivel {
			return
		}
		e.tilt.Observe(s.Y - e.cal.BaselineAccY)

	case sample.Gyroscope:
		if e.cal.ObserveGyro(s.Z) {
			e.announceCalibrated()
		}
		if !e.cal.Calibrated() || e.mode == config.ModeTilt {
			return
		}
		e.swivel.Observe(s.Z - e.cal.BaselineGyroZ)

	case sample.Blink:
		e.discrete.OnBlink(s.Active)

	case sample.JawClench:
		e.discrete.OnJawClench(s.Active)
	}
}

func (e *Engine) announceCalibrated() {
	log.Printf("calibration complete: acc baseline x=%.3f y=%.3f, gyro baseline z=%.3f, controls active",
		e.cal.BaselineAccX, e.cal.BaselineAccY, e.cal.BaselineGyroZ)
	if e.sink != nil {
		e.sink(Event{
			Type:          EventCalibrated,
			BaselineAccX:  e.cal.BaselineAccX,
			BaselineAccY:  e.cal.BaselineAccY,
			BaselineGyroZ: e.cal.BaselineGyroZ,
		})
	}
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		Mode:          e.mode,
		Calibrated:    e.cal.Calibrated(),
		AccSamples:    e.cal.AccSamples(),
		GyroSamples:   e.cal.GyroSamples(),
		BaselineAccX:  e.cal.BaselineAccX,
		BaselineAccY:  e.cal.BaselineAccY,
		BaselineGyroZ: e.cal.BaselineGyroZ,
		SwivelState:   e.swivel.State().String(),
		KeysDown:      e.mux.keysDown(),
	}
}

// Pressed reports whether a logical key is currently down.
func (e *Engine) Pressed(k input.Key) bool {
	return e.mux.Pressed(k)
}

// Close stops sample processing and force-releases any held keys.
// No sample observed after Close returns can press a key again.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.mux.ReleaseAll()
}
