package sample

// Kind identifies the closed set of inbound wearable messages.
type Kind int

const (
	Accelerometer Kind = iota
	Gyroscope
	Blink
	JawClench
)

func (k Kind) String() string {
	switch k {
	case Accelerometer:
		return "acc"
	case Gyroscope:
		return "gyro"
	case Blink:
		return "blink"
	case JawClench:
		return "jaw_clench"
	default:
		return "unknown"
	}
}

// Sample is a single decoded wearable message. Accelerometer and
// gyroscope samples carry X/Y/Z; biosignal flags carry Active.
// Arrival order is the only ordering signal, no timestamp is kept.
type Sample struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Z      float64 `json:"z,omitempty"`
	Active bool    `json:"active,omitempty"`
}

// Source is anything that can deliver samples over time: the OSC
// transport, a replay source from file, or a scripted mock.
type Source interface {
	Next() (Sample, error)
}
