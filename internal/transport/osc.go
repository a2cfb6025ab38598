// Package transport is the sensor inbound boundary: it listens for
// OSC/UDP messages from the wearable, validates them, and delivers
// typed samples to the engine.
package transport

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/hypebeast/go-osc/osc"

	"github.com/relabs-tech/motion_keyboard/internal/sample"
)

// Wearable OSC addresses.
const (
	AddrAcc       = "/muse/acc"
	AddrGyro      = "/muse/gyro"
	AddrBlink     = "/muse/elements/blink"
	AddrJawClench = "/muse/elements/jaw_clench"
)

// SampleHandler consumes decoded samples.
type SampleHandler interface {
	Handle(sample.Sample)
}

// Receiver binds a UDP socket and dispatches wearable messages.
// Address routing is a closed table built at construction; anything
// outside it only feeds the connection liveness log.
type Receiver struct {
	addr     string
	handler  SampleHandler
	connOnce sync.Once
}

func NewReceiver(addr string, h SampleHandler) *Receiver {
	return &Receiver{addr: addr, handler: h}
}

// ListenAndServe blocks until ctx is cancelled or the socket fails.
// A bind failure is returned immediately; the caller treats it as
// fatal.
func (r *Receiver) ListenAndServe(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", r.addr)
	if err != nil {
		return fmt.Errorf("sensor transport unavailable on %s: %w", r.addr, err)
	}

	dispatcher := osc.NewStandardDispatcher()

	// Liveness: any wearable message at all means the headband is
	// streaming. Logged once.
	if err := dispatcher.AddMsgHandler("*", func(msg *osc.Message) {
		r.connOnce.Do(func() {
			log.Printf("wearable connected, receiving data (first message: %s)", msg.Address)
		})
	}); err != nil {
		conn.Close()
		return fmt.Errorf("failed to register liveness handler: %w", err)
	}

	// Closed routing table: address -> sample kind.
	routes := map[string]sample.Kind{
		AddrAcc:       sample.Accelerometer,
		AddrGyro:      sample.Gyroscope,
		AddrBlink:     sample.Blink,
		AddrJawClench: sample.JawClench,
	}
	for addr, kind := range routes {
		kind := kind
		if err := dispatcher.AddMsgHandler(addr, func(msg *osc.Message) {
			r.dispatch(kind, msg)
		}); err != nil {
			conn.Close()
			return fmt.Errorf("failed to register handler for %s: %w", addr, err)
		}
	}

	server := &osc.Server{Addr: r.addr, Dispatcher: dispatcher}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	log.Printf("sensor transport listening on udp %s", r.addr)
	err = server.Serve(conn)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// dispatch validates arity and types, then hands the sample to the
// engine. Malformed messages are logged and dropped here and never
// reach detector state.
func (r *Receiver) dispatch(kind sample.Kind, msg *osc.Message) {
	switch kind {
	case sample.Accelerometer, sample.Gyroscope:
		x, y, z, err := threeAxes(msg)
		if err != nil {
			log.Printf("transport: dropping malformed %s message: %v", kind, err)
			return
		}
		r.handler.Handle(sample.Sample{Kind: kind, X: x, Y: y, Z: z})

	case sample.Blink, sample.JawClench:
		active, err := oneFlag(msg)
		if err != nil {
			log.Printf("transport: dropping malformed %s message: %v", kind, err)
			return
		}
		r.handler.Handle(sample.Sample{Kind: kind, Active: active})
	}
}

func threeAxes(msg *osc.Message) (x, y, z float64, err error) {
	if len(msg.Arguments) != 3 {
		return 0, 0, 0, fmt.Errorf("want 3 arguments, got %d", len(msg.Arguments))
	}
	vals := make([]float64, 3)
	for i, arg := range msg.Arguments {
		v, ok := numeric(arg)
		if !ok {
			return 0, 0, 0, fmt.Errorf("argument %d is %T, want numeric", i, arg)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func oneFlag(msg *osc.Message) (bool, error) {
	if len(msg.Arguments) != 1 {
		return false, fmt.Errorf("want 1 argument, got %d", len(msg.Arguments))
	}
	switch v := msg.Arguments[0].(type) {
	case bool:
		return v, nil
	default:
		f, ok := numeric(v)
		if !ok {
			return false, fmt.Errorf("argument is %T, want flag", v)
		}
		return f != 0, nil
	}
}

// numeric coerces the OSC argument types the wearable emits.
func numeric(arg interface{}) (float64, bool) {
	switch v := arg.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
