package app

import (
	"context"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hypebeast/go-osc/osc"

	"github.com/relabs-tech/motion_keyboard/internal/config"
	"github.com/relabs-tech/motion_keyboard/internal/transport"
)

// RunProducer streams a synthetic wearable session to the bridge over
// OSC: a few seconds of neutral posture for calibration, then a
// repeating cycle of tilt, swivel, blink and jaw-clench gestures.
// Useful for exercising the whole pipeline without hardware.
func RunProducer() error {
	cfg := config.Get()
	client := osc.NewClient(cfg.ListenIP, cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("producer: streaming synthetic wearable data to %s:%d", cfg.ListenIP, cfg.ListenPort)

	send := func(addr string, args ...float32) {
		msg := osc.NewMessage(addr)
		for _, a := range args {
			msg.Append(a)
		}
		if err := client.Send(msg); err != nil {
			log.Printf("producer: send error (%s): %v", addr, err)
		}
	}

	const tick = 20 * time.Millisecond // ~50 Hz, wearable-like
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	var lastBlink, lastJaw time.Time

	for {
		select {
		case <-ctx.Done():
			log.Println("producer: shutting down")
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(start).Seconds()

			// Neutral baselines with a little sensor wobble.
			accY := 0.01 * math.Sin(elapsed*3)
			gyroZ := 5 * math.Sin(elapsed*2)

			if elapsed > 3 {
				// Gesture cycle after the calibration window.
				switch phase := math.Mod(elapsed-3, 8); {
				case phase < 2:
					accY += 0.2 // tilt right
				case phase < 4:
					// neutral
				case phase < 6:
					gyroZ -= 150 // swivel left
				default:
					// neutral; discrete gestures fire below
					if now.Sub(lastBlink) > 8*time.Second {
						lastBlink = now
						send(transport.AddrBlink, 1)
						send(transport.AddrBlink, 0)
					}
					if now.Sub(lastJaw) > 16*time.Second {
						lastJaw = now
						send(transport.AddrJawClench, 1)
						send(transport.AddrJawClench, 0)
					}
				}
			}

			send(transport.AddrAcc, float32(0.02*math.Cos(elapsed)), float32(accY), float32(0.98))
			send(transport.AddrGyro, float32(2*math.Sin(elapsed)), float32(2*math.Cos(elapsed)), float32(gyroZ))
		}
	}
}
