package app

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/relabs-tech/motion_keyboard/internal/config"
	"github.com/relabs-tech/motion_keyboard/internal/engine"
	"github.com/relabs-tech/motion_keyboard/internal/input"
	"github.com/relabs-tech/motion_keyboard/internal/telemetry"
	"github.com/relabs-tech/motion_keyboard/internal/transport"
)

// RunBridge runs the headband-to-keyboard bridge until SIGINT/SIGTERM
// or ESC on the controlling terminal. Shutdown always releases any
// held keys before returning.
func RunBridge() error {
	cfg := config.Get()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	inj, err := input.New(cfg.Injector)
	if err != nil {
		return err
	}
	defer inj.Close()

	pub, err := telemetry.New(cfg)
	if err != nil {
		// Telemetry is best-effort monitoring, never a reason to not run.
		log.Printf("telemetry disabled: %v", err)
		pub = nil
	}

	var sink engine.EventSink
	if pub != nil {
		sink = pub.Sink()
	}
	eng := engine.New(cfg, inj, sink)

	// ESC converges on the same cancellation as the signals.
	go watchEscape(ctx, cancel)

	if pub != nil {
		go stateLoop(ctx, pub, eng)
	}

	printControls(cfg)

	addr := net.JoinHostPort(cfg.ListenIP, strconv.Itoa(cfg.ListenPort))
	recv := transport.NewReceiver(addr, eng)
	serveErr := recv.ListenAndServe(ctx)

	log.Println("shutting down, releasing held keys")
	eng.Close()
	if pub != nil {
		pub.PublishState(eng.Status())
		pub.Close()
	}
	return serveErr
}

// stateLoop publishes a retained status snapshot once per second.
func stateLoop(ctx context.Context, pub *telemetry.Publisher, eng *engine.Engine) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			pub.PublishState(eng.Status())
		case <-ctx.Done():
			return
		}
	}
}

func printControls(cfg *config.Config) {
	log.Printf("control mode: %s", cfg.ControlMode)
	log.Println("hold your head in a comfortable neutral position while the headband calibrates")
	log.Println("controls: blink = SPACE, jaw clench = UP arrow")
	if cfg.ControlMode == config.ModeTilt || cfg.ControlMode == config.ModeBoth {
		log.Println("tilt controls: tilt left/right = LEFT/RIGHT arrow")
	}
	if cfg.ControlMode == config.ModeSwivel || cfg.ControlMode == config.ModeBoth {
		log.Println("swivel controls: swivel left/right = hold LEFT/RIGHT arrow")
	}
	log.Println("press ESC or Ctrl+C to exit")
}
