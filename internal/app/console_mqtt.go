package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/motion_keyboard/internal/config"
	"github.com/relabs-tech/motion_keyboard/internal/engine"
)

// RunConsoleMQTT subscribes to the bridge telemetry topics and prints
// every event, for watching a session from another machine.
func RunConsoleMQTT() error {
	cfg := config.Get()
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is not configured")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to key events
	keyToken := client.Subscribe(cfg.TopicKeyEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var ev engine.Event
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			log.Printf("console: key event unmarshal error: %v", err)
			return
		}

		action := "release"
		if ev.Pressed {
			action = "press  "
		}
		fmt.Printf("[KEY ]  %s %s\n", action, strings.ToUpper(ev.Key))
	})
	keyToken.Wait()
	if keyToken.Error() != nil {
		return keyToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicKeyEvents)

	// Subscribe to the calibration result
	calToken := client.Subscribe(cfg.TopicCalibration, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var ev engine.Event
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			log.Printf("console: calibration unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[CAL ]  acc baseline x=%7.3f y=%7.3f  gyro baseline z=%7.3f\n",
			ev.BaselineAccX, ev.BaselineAccY, ev.BaselineGyroZ,
		)
	})
	calToken.Wait()
	if calToken.Error() != nil {
		return calToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicCalibration)

	// Subscribe to the retained state snapshot
	stateToken := client.Subscribe(cfg.TopicState, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var st engine.Status
		if err := json.Unmarshal(msg.Payload(), &st); err != nil {
			log.Printf("console: state unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[STAT]  mode=%s calibrated=%t acc=%d gyro=%d swivel=%s down=%v\n",
			st.Mode, st.Calibrated, st.AccSamples, st.GyroSamples,
			st.SwivelState, st.KeysDown,
		)
	})
	stateToken.Wait()
	if stateToken.Error() != nil {
		return stateToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicState)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
