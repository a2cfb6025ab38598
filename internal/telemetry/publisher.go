// Package telemetry publishes engine events over MQTT for the console
// and web monitors. Telemetry is optional: the bridge runs fine with
// no broker at all.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/motion_keyboard/internal/config"
	"github.com/relabs-tech/motion_keyboard/internal/engine"
)

// Publisher forwards engine events to the broker. Events are queued
// through a buffered channel so the ingestion path never blocks on the
// network; when the queue is full, events are dropped.
type Publisher struct {
	client mqtt.Client
	cfg    *config.Config
	events chan engine.Event
	done   chan struct{}
}

// New connects to the broker from config. It returns (nil, nil) when
// no broker is configured.
func New(cfg *config.Config) (*Publisher, error) {
	if cfg.MQTTBroker == "" {
		return nil, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDBridge)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	log.Printf("telemetry: connected to MQTT broker at %s", cfg.MQTTBroker)

	p := &Publisher{
		client: client,
		cfg:    cfg,
		events: make(chan engine.Event, 64),
		done:   make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Sink returns a non-blocking engine event sink.
func (p *Publisher) Sink() engine.EventSink {
	return func(ev engine.Event) {
		select {
		case p.events <- ev:
		default:
			// Queue full; monitoring is best-effort.
		}
	}
}

func (p *Publisher) run() {
	for {
		select {
		case ev := <-p.events:
			p.publishEvent(ev)
		case <-p.done:
			return
		}
	}
}

func (p *Publisher) publishEvent(ev engine.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("telemetry: event marshal error: %v", err)
		return
	}

	topic := p.cfg.TopicKeyEvents
	retained := false
	if ev.Type == engine.EventCalibrated {
		topic = p.cfg.TopicCalibration
		retained = true
	}

	if token := p.client.Publish(topic, 0, retained, payload); token.Wait() && token.Error() != nil {
		log.Printf("telemetry: MQTT publish error (%s): %v", topic, token.Error())
	}
}

// PublishState publishes a retained engine status snapshot.
func (p *Publisher) PublishState(st engine.Status) {
	payload, err := json.Marshal(st)
	if err != nil {
		log.Printf("telemetry: state marshal error: %v", err)
		return
	}
	if token := p.client.Publish(p.cfg.TopicState, 0, true, payload); token.Wait() && token.Error() != nil {
		log.Printf("telemetry: MQTT publish error (%s): %v", p.cfg.TopicState, token.Error())
	}
}

// Close drains nothing; pending events are dropped deliberately so
// shutdown cannot hang on the broker.
func (p *Publisher) Close() {
	close(p.done)
	p.client.Disconnect(250)
}
