package engine

import (
	"log"
	"sync"
	"time"

	"github.com/relabs-tech/motion_keyboard/internal/input"
)

// owner records which detector put a key down. The swivel detector
// latches keys; the tilt detector re-emits level-triggered presses on
// every sample. A latched hold always wins over a level-triggered one
// for the same key: tilt presses of a swivel-held key are absorbed and
// tilt releases cannot lift it.
type owner int

const (
	ownerNone owner = iota
	ownerTilt
	ownerSwivel
	ownerPulse
)

// KeyMux is the single owner of "which synthetic keys are currently
// down". It is the only component that calls the injection boundary.
// Redundant presses and releases are absorbed here, so the detectors
// never track per-key idempotency themselves.
type KeyMux struct {
	mu     sync.Mutex
	inj    input.Injector
	down   map[input.Key]bool
	heldBy map[input.Key]owner
	timers map[input.Key]*time.Timer
	sink   EventSink
}

func NewKeyMux(inj input.Injector, sink EventSink) *KeyMux {
	return &KeyMux{
		inj:    inj,
		down:   make(map[input.Key]bool),
		heldBy: make(map[input.Key]owner),
		timers: make(map[input.Key]*time.Timer),
		sink:   sink,
	}
}

// press puts a key down on behalf of a detector. Pressing an
// already-down key is a no-op; a swivel press of a tilt-held key takes
// over ownership without touching the OS.
func (m *KeyMux) press(k input.Key, by owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressLocked(k, by)
}

func (m *KeyMux) pressLocked(k input.Key, by owner) {
	if m.down[k] {
		if by == ownerSwivel {
			m.heldBy[k] = ownerSwivel
		}
		return
	}
	if err := m.inj.Press(k); err != nil {
		// Keep the intended state anyway so the matching release is
		// still attempted later; a transient injection failure must
		// not desynchronize the mux.
		log.Printf("keymux: press %s injection failed: %v", k, err)
	}
	m.down[k] = true
	m.heldBy[k] = by
	m.emit(k, true)
}

// release lifts a key, but only for its current owner. A tilt release
// of a swivel-latched key is absorbed.
func (m *KeyMux) release(k input.Key, by owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked(k, by)
}

func (m *KeyMux) releaseLocked(k input.Key, by owner) {
	if !m.down[k] {
		return
	}
	if m.heldBy[k] != by {
		return
	}
	if err := m.inj.Release(k); err != nil {
		log.Printf("keymux: release %s injection failed: %v", k, err)
	}
	delete(m.down, k)
	delete(m.heldBy, k)
	if t, ok := m.timers[k]; ok {
		t.Stop()
		delete(m.timers, k)
	}
	m.emit(k, false)
}

// pulse presses a key and schedules its release after holdFor. The
// release runs on a timer, never as a sleep on the ingestion path. A
// zero duration releases synchronously.
func (m *KeyMux) pulse(k input.Key, holdFor time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down[k] {
		// Previous pulse still holding; let its timer finish.
		return
	}
	m.pressLocked(k, ownerPulse)
	if holdFor <= 0 {
		m.releaseLocked(k, ownerPulse)
		return
	}
	m.timers[k] = time.AfterFunc(holdFor, func() {
		m.release(k, ownerPulse)
	})
}

// ReleaseAll lifts every down key regardless of owner and cancels
// pending pulse timers. Called on shutdown so no system-wide key is
// left stuck down.
func (m *KeyMux) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, t := range m.timers {
		t.Stop()
		delete(m.timers, k)
	}
	for k := range m.down {
		if err := m.inj.Release(k); err != nil {
			log.Printf("keymux: release %s on shutdown failed: %v", k, err)
		}
		delete(m.down, k)
		delete(m.heldBy, k)
		m.emit(k, false)
	}
}

// Pressed reports whether a key is currently down.
func (m *KeyMux) Pressed(k input.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.down[k]
}

// keysDown returns the names of all down keys, for status snapshots.
func (m *KeyMux) keysDown() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for _, k := range input.AllKeys {
		if m.down[k] {
			keys = append(keys, k.String())
		}
	}
	return keys
}

func (m *KeyMux) emit(k input.Key, pressed bool) {
	if m.sink == nil {
		return
	}
	m.sink(Event{Type: EventKey, Key: k.String(), Pressed: pressed})
}
