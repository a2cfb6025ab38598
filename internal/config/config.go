package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Control modes. The mode is chosen once at startup and never changes.
const (
	ModeTilt   = "tilt"
	ModeSwivel = "swivel"
	ModeBoth   = "both"
)

// Injector backends.
const (
	InjectorUinput = "uinput"
	InjectorLog    = "log"
)

// Config holds all application configuration values.
type Config struct {
	// Sensor transport (OSC/UDP listener)
	ListenIP   string
	ListenPort int

	// Engine
	ControlMode            string // "tilt", "swivel" or "both"
	TiltThreshold          float64
	SwivelEngageThreshold  float64
	SwivelReleaseThreshold float64
	CalibrationSamples     int
	BlinkHoldMS            int // minimum spacebar hold in milliseconds

	// Key injection backend: "uinput" or "log"
	Injector string

	// MQTT telemetry (optional; empty broker disables it)
	MQTTBroker          string
	MQTTClientIDBridge  string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string

	// Topics
	TopicKeyEvents   string
	TopicCalibration string
	TopicState       string

	// Web Monitor
	WebServerPort int
}

// Default returns a Config with every value set to its documented default.
func Default() *Config {
	return &Config{
		ListenIP:               "0.0.0.0",
		ListenPort:             5000,
		ControlMode:            ModeBoth,
		TiltThreshold:          0.05,
		SwivelEngageThreshold:  100,
		SwivelReleaseThreshold: 50,
		CalibrationSamples:     30,
		BlinkHoldMS:            100,
		Injector:               InjectorUinput,
		MQTTClientIDBridge:     "motion-keyboard-bridge",
		MQTTClientIDConsole:    "motion-keyboard-console",
		MQTTClientIDWeb:        "motion-keyboard-web",
		TopicKeyEvents:         "headband/events/key",
		TopicCalibration:       "headband/calibration",
		TopicState:             "headband/state",
		WebServerPort:          8080,
	}
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex, write lock for initialization, read lock for Get().
//
// External code must use InitGlobal()/SetGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file on top of the defaults and returns
// a Config struct. An empty path returns the defaults unchanged.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Sensor transport
	case "LISTEN_IP":
		c.ListenIP = value
	case "LISTEN_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LISTEN_PORT %q: %w", value, err)
		}
		c.ListenPort = port

	// Engine
	case "CONTROL_MODE":
		c.ControlMode = value
	case "TILT_THRESHOLD":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid TILT_THRESHOLD %q: %w", value, err)
		}
		c.TiltThreshold = v
	case "SWIVEL_ENGAGE_THRESHOLD":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SWIVEL_ENGAGE_THRESHOLD %q: %w", value, err)
		}
		c.SwivelEngageThreshold = v
	case "SWIVEL_RELEASE_THRESHOLD":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SWIVEL_RELEASE_THRESHOLD %q: %w", value, err)
		}
		c.SwivelReleaseThreshold = v
	case "CALIBRATION_SAMPLES":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CALIBRATION_SAMPLES %q: %w", value, err)
		}
		c.CalibrationSamples = n
	case "BLINK_HOLD_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid BLINK_HOLD_MS %q: %w", value, err)
		}
		c.BlinkHoldMS = ms

	// Injection
	case "INJECTOR":
		c.Injector = value

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_BRIDGE":
		c.MQTTClientIDBridge = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_KEY_EVENTS":
		c.TopicKeyEvents = value
	case "TOPIC_CALIBRATION":
		c.TopicCalibration = value
	case "TOPIC_STATE":
		c.TopicState = value

	// Web Monitor
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.ListenIP == "" {
		return fmt.Errorf("LISTEN_IP is required")
	}
	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return fmt.Errorf("LISTEN_PORT must be 1-65535, got %d", c.ListenPort)
	}
	switch c.ControlMode {
	case ModeTilt, ModeSwivel, ModeBoth:
	default:
		return fmt.Errorf("CONTROL_MODE must be %q, %q or %q, got %q",
			ModeTilt, ModeSwivel, ModeBoth, c.ControlMode)
	}
	if c.TiltThreshold <= 0 {
		return fmt.Errorf("TILT_THRESHOLD must be positive, got %g", c.TiltThreshold)
	}
	if c.SwivelEngageThreshold <= 0 {
		return fmt.Errorf("SWIVEL_ENGAGE_THRESHOLD must be positive, got %g", c.SwivelEngageThreshold)
	}
	if c.SwivelReleaseThreshold <= 0 {
		return fmt.Errorf("SWIVEL_RELEASE_THRESHOLD must be positive, got %g", c.SwivelReleaseThreshold)
	}
	// The gap between the two thresholds is the hysteresis dead band.
	if c.SwivelReleaseThreshold >= c.SwivelEngageThreshold {
		return fmt.Errorf("SWIVEL_RELEASE_THRESHOLD (%g) must be strictly less than SWIVEL_ENGAGE_THRESHOLD (%g)",
			c.SwivelReleaseThreshold, c.SwivelEngageThreshold)
	}
	if c.CalibrationSamples <= 0 {
		return fmt.Errorf("CALIBRATION_SAMPLES must be positive, got %d", c.CalibrationSamples)
	}
	if c.BlinkHoldMS < 0 {
		return fmt.Errorf("BLINK_HOLD_MS must not be negative, got %d", c.BlinkHoldMS)
	}
	switch c.Injector {
	case InjectorUinput, InjectorLog:
	default:
		return fmt.Errorf("INJECTOR must be %q or %q, got %q", InjectorUinput, InjectorLog, c.Injector)
	}
	if c.WebServerPort <= 0 || c.WebServerPort > 65535 {
		return fmt.Errorf("WEB_SERVER_PORT must be 1-65535, got %d", c.WebServerPort)
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// SetGlobal installs an already-built Config as the global instance.
// Used by cmd binaries that apply flag overrides on top of Load.
func SetGlobal(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = cfg
}

// Get returns the global configuration instance.
// InitGlobal or SetGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
