package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion_keyboard.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
# wearable listener
LISTEN_IP = 192.168.1.50
LISTEN_PORT = 7000

CONTROL_MODE = swivel
TILT_THRESHOLD = 0.08
SWIVEL_ENGAGE_THRESHOLD = 120
SWIVEL_RELEASE_THRESHOLD = 40
CALIBRATION_SAMPLES = 60
BLINK_HOLD_MS = 150
INJECTOR = log

MQTT_BROKER = tcp://localhost:1883
TOPIC_KEY_EVENTS = custom/events
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.50", cfg.ListenIP)
	assert.Equal(t, 7000, cfg.ListenPort)
	assert.Equal(t, ModeSwivel, cfg.ControlMode)
	assert.Equal(t, 0.08, cfg.TiltThreshold)
	assert.Equal(t, 120.0, cfg.SwivelEngageThreshold)
	assert.Equal(t, 40.0, cfg.SwivelReleaseThreshold)
	assert.Equal(t, 60, cfg.CalibrationSamples)
	assert.Equal(t, 150, cfg.BlinkHoldMS)
	assert.Equal(t, InjectorLog, cfg.Injector)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, "custom/events", cfg.TopicKeyEvents)

	// Untouched keys keep their defaults.
	assert.Equal(t, "headband/state", cfg.TopicState)
	assert.Equal(t, 8080, cfg.WebServerPort)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "NO_SUCH_KEY = 1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	path := writeConfig(t, "LISTEN_PORT\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config line 1")
}

func TestLoadRejectsBadNumber(t *testing.T) {
	path := writeConfig(t, "TILT_THRESHOLD = very\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateMode(t *testing.T) {
	cfg := Default()
	cfg.ControlMode = "sideways"
	assert.Error(t, cfg.Validate())
}

func TestValidateHysteresisOrdering(t *testing.T) {
	cfg := Default()
	cfg.SwivelReleaseThreshold = cfg.SwivelEngageThreshold
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly less")
}

func TestValidatePortRange(t *testing.T) {
	cfg := Default()
	cfg.ListenPort = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidateInjector(t *testing.T) {
	cfg := Default()
	cfg.Injector = "telepathy"
	assert.Error(t, cfg.Validate())
}
