package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "/sys/class/leds/chromeos::kbd_backlight/brightness", cfg.BrightnessPath)
	assert.Equal(t, "/sys/class/leds/chromeos::kbd_backlight/max_brightness", cfg.MaxBrightnessPath)
	assert.Equal(t, -1, cfg.TargetBrightness)
	assert.Equal(t, 0, cfg.DimBrightness)
	assert.Equal(t, "/dev/input", cfg.InputDir)
	assert.Equal(t, 32, cfg.MaxDevices)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	path := writeConfig(t, "timeout_sec: 30\ntarget_brightness: 75\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TimeoutSec)
	assert.Equal(t, 75, cfg.TargetBrightness)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 10, cfg.FadeSteps)
	assert.Equal(t, "/dev/input", cfg.InputDir)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "comments only", content: "# tuned on the other laptop\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))

			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoad_MissingDefaultPathKeepsDefaults(t *testing.T) {
	// Nothing installed at the default location means the built-in
	// defaults, not an error.
	cfg, err := load(filepath.Join(t.TempDir(), "absent.yaml"), false)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnreadableDefaultPathFails(t *testing.T) {
	// Only a missing file is forgiven at the default location; any other
	// read failure must surface. Reading a directory fails without being
	// not-exist.
	_, err := load(t.TempDir(), false)

	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "timeout_secs: 10\n")

	_, err := Load(path)

	assert.ErrorContains(t, err, "timeout_secs")
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	path := writeConfig(t, "timeout_sec: plenty\n")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	path := writeConfig(t, "timeout_sec: 0\n")

	_, err := Load(path)

	assert.ErrorContains(t, err, "timeout_sec")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty brightness path",
			mutate:  func(c *Config) { c.BrightnessPath = "" },
			wantErr: "brightness_path",
		},
		{
			name:    "empty max brightness path",
			mutate:  func(c *Config) { c.MaxBrightnessPath = "" },
			wantErr: "max_brightness_path",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.TimeoutSec = 0 },
			wantErr: "timeout_sec",
		},
		{
			name:    "negative fade interval",
			mutate:  func(c *Config) { c.FadeIntervalMs = -1 },
			wantErr: "fade_interval_ms",
		},
		{
			name:    "empty input dir",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: "input_dir",
		},
		{
			name:    "zero max devices",
			mutate:  func(c *Config) { c.MaxDevices = 0 },
			wantErr: "max_devices",
		},
		{
			// The fade engine coerces this to one step.
			name:   "zero fade steps allowed",
			mutate: func(c *Config) { c.FadeSteps = 0 },
		},
		{
			// Unusual but harmless; the write path clamps.
			name: "dim above target allowed",
			mutate: func(c *Config) {
				c.DimBrightness = 90
				c.TargetBrightness = 10
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 50*time.Millisecond, cfg.FadeInterval())
}
