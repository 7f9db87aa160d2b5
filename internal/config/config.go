// SPDX-License-Identifier: GPL-3.0-only

// Package config holds the daemon configuration: defaults, YAML file loading
// and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the daemon looks for its configuration when no
// --config flag is given. A missing file there is not an error.
const DefaultPath = "/etc/kbd-backlight-daemon.yaml"

// Config is the complete daemon configuration. Values absent from the config
// file keep their defaults.
type Config struct {
	// BrightnessPath is the sysfs LED brightness attribute the daemon
	// reads and writes.
	BrightnessPath string `yaml:"brightness_path"`

	// MaxBrightnessPath is the read-only sysfs attribute holding the
	// hardware brightness ceiling.
	MaxBrightnessPath string `yaml:"max_brightness_path"`

	// TimeoutSec is the inactivity period after which the backlight dims.
	TimeoutSec int `yaml:"timeout_sec"`

	// FadeSteps caps the number of intermediate writes per brightness
	// transition. Values below 1 are coerced to 1 by the fade engine.
	FadeSteps int `yaml:"fade_steps"`

	// FadeIntervalMs is the pause between fade writes.
	FadeIntervalMs int `yaml:"fade_interval_ms"`

	// TargetBrightness is the level restored on activity. Negative means
	// derive it from the hardware value found at startup.
	TargetBrightness int `yaml:"target_brightness"`

	// DimBrightness is the level faded to after the inactivity timeout.
	DimBrightness int `yaml:"dim_brightness"`

	// InputDir is the directory scanned for evdev device nodes.
	InputDir string `yaml:"input_dir"`

	// MaxDevices bounds how many input devices are monitored.
	MaxDevices int `yaml:"max_devices"`
}

// Default returns the configuration for the reference hardware, a ChromeOS
// EC keyboard backlight as found on the Framework Laptop 13.
func Default() Config {
	return Config{
		BrightnessPath:    "/sys/class/leds/chromeos::kbd_backlight/brightness",
		MaxBrightnessPath: "/sys/class/leds/chromeos::kbd_backlight/max_brightness",
		TimeoutSec:        5,
		FadeSteps:         10,
		FadeIntervalMs:    50,
		TargetBrightness:  -1,
		DimBrightness:     0,
		InputDir:          "/dev/input",
		MaxDevices:        32,
	}
}

// Load reads the YAML file at path and overlays it on the defaults. An empty
// path means DefaultPath, where a missing file just yields the defaults; an
// explicitly given path must be readable. Unknown keys are rejected so typos
// surface at startup instead of silently keeping a default.
func Load(path string) (Config, error) {
	if path == "" {
		return load(DefaultPath, false)
	}
	return load(path, true)
}

// load does the actual work; explicit decides whether a missing file is an
// error or just means the defaults.
func load(path string, explicit bool) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("Config file not found, using defaults")
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// An empty or comment-only file decodes to io.EOF and keeps the defaults.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	log.Debug().
		Str("brightness_path", cfg.BrightnessPath).
		Str("max_brightness_path", cfg.MaxBrightnessPath).
		Int("timeout_sec", cfg.TimeoutSec).
		Int("fade_steps", cfg.FadeSteps).
		Int("fade_interval_ms", cfg.FadeIntervalMs).
		Int("target_brightness", cfg.TargetBrightness).
		Int("dim_brightness", cfg.DimBrightness).
		Str("input_dir", cfg.InputDir).
		Int("max_devices", cfg.MaxDevices).
		Msg("Configuration loaded")

	return cfg, nil
}

// Validate checks structural invariants. Cosmetic relationships, like a dim
// level above the target, are deliberately allowed.
func (c Config) Validate() error {
	if c.BrightnessPath == "" {
		return errors.New("brightness_path must not be empty")
	}
	if c.MaxBrightnessPath == "" {
		return errors.New("max_brightness_path must not be empty")
	}
	if c.TimeoutSec < 1 {
		return errors.New("timeout_sec must be >= 1")
	}
	if c.FadeIntervalMs < 0 {
		return errors.New("fade_interval_ms must be >= 0")
	}
	if c.InputDir == "" {
		return errors.New("input_dir must not be empty")
	}
	if c.MaxDevices < 1 {
		return errors.New("max_devices must be >= 1")
	}
	return nil
}

// Timeout returns the inactivity timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// FadeInterval returns the pause between fade writes as a duration.
func (c Config) FadeInterval() time.Duration {
	return time.Duration(c.FadeIntervalMs) * time.Millisecond
}
