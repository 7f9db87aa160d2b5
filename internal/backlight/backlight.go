// SPDX-License-Identifier: GPL-3.0-only

// Package backlight drives a sysfs LED brightness attribute. It tracks the
// value this process last wrote so that changes made behind its back, such as
// a hardware hotkey handled by EC firmware, can be told apart from its own
// writes.
package backlight

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// unwritten is the last-written sentinel before the first successful write.
const unwritten = -1

// Backlight is the brightness control port. It is not safe for concurrent
// use; the daemon touches it from a single goroutine only.
type Backlight struct {
	path string
	max  int

	current     int
	lastWritten int

	fadeSteps    int
	fadeInterval time.Duration

	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// Option is a functional option for configuring a Backlight.
type Option func(*Backlight)

// WithFade sets the fade step count and the delay between steps. A step
// count below 1 is raised to 1.
func WithFade(steps int, interval time.Duration) Option {
	return func(b *Backlight) {
		b.fadeSteps = steps
		b.fadeInterval = interval
	}
}

// WithReadFile sets a custom file reader for testing.
func WithReadFile(fn func(name string) ([]byte, error)) Option {
	return func(b *Backlight) {
		b.readFile = fn
	}
}

// WithWriteFile sets a custom file writer for testing.
func WithWriteFile(fn func(name string, data []byte, perm os.FileMode) error) Option {
	return func(b *Backlight) {
		b.writeFile = fn
	}
}

// Open reads the brightness ceiling from maxPath and the current hardware
// value from path. Either read failing means the backlight cannot be driven
// at all, so both are constructor errors.
func Open(path, maxPath string, opts ...Option) (*Backlight, error) {
	b := &Backlight{
		path:         path,
		lastWritten:  unwritten,
		fadeSteps:    10,
		fadeInterval: 50 * time.Millisecond,
		readFile:     os.ReadFile,
		writeFile:    os.WriteFile,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.fadeSteps < 1 {
		b.fadeSteps = 1
	}

	max, err := b.readValue(maxPath)
	if err != nil {
		return nil, fmt.Errorf("read max brightness: %w", err)
	}
	if max <= 0 {
		return nil, fmt.Errorf("max brightness %d out of range", max)
	}

	current, err := b.readValue(path)
	if err != nil {
		return nil, fmt.Errorf("read initial brightness: %w", err)
	}
	if current < 0 {
		return nil, fmt.Errorf("initial brightness %d out of range", current)
	}

	b.max = max
	b.current = current
	return b, nil
}

// Max returns the hardware brightness ceiling.
func (b *Backlight) Max() int { return b.max }

// Current returns the last known hardware brightness value.
func (b *Backlight) Current() int { return b.current }

// readValue parses the decimal integer a sysfs attribute file holds.
func (b *Backlight) readValue(path string) (int, error) {
	data, err := b.readFile(path)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return value, nil
}

// Set clamps target into [0, max] and writes it to the hardware, unless it
// already matches the last known value. A failed write mutates nothing and is
// not retried; losing one cosmetic update is fine, the next cycle writes
// again.
func (b *Backlight) Set(target int) {
	if target < 0 {
		target = 0
	}
	if target > b.max {
		target = b.max
	}
	if target == b.current {
		return
	}

	if err := b.writeFile(b.path, []byte(strconv.Itoa(target)), 0644); err != nil {
		log.Debug().Err(err).Int("value", target).Msg("Brightness write failed")
		return
	}
	b.current = target
	b.lastWritten = target
}

// Change describes an externally-initiated brightness change.
type Change int

const (
	// ChangeNone means the hardware value still matches the last write.
	ChangeNone Change = iota
	// ChangeOn means the user turned the backlight on or picked a new
	// level; the observed value becomes the new target.
	ChangeOn
	// ChangeOff means the user explicitly turned the backlight off.
	ChangeOff
)

func (c Change) String() string {
	switch c {
	case ChangeOn:
		return "on"
	case ChangeOff:
		return "off"
	default:
		return "none"
	}
}

// ExternalChange re-reads the hardware value and compares it against the last
// value this process wrote. A differing value is adopted into the session
// state and reported; the returned int is the newly observed value and is
// meaningful for ChangeOn. Before the first write, and when the read fails or
// yields a negative value, no change is reported.
//
// An external write that happens to equal the last written value is
// indistinguishable from no change; the hardware exposes no generation
// counter that would let us tell them apart.
func (b *Backlight) ExternalChange() (Change, int) {
	actual, err := b.readValue(b.path)
	if err != nil {
		log.Debug().Err(err).Msg("Brightness read failed")
		return ChangeNone, 0
	}
	// Hardware never reports negative values.
	if actual < 0 {
		log.Debug().Int("value", actual).Msg("Ignoring negative brightness read")
		return ChangeNone, 0
	}

	if b.lastWritten == unwritten || actual == b.lastWritten {
		return ChangeNone, 0
	}

	old := b.lastWritten
	b.current = actual
	b.lastWritten = actual

	if actual > 0 {
		log.Info().Int("from", old).Int("to", actual).Msg("External brightness change")
		return ChangeOn, actual
	}
	log.Info().Int("from", old).Msg("External brightness off")
	return ChangeOff, 0
}
