// SPDX-License-Identifier: GPL-3.0-only

package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// ErrNoDevices is returned by Scan when a full pass over the input directory
// produced no monitorable devices. Without at least one device the daemon has
// no activity signal and cannot operate.
var ErrNoDevices = errors.New("no keyboard, mouse or touchpad devices found")

// eventPrefix is the kernel naming convention for evdev nodes.
const eventPrefix = "event"

// Registry owns the set of monitored input devices. It is populated once by
// Scan and devices stay open until Close; the event loop only borrows the
// handles for readiness checks.
type Registry struct {
	dir        string
	maxDevices int
	devices    []*Device

	enumerate func(dir string) ([]string, error)
	probe     func(path string) (Kind, error)
	open      func(path string) (int, error)
}

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*Registry)

// WithEnumerator sets a custom candidate-path enumerator for testing.
func WithEnumerator(fn func(dir string) ([]string, error)) RegistryOption {
	return func(r *Registry) {
		r.enumerate = fn
	}
}

// WithProber sets a custom device classifier for testing.
func WithProber(fn func(path string) (Kind, error)) RegistryOption {
	return func(r *Registry) {
		r.probe = fn
	}
}

// WithOpener sets a custom device opener for testing.
func WithOpener(fn func(path string) (int, error)) RegistryOption {
	return func(r *Registry) {
		r.open = fn
	}
}

// NewRegistry creates a registry scanning dir for at most maxDevices devices.
func NewRegistry(dir string, maxDevices int, opts ...RegistryOption) *Registry {
	r := &Registry{
		dir:        dir,
		maxDevices: maxDevices,
		enumerate:  enumerateEventNodes,
		probe:      Probe,
		open:       defaultOpener,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// enumerateEventNodes lists the evdev nodes in dir, sorted by name.
func enumerateEventNodes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), eventPrefix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func defaultOpener(path string) (int, error) {
	return unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
}

// Scan enumerates the input directory, classifies every candidate and opens a
// persistent handle for each match, up to the configured device limit.
// Unclassifiable or unopenable candidates are skipped; only an empty result
// after a full pass is an error.
func (r *Registry) Scan() error {
	paths, err := r.enumerate(r.dir)
	if err != nil {
		return fmt.Errorf("enumerate %s: %w", r.dir, err)
	}

	for _, path := range paths {
		if len(r.devices) >= r.maxDevices {
			log.Debug().Int("limit", r.maxDevices).Msg("Device limit reached, ignoring remaining candidates")
			break
		}

		kind, err := r.probe(path)
		if err != nil {
			if !errors.Is(err, ErrUnsupportedDevice) {
				log.Debug().Err(err).Str("path", path).Msg("Cannot probe device, skipping")
			}
			continue
		}

		fd, err := r.open(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cannot open device, skipping")
			continue
		}

		r.devices = append(r.devices, &Device{path: path, kind: kind, fd: fd})
		log.Info().Str("path", path).Str("kind", string(kind)).Msg("Monitoring input device")
	}

	if len(r.devices) == 0 {
		return ErrNoDevices
	}
	return nil
}

// WaitActivity blocks until any monitored device becomes readable or the
// timeout elapses, whichever comes first, and drains whatever arrived.
// It reports whether input activity occurred. An interrupted wait reports no
// activity rather than an error.
func (r *Registry) WaitActivity(timeout time.Duration) (bool, error) {
	if len(r.devices) == 0 {
		return false, ErrNoDevices
	}

	// select mutates the fd set, so it is rebuilt every call.
	var readFds unix.FdSet
	maxFd := 0
	for _, d := range r.devices {
		readFds.Set(d.fd)
		if d.fd > maxFd {
			maxFd = d.fd
		}
	}

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(maxFd+1, &readFds, nil, nil, &tv)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, fmt.Errorf("select: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	activity := false
	for _, d := range r.devices {
		if readFds.IsSet(d.fd) && d.Drain() {
			activity = true
		}
	}
	return activity, nil
}

// Devices returns the monitored devices. The slice is owned by the registry;
// callers must not close the handles.
func (r *Registry) Devices() []*Device {
	return r.devices
}

// Count returns the number of monitored devices.
func (r *Registry) Count() int {
	return len(r.devices)
}

// Close releases all device handles. It is safe to call more than once.
func (r *Registry) Close() {
	for _, d := range r.devices {
		if err := d.Close(); err != nil {
			log.Warn().Err(err).Str("path", d.path).Msg("Failed to close device")
		}
	}
	r.devices = nil
}
