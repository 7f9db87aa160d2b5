// Package input discovers, classifies and monitors Linux evdev input devices.
package input

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Kind is the capability class a monitored device was matched as.
type Kind string

const (
	KindKeyboard Kind = "keyboard"
	KindMouse    Kind = "mouse"
	KindTouchpad Kind = "touchpad"
)

// eventSize is the size of one struct input_event record on 64-bit kernels
// (two 64-bit timeval fields, type, code, value).
const eventSize = 24

// Device is one monitored input device: its classification plus an open
// non-blocking read handle. Devices are created during the startup scan and
// closed only at shutdown; they are never reclassified.
type Device struct {
	path   string
	kind   Kind
	fd     int
	closed bool
}

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

// Kind returns the capability class the device was matched as.
func (d *Device) Kind() Kind { return d.kind }

// Drain reads and discards all buffered event records. It reports whether at
// least one full record was consumed; a full record of any type counts as
// input activity. Short reads and read errors end the drain without being
// escalated.
func (d *Device) Drain() bool {
	if d.closed {
		return false
	}

	var buf [eventSize]byte
	drained := false
	for {
		n, err := unix.Read(d.fd, buf[:])
		if err != nil || n < eventSize {
			break
		}
		drained = true
	}
	return drained
}

// Close releases the device handle. It is safe to call more than once.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if err := unix.Close(d.fd); err != nil {
		return fmt.Errorf("close %s: %w", d.path, err)
	}
	return nil
}
