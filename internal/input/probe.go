package input

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ErrUnsupportedDevice is returned by Probe for devices that match none of
// the monitored capability classes.
var ErrUnsupportedDevice = errors.New("device type not monitored")

// ioctl request encoding (Linux _IOC macro).
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocRead = 2
)

func ioc(dir uint32, typ uint32, nr uint32, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

// eviocgbit fills buf with the capability bitmap for the given event type.
// Event type 0 yields the supported event-type bits themselves.
// EVIOCGBIT(ev, len) = _IOC(_IOC_READ, 'E', 0x20 + ev, len)
func eviocgbit(fd int, evtype int, buf []byte) error {
	req := ioc(iocRead, uint32('E'), uint32(0x20+evtype), uint32(len(buf)))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// Probe opens the device just long enough to query its capability bitmaps and
// classify it; the probe handle is closed before returning. Capability bits
// are the only thing inspected, no events are read. A device matching no
// class yields ErrUnsupportedDevice.
func Probe(path string) (Kind, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	var caps capabilities
	if err := eviocgbit(fd, 0, caps.events[:]); err != nil {
		return "", fmt.Errorf("query event types of %s: %w", path, err)
	}

	// Per-class bitmap fetches are best effort: a failed fetch leaves the
	// bitmap zeroed and that class simply does not match.
	if caps.hasEvent(evKey) {
		_ = eviocgbit(fd, evKey, caps.keys[:])
	}
	if caps.hasEvent(evRel) {
		_ = eviocgbit(fd, evRel, caps.rel[:])
	}
	if caps.hasEvent(evAbs) {
		_ = eviocgbit(fd, evAbs, caps.abs[:])
	}

	kind, ok := caps.classify()
	if !ok {
		return "", ErrUnsupportedDevice
	}
	return kind, nil
}
