package input

// Event types and codes from <linux/input-event-codes.h>. Only the handful
// needed for classification are declared here.
const (
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	relX = 0x00
	relY = 0x01

	absX = 0x00
	absY = 0x01

	// The top letter row, Q through P. A device advertising at least
	// minLetterKeys of these is treated as a real keyboard rather than a
	// button pad.
	keyQ = 16
	keyP = 25

	keyMax = 0x2ff
	absMax = 0x3f

	minLetterKeys = 5
)

// capabilities holds the EVIOCGBIT bitmaps of a candidate device. Bitmaps
// that were never fetched stay zeroed, which makes the corresponding class
// checks fail without special-casing.
type capabilities struct {
	events [8]byte
	keys   [keyMax/8 + 1]byte
	rel    [8]byte
	abs    [absMax/8 + 1]byte
}

func testBit(bits []byte, bit int) bool {
	idx := bit / 8
	return idx < len(bits) && bits[idx]&(1<<(bit%8)) != 0
}

func (c *capabilities) hasEvent(evtype int) bool {
	return testBit(c.events[:], evtype)
}

func (c *capabilities) letterKeys() int {
	n := 0
	for k := keyQ; k <= keyP; k++ {
		if testBit(c.keys[:], k) {
			n++
		}
	}
	return n
}

// classify applies the class checks in priority order: keyboard, then mouse,
// then touchpad. The first match wins; a device matching none is not worth
// monitoring.
func (c *capabilities) classify() (Kind, bool) {
	if c.hasEvent(evKey) && c.letterKeys() >= minLetterKeys {
		return KindKeyboard, true
	}
	if c.hasEvent(evRel) && testBit(c.rel[:], relX) && testBit(c.rel[:], relY) {
		return KindMouse, true
	}
	if c.hasEvent(evAbs) && testBit(c.abs[:], absX) && testBit(c.abs[:], absY) {
		return KindTouchpad, true
	}
	return "", false
}
