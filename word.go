package ringbuf

import "math"

// The NEXT hand is packed into a single 64-bit word so the acquisition
// CAS can atomically swap the offset and an ABA-defeating wrap counter
// in one step. Splitting them would require a double-wide CAS or risk
// ABA after two wraps.
//
//	bit  63    : wrap lock (single-writer lock held during wrap-around)
//	bits 62-32 : wrap counter (31 bits, wraps modulo 2^31)
//	bits 31-0  : offset
const (
	lockBit     = uint64(1) << 63
	wrapShift   = 32
	wrapBits    = 31
	wrapMask31  = uint64(1)<<wrapBits - 1
	wrapMask    = wrapMask31 << wrapShift
	offsetMask  = uint64(math.MaxUint32)
	offsetUnset = uint32(math.MaxUint32)
)

// packWord assembles a NEXT (or seenOff) word from its offset, wrap
// counter and lock bit. wrap is masked to 31 bits; offset is masked to
// 32 bits, so callers need not pre-mask either field.
func packWord(offset uint32, wrap uint32, locked bool) uint64 {
	w := uint64(offset) & offsetMask
	w |= (uint64(wrap) & wrapMask31) << wrapShift
	if locked {
		w |= lockBit
	}
	return w
}

// offsetOf returns the offset field of a packed word.
func offsetOf(word uint64) uint32 {
	return uint32(word & offsetMask)
}

// wrapOf returns the wrap-counter field of a packed word.
func wrapOf(word uint64) uint32 {
	return uint32((word & wrapMask) >> wrapShift)
}

// lockOf reports whether the lock bit is set.
func lockOf(word uint64) bool {
	return word&lockBit != 0
}

// incrWrap returns word with its wrap-counter field incremented modulo
// 2^31, offset and lock bit preserved. Without this increment, two
// wrap-arounds could restore NEXT to a value a stalled producer
// previously observed, letting a stale CAS succeed and violate the
// overtake invariant.
func incrWrap(word uint64) uint64 {
	next := (wrapOf(word) + 1) & uint32(wrapMask31)
	return packWord(offsetOf(word), next, lockOf(word))
}

// seenIdle is the sentinel seenOff value meaning "no outstanding
// reservation". It is the all-ones offset field (offsetUnset) with the
// wrap-counter and lock bits clear; since Create rejects a capacity of
// offsetUnset, it never equals a real offset.
const seenIdle = uint64(offsetMask)

// packSeen packs a producer's seenOff: the offset it observed as NEXT
// at the start of an acquisition, plus the "unstable" flag meaning
// "the consumer must not use this value yet".
func packSeen(offset uint32, unstable bool) uint64 {
	w := uint64(offset) & offsetMask
	if unstable {
		w |= lockBit
	}
	return w
}
