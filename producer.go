package ringbuf

import "go.uber.org/zap"

// Acquire reserves length bytes, returning the offset at which the
// reservation starts. Preconditions: 0 < length <= capacity and w is
// idle (holds no outstanding reservation). Violating a precondition is
// a programming bug, not a normal failure: it panics in debug mode and
// otherwise returns ErrInvalidLength. A reservation that would cross
// the consumer's WRITTEN tail returns ErrAcquireRefused — the expected
// back-pressure signal, never retried internally (spec §4.3).
func (b *Buffer) Acquire(w *Worker, length uint32) (uint32, error) {
	if length == 0 || length > b.capacity {
		assert(b.cfg.Debug, false, "acquire length out of (0, capacity]")
		return 0, ErrInvalidLength
	}
	if w == nil || w.slot == nil || !w.slot.claimed.Load() {
		return 0, ErrNotRegistered
	}
	if w.slot.seenOff.Load() != seenIdle {
		assert(b.cfg.Debug, false, "acquire called on a worker that already holds a reservation")
		return 0, ErrInvalidLength
	}

	// Step 2: publish intent before touching NEXT, marked unstable, and
	// make it visible to the consumer's scan. This must happen before
	// the NEXT CAS below: otherwise a consumer could stable-read an
	// already-advanced NEXT while this worker's slot is still idle (or
	// not yet in `used`), and report bytes as ready before they are
	// reserved, let alone produced (spec §4.3 step 2, §4.5 step 2). The
	// offset is corrected in place once the branch below is chosen, and
	// the unstable flag is cleared only after the CAS commits; a
	// concurrent consumer that observes the unstable flag spins past it
	// (drainUsed in worker.go) rather than trusting the placeholder.
	w.slot.seenOff.Store(packSeen(0, true))
	b.reg.used.push(w.index)

	bo := newBackoff(b.cfg.BackoffLimit)
	capacity := uint64(b.capacity)

	for {
		// Step 1: stable read of NEXT — spin while the wrap lock is held.
		seen := b.next.Load()
		for lockOf(seen) {
			bo.spin()
			seen = b.next.Load()
		}
		bo.reset()
		next := offsetOf(seen)

		// Step 3: compute target and the consumer's current tail.
		target := uint64(next) + uint64(length)
		written := uint64(b.written.Load())

		// Step 4: overtake check.
		if uint64(next) < written && target >= written {
			w.slot.seenOff.Store(seenIdle)
			return 0, ErrAcquireRefused
		}

		var proposed uint64
		var startOffset uint32
		var forcedWrap bool
		var wrapEnd uint32

		switch {
		case target < capacity:
			proposed = packWord(uint32(target), wrapOf(seen), false)
			startOffset = next

		case target == capacity:
			// Exact-fit flush reset: the next producer would start at
			// offset 0. If that already equals (or has passed) WRITTEN,
			// the wrapped NEXT would alias the "buffer empty" state
			// Consume checks for (next == written), hiding this
			// reservation's bytes. Reject exactly as the forced-wrap
			// branch below rejects len >= written, using 0 as the
			// post-wrap start in place of len.
			if written == 0 {
				w.slot.seenOff.Store(seenIdle)
				return 0, ErrAcquireRefused
			}
			newWrap := (wrapOf(seen) + 1) & uint32(wrapMask31)
			proposed = packWord(0, newWrap, false)
			startOffset = next

		default: // target > capacity: forced early wrap
			if uint64(length) >= written {
				w.slot.seenOff.Store(seenIdle)
				return 0, ErrAcquireRefused
			}
			newWrap := (wrapOf(seen) + 1) & uint32(wrapMask31)
			proposed = packWord(length, newWrap, true)
			startOffset = 0
			forcedWrap = true
			wrapEnd = next
		}

		// Re-publish intent against this attempt's actual start offset,
		// still unstable, before the CAS that would make it real.
		w.slot.seenOff.Store(packSeen(startOffset, true))

		// Step 6: commit.
		if !b.next.CompareAndSwap(seen, proposed) {
			bo.spin()
			continue
		}

		// Step 7: clear the unstable flag now that NEXT has moved; the
		// reservation is already visible to the consumer's scan via the
		// used push above.
		w.slot.seenOff.Store(packSeen(startOffset, false))

		// Step 8: release the wrap lock, if this acquisition forced one.
		if forcedWrap {
			prevEnd := b.end.Load()
			assert(b.cfg.Debug, prevEnd == offsetUnset, "wrap-around forced while END already set")
			b.end.Store(wrapEnd)
			b.cfg.Logger.Debug("ringbuf: forced wrap", zap.Uint32("end", wrapEnd), zap.Uint32("len", length))

			assert(b.cfg.Debug, written <= uint64(next), "consumer overtook producer across a forced wrap")
			b.next.Store(proposed &^ lockBit)
		}

		return startOffset, nil
	}
}

// Produce publishes the bytes written into w's reserved range.
// Precondition: w holds a reservation (Acquire succeeded and Produce
// has not yet been called for it). The store synchronizes-with the
// consumer's read of seenOff, so byte writes made before Produce are
// visible once the consumer observes the range as ready (spec §4.4).
func (b *Buffer) Produce(w *Worker) {
	assert(b.cfg.Debug, w.slot.seenOff.Load() != seenIdle, "produce called without a held reservation")
	w.slot.seenOff.Store(seenIdle)
}
