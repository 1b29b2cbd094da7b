package ringbuf

// Consume returns the next eligible contiguous range [offset,
// offset+length) ready for the (single) consumer, or length == 0 if
// nothing is ready yet. Calling Consume again before Release returns
// the identical range (spec §8 property 7). Must be called by at most
// one goroutine at a time; the package does not enforce this.
func (b *Buffer) Consume() (offset, length uint32) {
	bo := newBackoff(b.cfg.BackoffLimit)

	for {
		written := b.written.Load()

		// Step 1: stable read of NEXT.
		seen := b.next.Load()
		for lockOf(seen) {
			bo.spin()
			seen = b.next.Load()
		}
		bo.reset()
		next := offsetOf(seen)

		if next == written {
			return written, 0
		}

		// Step 2: scan live producer records, bounding READY from
		// below by the oldest in-flight reservation at or after
		// written. Stale values (< written, left over from before a
		// producer wrap) are ignored.
		ready := offsetUnset
		b.reg.drainUsed(func(seenWord uint64) {
			off := offsetOf(seenWord)
			if off >= written && off < ready {
				ready = off
			}
		})

		// Step 3: determine the frontier.
		if next < written {
			// Producers have wrapped; the consumer has not yet.
			end := b.end.Load()
			if end > b.capacity || end == offsetUnset {
				end = b.capacity
			}
			if ready == offsetUnset && written == end {
				// The consumer itself wraps now.
				b.end.Store(offsetUnset)
				b.written.Store(0)
				continue
			}
			if ready == offsetUnset || end < ready {
				ready = end
			}
			assert(b.cfg.Debug, ready >= written, "consumer frontier fell behind WRITTEN across a wrap")
		} else {
			if ready == offsetUnset || next < ready {
				ready = next
			}
		}

		return written, ready - written
	}
}

// Release advances WRITTEN by n, which must equal (a prefix of) the
// length most recently returned by Consume.
func (b *Buffer) Release(n uint32) error {
	written := b.written.Load()
	var next uint32
	if written+n == b.capacity {
		next = 0
	} else {
		next = written + n
	}
	assert(b.cfg.Debug, next <= b.capacity, "release advanced WRITTEN past capacity")
	end := b.end.Load()
	assert(b.cfg.Debug, end == offsetUnset || next <= end, "release advanced WRITTEN past the active wrap marker")
	b.written.Store(next)
	return nil
}
