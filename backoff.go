package ringbuf

import "runtime"

// backoffLimit bounds the geometric back-off below at a small maximum,
// per spec §9: producers and the consumer spin only on the wrap-lock
// bit, never on WRITTEN or seenOff starvation, so a long spin here
// would only ever be waiting out a wrapping producer's brief critical
// section.
const backoffLimit = 128

// backoff implements the bounded geometric spin with a CPU yield hint
// described in spec §9. The zero value spins up to backoffLimit;
// newBackoff lets a Buffer override that cap via Config.BackoffLimit.
type backoff struct {
	n     int
	limit int
}

// newBackoff returns a backoff capped at limit iterations, or
// backoffLimit if limit is non-positive.
func newBackoff(limit int) backoff {
	if limit <= 0 {
		limit = backoffLimit
	}
	return backoff{limit: limit}
}

// spin yields the processor and doubles the wait, capped at the
// backoff's configured limit of runtime.Gosched() iterations.
func (b *backoff) spin() {
	limit := b.limit
	if limit <= 0 {
		limit = backoffLimit
	}
	if b.n == 0 {
		b.n = 1
	} else if b.n < limit {
		b.n *= 2
		if b.n > limit {
			b.n = limit
		}
	}
	for i := 0; i < b.n; i++ {
		runtime.Gosched()
	}
}

// reset clears the back-off state after a successful step.
func (b *backoff) reset() {
	b.n = 0
}
