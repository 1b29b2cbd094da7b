package ringbuf

import "errors"

// Pre-allocated errors to avoid allocations on the hot paths that
// return them.
var (
	// ErrInvalidCapacity is returned by Create when capacity is zero
	// or equals 2^32-1, the value reserved as the "unset"/idle
	// sentinel (spec §3, §7).
	ErrInvalidCapacity = errors.New("ringbuf: invalid capacity")

	// ErrOutOfWorkers is returned by Register when index is out of
	// range or already claimed by another producer.
	ErrOutOfWorkers = errors.New("ringbuf: worker index unavailable")

	// ErrAcquireRefused is returned by Acquire when granting the
	// reservation would violate the overtake invariant. This is the
	// expected back-pressure signal, not an exceptional condition.
	ErrAcquireRefused = errors.New("ringbuf: acquire refused")

	// ErrInvalidLength is returned by Acquire when length violates its
	// precondition (0 < length <= capacity) or the worker already
	// holds a reservation. Unlike ErrAcquireRefused this indicates
	// caller misuse; in debug mode it panics instead (see assert).
	ErrInvalidLength = errors.New("ringbuf: invalid acquire length")

	// ErrNotRegistered is returned by Acquire and Unregister when the
	// worker handle is nil or its slot is not currently claimed (never
	// registered, or already unregistered).
	ErrNotRegistered = errors.New("ringbuf: worker not registered")

	// ErrReservationHeld is returned by Unregister when the worker
	// still holds an outstanding reservation (spec §4.2: "undefined if
	// the producer still holds a reservation" — reported here instead
	// of left undefined).
	ErrReservationHeld = errors.New("ringbuf: worker holds a reservation")
)

// assert panics with msg when cond is false and debug is true.
// Assertion failures are programming bugs (invariant violations,
// misuse such as producing without acquiring) — spec §7 permits
// aborting on them only in debug builds; production builds rely on the
// caller having upheld the documented preconditions.
func assert(debug bool, cond bool, msg string) {
	if debug && !cond {
		panic("ringbuf: assertion failed: " + msg)
	}
}
