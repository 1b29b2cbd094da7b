package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Property 6: a fill-drain-fill sequence recovers full capacity.
func TestFillDrainFillRecoversCapacity(t *testing.T) {
	// k is capacity/2: larger requests may be refused (property 9).
	b, err := Create(80, 1, WithDebug(true))
	require.NoError(t, err)
	w, err := b.Register(0)
	require.NoError(t, err)

	const k = 40
	_, err = b.Acquire(w, k)
	require.NoError(t, err)
	b.Produce(w)

	off, n := b.Consume()
	require.EqualValues(t, k, n)
	require.NoError(t, b.Release(n))
	_ = off

	// Capacity should be fully available again.
	_, err = b.Acquire(w, k)
	require.NoError(t, err)
	b.Produce(w)
}

// Property 7: Consume without Release is idempotent.
func TestConsumeWithoutReleaseIsIdempotent(t *testing.T) {
	b, err := Create(32, 1, WithDebug(true))
	require.NoError(t, err)
	w, err := b.Register(0)
	require.NoError(t, err)

	_, err = b.Acquire(w, 10)
	require.NoError(t, err)
	b.Produce(w)

	off1, n1 := b.Consume()
	off2, n2 := b.Consume()
	require.Equal(t, off1, off2)
	require.Equal(t, n1, n2)
}

// Property 8: acquire(capacity) succeeds on an empty buffer at offset 0.
func TestAcquireFullCapacityOnEmptyBuffer(t *testing.T) {
	b, err := Create(16, 1)
	require.NoError(t, err)
	w, err := b.Register(0)
	require.NoError(t, err)

	off, err := b.Acquire(w, 16)
	require.NoError(t, err)
	require.EqualValues(t, 0, off)
	b.Produce(w)
}

func TestAcquireLengthPreconditionViolationReturnsError(t *testing.T) {
	b, err := Create(16, 1) // Debug off: precondition violation -> error, not panic.
	require.NoError(t, err)
	w, err := b.Register(0)
	require.NoError(t, err)

	_, err = b.Acquire(w, 17)
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = b.Acquire(w, 0)
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestAcquireLengthPreconditionViolationPanicsInDebugMode(t *testing.T) {
	b, err := Create(16, 1, WithDebug(true))
	require.NoError(t, err)
	w, err := b.Register(0)
	require.NoError(t, err)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic in debug mode on precondition violation")
		}
	}()
	_, _ = b.Acquire(w, 17)
}

// Property 9: acquire(len) with len > capacity/2 may be refused even
// on an empty buffer, because the reservation must be contiguous and
// the tail region may be too short.
func TestLargeAcquireMayBeRefusedNearTail(t *testing.T) {
	b, err := Create(10, 1, WithDebug(true))
	require.NoError(t, err)
	w, err := b.Register(0)
	require.NoError(t, err)

	// Move NEXT near the tail with a small reservation first.
	off, err := b.Acquire(w, 7)
	require.NoError(t, err)
	require.EqualValues(t, 0, off)
	b.Produce(w)
	_, n := b.Consume()
	require.NoError(t, b.Release(n))

	// NEXT and WRITTEN are now both at 7, so the buffer is empty; a
	// 7-byte request (> capacity/2) does not fit in the 3 remaining
	// tail bytes and forces a wrap, and the wrapped range [0, 7) would
	// reach WRITTEN.
	_, err = b.Acquire(w, 7)
	require.Error(t, err)
}

func TestReservationsDoNotOverlap(t *testing.T) {
	b, err := Create(100, 2, WithDebug(true))
	require.NoError(t, err)
	p1, err := b.Register(0)
	require.NoError(t, err)
	p2, err := b.Register(1)
	require.NoError(t, err)

	off1, err := b.Acquire(p1, 40)
	require.NoError(t, err)
	off2, err := b.Acquire(p2, 40)
	require.NoError(t, err)

	require.False(t, rangesOverlap(off1, 40, off2, 40), "reservations must not overlap")

	b.Produce(p1)
	b.Produce(p2)
}

func rangesOverlap(a0 uint32, aLen uint32, b0 uint32, bLen uint32) bool {
	a1, b1 := a0+aLen, b0+bLen
	return a0 < b1 && b0 < a1
}
