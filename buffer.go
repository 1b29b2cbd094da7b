package ringbuf

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Buffer is the lock-free MPSC coordination core: it owns offsets into
// a caller-supplied byte range of fixed Capacity, never the bytes
// themselves (spec §3). Use BytesBuffer if you want the core to own
// storage too.
type Buffer struct {
	capacity uint32

	next    atomic.Uint64 // packed NEXT word (word.go)
	written atomic.Uint32 // WRITTEN
	end     atomic.Uint32 // END, offsetUnset = sentinel

	reg *registry
	cfg Config
}

// Create allocates a Buffer with the given fixed capacity and worker
// count. capacity must be > 0; the packed NEXT word already bounds it
// below 2^32 since capacity is itself a uint32 (spec §3: "capacity must
// satisfy capacity < 2^32").
func Create(capacity uint32, nworkers int, opts ...Option) (*Buffer, error) {
	if capacity == 0 || capacity == offsetUnset {
		// capacity == offsetUnset (2^32-1) would collide with the
		// "unset" sentinel shared by END and seenOff; spec §3 already
		// reserves that value as a sentinel, so it is not a usable
		// capacity (see DESIGN.md).
		return nil, ErrInvalidCapacity
	}
	if nworkers <= 0 {
		return nil, ErrOutOfWorkers
	}
	cfg := NewConfig(capacity, nworkers, opts...)

	b := &Buffer{
		capacity: capacity,
		reg:      newRegistry(nworkers, cfg.BackoffLimit),
		cfg:      cfg,
	}
	b.next.Store(packWord(0, 0, false))
	b.written.Store(0)
	b.end.Store(offsetUnset)
	return b, nil
}

// SizeOf reports the byte footprint of the buffer's bookkeeping state
// (excluding the backing byte storage, which the core does not own)
// and of nworkers worker slots, for callers that want to pre-size an
// external allocation (spec §6, optional).
func SizeOf(nworkers int) (bufferBytes, workerBytes int) {
	bufferBytes = 8 + 4 + 4 // next (atomic.Uint64) + written + end (atomic.Uint32 each)
	workerBytes = nworkers * 16 // seenOff (atomic.Uint64) + claimed (atomic.Bool, padded)
	return bufferBytes, workerBytes
}

// Close releases no OS resources — the core never owns bytes or
// file descriptors — but flushes the diagnostic logger and is provided
// for symmetry with the rest of the constructor family.
func (b *Buffer) Close() error {
	if b.cfg.Logger != nil {
		_ = b.cfg.Logger.Sync()
	}
	return nil
}

// Register obtains a worker handle for producer index i.
func (b *Buffer) Register(index int) (*Worker, error) {
	w, err := b.reg.register(index)
	if err != nil {
		return nil, err
	}
	b.cfg.Logger.Debug("ringbuf: worker registered", zap.Int("index", index))
	return w, nil
}

// Unregister returns w's slot to the registry. It is a caller error to
// unregister a worker holding an outstanding reservation.
func (b *Buffer) Unregister(w *Worker) error {
	if err := b.reg.unregister(w); err != nil {
		return err
	}
	b.cfg.Logger.Debug("ringbuf: worker unregistered", zap.Uint32("index", w.index))
	return nil
}

// Capacity returns the fixed capacity configured at Create.
func (b *Buffer) Capacity() uint32 {
	return b.capacity
}
