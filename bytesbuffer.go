package ringbuf

// BytesBuffer bundles a capacity-sized backing array with a *Buffer so
// callers who don't want to manage their own storage can reserve and
// read byte slices directly. This implements option (a) of spec §9's
// ownership re-architecture note; the underlying Buffer remains
// offset-only, as required by spec §3.
type BytesBuffer struct {
	*Buffer
	data []byte
}

// NewBytesBuffer allocates a BytesBuffer with its own capacity-sized
// backing array.
func NewBytesBuffer(capacity uint32, nworkers int, opts ...Option) (*BytesBuffer, error) {
	b, err := Create(capacity, nworkers, opts...)
	if err != nil {
		return nil, err
	}
	return &BytesBuffer{Buffer: b, data: make([]byte, capacity)}, nil
}

// Reserve acquires len(p) bytes and copies p into the reservation,
// publishing it with Produce. It is equivalent to calling Acquire,
// copying into the backing array at the returned offset, and calling
// Produce, but saves the caller from having to slice the backing array
// itself.
func (bb *BytesBuffer) Reserve(w *Worker, p []byte) (uint32, error) {
	off, err := bb.Acquire(w, uint32(len(p)))
	if err != nil {
		return 0, err
	}
	copy(bb.data[off:int(off)+len(p)], p)
	bb.Produce(w)
	return off, nil
}

// Read returns a view of the next ready range, or (nil, false) if
// nothing is ready. The returned slice aliases the backing array and
// is only valid until the matching Release.
func (bb *BytesBuffer) Read() ([]byte, bool) {
	off, n := bb.Consume()
	if n == 0 {
		return nil, false
	}
	return bb.data[off : off+n], true
}
