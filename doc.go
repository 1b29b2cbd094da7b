// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.
//
// Alternatively, you can license this code under a commercial license.
// Contact: joshua.skootsky@gmail.com

// Package ringbuf provides a lock-free, multi-producer / single-consumer
// (MPSC) byte ring buffer. Producers reserve contiguous byte ranges,
// fill them out of band, and publish them; the consumer drains
// everything fully published, up to the first still-open reservation,
// in one shot.
//
// # Thread-Safety Guarantees
//
//   - Any number of goroutines may call Acquire/Produce, provided each
//     uses its own registered Worker.
//   - At most one goroutine may call Consume/Release at a time. The
//     package does not enforce this; callers must.
//
// # Ownership
//
// The core manages offsets into [0, capacity), not bytes. Callers that
// want a ready-to-use byte-backed buffer should use BytesBuffer, which
// bundles a []byte with a *Buffer.
//
// # Usage Example
//
//	buf, err := ringbuf.Create(1 << 20, 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	w, err := buf.Register(0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	off, err := buf.Acquire(w, 128)
//	if err == nil {
//		// ... write 128 bytes into the caller-owned storage at off ...
//		buf.Produce(w)
//	}
//
//	if off, n := buf.Consume(); n > 0 {
//		// ... read bytes in [off, off+n) ...
//		buf.Release(n)
//	}
package ringbuf
