package ringbuf

import (
	"math"
	"sync/atomic"
)

// idxNone is the sentinel "no index" value for the index stack below.
const idxNone = uint32(math.MaxUint32)

// stackHead packs a Treiber-stack head into {version:32, index:32}. The
// version counter defeats ABA on pop/push the same way the wrap
// counter in word.go defeats ABA on the acquisition CAS: without it, a
// stalled pop could succeed against a head that happened to cycle back
// to the same index after an intervening pop/push pair.
type stackHead struct {
	word atomic.Uint64
}

func packStackHead(index, version uint32) uint64 {
	return uint64(version)<<32 | uint64(index)
}

func unpackStackHead(word uint64) (index, version uint32) {
	return uint32(word), uint32(word >> 32)
}

func newStackHead() stackHead {
	var h stackHead
	h.word.Store(packStackHead(idxNone, 0))
	return h
}

// indexStack is a lock-free LIFO stack of slot indices into a
// worker-slot array. It backs the registry's "used" pool (spec §4.2
// variant 2): push/pop are both safe under concurrent callers, since
// acquire() (push) may run on multiple producer goroutines at once
// while the consumer concurrently pops during its scan.
type indexStack struct {
	head stackHead
	next []atomic.Uint32 // next[i] = successor of slot i while linked into this stack
}

func newIndexStack(n int) *indexStack {
	s := &indexStack{
		head: newStackHead(),
		next: make([]atomic.Uint32, n),
	}
	return s
}

// push links slot idx onto the stack head.
func (s *indexStack) push(idx uint32) {
	for {
		old := s.head.word.Load()
		oldIdx, oldVer := unpackStackHead(old)
		s.next[idx].Store(oldIdx)
		newWord := packStackHead(idx, oldVer+1)
		if s.head.word.CompareAndSwap(old, newWord) {
			return
		}
	}
}

// pop unlinks and returns the slot at the stack head, or (0, false) if
// the stack is empty.
func (s *indexStack) pop() (uint32, bool) {
	for {
		old := s.head.word.Load()
		oldIdx, oldVer := unpackStackHead(old)
		if oldIdx == idxNone {
			return 0, false
		}
		nextIdx := s.next[oldIdx].Load()
		newWord := packStackHead(nextIdx, oldVer+1)
		if s.head.word.CompareAndSwap(old, newWord) {
			return oldIdx, true
		}
	}
}
