// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

type slotState int32

const (
	idle slotState = iota
	reserving
	valid
	consuming
)

type slot[T any] struct {
	_     pad
	state atomix.Int32
	value T
	_     padShort
}

// pad is cache line padding to prevent false sharing between adjacent
// slots' hot fields.
type pad [64]byte

// padShort pads the remainder of a cache line after a 4-byte state
// field plus a value of unknown size; exact sizing is not load-bearing,
// this is a hint, not a guarantee, matching the teacher's own
// best-effort padding (it does not account for T's own size either).
type padShort [60]byte

// RingBuffer is a fixed-capacity, lock-free bounded queue. The zero
// value is not usable; construct with New.
type RingBuffer[T any] struct {
	_        pad
	tail     atomix.Uint64 // next index to produce (reserve claims this)
	_        pad
	head     atomix.Uint64 // next index to consume (acquire claims this)
	_        pad
	buffer   []slot[T]
	capacity uint64
	mask     uint64
}

// New creates a RingBuffer whose usable capacity is the next power of
// two greater than or equal to capacity. Panics if capacity < 1.
func New[T any](capacity int, opts ...Option) *RingBuffer[T] {
	if capacity < 1 {
		panic("ringbuf: capacity must be >= 1")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := uint64(roundToPow2(capacity))
	r := &RingBuffer[T]{
		buffer:   make([]slot[T], n),
		capacity: n,
		mask:     n - 1,
	}
	for i := range r.buffer {
		r.buffer[i].state.StoreRelaxed(int32(idle))
	}
	return r
}

// Reserve claims the next producer slot. It never blocks: it returns
// ok == false immediately if the buffer is full. On success, token
// identifies the slot for the matching Write and Commit calls.
func (r *RingBuffer[T]) Reserve() (token uint64, ok bool) {
	for {
		tail := r.tail.LoadAcquire()
		head := r.head.LoadAcquire()
		if tail-head >= r.capacity {
			return 0, false
		}
		if r.tail.CompareAndSwapAcqRel(tail, tail+1) {
			s := &r.buffer[tail&r.mask]
			sw := spin.Wait{}
			for !s.state.CompareAndSwapAcqRel(int32(idle), int32(reserving)) {
				sw.Once()
			}
			return tail, true
		}
	}
}

// Write stores v into the slot reserved by token. It must be called
// at most once, strictly between the Reserve and Commit that produced
// and will consume token.
func (r *RingBuffer[T]) Write(token uint64, v T) {
	r.buffer[token&r.mask].value = v
}

// Commit publishes the slot reserved by token, making it available to
// Acquire. The store uses release ordering so the Write above is
// visible to any consumer that subsequently observes the slot valid.
func (r *RingBuffer[T]) Commit(token uint64) {
	r.buffer[token&r.mask].state.StoreRelease(int32(valid))
}

// Acquire claims the next consumer slot. It never blocks: it returns
// ok == false immediately if the buffer is empty. On success, token
// identifies the slot for the matching Read and Release calls.
func (r *RingBuffer[T]) Acquire() (token uint64, ok bool) {
	for {
		head := r.head.LoadAcquire()
		tail := r.tail.LoadAcquire()
		if head >= tail {
			return 0, false
		}
		if r.head.CompareAndSwapAcqRel(head, head+1) {
			s := &r.buffer[head&r.mask]
			sw := spin.Wait{}
			for !s.state.CompareAndSwapAcqRel(int32(valid), int32(consuming)) {
				sw.Once()
			}
			return head, true
		}
	}
}

// Read returns the value stored in the slot acquired by token.
func (r *RingBuffer[T]) Read(token uint64) T {
	return r.buffer[token&r.mask].value
}

// Release returns the slot acquired by token to the pool, making it
// available to a future Reserve. The store uses release ordering,
// matching Commit's producer-side release.
func (r *RingBuffer[T]) Release(token uint64) {
	s := &r.buffer[token&r.mask]
	var zero T
	s.value = zero
	s.state.StoreRelease(int32(idle))
}

// TryPush composes Reserve/Write/Commit for callers that don't need
// in-place access. Returns false if the buffer is full.
func (r *RingBuffer[T]) TryPush(v T) bool {
	token, ok := r.Reserve()
	if !ok {
		return false
	}
	r.Write(token, v)
	r.Commit(token)
	return true
}

// TryPop composes Acquire/Read/Release. Returns the zero value and
// false if the buffer is empty.
func (r *RingBuffer[T]) TryPop() (T, bool) {
	token, ok := r.Acquire()
	if !ok {
		var zero T
		return zero, false
	}
	v := r.Read(token)
	r.Release(token)
	return v, true
}

// Cap returns the buffer's usable capacity.
func (r *RingBuffer[T]) Cap() int { return int(r.capacity) }

// Len returns an approximate occupancy. The two counters are read
// independently with acquire ordering and no snapshot barrier, so the
// result can be stale by up to one in-flight operation; it must not be
// asserted exact under concurrent access. See spec section 9.
func (r *RingBuffer[T]) Len() int {
	tail := r.tail.LoadAcquire()
	head := r.head.LoadAcquire()
	if tail < head {
		return 0
	}
	n := tail - head
	if n > r.capacity {
		n = r.capacity
	}
	return int(n)
}

// Empty reports whether the buffer held no elements at the moment of
// the read; like Len, this is approximate under concurrency.
func (r *RingBuffer[T]) Empty() bool { return r.head.LoadAcquire() >= r.tail.LoadAcquire() }

// Full reports whether the buffer held no free slots at the moment of
// the read; like Len, this is approximate under concurrency.
func (r *RingBuffer[T]) Full() bool {
	return r.tail.LoadAcquire()-r.head.LoadAcquire() >= r.capacity
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
