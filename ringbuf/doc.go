// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringbuf provides a lock-free, fixed-capacity, bounded ring
// buffer supporting concurrent multi-producer and multi-consumer
// access without locks on the fast path. It is the transport layer
// underneath achan's bounded channel.
//
// The interface is a four-call protocol — Reserve/Write/Commit and
// Acquire/Read/Release — rather than plain enqueue/dequeue, so callers
// can write and read the payload in place and avoid an extra copy for
// large or move-only values. TryPush/TryPop compose the protocol for
// callers that don't need in-place access.
//
// Each slot cycles strictly through four states: idle (empty,
// available for producer reservation), reserving (a producer has
// exclusive write access), valid (committed, available for consumer
// acquisition), and consuming (a consumer has exclusive read access).
//
// # Basic Usage
//
//	r := ringbuf.New[int](1024)
//	if ok := r.TryPush(42); !ok {
//	    // full
//	}
//	v, ok := r.TryPop()
//
// # In-place protocol
//
// Callers that want to avoid copying a large payload use the four-call
// form directly:
//
//	token, ok := r.Reserve()
//	if !ok {
//	    return ErrFull
//	}
//	r.Write(token, payload)
//	r.Commit(token)
package ringbuf
