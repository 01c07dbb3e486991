// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package future provides a single-shot, single-producer/single-consumer
// asynchronous result: the write end (Promise) and read end (Future)
// of a shared core, plus combinators over N futures.
//
// # Basic Usage
//
//	p, f := future.New[int]()
//	go func() { p.Resolve(42) }()
//	v, err := f.Get()
package future

import (
	"sync"
	"time"

	"code.hybscloud.com/async/errkit"
	"code.hybscloud.com/atomix"
)

// core is the shared state between exactly one Promise and one Future.
type core[T any] struct {
	mu          sync.Mutex
	settled     bool
	value       T
	err         error
	callback    func(T, error)
	done        chan struct{}
	ready       atomix.Bool
	futureTaken atomix.Bool
}

// Promise is the write end of a future.
type Promise[T any] struct {
	c *core[T]
}

// Future is the read end of a future.
type Future[T any] struct {
	c *core[T]
}

// New creates a fresh Promise/Future pair sharing one core.
func New[T any]() (*Promise[T], *Future[T]) {
	c := &core[T]{done: make(chan struct{})}
	return &Promise[T]{c: c}, &Future[T]{c: c}
}

// Resolve stores v as the successful result, signals waiters, and
// invokes any already-installed callback synchronously in the calling
// goroutine. Calling Resolve or Reject a second time on the same
// promise is a contract violation and panics.
func (p *Promise[T]) Resolve(v T) {
	p.c.settle(v, nil)
}

// Reject stores err as the result and otherwise behaves like Resolve.
// err must be non-nil.
func (p *Promise[T]) Reject(err error) {
	if err == nil {
		panic("future: Reject requires a non-nil error")
	}
	var zero T
	p.c.settle(zero, err)
}

// IsFulfilled reports whether a result has been stored.
func (p *Promise[T]) IsFulfilled() bool {
	return p.c.ready.LoadAcquire()
}

// Future returns the Future view of this promise. It may be called
// only once; a second call panics, matching spec's "fails with a
// precondition error" (a programmer error, not a recoverable one, in
// keeping with Resolve/Reject's own panic-on-double-settle contract).
func (p *Promise[T]) Future() *Future[T] {
	if !p.c.futureTaken.CompareAndSwapAcqRel(false, true) {
		panic("future: Future already obtained from this promise")
	}
	return &Future[T]{c: p.c}
}

func (c *core[T]) settle(v T, err error) {
	c.mu.Lock()
	if c.settled {
		c.mu.Unlock()
		panic("future: promise already settled")
	}
	c.settled = true
	c.value, c.err = v, err
	cb := c.callback
	c.ready.StoreRelease(true)
	close(c.done)
	c.mu.Unlock()

	if cb != nil {
		cb(v, err)
	}
}

// IsReady reports whether a result has been stored, regardless of
// whether a callback has been attached.
func (f *Future[T]) IsReady() bool {
	return f.c.ready.LoadAcquire()
}

// Result returns the stored result. Its behavior is undefined if
// IsReady is false; callers must check IsReady (or use Get/Wait) first.
func (f *Future[T]) Result() (T, error) {
	return f.c.value, f.c.err
}

// Wait blocks until the future is ready.
func (f *Future[T]) Wait() {
	<-f.c.done
}

// WaitTimeout blocks until the future is ready or d elapses, whichever
// comes first. It returns a TimedOut-classified error on expiry.
func (f *Future[T]) WaitTimeout(d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.c.done:
		return nil
	case <-timer.C:
		return errTimedOut
	}
}

// Get blocks until the future is ready, then returns the result.
func (f *Future[T]) Get() (T, error) {
	<-f.c.done
	return f.c.value, f.c.err
}

// SetCallback installs a one-shot completion callback. If the result
// is already present, f is invoked synchronously before SetCallback
// returns. Otherwise f is registered and is invoked exactly once, by
// whichever goroutine later settles the promise.
func (f *Future[T]) SetCallback(cb func(T, error)) {
	c := f.c
	c.mu.Lock()
	if c.settled {
		v, err := c.value, c.err
		c.mu.Unlock()
		cb(v, err)
		return
	}
	c.callback = cb
	c.mu.Unlock()
}

var waitTimeoutCategory = errkit.NewCategory("future_wait")
var errTimedOut = waitTimeoutCategory.DefineCondition(1, "future: wait timed out", errkit.TimedOut)
