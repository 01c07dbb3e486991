// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task provides a stackless-coroutine-shaped Task built on top
// of future.Future: suspension at await points, a cancellation chain
// that reaches into whatever leaf awaitable is currently suspended,
// source-location traceback, and the same combinator surface as
// future (All, AllSettled, Any, Race), returning tasks instead of
// futures.
//
// Go has no native stackless-coroutine primitive to layer this on top
// of, so a Task's body runs on its own goroutine; the goroutine parks
// on a channel receive at each suspension point instead of occupying
// an OS thread, which is the substitute this module uses for "do not
// block OS threads while suspended". Error discipline is value-based
// only: the body returns (T, error) directly, matching Go's own idiom
// and the source design's later, canonical coroutine flavor.
//
// # Basic Usage
//
//	t := task.Run(func(ctx *task.Context) (int, error) {
//	    v, ok := task.Await(ctx, someFuture)
//	    if !ok {
//	        return 0, errkit.OperationCanceled
//	    }
//	    return v * 2, nil
//	})
//	v, err := t.Future().Get()
package task

import (
	"code.hybscloud.com/async/errkit"
	"code.hybscloud.com/async/future"
	"code.hybscloud.com/atomix"
)

// Task is a handle to a running or completed coroutine: its frame
// chain, its eventual result, and the controls to cancel it and
// inspect its suspension chain.
type Task[T any] struct {
	head      *frame
	fut       *future.Future[T]
	cancelled atomix.Bool
	name      string
	traceback bool
}

// Context is passed to a task's body and is the only way the body
// suspends on an awaitable. A Context is valid only for the duration
// of its owning Task's body and must not be retained past it.
type Context struct {
	task interface {
		headFrame() *frame
		tracebackEnabled() bool
	}
}

func (t *Task[T]) headFrame() *frame      { return t.head }
func (t *Task[T]) tracebackEnabled() bool { return t.traceback }

// Name returns the label given via WithName, or "" if none was given.
func (t *Task[T]) Name() string { return t.name }

// Run spawns body on its own goroutine and returns a handle to it
// immediately; body begins executing before Run returns only in the
// sense that the goroutine is started — Run itself never blocks.
func Run[T any](body func(ctx *Context) (T, error), opts ...Option) *Task[T] {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	p, f := future.New[T]()
	t := &Task[T]{head: &frame{}, fut: f, name: c.name, traceback: c.traceback}
	ctx := &Context{task: t}
	go func() {
		v, err := body(ctx)
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(v)
	}()
	return t
}

// From adapts an external future into a task with no cancellation
// support: Cancel on the returned task always fails with
// errkit.OperationNotSupported, per spec section 4.3's bare-future
// suspension point.
func From[T any](f *future.Future[T]) *Task[T] {
	t := &Task[T]{head: &frame{}, fut: f, traceback: true}
	return t
}

// FromCancellable adapts an external future into a task whose single
// suspension point can be cancelled via cancel, which must cause f to
// settle with an error classified errkit.OperationCanceled.
func FromCancellable[T any](f *future.Future[T], cancel func()) *Task[T] {
	t := &Task[T]{head: &frame{cancel: cancel}, fut: f, traceback: true}
	return t
}

// Future returns the task's underlying future.
func (t *Task[T]) Future() *future.Future[T] { return t.fut }

// Done reports whether the task's future is ready.
func (t *Task[T]) Done() bool { return t.fut.IsReady() }

// Cancelled reports whether Cancel has been called on this task,
// regardless of whether cancellation could take effect.
func (t *Task[T]) Cancelled() bool { return t.cancelled.LoadAcquire() }

// Cancel walks the frame chain from head to tail, marking every frame
// cancelled. At the tail, if a cancellation thunk is installed, it is
// invoked exactly once (and cleared), which must settle the
// currently-awaited future with an operation-canceled error. If the
// tail frame has no thunk (it is a bare, non-cancellable await),
// Cancel returns errkit.OperationNotSupported and the chain remains
// marked — a body polling task.Cancelled(ctx) still observes the
// mark at its next suspension point. The thunk is cleared on first
// use, so a second Cancel call walks and marks the chain again (a
// no-op, since every frame is already cancelled) but never re-invokes
// the thunk; it returns errkit.OperationNotSupported, since the tail
// then has no thunk.
func (t *Task[T]) Cancel() error {
	t.cancelled.StoreRelease(true)

	f := t.head
	var tail *frame
	for f != nil {
		f.markCancelled()
		tail = f
		f = f.nextFrame()
	}
	if tail == nil {
		return nil
	}

	tail.mu.Lock()
	cancel := tail.cancel
	tail.cancel = nil
	tail.mu.Unlock()

	if cancel == nil {
		return errkit.OperationNotSupported
	}
	cancel()
	return nil
}

func (f *frame) nextFrame() *frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}

// Traceback walks the frame chain from head to tail, collecting the
// call site of the co_await that created each link. A task given
// WithName gets its name as a first, synthetic entry. Once the task is
// done every frame has been detached, so only that name entry (if any)
// remains.
func (t *Task[T]) Traceback() []Frame {
	var out []Frame
	if t.name != "" {
		out = append(out, Frame{Site: t.name})
	}
	f := t.head
	for f != nil {
		f.mu.Lock()
		site := f.site
		next := f.next
		f.mu.Unlock()
		if site != "" {
			out = append(out, Frame{Site: site})
		}
		f = next
	}
	return out
}
