// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package achan provides a typed, bounded MPMC channel over ringbuf:
// non-blocking Try{Send,Receive}, blocking Send/Receive with
// context.Context timeouts, reference-counted Sender/Receiver handles,
// and idempotent Close with wake-on-close semantics for every blocked
// waiter. Errors on all four operations classify via errkit against
// errkit.WouldBlock, errkit.TimedOut, and errkit.Disconnected, so a
// caller can switch on condition rather than on which of the four
// leaf errors it received.
//
// # Basic Usage
//
//	s, r := achan.New[int](16)
//	go func() {
//	    defer s.Close()
//	    _ = s.Send(context.Background(), 42)
//	}()
//	v, err := r.Receive(context.Background())
package achan

import (
	"context"
	"errors"
	"sync"

	"code.hybscloud.com/async/ringbuf"
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

type core[T any] struct {
	mu        sync.Mutex
	buf       *ringbuf.RingBuffer[T]
	closed    bool
	senders   int32
	receivers int32
	spin      bool
	sendWake  chan struct{}
	recvWake  chan struct{}
}

func newCore[T any](capacity int, c config) *core[T] {
	return &core[T]{
		buf:       ringbuf.New[T](capacity),
		senders:   1,
		receivers: 1,
		spin:      c.spinBeforePark,
		sendWake:  make(chan struct{}),
		recvWake:  make(chan struct{}),
	}
}

// notifySend and notifyRecv must be called with mu held; they wake
// every goroutine currently parked in Send/Receive by closing the
// relevant generation channel and replacing it with a fresh one.
func (c *core[T]) notifySend() { close(c.sendWake); c.sendWake = make(chan struct{}) }
func (c *core[T]) notifyRecv() { close(c.recvWake); c.recvWake = make(chan struct{}) }

func (c *core[T]) notifyBoth() {
	c.notifySend()
	c.notifyRecv()
}

// Sender is a reference-counted handle to a channel's write side.
type Sender[T any] struct {
	c      *core[T]
	closed atomix.Bool
}

// Receiver is a reference-counted handle to a channel's read side.
type Receiver[T any] struct {
	c      *core[T]
	closed atomix.Bool
}

// New builds a bounded channel with the given ring-buffer capacity,
// returning one Sender and one Receiver, each starting with a
// reference count of one.
func New[T any](capacity int, opts ...Option) (*Sender[T], *Receiver[T]) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	core := newCore[T](capacity, c)
	return &Sender[T]{c: core}, &Receiver[T]{c: core}
}

// Clone returns a new Sender handle sharing the same underlying
// channel, incrementing the live-sender count.
func (s *Sender[T]) Clone() *Sender[T] {
	s.c.mu.Lock()
	s.c.senders++
	s.c.mu.Unlock()
	return &Sender[T]{c: s.c}
}

// Clone returns a new Receiver handle sharing the same underlying
// channel, incrementing the live-receiver count.
func (r *Receiver[T]) Clone() *Receiver[T] {
	r.c.mu.Lock()
	r.c.receivers++
	r.c.mu.Unlock()
	return &Receiver[T]{c: r.c}
}

// TrySend attempts to enqueue v without blocking.
func (s *Sender[T]) TrySend(v T) error {
	s.c.mu.Lock()
	closed := s.c.closed
	s.c.mu.Unlock()
	if closed {
		return ErrDisconnected
	}
	if s.c.buf.TryPush(v) {
		s.c.mu.Lock()
		s.c.notifyRecv()
		s.c.mu.Unlock()
		return nil
	}
	return ErrFull
}

// Send blocks until v is accepted, the channel disconnects, or ctx is
// done. By default it retries under iox.Backoff until one of those
// happens and never parks; with WithoutSpin given to New it parks on
// the channel's wake signal between attempts instead. Receive behaves
// the same way.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	backoff := iox.Backoff{}
	for {
		err := s.TrySend(v)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrDisconnected) {
			return err
		}
		select {
		case <-ctx.Done():
			return ErrTimeout
		default:
		}
		if s.c.spin {
			backoff.Wait()
			continue
		}
		s.c.mu.Lock()
		if s.c.closed {
			s.c.mu.Unlock()
			return ErrDisconnected
		}
		wake := s.c.sendWake
		s.c.mu.Unlock()
		select {
		case <-wake:
		case <-ctx.Done():
			return ErrTimeout
		}
	}
}

// Close decrements this handle's contribution to the live-sender
// count; once it reaches zero the channel closes, waking every
// blocked Send and Receive. Close is idempotent per handle.
func (s *Sender[T]) Close() error {
	if !s.closed.CompareAndSwapAcqRel(false, true) {
		return nil
	}
	s.c.mu.Lock()
	s.c.senders--
	if s.c.senders == 0 {
		s.c.closed = true
		s.c.notifyBoth()
	}
	s.c.mu.Unlock()
	return nil
}

// Len, Cap, Empty, Full, and Closed report the shared channel's state
// as observed at the moment of the call.
func (s *Sender[T]) Len() int      { return s.c.buf.Len() }
func (s *Sender[T]) Cap() int      { return s.c.buf.Cap() }
func (s *Sender[T]) Empty() bool   { return s.c.buf.Empty() }
func (s *Sender[T]) Full() bool    { return s.c.buf.Full() }
func (s *Sender[T]) Closed() bool {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.closed
}

// TryReceive attempts to dequeue a value without blocking.
func (r *Receiver[T]) TryReceive() (T, error) {
	v, ok := r.c.buf.TryPop()
	if ok {
		r.c.mu.Lock()
		r.c.notifySend()
		r.c.mu.Unlock()
		return v, nil
	}
	r.c.mu.Lock()
	closed := r.c.closed
	r.c.mu.Unlock()
	var zero T
	if closed {
		return zero, ErrDisconnected
	}
	return zero, ErrEmpty
}

// Receive blocks until a value is available, the channel disconnects
// with nothing left to drain, or ctx is done.
func (r *Receiver[T]) Receive(ctx context.Context) (T, error) {
	backoff := iox.Backoff{}
	for {
		v, err := r.TryReceive()
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrDisconnected) {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ErrTimeout
		default:
		}
		if r.c.spin {
			backoff.Wait()
			continue
		}
		r.c.mu.Lock()
		if r.c.closed && r.c.buf.Empty() {
			r.c.mu.Unlock()
			var zero T
			return zero, ErrDisconnected
		}
		wake := r.c.recvWake
		r.c.mu.Unlock()
		select {
		case <-wake:
		case <-ctx.Done():
			var zero T
			return zero, ErrTimeout
		}
	}
}

// Close decrements this handle's contribution to the live-receiver
// count; once it reaches zero the channel closes, waking every
// blocked Send and Receive. Close is idempotent per handle.
func (r *Receiver[T]) Close() error {
	if !r.closed.CompareAndSwapAcqRel(false, true) {
		return nil
	}
	r.c.mu.Lock()
	r.c.receivers--
	if r.c.receivers == 0 {
		r.c.closed = true
		r.c.notifyBoth()
	}
	r.c.mu.Unlock()
	return nil
}

// Len, Cap, Empty, Full, and Closed report the shared channel's state
// as observed at the moment of the call.
func (r *Receiver[T]) Len() int    { return r.c.buf.Len() }
func (r *Receiver[T]) Cap() int    { return r.c.buf.Cap() }
func (r *Receiver[T]) Empty() bool { return r.c.buf.Empty() }
func (r *Receiver[T]) Full() bool  { return r.c.buf.Full() }
func (r *Receiver[T]) Closed() bool {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return r.c.closed
}
