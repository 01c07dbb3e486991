// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/async/ringbuf"
)

// TestFIFOSingleProducerConsumer mirrors spec scenario 1: capacity 4,
// enqueue 1,2,3,4, a fifth reserve fails, dequeue in order, a fifth
// acquire fails.
func TestFIFOSingleProducerConsumer(t *testing.T) {
	r := ringbuf.New[int](4)
	if r.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", r.Cap())
	}

	for i := 1; i <= 4; i++ {
		if !r.TryPush(i) {
			t.Fatalf("TryPush(%d) unexpectedly failed", i)
		}
	}
	if r.TryPush(5) {
		t.Fatalf("TryPush on full buffer should fail")
	}

	for i := 1; i <= 4; i++ {
		v, ok := r.TryPop()
		if !ok {
			t.Fatalf("TryPop(%d): unexpectedly empty", i)
		}
		if v != i {
			t.Fatalf("TryPop order: got %d, want %d", v, i)
		}
	}
	if _, ok := r.TryPop(); ok {
		t.Fatalf("TryPop on empty buffer should fail")
	}
}

func TestReserveCommitAcquireReleaseProtocol(t *testing.T) {
	r := ringbuf.New[string](2)

	tok, ok := r.Reserve()
	if !ok {
		t.Fatalf("Reserve should succeed on empty buffer")
	}
	r.Write(tok, "hello")
	r.Commit(tok)

	rtok, ok := r.Acquire()
	if !ok {
		t.Fatalf("Acquire should succeed after Commit")
	}
	if got := r.Read(rtok); got != "hello" {
		t.Fatalf("Read: got %q, want %q", got, "hello")
	}
	r.Release(rtok)

	if !r.Empty() {
		t.Fatalf("buffer should be empty after Release")
	}
}

func TestRoundsCapacityToPowerOfTwo(t *testing.T) {
	r := ringbuf.New[int](3)
	if r.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", r.Cap())
	}
}

// TestConcurrentMPMCNoLostOrDuplicatedValues exercises concurrent
// producers and consumers and asserts every value is delivered exactly
// once, per the no-two-producers-in-RESERVING/no-two-consumers-in-
// CONSUMING invariant of spec section 8.
func TestConcurrentMPMCNoLostOrDuplicatedValues(t *testing.T) {
	perProduce := 2000
	if ringbuf.RaceEnabled {
		perProduce = 200
	}
	const (
		producers = 4
		consumers = 4
	)
	r := ringbuf.New[int](64)

	var seen sync.Map
	var produced atomic.Int64
	var consumedCount atomic.Int64

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProduce; i++ {
				v := base*perProduce + i
				for !r.TryPush(v) {
				}
				produced.Add(1)
			}
		}(p)
	}

	done := make(chan struct{})
	var cwg sync.WaitGroup
	cwg.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			defer cwg.Done()
			for {
				v, ok := r.TryPop()
				if ok {
					if _, dup := seen.LoadOrStore(v, true); dup {
						t.Errorf("value %d delivered more than once", v)
					}
					consumedCount.Add(1)
					continue
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
	for consumedCount.Load() < int64(producers*perProduce) {
	}
	close(done)
	cwg.Wait()

	if got, want := consumedCount.Load(), int64(producers*perProduce); got != want {
		t.Fatalf("consumed %d values, want %d", got, want)
	}
}
