// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/async/errkit"
	"code.hybscloud.com/async/future"
)

func TestTaskCancellationPropagates(t *testing.T) {
	started := make(chan struct{})
	parent := Run(func(ctx *Context) (int, error) {
		p, f := future.New[int]()
		cancel := func() { p.Reject(errkit.OperationCanceled) }
		close(started)
		v, ok := AwaitCancellable(ctx, f, cancel)
		if !ok {
			return 0, errkit.OperationCanceled
		}
		return v, nil
	})

	<-started
	time.Sleep(10 * time.Millisecond) // let the body reach its await

	if err := parent.Cancel(); err != nil {
		t.Fatalf("Cancel: unexpected error %v", err)
	}

	parent.Future().Wait()
	if !parent.Done() {
		t.Fatal("expected parent.Done() == true after cancellation")
	}
	_, err := parent.Future().Result()
	if !errors.Is(err, errkit.OperationCanceled) {
		t.Fatalf("expected operation_canceled, got %v", err)
	}
}

// cancellableTask builds a task over a fresh promise/future pair,
// returning the task, the promise (for the test to settle directly,
// standing in for whatever real operation the cancel thunk would
// abort), and a counter of how many times the cancel thunk actually
// ran.
func cancellableTask[T any]() (*Task[T], *future.Promise[T], *int) {
	p, f := future.New[T]()
	calls := new(int)
	cancel := func() {
		*calls++
		p.Reject(errkit.OperationCanceled)
	}
	return FromCancellable(f, cancel), p, calls
}

func TestAll2ShortCircuitsOnFirstError(t *testing.T) {
	t1, p1, _ := cancellableTask[int]()
	t2, p2, _ := cancellableTask[int]()

	ioErr := errors.New("E_IO")
	combined := All2(t1, t2)

	p1.Resolve(10)
	p2.Reject(ioErr)

	combined.Future().Wait()
	_, err := combined.Future().Result()
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected combined task to settle with E_IO, got %v", err)
	}
}

func TestAllSliceCancelsRemainingOnFirstError(t *testing.T) {
	t1, p1, calls1 := cancellableTask[int]()
	t2, p2, calls2 := cancellableTask[int]()
	t3, _, calls3 := cancellableTask[int]()

	ioErr := errors.New("E_IO")
	combined := AllSlice([]*Task[int]{t1, t2, t3})

	p1.Resolve(10)
	p2.Reject(ioErr)

	combined.Future().Wait()
	_, err := combined.Future().Result()
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected combined task to settle with E_IO, got %v", err)
	}
	if *calls3 != 1 {
		t.Fatalf("expected the still-pending child's cancel thunk invoked exactly once, got %d", *calls3)
	}
	if *calls1 != 0 || *calls2 != 0 {
		t.Fatalf("settled children must not be cancelled: calls1=%d calls2=%d", *calls1, *calls2)
	}
}

func TestAll3ResolvesOnceAllThreeSucceed(t *testing.T) {
	t1 := Run(func(*Context) (int, error) { return 1, nil })
	t2 := Run(func(*Context) (int, error) { return 2, nil })
	t3 := Run(func(*Context) (int, error) { return 3, nil })

	combined := All3(t1, t2, t3)
	v, err := combined.Future().Get()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v.First != 1 || v.Second != 2 || v.Third != 3 {
		t.Fatalf("unexpected triple %+v", v)
	}
}

func TestAll4CancelsRemainingOnFirstError(t *testing.T) {
	t1, p1, calls1 := cancellableTask[int]()
	t2, p2, calls2 := cancellableTask[int]()
	t3, _, calls3 := cancellableTask[int]()
	t4, _, calls4 := cancellableTask[int]()

	ioErr := errors.New("E_IO")
	combined := All4(t1, t2, t3, t4)

	p1.Resolve(10)
	p2.Reject(ioErr)

	combined.Future().Wait()
	_, err := combined.Future().Result()
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected combined task to settle with E_IO, got %v", err)
	}
	if *calls3 != 1 || *calls4 != 1 {
		t.Fatalf("expected still-pending children cancelled exactly once, got %d, %d", *calls3, *calls4)
	}
	if *calls1 != 0 || *calls2 != 0 {
		t.Fatalf("settled children must not be cancelled: calls1=%d calls2=%d", *calls1, *calls2)
	}
}

func TestAny3ResolvesWithFirstSuccessAndCancelsLosers(t *testing.T) {
	t1, p1, calls1 := cancellableTask[int]()
	t2, _, calls2 := cancellableTask[int]()
	t3, _, calls3 := cancellableTask[int]()

	combined := Any3(t1, t2, t3)
	p1.Resolve(5)

	combined.Future().Wait()
	v, err := combined.Future().Result()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v.Value != 5 {
		t.Fatalf("expected 5, got %v", v.Value)
	}
	if *calls2 != 1 || *calls3 != 1 {
		t.Fatalf("expected losers cancelled exactly once, got %d, %d", *calls2, *calls3)
	}
	if *calls1 != 0 {
		t.Fatalf("winner must not be cancelled, got %d", *calls1)
	}
}

func TestRace4SettlesWithFirstResult(t *testing.T) {
	t1, _, calls1 := cancellableTask[int]()
	t2, p2, calls2 := cancellableTask[int]()
	t3, _, calls3 := cancellableTask[int]()
	t4, _, calls4 := cancellableTask[int]()

	combined := Race4(t1, t2, t3, t4)
	p2.Resolve(9)

	combined.Future().Wait()
	v, err := combined.Future().Result()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v.Value != 9 {
		t.Fatalf("expected 9, got %v", v.Value)
	}
	if *calls1 != 1 || *calls3 != 1 || *calls4 != 1 {
		t.Fatalf("expected losers cancelled exactly once, got %d, %d, %d", *calls1, *calls3, *calls4)
	}
	if *calls2 != 0 {
		t.Fatalf("winner must not be cancelled, got %d", *calls2)
	}
}

func TestTracebackReflectsCurrentSuspensionChain(t *testing.T) {
	p, f := future.New[int]()
	parent := Run(func(ctx *Context) (int, error) {
		v, _ := Await(ctx, f)
		return v, nil
	}, WithName("root"))

	time.Sleep(10 * time.Millisecond)
	tb := parent.Traceback()
	if len(tb) == 0 || tb[0].Site != "root" {
		t.Fatalf("expected traceback to start with the task's name, got %v", tb)
	}
	if len(tb) < 2 || tb[1].Site == "" {
		t.Fatalf("expected a captured await call site, got %v", tb)
	}

	p.Resolve(7)
	parent.Future().Wait()
	if got := parent.Traceback(); len(got) != 1 {
		t.Fatalf("expected only the name entry once settled, got %v", got)
	}
}

func TestAndThenTransformsResult(t *testing.T) {
	base := Run(func(*Context) (int, error) { return 21, nil })
	doubled := AndThen(base, func(v int) int { return v * 2 })
	v, err := doubled.Future().Get()
	if err != nil || v != 42 {
		t.Fatalf("expected 42, got %d, %v", v, err)
	}
}

func TestOrElseRecoversError(t *testing.T) {
	failing := Run(func(*Context) (int, error) { return 0, errors.New("boom") })
	recovered := OrElse(failing, func(error) int { return -1 })
	v, err := recovered.Future().Get()
	if err != nil || v != -1 {
		t.Fatalf("expected recovered value -1, got %d, %v", v, err)
	}
}

func TestFromNonCancellableTaskRejectsCancel(t *testing.T) {
	p, f := future.New[int]()
	go func() { time.Sleep(5 * time.Millisecond); p.Resolve(1) }()
	nc := From(f)
	if err := nc.Cancel(); !errors.Is(err, errkit.OperationNotSupported) {
		t.Fatalf("expected OperationNotSupported, got %v", err)
	}
}
