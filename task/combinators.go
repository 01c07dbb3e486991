// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "code.hybscloud.com/async/future"

// cancelRemaining cancels every task in ts that hasn't settled yet. It
// is installed both as the combined task's own cancellation thunk and
// as a completion callback on the combined future, satisfying spec
// section 4.3's "when the combined task enters its terminal state...
// the remaining not-yet-settled children are also cancelled" in
// addition to "cancels each child task... [on external Cancel]".
func cancelRemaining(ts ...interface{ Done() bool }) func() {
	return func() {
		for _, t := range ts {
			if !t.Done() {
				if c, ok := t.(interface{ Cancel() error }); ok {
					c.Cancel()
				}
			}
		}
	}
}

// All2 mirrors future.All2, returning a Task. Once the combined result
// is decided (all children succeeded, or one failed), every
// not-yet-settled child is cancelled; the same cancellation also fires
// if the combined task itself is cancelled from outside.
func All2[A, B any](ta *Task[A], tb *Task[B]) *Task[future.Pair[A, B]] {
	fut := future.All2(ta.Future(), tb.Future())
	cancel := cancelRemaining(ta, tb)
	fut.SetCallback(func(future.Pair[A, B], error) { cancel() })
	return FromCancellable(fut, cancel)
}

// All3 mirrors future.All3, returning a Task.
func All3[A, B, C any](ta *Task[A], tb *Task[B], tc *Task[C]) *Task[future.Triple[A, B, C]] {
	fut := future.All3(ta.Future(), tb.Future(), tc.Future())
	cancel := cancelRemaining(ta, tb, tc)
	fut.SetCallback(func(future.Triple[A, B, C], error) { cancel() })
	return FromCancellable(fut, cancel)
}

// All4 mirrors future.All4, returning a Task.
func All4[A, B, C, D any](ta *Task[A], tb *Task[B], tc *Task[C], td *Task[D]) *Task[future.Quad[A, B, C, D]] {
	fut := future.All4(ta.Future(), tb.Future(), tc.Future(), td.Future())
	cancel := cancelRemaining(ta, tb, tc, td)
	fut.SetCallback(func(future.Quad[A, B, C, D], error) { cancel() })
	return FromCancellable(fut, cancel)
}

// AllSettled2 mirrors future.AllSettled2, returning a Task.
func AllSettled2[A, B any](ta *Task[A], tb *Task[B]) *Task[future.Pair[future.Outcome[A], future.Outcome[B]]] {
	fut := future.AllSettled2(ta.Future(), tb.Future())
	return FromCancellable(fut, cancelRemaining(ta, tb))
}

// AllSettled3 mirrors future.AllSettled3, returning a Task.
func AllSettled3[A, B, C any](ta *Task[A], tb *Task[B], tc *Task[C]) *Task[future.Triple[future.Outcome[A], future.Outcome[B], future.Outcome[C]]] {
	fut := future.AllSettled3(ta.Future(), tb.Future(), tc.Future())
	return FromCancellable(fut, cancelRemaining(ta, tb, tc))
}

// AllSettled4 mirrors future.AllSettled4, returning a Task.
func AllSettled4[A, B, C, D any](ta *Task[A], tb *Task[B], tc *Task[C], td *Task[D]) *Task[future.Quad[future.Outcome[A], future.Outcome[B], future.Outcome[C], future.Outcome[D]]] {
	fut := future.AllSettled4(ta.Future(), tb.Future(), tc.Future(), td.Future())
	return FromCancellable(fut, cancelRemaining(ta, tb, tc, td))
}

// Any2 mirrors future.Any2, returning a Task; cancels the loser once a
// winner is decided. If both fail, both have already settled and
// neither is cancelled.
func Any2[A, B any](ta *Task[A], tb *Task[B]) *Task[future.AnyValue] {
	fut := future.Any2(ta.Future(), tb.Future())
	cancel := cancelRemaining(ta, tb)
	fut.SetCallback(func(future.AnyValue, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// Any3 mirrors future.Any3, returning a Task.
func Any3[A, B, C any](ta *Task[A], tb *Task[B], tc *Task[C]) *Task[future.AnyValue] {
	fut := future.Any3(ta.Future(), tb.Future(), tc.Future())
	cancel := cancelRemaining(ta, tb, tc)
	fut.SetCallback(func(future.AnyValue, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// Any4 mirrors future.Any4, returning a Task.
func Any4[A, B, C, D any](ta *Task[A], tb *Task[B], tc *Task[C], td *Task[D]) *Task[future.AnyValue] {
	fut := future.Any4(ta.Future(), tb.Future(), tc.Future(), td.Future())
	cancel := cancelRemaining(ta, tb, tc, td)
	fut.SetCallback(func(future.AnyValue, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// Race2 mirrors future.Race2, returning a Task; cancels the loser once
// the winner is decided.
func Race2[A, B any](ta *Task[A], tb *Task[B]) *Task[future.AnyValue] {
	fut := future.Race2(ta.Future(), tb.Future())
	cancel := cancelRemaining(ta, tb)
	fut.SetCallback(func(future.AnyValue, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// Race3 mirrors future.Race3, returning a Task.
func Race3[A, B, C any](ta *Task[A], tb *Task[B], tc *Task[C]) *Task[future.AnyValue] {
	fut := future.Race3(ta.Future(), tb.Future(), tc.Future())
	cancel := cancelRemaining(ta, tb, tc)
	fut.SetCallback(func(future.AnyValue, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// Race4 mirrors future.Race4, returning a Task.
func Race4[A, B, C, D any](ta *Task[A], tb *Task[B], tc *Task[C], td *Task[D]) *Task[future.AnyValue] {
	fut := future.Race4(ta.Future(), tb.Future(), tc.Future(), td.Future())
	cancel := cancelRemaining(ta, tb, tc, td)
	fut.SetCallback(func(future.AnyValue, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// AllSlice mirrors future.AllSlice, returning a Task.
func AllSlice[T any](ts []*Task[T]) *Task[[]T] {
	futures := make([]*future.Future[T], len(ts))
	for i, t := range ts {
		futures[i] = t.Future()
	}
	fut := future.AllSlice(futures)
	done := make([]interface{ Done() bool }, len(ts))
	for i, t := range ts {
		done[i] = t
	}
	cancel := cancelRemaining(done...)
	fut.SetCallback(func([]T, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// AllSettledSlice mirrors future.AllSettledSlice, returning a Task.
func AllSettledSlice[T any](ts []*Task[T]) *Task[[]future.Outcome[T]] {
	futures := make([]*future.Future[T], len(ts))
	for i, t := range ts {
		futures[i] = t.Future()
	}
	done := make([]interface{ Done() bool }, len(ts))
	for i, t := range ts {
		done[i] = t
	}
	return FromCancellable(future.AllSettledSlice(futures), cancelRemaining(done...))
}

// AnySlice mirrors future.AnySlice, returning a Task.
func AnySlice[T any](ts []*Task[T]) *Task[T] {
	futures := make([]*future.Future[T], len(ts))
	for i, t := range ts {
		futures[i] = t.Future()
	}
	fut := future.AnySlice(futures)
	done := make([]interface{ Done() bool }, len(ts))
	for i, t := range ts {
		done[i] = t
	}
	cancel := cancelRemaining(done...)
	fut.SetCallback(func(T, error) { cancel() })
	return FromCancellable(fut, cancel)
}

// RaceSlice mirrors future.RaceSlice, returning a Task.
func RaceSlice[T any](ts []*Task[T]) *Task[T] {
	futures := make([]*future.Future[T], len(ts))
	for i, t := range ts {
		futures[i] = t.Future()
	}
	fut := future.RaceSlice(futures)
	done := make([]interface{ Done() bool }, len(ts))
	for i, t := range ts {
		done[i] = t
	}
	cancel := cancelRemaining(done...)
	fut.SetCallback(func(T, error) { cancel() })
	return FromCancellable(fut, cancel)
}
