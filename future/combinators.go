// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package future

import "sync"

// Then builds a new future whose value is onValue applied to f's
// value once f resolves. If f rejects, the returned future rejects
// with the same error and onValue is never called.
func Then[T, U any](f *Future[T], onValue func(T) U) *Future[U] {
	p, nf := New[U]()
	f.SetCallback(func(v T, err error) {
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(onValue(v))
	})
	return nf
}

// ThenCompose is Then for a continuation that itself returns a future,
// chaining the two instead of nesting futures of futures.
func ThenCompose[T, U any](f *Future[T], onValue func(T) *Future[U]) *Future[U] {
	p, nf := New[U]()
	f.SetCallback(func(v T, err error) {
		if err != nil {
			p.Reject(err)
			return
		}
		inner := onValue(v)
		inner.SetCallback(func(iv U, ierr error) {
			if ierr != nil {
				p.Reject(ierr)
				return
			}
			p.Resolve(iv)
		})
	})
	return nf
}

// Fail builds a new future that recovers from f's error by producing
// a value with onError; if f resolves, the value passes through
// unchanged and onError is never called.
func Fail[T any](f *Future[T], onError func(error) T) *Future[T] {
	p, nf := New[T]()
	f.SetCallback(func(v T, err error) {
		if err != nil {
			p.Resolve(onError(err))
			return
		}
		p.Resolve(v)
	})
	return nf
}

// Finally runs onDone once f settles, regardless of outcome, and
// forwards f's result or error unchanged.
func Finally[T any](f *Future[T], onDone func()) *Future[T] {
	p, nf := New[T]()
	f.SetCallback(func(v T, err error) {
		onDone()
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(v)
	})
	return nf
}

// ThenOrFail applies onValue on success or onError on failure,
// producing a new future that always resolves (never rejects) with
// whichever branch ran.
func ThenOrFail[T, U any](f *Future[T], onValue func(T) U, onError func(error) U) *Future[U] {
	p, nf := New[U]()
	f.SetCallback(func(v T, err error) {
		if err != nil {
			p.Resolve(onError(err))
			return
		}
		p.Resolve(onValue(v))
	})
	return nf
}

// Pair is the 2-ary tuple used by All2/AllSettled2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the 3-ary tuple used by All3/AllSettled3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is the 4-ary tuple used by All4/AllSettled4.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Outcome is a single slot's settled value in AllSettled-style
// combinators: exactly one of Value/Err is meaningful, selected by Err
// being nil.
type Outcome[T any] struct {
	Value T
	Err   error
}

// All2 resolves with both values once fa and fb both succeed; it
// rejects with the first error observed and does not wait on the
// other future once it has a decisive error (a later arrival's value
// or error is simply never read).
func All2[A, B any](fa *Future[A], fb *Future[B]) *Future[Pair[A, B]] {
	p, nf := New[Pair[A, B]]()
	var mu sync.Mutex
	var a A
	var b B
	var aDone, bDone bool
	var rejected bool

	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if rejected {
			return
		}
		if aDone && bDone {
			p.Resolve(Pair[A, B]{First: a, Second: b})
		}
	}
	reject := func(err error) {
		mu.Lock()
		already := rejected
		rejected = true
		mu.Unlock()
		if !already {
			p.Reject(err)
		}
	}

	fa.SetCallback(func(v A, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		a, aDone = v, true
		mu.Unlock()
		check()
	})
	fb.SetCallback(func(v B, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		b, bDone = v, true
		mu.Unlock()
		check()
	})
	return nf
}

// All3 is All2 generalized to three futures.
func All3[A, B, C any](fa *Future[A], fb *Future[B], fc *Future[C]) *Future[Triple[A, B, C]] {
	p, nf := New[Triple[A, B, C]]()
	var mu sync.Mutex
	var a A
	var b B
	var c C
	var aDone, bDone, cDone bool
	var rejected bool

	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if rejected {
			return
		}
		if aDone && bDone && cDone {
			p.Resolve(Triple[A, B, C]{First: a, Second: b, Third: c})
		}
	}
	reject := func(err error) {
		mu.Lock()
		already := rejected
		rejected = true
		mu.Unlock()
		if !already {
			p.Reject(err)
		}
	}

	fa.SetCallback(func(v A, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		a, aDone = v, true
		mu.Unlock()
		check()
	})
	fb.SetCallback(func(v B, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		b, bDone = v, true
		mu.Unlock()
		check()
	})
	fc.SetCallback(func(v C, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		c, cDone = v, true
		mu.Unlock()
		check()
	})
	return nf
}

// All4 is All2 generalized to four futures.
func All4[A, B, C, D any](fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D]) *Future[Quad[A, B, C, D]] {
	p, nf := New[Quad[A, B, C, D]]()
	var mu sync.Mutex
	var a A
	var b B
	var c C
	var d D
	var aDone, bDone, cDone, dDone bool
	var rejected bool

	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if rejected {
			return
		}
		if aDone && bDone && cDone && dDone {
			p.Resolve(Quad[A, B, C, D]{First: a, Second: b, Third: c, Fourth: d})
		}
	}
	reject := func(err error) {
		mu.Lock()
		already := rejected
		rejected = true
		mu.Unlock()
		if !already {
			p.Reject(err)
		}
	}

	fa.SetCallback(func(v A, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		a, aDone = v, true
		mu.Unlock()
		check()
	})
	fb.SetCallback(func(v B, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		b, bDone = v, true
		mu.Unlock()
		check()
	})
	fc.SetCallback(func(v C, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		c, cDone = v, true
		mu.Unlock()
		check()
	})
	fd.SetCallback(func(v D, err error) {
		if err != nil {
			reject(err)
			return
		}
		mu.Lock()
		d, dDone = v, true
		mu.Unlock()
		check()
	})
	return nf
}

// AllSettled2 always resolves, once both futures have settled, with
// each future's Outcome.
func AllSettled2[A, B any](fa *Future[A], fb *Future[B]) *Future[Pair[Outcome[A], Outcome[B]]] {
	p, nf := New[Pair[Outcome[A], Outcome[B]]]()
	var mu sync.Mutex
	var a Outcome[A]
	var b Outcome[B]
	var aDone, bDone bool

	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if aDone && bDone {
			p.Resolve(Pair[Outcome[A], Outcome[B]]{First: a, Second: b})
		}
	}
	fa.SetCallback(func(v A, err error) {
		mu.Lock()
		a, aDone = Outcome[A]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	fb.SetCallback(func(v B, err error) {
		mu.Lock()
		b, bDone = Outcome[B]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	return nf
}

// AllSettled3 is AllSettled2 generalized to three futures.
func AllSettled3[A, B, C any](fa *Future[A], fb *Future[B], fc *Future[C]) *Future[Triple[Outcome[A], Outcome[B], Outcome[C]]] {
	p, nf := New[Triple[Outcome[A], Outcome[B], Outcome[C]]]()
	var mu sync.Mutex
	var a Outcome[A]
	var b Outcome[B]
	var c Outcome[C]
	var aDone, bDone, cDone bool

	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if aDone && bDone && cDone {
			p.Resolve(Triple[Outcome[A], Outcome[B], Outcome[C]]{First: a, Second: b, Third: c})
		}
	}
	fa.SetCallback(func(v A, err error) {
		mu.Lock()
		a, aDone = Outcome[A]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	fb.SetCallback(func(v B, err error) {
		mu.Lock()
		b, bDone = Outcome[B]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	fc.SetCallback(func(v C, err error) {
		mu.Lock()
		c, cDone = Outcome[C]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	return nf
}

// AllSettled4 is AllSettled2 generalized to four futures.
func AllSettled4[A, B, C, D any](fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D]) *Future[Quad[Outcome[A], Outcome[B], Outcome[C], Outcome[D]]] {
	p, nf := New[Quad[Outcome[A], Outcome[B], Outcome[C], Outcome[D]]]()
	var mu sync.Mutex
	var a Outcome[A]
	var b Outcome[B]
	var c Outcome[C]
	var d Outcome[D]
	var aDone, bDone, cDone, dDone bool

	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if aDone && bDone && cDone && dDone {
			p.Resolve(Quad[Outcome[A], Outcome[B], Outcome[C], Outcome[D]]{First: a, Second: b, Third: c, Fourth: d})
		}
	}
	fa.SetCallback(func(v A, err error) {
		mu.Lock()
		a, aDone = Outcome[A]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	fb.SetCallback(func(v B, err error) {
		mu.Lock()
		b, bDone = Outcome[B]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	fc.SetCallback(func(v C, err error) {
		mu.Lock()
		c, cDone = Outcome[C]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	fd.SetCallback(func(v D, err error) {
		mu.Lock()
		d, dDone = Outcome[D]{Value: v, Err: err}, true
		mu.Unlock()
		check()
	})
	return nf
}

// AggregateError wraps the per-slot errors of a failed Any/AnySlice.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	msg := "future: all alternatives failed"
	if len(e.Errors) > 0 {
		msg += ": " + e.Errors[0].Error()
	}
	return msg
}

// Any2 resolves with whichever of fa/fb first succeeds. If both fail,
// it rejects with an AggregateError carrying both errors, slot order
// preserved.
func Any2[A, B any](fa *Future[A], fb *Future[B]) *Future[AnyValue] {
	p, nf := New[AnyValue]()
	var mu sync.Mutex
	errs := make([]error, 2)
	var aErr, bErr bool
	var decided bool

	maybeReject := func() {
		mu.Lock()
		defer mu.Unlock()
		if decided || !aErr || !bErr {
			return
		}
		decided = true
		p.Reject(&AggregateError{Errors: append([]error(nil), errs...)})
	}
	resolve := func(v any) {
		mu.Lock()
		already := decided
		decided = true
		mu.Unlock()
		if !already {
			p.Resolve(AnyValue{Value: v})
		}
	}

	fa.SetCallback(func(v A, err error) {
		if err != nil {
			mu.Lock()
			errs[0], aErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	fb.SetCallback(func(v B, err error) {
		if err != nil {
			mu.Lock()
			errs[1], bErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	return nf
}

// Any3 is Any2 generalized to three futures.
func Any3[A, B, C any](fa *Future[A], fb *Future[B], fc *Future[C]) *Future[AnyValue] {
	p, nf := New[AnyValue]()
	var mu sync.Mutex
	errs := make([]error, 3)
	var aErr, bErr, cErr bool
	var decided bool

	maybeReject := func() {
		mu.Lock()
		defer mu.Unlock()
		if decided || !aErr || !bErr || !cErr {
			return
		}
		decided = true
		p.Reject(&AggregateError{Errors: append([]error(nil), errs...)})
	}
	resolve := func(v any) {
		mu.Lock()
		already := decided
		decided = true
		mu.Unlock()
		if !already {
			p.Resolve(AnyValue{Value: v})
		}
	}

	fa.SetCallback(func(v A, err error) {
		if err != nil {
			mu.Lock()
			errs[0], aErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	fb.SetCallback(func(v B, err error) {
		if err != nil {
			mu.Lock()
			errs[1], bErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	fc.SetCallback(func(v C, err error) {
		if err != nil {
			mu.Lock()
			errs[2], cErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	return nf
}

// Any4 is Any2 generalized to four futures.
func Any4[A, B, C, D any](fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D]) *Future[AnyValue] {
	p, nf := New[AnyValue]()
	var mu sync.Mutex
	errs := make([]error, 4)
	var aErr, bErr, cErr, dErr bool
	var decided bool

	maybeReject := func() {
		mu.Lock()
		defer mu.Unlock()
		if decided || !aErr || !bErr || !cErr || !dErr {
			return
		}
		decided = true
		p.Reject(&AggregateError{Errors: append([]error(nil), errs...)})
	}
	resolve := func(v any) {
		mu.Lock()
		already := decided
		decided = true
		mu.Unlock()
		if !already {
			p.Resolve(AnyValue{Value: v})
		}
	}

	fa.SetCallback(func(v A, err error) {
		if err != nil {
			mu.Lock()
			errs[0], aErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	fb.SetCallback(func(v B, err error) {
		if err != nil {
			mu.Lock()
			errs[1], bErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	fc.SetCallback(func(v C, err error) {
		if err != nil {
			mu.Lock()
			errs[2], cErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	fd.SetCallback(func(v D, err error) {
		if err != nil {
			mu.Lock()
			errs[3], dErr = err, true
			mu.Unlock()
			maybeReject()
			return
		}
		resolve(v)
	})
	return nf
}

// AnyValue is the opaque "any value" carrier Any2/Any3/Any4 resolve
// with when the alternatives don't share a single value type T; use
// AnySlice for the homogeneous case, which resolves with T directly.
type AnyValue struct {
	Value any
}

// Race2 settles with whichever of fa/fb first produces any result,
// value or error.
func Race2[A, B any](fa *Future[A], fb *Future[B]) *Future[AnyValue] {
	p, nf := New[AnyValue]()
	var mu sync.Mutex
	var decided bool
	settle := func(v any, err error) {
		mu.Lock()
		already := decided
		decided = true
		mu.Unlock()
		if already {
			return
		}
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(AnyValue{Value: v})
	}
	fa.SetCallback(func(v A, err error) { settle(v, err) })
	fb.SetCallback(func(v B, err error) { settle(v, err) })
	return nf
}

// Race3 is Race2 generalized to three futures.
func Race3[A, B, C any](fa *Future[A], fb *Future[B], fc *Future[C]) *Future[AnyValue] {
	p, nf := New[AnyValue]()
	var mu sync.Mutex
	var decided bool
	settle := func(v any, err error) {
		mu.Lock()
		already := decided
		decided = true
		mu.Unlock()
		if already {
			return
		}
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(AnyValue{Value: v})
	}
	fa.SetCallback(func(v A, err error) { settle(v, err) })
	fb.SetCallback(func(v B, err error) { settle(v, err) })
	fc.SetCallback(func(v C, err error) { settle(v, err) })
	return nf
}

// Race4 is Race2 generalized to four futures.
func Race4[A, B, C, D any](fa *Future[A], fb *Future[B], fc *Future[C], fd *Future[D]) *Future[AnyValue] {
	p, nf := New[AnyValue]()
	var mu sync.Mutex
	var decided bool
	settle := func(v any, err error) {
		mu.Lock()
		already := decided
		decided = true
		mu.Unlock()
		if already {
			return
		}
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(AnyValue{Value: v})
	}
	fa.SetCallback(func(v A, err error) { settle(v, err) })
	fb.SetCallback(func(v B, err error) { settle(v, err) })
	fc.SetCallback(func(v C, err error) { settle(v, err) })
	fd.SetCallback(func(v D, err error) { settle(v, err) })
	return nf
}

// AllSlice is the iterator-based, homogeneous overload of All2: it
// resolves with every future's value, in input order, once all
// succeed, or rejects with the first error.
func AllSlice[T any](futures []*Future[T]) *Future[[]T] {
	p, nf := New[[]T]()
	n := len(futures)
	if n == 0 {
		p.Resolve(nil)
		return nf
	}
	values := make([]T, n)
	var mu sync.Mutex
	remaining := n
	rejected := false

	for i, f := range futures {
		i := i
		f.SetCallback(func(v T, err error) {
			mu.Lock()
			if rejected {
				mu.Unlock()
				return
			}
			if err != nil {
				rejected = true
				mu.Unlock()
				p.Reject(err)
				return
			}
			values[i] = v
			remaining--
			done := remaining == 0
			mu.Unlock()
			if done {
				p.Resolve(values)
			}
		})
	}
	return nf
}

// AllSettledSlice is the iterator-based overload of AllSettled2: it
// always resolves, once every future has settled, with each future's
// Outcome in input order.
func AllSettledSlice[T any](futures []*Future[T]) *Future[[]Outcome[T]] {
	p, nf := New[[]Outcome[T]]()
	n := len(futures)
	if n == 0 {
		p.Resolve(nil)
		return nf
	}
	outcomes := make([]Outcome[T], n)
	var mu sync.Mutex
	remaining := n

	for i, f := range futures {
		i := i
		f.SetCallback(func(v T, err error) {
			mu.Lock()
			outcomes[i] = Outcome[T]{Value: v, Err: err}
			remaining--
			done := remaining == 0
			mu.Unlock()
			if done {
				p.Resolve(outcomes)
			}
		})
	}
	return nf
}

// AnySlice is the iterator-based, homogeneous overload of Any2: it
// resolves with the first value produced, typed T directly since every
// alternative shares the same type, or rejects with an AggregateError
// if every alternative fails.
func AnySlice[T any](futures []*Future[T]) *Future[T] {
	p, nf := New[T]()
	n := len(futures)
	if n == 0 {
		p.Reject(&AggregateError{})
		return nf
	}
	errs := make([]error, n)
	var mu sync.Mutex
	remaining := n
	decided := false

	for i, f := range futures {
		i := i
		f.SetCallback(func(v T, err error) {
			mu.Lock()
			if decided {
				mu.Unlock()
				return
			}
			if err == nil {
				decided = true
				mu.Unlock()
				p.Resolve(v)
				return
			}
			errs[i] = err
			remaining--
			done := remaining == 0
			mu.Unlock()
			if done {
				mu.Lock()
				if !decided {
					decided = true
					mu.Unlock()
					p.Reject(&AggregateError{Errors: errs})
					return
				}
				mu.Unlock()
			}
		})
	}
	return nf
}

// RaceSlice is the iterator-based overload of Race2: it settles with
// whichever future first produces any result, value or error.
func RaceSlice[T any](futures []*Future[T]) *Future[T] {
	p, nf := New[T]()
	var mu sync.Mutex
	decided := false
	for _, f := range futures {
		f.SetCallback(func(v T, err error) {
			mu.Lock()
			already := decided
			decided = true
			mu.Unlock()
			if already {
				return
			}
			if err != nil {
				p.Reject(err)
				return
			}
			p.Resolve(v)
		})
	}
	return nf
}
