// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "code.hybscloud.com/async/future"

// AndThen builds a task that runs onValue against t's result once t
// succeeds; if t fails, the returned task fails with the same error
// and onValue never runs.
func AndThen[T, U any](t *Task[T], onValue func(T) U) *Task[U] {
	return From(future.Then(t.Future(), onValue))
}

// AndThenCompose is AndThen for a continuation that itself returns a
// task, chaining the two instead of nesting tasks of tasks.
func AndThenCompose[T, U any](t *Task[T], onValue func(T) *Task[U]) *Task[U] {
	return From(future.ThenCompose(t.Future(), func(v T) *future.Future[U] {
		return onValue(v).Future()
	}))
}

// Transform is an alias for AndThen matching spec terminology for the
// plain (non-task-returning) continuation form.
func Transform[T, U any](t *Task[T], onValue func(T) U) *Task[U] {
	return AndThen(t, onValue)
}

// TransformCompose is an alias for AndThenCompose.
func TransformCompose[T, U any](t *Task[T], onValue func(T) *Task[U]) *Task[U] {
	return AndThenCompose(t, onValue)
}

// OrElse builds a task that recovers from t's error by producing a
// value with onError; if t succeeds, the value passes through
// unchanged and onError never runs.
func OrElse[T any](t *Task[T], onError func(error) T) *Task[T] {
	return From(future.Fail(t.Future(), onError))
}

// OrElseCompose is OrElse for a recovery continuation that itself
// returns a task.
func OrElseCompose[T any](t *Task[T], onError func(error) *Task[T]) *Task[T] {
	p, f := future.New[T]()
	t.Future().SetCallback(func(v T, err error) {
		if err == nil {
			p.Resolve(v)
			return
		}
		inner := onError(err)
		inner.Future().SetCallback(func(iv T, ierr error) {
			if ierr != nil {
				p.Reject(ierr)
				return
			}
			p.Resolve(iv)
		})
	})
	return From(f)
}

// TransformError rewrites t's error with onError, passing a successful
// value through unchanged.
func TransformError[T any](t *Task[T], onError func(error) error) *Task[T] {
	p, f := future.New[T]()
	t.Future().SetCallback(func(v T, err error) {
		if err != nil {
			p.Reject(onError(err))
			return
		}
		p.Resolve(v)
	})
	return From(f)
}

// TransformErrorCompose rewrites t's error using a continuation that
// itself produces a task whose error supersedes onError's input.
func TransformErrorCompose[T any](t *Task[T], onError func(error) *Task[error]) *Task[T] {
	p, f := future.New[T]()
	t.Future().SetCallback(func(v T, err error) {
		if err == nil {
			p.Resolve(v)
			return
		}
		inner := onError(err)
		inner.Future().SetCallback(func(rewritten error, settleErr error) {
			if settleErr != nil {
				p.Reject(settleErr)
				return
			}
			p.Reject(rewritten)
		})
	})
	return From(f)
}
