// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"fmt"
	"runtime"

	"code.hybscloud.com/async/future"
)

func captureSite(ctx *Context, skip int) string {
	if !ctx.task.tracebackEnabled() {
		return ""
	}
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	return fmt.Sprintf("%s\n\t%s:%d", name, file, line)
}

func setLeaf(ctx *Context, next *frame, site string, cancel func()) {
	leaf := ctx.task.headFrame()
	leaf.mu.Lock()
	leaf.next = next
	leaf.site = site
	leaf.cancel = cancel
	leaf.mu.Unlock()
}

func clearLeaf(ctx *Context) {
	leaf := ctx.task.headFrame()
	leaf.mu.Lock()
	leaf.next = nil
	leaf.site = ""
	leaf.cancel = nil
	leaf.mu.Unlock()
}

// Await suspends the calling task's body until f is ready. It
// installs no cancellation thunk: if the task is cancelled while this
// await is the tail of the chain, Cancel fails with
// errkit.OperationNotSupported and f is left running. Await returns
// ok == false, with the zero value, whenever f rejects; the error itself
// is not returned, and Cancelled(ctx) tells a cancellation apart from
// any other failure.
func Await[T any](ctx *Context, f *future.Future[T]) (T, bool) {
	setLeaf(ctx, nil, captureSite(ctx, 1), nil)
	v, err := f.Get()
	clearLeaf(ctx)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// AwaitCancellable suspends like Await but installs cancel as this
// suspension point's cancellation thunk; cancel must cause f to settle
// with an error (conventionally errkit.OperationCanceled) when
// invoked by a Task.Cancel call that reaches this frame as the tail.
func AwaitCancellable[T any](ctx *Context, f *future.Future[T], cancel func()) (T, bool) {
	setLeaf(ctx, nil, captureSite(ctx, 1), cancel)
	v, err := f.Get()
	clearLeaf(ctx)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// AwaitTask suspends on a nested task: child's head frame becomes this
// frame's next link, so a Cancel reaching this frame walks into child
// automatically, and Traceback includes child's own chain.
func AwaitTask[T any](ctx *Context, child *Task[T]) (T, bool) {
	setLeaf(ctx, child.head, captureSite(ctx, 1), nil)
	v, err := child.fut.Get()
	clearLeaf(ctx)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// Cancelled is the co_await Cancelled sentinel of spec section 4.3: it
// reports, without suspending, whether any frame in ctx's owning
// task's current chain has been marked cancelled.
func Cancelled(ctx *Context) bool {
	return ctx.task.headFrame().isCancelled()
}
