// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync"

// frame is one node in a task's chain of nested suspension points: one
// per active await, from the outermost (head) to the innermost
// currently-suspended leaf (tail).
type frame struct {
	mu        sync.Mutex
	next      *frame // the awaited inner task's head frame, if any
	site      string // call site of the co_await that created this link
	cancel    func() // leaf cancellation thunk, cleared after first use
	cancelled bool
}

func (f *frame) markCancelled() {
	f.mu.Lock()
	f.cancelled = true
	f.mu.Unlock()
}

func (f *frame) isCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

// Frame is a traceback entry: the call site of one co_await in a
// task's current nested-await chain.
type Frame struct {
	Site string
}
