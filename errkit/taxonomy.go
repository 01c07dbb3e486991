// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package errkit

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ambient is the condition category shared by every package in this
// module. Its values are the canonical classifications named in
// spec section 4.4 and 7: transient, timeout, terminal, and the two
// task-cancellation outcomes.
var ambient = NewConditionCategory("ambient")

// WouldBlock classifies a transient, immediately-retriable failure:
// a full ring buffer on enqueue, an empty one on dequeue. IsWouldBlock
// below also recognizes code.hybscloud.com/iox's ErrWouldBlock, so
// callers that already branch on iox's sentinel keep working against
// values produced by this module.
var WouldBlock = ambient.Define(1, "operation would block")

// TimedOut classifies a bounded wait that expired before the
// operation could complete.
var TimedOut = ambient.Define(2, "timed out")

// Disconnected classifies a channel operation that cannot complete
// because its peers are gone: the last sender or last receiver closed.
var Disconnected = ambient.Define(3, "disconnected")

// OperationCanceled classifies a future rejected by a task
// cancellation thunk.
var OperationCanceled = ambient.Define(4, "operation canceled")

// OperationNotSupported classifies a Task.Cancel call whose current
// leaf awaitable has no cancel thunk installed.
var OperationNotSupported = ambient.Define(5, "operation not supported")

// IsWouldBlock reports whether err classifies as WouldBlock, including
// errors produced by code.hybscloud.com/iox.
func IsWouldBlock(err error) bool {
	return errors.Is(err, WouldBlock) || iox.IsWouldBlock(err)
}

// IsTimedOut reports whether err classifies as TimedOut.
func IsTimedOut(err error) bool {
	return errors.Is(err, TimedOut)
}

// IsDisconnected reports whether err classifies as Disconnected.
func IsDisconnected(err error) bool {
	return errors.Is(err, Disconnected)
}

// IsOperationCanceled reports whether err classifies as OperationCanceled.
func IsOperationCanceled(err error) bool {
	return errors.Is(err, OperationCanceled)
}

// IsOperationNotSupported reports whether err classifies as OperationNotSupported.
func IsOperationNotSupported(err error) bool {
	return errors.Is(err, OperationNotSupported)
}
