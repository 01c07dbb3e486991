// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package achan

import "code.hybscloud.com/async/errkit"

var category = errkit.NewCategory("achan")

// ErrFull is returned by TrySend when the ring buffer has no free
// slot; it classifies as errkit.WouldBlock.
var ErrFull = category.DefineCondition(1, "achan: channel is full", errkit.WouldBlock)

// ErrEmpty is returned by TryReceive when the channel is open but the
// buffer currently holds nothing; it classifies as errkit.WouldBlock.
var ErrEmpty = category.DefineCondition(2, "achan: channel is empty", errkit.WouldBlock)

// ErrDisconnected is returned by any of the four operations once the
// channel has been closed, by the last sender or the last receiver
// closing (by TrySend/Send as soon as the channel is closed, by
// TryReceive/Receive once it is closed and drained). It classifies as
// errkit.Disconnected.
var ErrDisconnected = category.DefineCondition(3, "achan: channel is disconnected", errkit.Disconnected)

// ErrTimeout is returned by Send/Receive when ctx is done before the
// operation could complete; it classifies as errkit.TimedOut.
var ErrTimeout = category.DefineCondition(4, "achan: operation timed out", errkit.TimedOut)
