// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ringbuf

// RaceEnabled is true when the race detector is active. Tests use it
// to shrink iteration counts on the concurrent MPMC stress test, which
// is otherwise slow enough under -race to risk the default test
// timeout.
const RaceEnabled = true
