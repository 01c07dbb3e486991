// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// options configures RingBuffer construction. It is currently empty;
// it exists as the extension point the teacher's own Options/Builder
// pair (options.go) establishes for algorithm selection, so a second
// slot algorithm can be added without breaking New's signature.
type options struct{}

// Option configures a RingBuffer at construction time.
type Option func(*options)
