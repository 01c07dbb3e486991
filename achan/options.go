// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package achan

// Option configures a channel built with New.
type Option func(*config)

type config struct {
	spinBeforePark bool
}

func defaultConfig() config {
	return config{spinBeforePark: true}
}

// WithoutSpin makes Send/Receive park on the channel's wake signal
// between attempts. Without it they retry under iox.Backoff, busy-
// waiting until they succeed, the channel disconnects, or ctx is done,
// and never park; use this under contention profiles where spinning
// only steals CPU from whichever goroutine would actually make progress.
func WithoutSpin() Option {
	return func(c *config) { c.spinBeforePark = false }
}
