// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Option configures a task started with Run.
type Option func(*config)

type config struct {
	name      string
	traceback bool
}

func defaultConfig() config {
	return config{traceback: true}
}

// WithName attaches a label to the task, returned by Name and included
// as a synthetic root entry in Traceback.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithTracebackDisabled skips call-site capture at every await point.
// Traceback holds no call sites for such a task (only the WithName
// entry, if a name was given); use this for hot-path
// tasks where runtime.Caller's cost is unwelcome.
func WithTracebackDisabled() Option {
	return func(c *config) { c.traceback = false }
}
