// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package errkit provides a two-tier error taxonomy shared by future,
// task, and achan: concrete error codes bound to a category,
// and portable error conditions that classify codes across
// categories.
//
// A Code is a (category, value) pair with a message. A Condition is
// the same shape, naming a canonical classification ("would block",
// "timed out", "disconnected") rather than a specific cause. Both
// implement error and the errors.Is extension point, so callers write
// ordinary errors.Is(err, someCondition) to classify an error without
// knowing which concrete Code produced it — the same way the standard
// library lets callers match fs.ErrNotExist against many os-specific
// causes.
//
// # Quick Start
//
// Define a category and its codes once, at package scope:
//
//	var fooCategory = errkit.NewCategory("foo")
//	var ErrFooTimeout = fooCategory.DefineCondition(1, "timed out", errkit.TimedOut)
//
// Classify without knowing the concrete code:
//
//	if errors.Is(err, errkit.TimedOut) {
//	    // retry with a longer deadline
//	}
package errkit
