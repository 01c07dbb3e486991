// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package errkit

import "fmt"

// Category is a process-lifetime singleton giving meaning to the
// integer values of the Codes defined against it. Categories are
// created once, at package init time, and never destroyed; comparisons
// between Codes use pointer identity on their Category.
type Category struct {
	name        string
	values      map[int32]categoryValue
	transformer *Transformer
}

type categoryValue struct {
	message   string
	condition *Condition
}

// NewCategory creates a new error code category. name is returned by
// Name and appears in Code.Error() only for values that were never
// defined (defined values use their own message); it exists for
// diagnostics and equality-by-name is never used, only pointer identity.
func NewCategory(name string) *Category {
	return &Category{name: name, values: make(map[int32]categoryValue)}
}

// Name reports the category's diagnostic name.
func (c *Category) Name() string { return c.name }

// Message returns the message registered for value, or a generic
// placeholder if value was never defined.
func (c *Category) Message(value int32) string {
	if v, ok := c.values[value]; ok {
		return v.message
	}
	if c.transformer != nil && c.transformer.Stringify != nil {
		return c.transformer.Stringify(value)
	}
	return fmt.Sprintf("%s: unrecognized value %d", c.name, value)
}

// Define registers value with message and returns the corresponding
// Code. This is the ERROR_CODE macro of the source design, expressed
// as a plain constructor since Go has no code-generation facility to
// match the C++ macro.
func (c *Category) Define(value int32, message string) Code {
	c.values[value] = categoryValue{message: message}
	return Code{category: c, value: value}
}

// DefineCondition registers value with message and a default
// Condition classification, mirroring ERROR_CODE_EX. Any Code built
// from this value satisfies errors.Is against cond even without a
// ConditionCategory.DefineEquivalent predicate.
func (c *Category) DefineCondition(value int32, message string, cond Condition) Code {
	c.values[value] = categoryValue{message: message, condition: &cond}
	return Code{category: c, value: value}
}

// Code is a concrete, category-scoped error value.
type Code struct {
	category *Category
	value    int32
}

// Category returns the Code's owning category.
func (c Code) Category() *Category { return c.category }

// Value returns the Code's raw integer value.
func (c Code) Value() int32 { return c.value }

// Error implements the error interface.
func (c Code) Error() string {
	if c.category == nil {
		return "errkit: zero value Code"
	}
	return c.category.Message(c.value)
}

// Is implements the errors.Is extension point. It reports true when
// target is an identical Code (same category and value), or a
// Condition that classifies c, either via c's own default-condition
// mapping or via target's category-level equivalence predicate.
func (c Code) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return c.category != nil && c.category == t.category && c.value == t.value
	case Condition:
		return c.matchesCondition(t)
	default:
		return false
	}
}

func (c Code) matchesCondition(cond Condition) bool {
	if c.category == nil {
		return false
	}
	if v, ok := c.category.values[c.value]; ok && v.condition != nil {
		if *v.condition == cond {
			return true
		}
	}
	if t := c.category.transformer; t != nil && t.Classify != nil {
		if classified, ok := t.Classify(c.value); ok && classified == cond {
			return true
		}
	}
	return cond.classifies(c)
}
