// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package errkit

// Transformer is an open-ended code category for adapting a foreign,
// raw integer error space (an OS errno, a platform-specific status
// code) into this taxonomy, mirroring the ERROR_TRANSFORMER macro of
// the source design. Unlike Category, a Transformer does not require
// values to be pre-registered: Stringify and Classify are called for
// any value on demand.
//
// No collaborator in this module's scope adapts a concrete foreign
// error space (that is procfs/Win32/Mach territory, explicitly out of
// scope per the purpose statement), so Transformer exists only as the
// contract those collaborators would implement against.
type Transformer struct {
	name      string
	Stringify func(value int32) string
	Classify  func(value int32) (Condition, bool)
	cat       *Category
}

// NewTransformer creates a Transformer category named name.
func NewTransformer(name string) *Transformer {
	return &Transformer{name: name}
}

// Name reports the transformer's diagnostic name.
func (t *Transformer) Name() string { return t.name }

// Code wraps value as a Code bound to t's category.
func (t *Transformer) Code(value int32) Code {
	return Code{category: t.asCategory(), value: value}
}

// asCategory adapts a Transformer to the Category shape on demand so
// Code's Error()/Is() machinery (which expects *Category) works
// unmodified. The adaptation is built once and cached because
// Category equality is by pointer identity and Codes minted from this
// Transformer must all resolve to the same Category.
func (t *Transformer) asCategory() *Category {
	if t.cat == nil {
		t.cat = &Category{name: t.name, values: make(map[int32]categoryValue)}
		t.cat.transformer = t
	}
	return t.cat
}
