// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import "github.com/aclements/vizspec/registry"

// Value is the classified form of an attribute's specification value.
// It is one of Literal, ObjectRef, or PropertyRef.
//
// Classification happens once, when the specification is applied.
// A string is a reference exactly when it matches the path grammar, so
// a literal string that happens to look like "kind:name" is a
// reference too.
type Value interface {
	isValue()
}

// Literal is a plain value.
type Literal struct {
	V interface{}
}

// ObjectRef refers to another entity. The attribute holds that entity
// and its owner re-fires "change" whenever the target changes.
type ObjectRef struct {
	Path registry.Path
}

// PropertyRef refers to another entity's attribute. The attribute
// holds a copy of that attribute's value and is refreshed whenever the
// target entity changes.
type PropertyRef struct {
	Path registry.Path
}

func (Literal) isValue()     {}
func (ObjectRef) isValue()   {}
func (PropertyRef) isValue() {}

// Classify classifies a specification value.
func Classify(v interface{}) Value {
	if s, ok := v.(string); ok {
		if p, err := registry.ParsePath(s); err == nil {
			if p.IsProperty() {
				return PropertyRef{p}
			}
			return ObjectRef{p}
		}
	}
	return Literal{v}
}
