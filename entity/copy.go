// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Copy returns a deep copy of the maps and slices in v. Entities are
// never copied: an entity-valued attribute is an explicit object
// reference and is shared.
func Copy(v interface{}) interface{} {
	switch v := v.(type) {
	case nil:
		return nil
	case Entity:
		return v
	case Spec:
		out := Spec{Fields: make([]Field, len(v.Fields))}
		for i, f := range v.Fields {
			out.Fields[i] = Field{f.Key, Copy(f.Value)}
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		m := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m.SetMapIndex(iter.Key(), copyElem(iter.Value()))
		}
		return m.Interface()

	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		s := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s.Index(i).Set(copyElem(rv.Index(i)))
		}
		return s.Interface()
	}
	return v
}

func copyElem(v reflect.Value) reflect.Value {
	c := Copy(v.Interface())
	if c == nil {
		return reflect.Zero(v.Type())
	}
	return reflect.ValueOf(c)
}

var equalOpts = cmp.Options{
	// Attribute values come from untyped documents and callers;
	// compare them structurally, unexported fields included.
	cmp.Exporter(func(reflect.Type) bool { return true }),
	// Entities compare by identity.
	cmp.FilterValues(func(a, b interface{}) bool {
		_, aok := a.(Entity)
		_, bok := b.(Entity)
		return aok || bok
	}, cmp.Comparer(func(a, b interface{}) bool { return a == b })),
}

// Equal reports whether two attribute values are deep-equal. Entities
// are equal only to themselves.
func Equal(a, b interface{}) bool {
	return cmp.Equal(a, b, equalOpts)
}
