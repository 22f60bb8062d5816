// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/aclements/vizspec/registry"
)

// AttrError reports an attribute that is missing or has the wrong
// type.
type AttrError struct {
	Entity string // "kind:name"
	Key    string
	Want   string
	Got    interface{}
}

func (e *AttrError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: attribute %q: want %s, not set", e.Entity, e.Key, e.Want)
	}
	return fmt.Sprintf("%s: attribute %q: want %s, got %T", e.Entity, e.Key, e.Want, e.Got)
}

// ToFloat converts a numeric value (or numeric string) to float64.
func ToFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func key(e registry.Entity) string {
	return registry.Key(e.Kind(), e.Name())
}

// Float returns attribute k of e as a float64.
func Float(e registry.Entity, k string) (float64, error) {
	v, _ := e.Lookup(k)
	f, ok := ToFloat(v)
	if !ok {
		return 0, &AttrError{key(e), k, "number", v}
	}
	return f, nil
}

// Int returns attribute k of e as an int. Non-integral numbers are
// truncated.
func Int(e registry.Entity, k string) (int, error) {
	f, err := Float(e, k)
	return int(f), err
}

// String returns attribute k of e as a string. An undefined
// attribute yields "".
func String(e registry.Entity, k string) (string, error) {
	v, _ := e.Lookup(k)
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &AttrError{key(e), k, "string", v}
	}
	return s, nil
}

// Ref returns attribute k of e as an entity.
func Ref(e registry.Entity, k string) (Entity, error) {
	v, _ := e.Lookup(k)
	r, ok := v.(Entity)
	if !ok {
		return nil, &AttrError{key(e), k, "entity reference", v}
	}
	return r, nil
}
