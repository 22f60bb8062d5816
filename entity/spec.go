// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field is one key/value assignment in a Spec.
type Field struct {
	Key   string
	Value interface{}
}

// Spec is the specification of one entity: attribute assignments in
// document order. Unlike a map, a Spec remembers order and keeps
// repeated keys, both of which matter to binding and to duplicate
// detection.
//
// Nested mappings decoded from YAML are themselves Specs; sequences
// are []interface{}.
type Spec struct {
	Fields []Field
}

// SpecOf returns a Spec built from alternating keys and values.
func SpecOf(kv ...interface{}) Spec {
	if len(kv)%2 != 0 {
		panic("entity.SpecOf: odd number of arguments")
	}
	var s Spec
	for i := 0; i < len(kv); i += 2 {
		s.Add(kv[i].(string), kv[i+1])
	}
	return s
}

// Add appends key = value.
func (s *Spec) Add(key string, value interface{}) {
	s.Fields = append(s.Fields, Field{key, value})
}

// Lookup returns the last value assigned to key.
func (s Spec) Lookup(key string) (interface{}, bool) {
	for i := len(s.Fields) - 1; i >= 0; i-- {
		if s.Fields[i].Key == key {
			return s.Fields[i].Value, true
		}
	}
	return nil, false
}

// Get returns the last value assigned to key, or nil.
func (s Spec) Get(key string) interface{} {
	v, _ := s.Lookup(key)
	return v
}

// String returns the string value of key, or def if key is absent.
// It is an error for key to be present with a non-string value.
func (s Spec) String(key, def string) (string, error) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return def, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: want string, got %T", key, v)
	}
	return str, nil
}

// Name returns the "name" field of s, or "".
func (s Spec) Name() string {
	name, _ := s.Get("name").(string)
	return name
}

// Without returns a copy of s without any of the given keys.
func (s Spec) Without(keys ...string) Spec {
	var out Spec
outer:
	for _, f := range s.Fields {
		for _, k := range keys {
			if f.Key == k {
				continue outer
			}
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

// Map returns s as a map, converting nested Specs recursively. Later
// assignments to a key win.
func (s Spec) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Key] = plain(f.Value)
	}
	return m
}

func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case Spec:
		return v.Map()
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, x := range v {
			out[i] = plain(x)
		}
		return out
	}
	return v
}

// UnmarshalYAML decodes a YAML mapping into s, keeping key order and
// repeated keys.
func (s *Spec) UnmarshalYAML(n *yaml.Node) error {
	v, err := FromYAML(n)
	if err != nil {
		return err
	}
	spec, ok := v.(Spec)
	if !ok {
		return fmt.Errorf("line %d: want mapping, got %T", n.Line, v)
	}
	*s = spec
	return nil
}

// FromYAML converts a YAML node to a Go value: mappings become
// Specs, sequences become []interface{}, and scalars are decoded with
// yaml's usual rules.
func FromYAML(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromYAML(n.Content[0])

	case yaml.AliasNode:
		return FromYAML(n.Alias)

	case yaml.MappingNode:
		var s Spec
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if kn.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", kn.Line)
			}
			v, err := FromYAML(vn)
			if err != nil {
				return nil, err
			}
			s.Add(kn.Value, v)
		}
		return s, nil

	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromYAML(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unexpected YAML node kind %v", n.Line, n.Kind)
}
