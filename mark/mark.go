// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mark implements marks: bindings from a dataset to visual
// properties computed per record through scales.
package mark

import (
	"errors"
	"fmt"

	"github.com/aclements/vizspec/data"
	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/registry"
	"github.com/aclements/vizspec/scale"
)

// EntityKind is the registry kind of every mark.
const EntityKind = "mark"

// Type is a mark variant: the primitive drawn for each record (or,
// for Line, through all records).
type Type string

const (
	Circle Type = "circle"
	Line   Type = "line"
	Rect   Type = "rect"
)

// ErrDuplicateProperty is matched by every *DuplicatePropertyError.
var ErrDuplicateProperty = errors.New("mark: duplicate property")

// DuplicatePropertyError reports a mark that declares a visual
// property twice.
type DuplicatePropertyError struct {
	Mark     string
	Property string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("%s: property %q declared twice", e.Mark, e.Property)
}

func (e *DuplicatePropertyError) Is(target error) bool { return target == ErrDuplicateProperty }

// Property is one visual property of a mark.
//
// If Value is a string that names a field of the record being drawn,
// the property takes that field's value, even if the string was
// meant as a literal. For example, fill: blue on a dataset with a
// "blue" field draws each record in the color stored in that field.
type Property struct {
	Name  string
	Value interface{}
	Scale *scale.Scale
}

// Eval computes the property for record r.
func (p Property) Eval(r data.Record) (interface{}, error) {
	v := p.Value
	if field, ok := v.(string); ok {
		if fv, ok := r[field]; ok {
			v = fv
		}
	}
	out, err := p.Scale.Apply(v)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}
	return out, nil
}

// Mark is a mark model entity.
type Mark struct {
	*entity.Node
	typ   Type
	props []Property
}

// Parse builds a mark from spec and registers it in reg. The area
// field is kept as a path and resolved when the mark's view is
// mounted.
func Parse(reg *registry.Registry, spec entity.Spec) (*Mark, error) {
	typ, err := spec.String("type", "")
	if err != nil {
		return nil, err
	}
	t := Type(typ)
	switch t {
	case Circle, Line, Rect:
	default:
		return nil, &entity.UnsupportedKindError{What: "mark", Type: typ}
	}
	name := spec.Name()
	if name == "" {
		return nil, fmt.Errorf("mark: missing name")
	}
	m := &Mark{Node: entity.New(reg, EntityKind, name), typ: t}
	if err := m.Register(m); err != nil {
		return nil, err
	}
	if err := m.Apply(spec.Without("type", "properties"), "area"); err != nil {
		return nil, err
	}
	if _, err := m.Source(); err != nil {
		return nil, err
	}

	props, _ := spec.Get("properties").(entity.Spec)
	seen := map[string]bool{}
	for _, f := range props.Fields {
		if seen[f.Key] {
			return nil, &DuplicatePropertyError{m.Key(), f.Key}
		}
		seen[f.Key] = true
		p, err := m.parseProperty(f.Key, f.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Key(), err)
		}
		m.props = append(m.props, p)
	}
	log.Debug(log.CatSpec, "parsed mark", "name", name, "type", t, "properties", len(m.props))
	return m, nil
}

func (m *Mark) parseProperty(name string, v interface{}) (Property, error) {
	p := Property{Name: name, Value: v}
	ps, ok := v.(entity.Spec)
	if ok {
		p.Value = ps.Get("value")
	}
	path, _ := ps.Get("scale").(string)
	if path == "" {
		p.Scale = scale.NewIdentity()
		return p, nil
	}
	if m.Registry() == nil {
		return p, fmt.Errorf("property %s: %w", name, entity.ErrNoRegistry)
	}
	e, err := m.Registry().Resolve(path)
	if err != nil {
		return p, fmt.Errorf("property %s: %w", name, err)
	}
	s, ok := e.(*scale.Scale)
	if !ok {
		return p, fmt.Errorf("property %s: %s is not a scale", name, path)
	}
	if err := m.AddDependency(s); err != nil {
		return p, err
	}
	p.Scale = s
	return p, nil
}

// Type returns the mark's variant.
func (m *Mark) Type() Type { return m.typ }

// Properties returns the mark's visual properties in declaration
// order.
func (m *Mark) Properties() []Property {
	return append([]Property(nil), m.props...)
}

// Source returns the dataset the mark draws.
func (m *Mark) Source() (*data.DataSet, error) {
	e, err := entity.Ref(m, "source")
	if err != nil {
		return nil, err
	}
	d, ok := e.(*data.DataSet)
	if !ok {
		return nil, fmt.Errorf("%s: source %s is not a dataset", m.Key(), e.Base().Key())
	}
	return d, nil
}

// Items evaluates every property for every record of the source.
func (m *Mark) Items() ([]entity.Item, error) {
	src, err := m.Source()
	if err != nil {
		return nil, err
	}
	recs, err := src.Items()
	if err != nil {
		return nil, err
	}
	items := make([]entity.Item, len(recs))
	for i, r := range recs {
		attrs := make(map[string]interface{}, len(m.props))
		for _, p := range m.props {
			v, err := p.Eval(r)
			if err != nil {
				return nil, fmt.Errorf("%s: item %d: %w", m.Key(), i, err)
			}
			attrs[p.Name] = v
		}
		items[i] = entity.Item{Record: r, Attrs: attrs}
	}
	return items, nil
}
