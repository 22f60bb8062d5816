// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale implements coordinate scales: reactive entities that
// map a data domain onto a pixel range and support the pan and zoom
// operations used by interactions.
//
// A scale's attributes are domainBegin, domainEnd, rangeBegin, and
// rangeEnd (or, for an ordinal scale, the domain list). The numeric
// mapping derived from them is cached until one of them changes.
package scale

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/registry"
)

// EntityKind is the registry kind of every scale.
const EntityKind = "scale"

// Type is a scale variant.
type Type string

const (
	Linear   Type = "linear"
	Time     Type = "time"
	Identity Type = "identity"
	Ordinal  Type = "ordinal"
)

// Types lists the supported scale variants.
var Types = []Type{Linear, Time, Identity, Ordinal}

// ParseType returns the Type named s. An empty s means Linear.
func ParseType(s string) (Type, error) {
	if s == "" {
		return Linear, nil
	}
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &entity.UnsupportedKindError{What: "scale", Type: s}
}

// Attributes that determine the derived mapping.
var mappingKeys = []string{"domainBegin", "domainEnd", "rangeBegin", "rangeEnd", "domain"}

// Scale is a coordinate scale entity.
type Scale struct {
	*entity.Node
	typ   Type
	parse ValueParser

	dirty   bool
	mapping Mapping
}

// New returns a scale of type t named name and registers it in reg.
// reg may be nil for an anonymous scale.
func New(reg *registry.Registry, t Type, name string) (*Scale, error) {
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	s := &Scale{
		Node:  entity.New(reg, EntityKind, name),
		typ:   t,
		dirty: true,
	}
	switch t {
	case Time:
		s.parse = parseMillis
	default:
		s.parse = parseNumber
	}
	s.SetDefault("type", string(t))
	s.SetDefault("rangeBegin", 0.0)
	s.SetDefault("rangeEnd", 1.0)
	switch t {
	case Linear:
		s.SetDefault("domainBegin", 0.0)
		s.SetDefault("domainEnd", 1.0)
	case Ordinal:
		s.SetDefault("domain", []interface{}{})
	}
	s.OnSet(func(key string) {
		if slices.Contains(mappingKeys, key) {
			s.dirty = true
		}
	})
	if err := s.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// NewIdentity returns an anonymous, unregistered identity scale.
func NewIdentity() *Scale {
	s, err := New(nil, Identity, "identity-"+uuid.NewString())
	if err != nil {
		panic(err)
	}
	return s
}

// Parse builds a scale from spec and registers it in reg. An unknown
// type fails with an *entity.UnsupportedKindError before anything is
// registered.
func Parse(reg *registry.Registry, spec entity.Spec) (*Scale, error) {
	typ, err := spec.String("type", string(Linear))
	if err != nil {
		return nil, err
	}
	t, err := ParseType(typ)
	if err != nil {
		return nil, err
	}
	name := spec.Name()
	if name == "" {
		return nil, fmt.Errorf("scale: missing name")
	}
	s, err := New(reg, t, name)
	if err != nil {
		return nil, err
	}
	if err := s.Node.Apply(spec.Without("type")); err != nil {
		return nil, err
	}
	log.Debug(log.CatScale, "parsed", "name", name, "type", t)
	return s, nil
}

// Type returns the scale's variant.
func (s *Scale) Type() Type { return s.typ }

// Dirty reports whether the derived mapping must be recomputed.
func (s *Scale) Dirty() bool { return s.dirty }

// DerivedMapping returns the numeric mapping for the scale's current
// attributes, recomputing it only if an attribute changed since the
// last call.
func (s *Scale) DerivedMapping() (Mapping, error) {
	if !s.dirty {
		return s.mapping, nil
	}
	m, err := s.derive()
	if err != nil {
		return Mapping{}, err
	}
	s.mapping, s.dirty = m, false
	log.Debug(log.CatScale, "derived mapping", "scale", s.Key(), "domain", fmt.Sprintf("[%g,%g]", m.Domain.Min, m.Domain.Max), "range", fmt.Sprintf("[%g,%g]", m.R0, m.R1))
	return m, nil
}

func (s *Scale) derive() (Mapping, error) {
	m := Mapping{Type: s.typ}
	var err error
	if m.R0, err = entity.Float(s, "rangeBegin"); err != nil {
		return m, err
	}
	if m.R1, err = entity.Float(s, "rangeEnd"); err != nil {
		return m, err
	}
	switch s.typ {
	case Linear, Time:
		if m.Domain.Min, err = s.bound("domainBegin"); err != nil {
			return m, err
		}
		if m.Domain.Max, err = s.bound("domainEnd"); err != nil {
			return m, err
		}
	case Ordinal:
		levels, _ := s.Get("domain").([]interface{})
		for _, l := range levels {
			m.Levels = append(m.Levels, fmt.Sprint(l))
		}
	}
	return m, nil
}

func (s *Scale) bound(key string) (float64, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return 0, &entity.AttrError{Entity: s.Key(), Key: key, Want: "domain value"}
	}
	f, err := s.parse(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", s.Key(), key, err)
	}
	return f, nil
}

// Apply maps a domain value to the range. An identity scale returns x
// unchanged, whatever its type; every other scale returns a float64.
func (s *Scale) Apply(x interface{}) (interface{}, error) {
	if s.typ == Identity {
		return x, nil
	}
	m, err := s.DerivedMapping()
	if err != nil {
		return nil, err
	}
	if s.typ == Ordinal {
		i, ok := m.Level(x)
		if !ok {
			return nil, fmt.Errorf("%s: %v is not in the domain", s.Key(), x)
		}
		return m.Apply(float64(i)), nil
	}
	f, err := s.parse(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Key(), err)
	}
	return m.Apply(f), nil
}

// ApplyFloat is Apply for numeric domain values.
func (s *Scale) ApplyFloat(x float64) (float64, error) {
	v, err := s.Apply(x)
	if err != nil {
		return 0, err
	}
	f, _ := entity.ToFloat(v)
	return f, nil
}

// Invert maps a range value back to the domain. Time scales return a
// time.Time; the others return a float64.
func (s *Scale) Invert(y float64) (interface{}, error) {
	m, err := s.DerivedMapping()
	if err != nil {
		return nil, err
	}
	x, err := m.Invert(y)
	if err != nil {
		return nil, err
	}
	if s.typ == Time {
		return FromMillis(x), nil
	}
	return x, nil
}

// Pan shifts the domain so that the domain value under each pixel
// moves by delta pixels: shift = invert(delta) - invert(0), and both
// domain bounds move by -shift.
func (s *Scale) Pan(delta float64) error {
	switch s.typ {
	case Identity:
		return nil
	case Ordinal:
		return &entity.UnsupportedOperationError{Op: "pan", Kind: "ordinal scale"}
	}
	m, err := s.DerivedMapping()
	if err != nil {
		return err
	}
	a, err := m.Invert(delta)
	if err != nil {
		return err
	}
	b, err := m.Invert(0)
	if err != nil {
		return err
	}
	shift := a - b
	log.Debug(log.CatScale, "pan", "scale", s.Key(), "pixels", delta, "shift", shift)
	return s.setDomain(m.Domain.Min-shift, m.Domain.Max-shift)
}

// Zoom rescales the domain around its midpoint by factor. A factor
// below 1 narrows the domain (zooms in) and above 1 widens it. The
// order of the domain bounds is preserved.
func (s *Scale) Zoom(factor float64) error {
	switch s.typ {
	case Identity:
		return nil
	case Ordinal:
		return &entity.UnsupportedOperationError{Op: "zoom", Kind: "ordinal scale"}
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%s: invalid zoom factor %g", s.Key(), factor)
	}
	m, err := s.DerivedMapping()
	if err != nil {
		return err
	}
	mid := (m.Domain.Min + m.Domain.Max) / 2
	half := (m.Domain.Max - m.Domain.Min) / 2 * factor
	log.Debug(log.CatScale, "zoom", "scale", s.Key(), "factor", factor)
	return s.setDomain(mid-half, mid+half)
}

// SetDomain sets both domain bounds from numeric values (milliseconds
// since the epoch for time scales).
func (s *Scale) SetDomain(begin, end float64) error {
	switch s.typ {
	case Identity, Ordinal:
		return &entity.UnsupportedOperationError{Op: "numeric domain", Kind: string(s.typ) + " scale"}
	}
	return s.setDomain(begin, end)
}

func (s *Scale) setDomain(begin, end float64) error {
	var b, e interface{} = begin, end
	if s.typ == Time {
		b, e = FromMillis(begin), FromMillis(end)
	}
	if err := s.Set("domainBegin", b); err != nil {
		return err
	}
	return s.Set("domainEnd", e)
}

// Span returns the numeric domain bounds.
func (s *Scale) Span() (begin, end float64, err error) {
	m, err := s.DerivedMapping()
	if err != nil {
		return 0, 0, err
	}
	return m.Domain.Min, m.Domain.Max, nil
}
