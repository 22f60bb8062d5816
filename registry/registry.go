// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry stores named entities and resolves path strings
// that refer to them.
//
// Every entity is keyed by its (kind, name) pair. Paths name either
// an entity ("scale:x") or one of its attributes
// ("scale:x.domainBegin"). A Registry is append-only apart from the
// Overwrite policy, and it is not safe for concurrent use: all
// entity graphs built on it are driven from a single goroutine.
package registry

import (
	"errors"
	"fmt"
)

// Entity is anything that can be stored in a Registry.
type Entity interface {
	Kind() string
	Name() string

	// Lookup returns the current value of attribute key and
	// whether it is defined.
	Lookup(key string) (interface{}, bool)
}

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("registry: not found")
	// ErrMalformedPath is matched by every *MalformedPathError.
	ErrMalformedPath = errors.New("registry: malformed path")
	// ErrDuplicate is matched by every *DuplicateRegistrationError.
	ErrDuplicate = errors.New("registry: duplicate registration")
	// ErrNilEntity is returned when registering a nil entity.
	ErrNilEntity = errors.New("registry: nil entity")
)

// NotFoundError reports a path whose entity is not registered.
type NotFoundError struct {
	Kind, Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: no %s named %q", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MalformedPathError reports a string that does not match the path
// grammar.
type MalformedPathError struct {
	Path string
	// Want is "object" or "property" if a specific form was
	// required, or "" if either was acceptable.
	Want string
}

func (e *MalformedPathError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("registry: malformed path %q", e.Path)
	}
	return fmt.Sprintf("registry: malformed %s path %q", e.Want, e.Path)
}

func (e *MalformedPathError) Is(target error) bool { return target == ErrMalformedPath }

// DuplicateRegistrationError reports a second registration of the
// same key in a Registry with the Reject policy.
type DuplicateRegistrationError struct {
	Kind, Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("registry: %s %q already registered", e.Kind, e.Name)
}

func (e *DuplicateRegistrationError) Is(target error) bool { return target == ErrDuplicate }

// Policy controls what Register does with an already registered key.
type Policy int

const (
	// Reject fails the second registration with a
	// *DuplicateRegistrationError.
	Reject Policy = iota

	// Overwrite silently replaces the old entity. The new entity
	// takes over the old entity's position in registration order.
	Overwrite
)

// Accessor is a live accessor: each call resolves its path again and
// returns the value current at the time of the call.
type Accessor func() (interface{}, error)

// Registry maps "kind:name" keys to entities.
type Registry struct {
	policy Policy
	m      map[string]Entity
	order  []string
}

// New returns an empty Registry with the Reject policy.
func New() *Registry {
	return NewWithPolicy(Reject)
}

// NewWithPolicy returns an empty Registry with the given duplicate
// policy.
func NewWithPolicy(p Policy) *Registry {
	return &Registry{policy: p, m: make(map[string]Entity)}
}

// Register stores e under its (kind, name) key.
func (r *Registry) Register(e Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	key := Key(e.Kind(), e.Name())
	if _, ok := r.m[key]; ok {
		if r.policy == Reject {
			return &DuplicateRegistrationError{e.Kind(), e.Name()}
		}
		r.m[key] = e
		return nil
	}
	r.m[key] = e
	r.order = append(r.order, key)
	return nil
}

// Lookup returns the entity registered as (kind, name).
func (r *Registry) Lookup(kind, name string) (Entity, bool) {
	e, ok := r.m[Key(kind, name)]
	return e, ok
}

// Resolve returns the entity named by an object path.
func (r *Registry) Resolve(path string) (Entity, error) {
	p, err := ParseObjectPath(path)
	if err != nil {
		return nil, err
	}
	return r.ResolvePath(p)
}

// ResolvePath returns the entity p refers to. If p is a property
// reference, its attribute is ignored.
func (r *Registry) ResolvePath(p Path) (Entity, error) {
	e, ok := r.m[p.Key()]
	if !ok {
		return nil, &NotFoundError{p.Kind, p.Name}
	}
	return e, nil
}

// ResolveAttribute returns the current value of the attribute named by
// a property path. An undefined attribute yields nil.
func (r *Registry) ResolveAttribute(path string) (interface{}, error) {
	p, err := ParsePropertyPath(path)
	if err != nil {
		return nil, err
	}
	return r.resolveAttr(p)
}

func (r *Registry) resolveAttr(p Path) (interface{}, error) {
	e, err := r.ResolvePath(p.Object())
	if err != nil {
		return nil, err
	}
	v, _ := e.Lookup(p.Attr)
	return v, nil
}

// Accessor returns a live accessor for a property path. The path is
// validated immediately; resolution happens on every call, so the
// accessor never returns a stale snapshot.
func (r *Registry) Accessor(path string) (Accessor, error) {
	p, err := ParsePropertyPath(path)
	if err != nil {
		return nil, err
	}
	return func() (interface{}, error) {
		return r.resolveAttr(p)
	}, nil
}

// OfKind returns the entities of the given kind in registration
// order.
func (r *Registry) OfKind(kind string) []Entity {
	var out []Entity
	for _, key := range r.order {
		if e := r.m[key]; e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns every registered entity in registration order.
func (r *Registry) Entries() []Entity {
	out := make([]Entity, len(r.order))
	for i, key := range r.order {
		out[i] = r.m[key]
	}
	return out
}

// Count returns the number of registered entities.
func (r *Registry) Count() int {
	return len(r.order)
}
