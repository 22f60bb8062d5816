// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entity implements reactive, registry-resident objects.
//
// A Node is a named attribute dictionary. Its attributes are usually
// assigned from a Spec, where each value is classified once as a
// literal, a reference to another entity ("scale:x"), or a reference
// to another entity's attribute ("scale:x.domainEnd"). References are
// resolved immediately and install one-way bindings: a property
// reference re-reads its target whenever the target fires "change",
// and an object reference makes the owner fire "change" whenever the
// target does.
//
// Concrete entities (scales, datasets, marks, areas, ...) embed a
// *Node and register themselves, not the Node, in their Registry.
package entity

import (
	"fmt"

	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/internal/graph"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/registry"
)

// Entity is a registry-resident reactive object.
type Entity interface {
	registry.Entity

	// Base returns the entity's attribute dictionary.
	Base() *Node
}

// Binding records how one attribute was specified.
type Binding struct {
	Key   string
	Value Value
}

// Node is the attribute dictionary shared by all entities.
type Node struct {
	kind, name string
	reg        *registry.Registry
	self       Entity

	attrs    map[string]interface{}
	defaults map[string]interface{}
	bindings []Binding
	deps     []Entity
	onSet    []func(key string)

	slots    []string
	children map[string][]Entity

	events event.Dispatcher
}

// New returns a Node for an entity of the given kind and name that
// resolves references in reg. reg may be nil for an entity that is
// never registered and has only literal attributes.
//
// The Node is not registered until Register is called.
func New(reg *registry.Registry, kind, name string) *Node {
	n := &Node{
		kind:  kind,
		name:  name,
		reg:   reg,
		attrs: make(map[string]interface{}),
	}
	n.self = n
	return n
}

// Register records self as the entity that embeds n and registers it
// in n's registry. Events fired by n name self as their source.
func (n *Node) Register(self Entity) error {
	n.self = self
	if n.reg == nil {
		return nil
	}
	if err := n.reg.Register(self); err != nil {
		return err
	}
	log.Debug(log.CatSpec, "registered", "key", registry.Key(n.kind, n.name))
	return nil
}

func (n *Node) Kind() string { return n.kind }
func (n *Node) Name() string { return n.name }
func (n *Node) Base() *Node  { return n }

// Key returns n's registry key, "kind:name".
func (n *Node) Key() string { return registry.Key(n.kind, n.name) }

// Registry returns the registry n resolves references in.
func (n *Node) Registry() *registry.Registry { return n.reg }

// Self returns the entity that embeds n.
func (n *Node) Self() Entity { return n.self }

// SetDefault sets the value attribute key has until it is assigned.
func (n *Node) SetDefault(key string, value interface{}) {
	if n.defaults == nil {
		n.defaults = make(map[string]interface{})
	}
	n.defaults[key] = Copy(value)
}

// Lookup returns a copy of the value of attribute key, falling back
// to its default.
func (n *Node) Lookup(key string) (interface{}, bool) {
	if v, ok := n.attrs[key]; ok {
		return Copy(v), true
	}
	if v, ok := n.defaults[key]; ok {
		return Copy(v), true
	}
	return nil, false
}

// Has reports whether attribute key was assigned (defaults don't
// count).
func (n *Node) Has(key string) bool {
	_, ok := n.attrs[key]
	return ok
}

// Get returns the value of attribute key, or nil if undefined.
func (n *Node) Get(key string) interface{} {
	v, _ := n.Lookup(key)
	return v
}

// Set assigns a copy of value to attribute key. If the attribute was
// already deep-equal to value, Set does nothing; otherwise it fires
// "change:<key>" and then "change".
func (n *Node) Set(key string, value interface{}) error {
	old, had := n.Lookup(key)
	n.attrs[key] = Copy(value)
	if had && Equal(old, value) {
		return nil
	}
	for _, fn := range n.onSet {
		fn(key)
	}
	ev := event.Event{Name: event.ChangeOf(key), Source: n.self, Key: key, Data: value}
	if err := n.events.Fire(ev); err != nil {
		return err
	}
	ev.Name = event.Change
	return n.events.Fire(ev)
}

// OnSet registers fn to run whenever Set changes an attribute, after
// the value is stored and before any event fires. Unlike listeners,
// fn runs even when the event dispatcher refuses to fire.
func (n *Node) OnSet(fn func(key string)) {
	n.onSet = append(n.onSet, fn)
}

// On subscribes fn to n's events named name.
func (n *Node) On(name string, fn event.Listener) event.Handle {
	return n.events.On(name, fn)
}

// Off removes a subscription made with On.
func (n *Node) Off(h event.Handle) bool {
	return n.events.Off(h)
}

// Fire fires ev on n's dispatcher. If ev.Source is nil, it is set to
// the entity embedding n.
func (n *Node) Fire(ev event.Event) error {
	if ev.Source == nil {
		ev.Source = n.self
	}
	return n.events.Fire(ev)
}

// Apply assigns every field of spec in document order, installing
// bindings for references. The "name" field is the entity's identity
// and is skipped, as are the keys listed in literal, which are
// assigned verbatim even if they look like references; callers
// resolve those later.
//
// Resolution is single pass. A property reference to one of n's own
// attributes follows it only if that attribute is already defined when
// the reference is bound; a reference to a key assigned later in spec
// stays undefined.
//
// A reference to an unregistered entity fails immediately with a
// *registry.NotFoundError.
func (n *Node) Apply(spec Spec, literal ...string) error {
outer:
	for _, f := range spec.Fields {
		if f.Key == "name" {
			continue
		}
		for _, k := range literal {
			if f.Key == k {
				if err := n.Set(f.Key, f.Value); err != nil {
					return err
				}
				continue outer
			}
		}
		if err := n.Bind(f.Key, f.Value); err != nil {
			return fmt.Errorf("%s: %s: %w", n.Key(), f.Key, err)
		}
	}
	return nil
}

// Bind classifies v and assigns attribute key accordingly.
func (n *Node) Bind(key string, v interface{}) error {
	val := Classify(v)
	n.bindings = append(n.bindings, Binding{key, val})

	switch val := val.(type) {
	case Literal:
		return n.Set(key, val.V)

	case ObjectRef:
		target, err := n.resolve(val.Path)
		if err != nil {
			return err
		}
		if err := n.AddDependency(target); err != nil {
			return err
		}
		log.Debug(log.CatBind, "object reference", "entity", n.Key(), "attr", key, "target", val.Path)
		return n.Set(key, target)

	case PropertyRef:
		target, err := n.resolve(val.Path)
		if err != nil {
			return err
		}
		if target.Base() == n {
			if _, ok := n.Lookup(val.Path.Attr); !ok {
				log.Debug(log.CatBind, "forward self reference left undefined", "entity", n.Key(), "attr", key)
				return nil
			}
		}
		get, err := n.reg.Accessor(val.Path.String())
		if err != nil {
			return err
		}
		cur, err := get()
		if err != nil {
			return err
		}
		if err := n.Set(key, cur); err != nil {
			return err
		}
		target.Base().On(event.Change, func(event.Event) error {
			v, err := get()
			if err != nil {
				return err
			}
			return n.Set(key, v)
		})
		log.Debug(log.CatBind, "property reference", "entity", n.Key(), "attr", key, "target", val.Path)
		return nil
	}
	panic(fmt.Sprintf("unexpected Value %T", val))
}

func (n *Node) resolve(p registry.Path) (Entity, error) {
	if n.reg == nil {
		return nil, fmt.Errorf("%s: %w", p, ErrNoRegistry)
	}
	e, err := n.reg.ResolvePath(p)
	if err != nil {
		return nil, err
	}
	target, ok := e.(Entity)
	if !ok {
		return nil, fmt.Errorf("%s is a %T, not an entity", p, e)
	}
	return target, nil
}

// Bindings returns how each attribute was specified, in the order
// the bindings were installed.
func (n *Node) Bindings() []Binding {
	return append([]Binding(nil), n.bindings...)
}

// AddDependency makes n fire "change" whenever dep fires "change".
// It fails with a *CycleError if dep already depends, directly or
// transitively, on n.
func (n *Node) AddDependency(dep Entity) error {
	if err := n.checkCycle(dep); err != nil {
		return err
	}
	n.deps = append(n.deps, dep)
	dep.Base().On(event.Change, func(ev event.Event) error {
		return n.events.Fire(event.Event{Name: event.Change, Source: n.self, Data: ev})
	})
	return nil
}

// Dependencies returns the entities n re-fires changes from.
func (n *Node) Dependencies() []Entity {
	return append([]Entity(nil), n.deps...)
}

func (n *Node) checkCycle(dep Entity) error {
	// Build the dependency graph reachable from dep, plus the
	// proposed edge n -> dep, and look for a path back to n.
	var b graph.Builder[Entity]
	b.Edge(n.self, dep)
	seen := map[Entity]bool{}
	stack := []Entity{dep}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[e] {
			continue
		}
		seen[e] = true
		for _, d := range e.Base().deps {
			b.Edge(e, d)
			stack = append(stack, d)
		}
	}
	self := b.Node(n.self)
	path := graph.Path(b.Graph(), self, self)
	if path == nil {
		return nil
	}
	keys := make([]string, len(path))
	for i, node := range path {
		keys[i] = b.Key(node).Base().Key()
	}
	return &CycleError{Path: keys}
}

// SetAttachmentPoints declares the slots at which children may be
// attached to n.
func (n *Node) SetAttachmentPoints(slots ...string) {
	n.slots = append([]string(nil), slots...)
}

// AttachmentPoints returns the slots n declares. By default an entity
// has none.
func (n *Node) AttachmentPoints() []string {
	return append([]string(nil), n.slots...)
}

// AddChild attaches child at slot. It fails with an *InvalidSlotError
// if slot is not one of n's attachment points.
func (n *Node) AddChild(child Entity, slot string) error {
	ok := false
	for _, s := range n.slots {
		if s == slot {
			ok = true
			break
		}
	}
	if !ok {
		return &InvalidSlotError{Parent: n.Key(), Slot: slot, Slots: n.AttachmentPoints()}
	}
	if n.children == nil {
		n.children = make(map[string][]Entity)
	}
	n.children[slot] = append(n.children[slot], child)
	return nil
}

// Children returns the children attached at slot, in attachment
// order.
func (n *Node) Children(slot string) []Entity {
	return append([]Entity(nil), n.children[slot]...)
}
