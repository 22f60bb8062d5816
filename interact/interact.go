// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact implements interactions: controllers that turn
// gesture events delivered to a view into scale domain changes.
//
// Interactions are parsed after every model and view exists, because
// they refer to both.
package interact

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/registry"
	"github.com/aclements/vizspec/scale"
)

// EntityKind is the registry kind of every interaction.
const EntityKind = "interaction"

// Type is an interaction variant.
type Type string

const (
	Pan      Type = "pan"
	Zoom     Type = "zoom"
	AutoZoom Type = "autoZoom"
)

// A Target is a view that receives gestures.
type Target interface {
	entity.Entity
	Input() *event.Dispatcher
}

// Interaction is an interaction entity.
type Interaction struct {
	*entity.Node
	typ Type

	target  Target
	handles []event.Handle
	stop    func()
}

// Parse builds an interaction from spec, registers it in models, and
// connects it. Paths in the area and axis fields name views in views.
// An interaction without a name gets a generated one.
func Parse(models, views *registry.Registry, spec entity.Spec) (*Interaction, error) {
	typ, err := spec.String("type", "")
	if err != nil {
		return nil, err
	}
	t := Type(typ)
	switch t {
	case Pan, Zoom, AutoZoom:
	default:
		return nil, &entity.UnsupportedKindError{What: "interaction", Type: typ}
	}
	name := spec.Name()
	if name == "" {
		name = string(t) + "-" + uuid.NewString()
	}
	in := &Interaction{Node: entity.New(models, EntityKind, name), typ: t}
	if err := in.Register(in); err != nil {
		return nil, err
	}
	if err := in.Apply(spec.Without("type"), "area", "axis"); err != nil {
		return nil, err
	}
	switch t {
	case Pan:
		err = in.connectPan(views)
	case Zoom:
		err = in.connectZoom(views)
	case AutoZoom:
		err = in.connectAutoZoom()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Key(), err)
	}
	return in, nil
}

// Type returns the interaction's variant.
func (in *Interaction) Type() Type { return in.typ }

// Target returns the view that gestures are taken from, or nil for
// an AutoZoom.
func (in *Interaction) Target() Target { return in.target }

// Close disconnects the interaction from its target and scales.
func (in *Interaction) Close() {
	if in.target != nil {
		for _, h := range in.handles {
			in.target.Input().Off(h)
		}
	}
	in.handles = nil
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
}

func (in *Interaction) scaleAttr(key string) (*scale.Scale, error) {
	e, err := entity.Ref(in, key)
	if err != nil {
		return nil, err
	}
	s, ok := e.(*scale.Scale)
	if !ok {
		return nil, fmt.Errorf("%s is not a scale", e.Base().Key())
	}
	return s, nil
}

// resolveTarget finds the view named by the area or axis field.
func (in *Interaction) resolveTarget(views *registry.Registry) error {
	var path string
	for _, k := range []string{"area", "axis"} {
		p, err := entity.String(in, k)
		if err != nil {
			return err
		}
		if p != "" {
			path = p
			break
		}
	}
	if path == "" {
		return fmt.Errorf("no area or axis to take gestures from")
	}
	e, err := views.Resolve(path)
	if err != nil {
		return err
	}
	t, ok := e.(Target)
	if !ok {
		return fmt.Errorf("%s does not take gestures", path)
	}
	in.target = t
	return nil
}

func (in *Interaction) listen(name string, fn event.Listener) {
	in.handles = append(in.handles, in.target.Input().On(name, fn))
}

func gesture(ev event.Event) (entity.Gesture, error) {
	g, ok := ev.Data.(entity.Gesture)
	if !ok {
		return g, fmt.Errorf("%s event carries %T, not a gesture", ev.Name, ev.Data)
	}
	return g, nil
}
