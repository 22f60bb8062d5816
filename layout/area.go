// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/registry"
)

// EntityKind is the registry kind of every area.
const EntityKind = "area"

var areaDefaults = []struct {
	key string
	val float64
}{
	{"x", 0},
	{"y", 0},
	{"height", 300},
	{"width", 400},
	{"paddingTop", 10},
	{"paddingRight", 10},
	{"paddingBottom", 10},
	{"paddingLeft", 10},
}

// Area is an area model entity.
type Area struct {
	*entity.Node
}

// New returns an area named name with default geometry, registered in
// reg.
func New(reg *registry.Registry, name string) (*Area, error) {
	a := &Area{entity.New(reg, EntityKind, name)}
	for _, d := range areaDefaults {
		a.SetDefault(d.key, d.val)
	}
	if err := a.Register(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Parse builds an area from spec and registers it in reg.
func Parse(reg *registry.Registry, spec entity.Spec) (*Area, error) {
	name := spec.Name()
	if name == "" {
		return nil, fmt.Errorf("area: missing name")
	}
	a, err := New(reg, name)
	if err != nil {
		return nil, err
	}
	if err := a.Apply(spec); err != nil {
		return nil, err
	}
	return a, nil
}

// GeometryOf reads an area's box model from e, which is usually an
// area or a view of one.
func GeometryOf(e registry.Entity) (Geometry, error) {
	var g Geometry
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"x", &g.X}, {"y", &g.Y},
		{"width", &g.Width}, {"height", &g.Height},
		{"paddingTop", &g.PaddingTop}, {"paddingRight", &g.PaddingRight},
		{"paddingBottom", &g.PaddingBottom}, {"paddingLeft", &g.PaddingLeft},
	} {
		v, err := entity.Float(e, f.key)
		if err != nil {
			return g, err
		}
		*f.dst = v
	}
	return g, nil
}

// View renders an area and lays out the views attached to it.
type View struct {
	*entity.View
	surface  entity.Surface
	rendered bool
}

// NewView returns a view of a, registered in views, that draws on s.
// Once rendered, the view re-renders whenever it or its model
// changes.
func NewView(views *registry.Registry, a *Area, s entity.Surface) (*View, error) {
	ev, err := entity.NewView(views, a)
	if err != nil {
		return nil, err
	}
	v := &View{View: ev, surface: s}
	v.SetAttachmentPoints(Top, Right, Bottom, Left, Inside)
	v.On(event.Change, func(event.Event) error {
		if !v.rendered {
			return nil
		}
		return v.Render()
	})
	if err := v.Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Attach docks child at slot.
func (v *View) Attach(child Child, slot string) error {
	if err := v.AddChild(child, slot); err != nil {
		return err
	}
	log.Debug(log.CatLayout, "attached", "area", v.Key(), "child", child.Base().Key(), "slot", slot)
	return nil
}

// Geometry returns the area's current box model.
func (v *View) Geometry() (Geometry, error) {
	return GeometryOf(v)
}

// Render draws the area and places every attached child.
func (v *View) Render() error {
	g, err := v.Geometry()
	if err != nil {
		return err
	}
	bg, err := entity.String(v, "background")
	if err != nil {
		return err
	}
	ext, content := g.Exterior(), g.Content()
	frame := entity.Frame{
		Kind:   v.Kind(),
		Name:   v.Name(),
		Shape:  "area",
		Origin: entity.Point{X: content.X, Y: content.Y},
		Bounds: ext,
		Attrs: map[string]interface{}{
			"x": ext.X, "y": ext.Y, "width": ext.Width, "height": ext.Height,
			"contentX": content.X, "contentY": content.Y,
			"contentWidth": content.Width, "contentHeight": content.Height,
			"background": bg,
		},
	}
	if err := v.surface.Render(frame); err != nil {
		return err
	}
	v.rendered = true

	for _, slot := range Slots {
		children, err := v.children(slot)
		if err != nil {
			return err
		}
		sizers := make([]Sizer, len(children))
		for i, c := range children {
			if slot == Inside {
				continue
			}
			s, ok := c.(Sizer)
			if !ok {
				return fmt.Errorf("%s: %s child %s has no size", v.Key(), slot, c.Base().Key())
			}
			sizers[i] = s
		}
		ps, err := Arrange(g, slot, sizers)
		if err != nil {
			return fmt.Errorf("%s: %w", v.Key(), err)
		}
		for i, c := range children {
			log.Debug(log.CatLayout, "place", "child", c.Base().Key(), "slot", slot, "x", ps[i].Anchor.X, "y", ps[i].Anchor.Y)
			if err := c.Place(ps[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *View) children(slot string) ([]Child, error) {
	var out []Child
	for _, e := range v.Children(slot) {
		c, ok := e.(Child)
		if !ok {
			return nil, fmt.Errorf("%s: %s cannot be placed", v.Key(), e.Base().Key())
		}
		out = append(out, c)
	}
	return out, nil
}
