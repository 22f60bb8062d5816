// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis implements axes: scale-driven chrome, with ticks,
// labels, and optional gridlines, docked to an edge of an area.
package axis

import (
	"fmt"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/layout"
	"github.com/aclements/vizspec/registry"
	"github.com/aclements/vizspec/scale"
)

// EntityKind is the registry kind of every axis.
const EntityKind = "axis"

// TickLength is the length of a tick mark in pixels.
const TickLength = 6

// Axis is an axis model entity.
type Axis struct {
	*entity.Node
}

// Parse builds an axis from spec and registers it in reg. The area
// field is kept as a path and resolved when the axis view is mounted.
func Parse(reg *registry.Registry, spec entity.Spec) (*Axis, error) {
	orient, err := spec.String("orient", layout.Bottom)
	if err != nil {
		return nil, err
	}
	switch orient {
	case layout.Top, layout.Right, layout.Bottom, layout.Left:
	default:
		return nil, &entity.UnsupportedKindError{What: "axis orient", Type: orient}
	}
	name := spec.Name()
	if name == "" {
		return nil, fmt.Errorf("axis: missing name")
	}
	a := &Axis{entity.New(reg, EntityKind, name)}
	a.SetDefault("orient", orient)
	a.SetDefault("location", orient)
	a.SetDefault("ticks", 10)
	a.SetDefault("size", 30)
	if err := a.Register(a); err != nil {
		return nil, err
	}
	if err := a.Apply(spec, "area"); err != nil {
		return nil, err
	}
	if _, err := a.Scale(); err != nil {
		return nil, err
	}
	return a, nil
}

// Scale returns the scale the axis displays.
func (a *Axis) Scale() (*scale.Scale, error) {
	e, err := entity.Ref(a, "scale")
	if err != nil {
		return nil, err
	}
	s, ok := e.(*scale.Scale)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a scale", a.Key(), e.Base().Key())
	}
	return s, nil
}

// Vertical reports whether an axis with the given orientation runs
// vertically.
func Vertical(orient string) bool {
	return orient == layout.Left || orient == layout.Right
}

// View draws an axis. It is a layout.Child.
type View struct {
	*entity.View
	axis    *Axis
	surface entity.Surface

	placed bool
	at     layout.Placement
}

// NewView returns a view of a, registered in views, that draws on s.
// Once placed, it re-renders whenever the axis or its scale changes.
func NewView(views *registry.Registry, a *Axis, s entity.Surface) (*View, error) {
	ev, err := entity.NewView(views, a)
	if err != nil {
		return nil, err
	}
	v := &View{View: ev, axis: a, surface: s}
	v.On(event.Change, func(event.Event) error {
		if !v.placed {
			return nil
		}
		return v.render()
	})
	if err := v.Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Axis returns the model of v.
func (v *View) Axis() *Axis { return v.axis }

func (v *View) orient() (string, error) {
	return entity.String(v, "orient")
}

// CalculatedWidth returns the width of a vertical axis.
func (v *View) CalculatedWidth() (float64, error) {
	o, err := v.orient()
	if err != nil {
		return 0, err
	}
	if !Vertical(o) {
		return 0, fmt.Errorf("%s: width of a %s axis is undefined", v.Key(), o)
	}
	return entity.Float(v, "size")
}

// CalculatedHeight returns the height of a horizontal axis.
func (v *View) CalculatedHeight() (float64, error) {
	o, err := v.orient()
	if err != nil {
		return 0, err
	}
	if Vertical(o) {
		return 0, fmt.Errorf("%s: height of a %s axis is undefined", v.Key(), o)
	}
	return entity.Float(v, "size")
}

// Place renders the axis at p.
func (v *View) Place(p layout.Placement) error {
	v.at, v.placed = p, true
	return v.render()
}

func (v *View) render() error {
	o, err := v.orient()
	if err != nil {
		return err
	}
	s, err := v.axis.Scale()
	if err != nil {
		return err
	}
	n, err := entity.Int(v, "ticks")
	if err != nil {
		return err
	}
	grid, err := entity.String(v, "gridline")
	if err != nil {
		return err
	}
	ticks, err := s.Ticks(n)
	if err != nil {
		return err
	}

	p, c := v.at, v.at.Content
	// dir is the direction ticks point, away from the content box.
	dir := 1.0
	if o == layout.Top || o == layout.Left {
		dir = -1
	}
	attrs := map[string]interface{}{
		"orient":     o,
		"tickLength": TickLength * dir,
		"gridline":   grid,
	}
	var items []entity.Item
	if Vertical(o) {
		attrs["x1"], attrs["y1"] = p.Anchor.X, c.Y
		attrs["x2"], attrs["y2"] = p.Anchor.X, c.Y+c.Height
	} else {
		attrs["x1"], attrs["y1"] = c.X, p.Anchor.Y
		attrs["x2"], attrs["y2"] = c.X+c.Width, p.Anchor.Y
	}
	for _, t := range ticks {
		it := entity.Item{
			Record: map[string]interface{}{"value": t.Value},
			Attrs:  map[string]interface{}{"label": t.Label},
		}
		if Vertical(o) {
			it.Attrs["x"], it.Attrs["y"] = p.Anchor.X, c.Y+t.Pixel
			if grid != "" {
				it.Attrs["gx1"], it.Attrs["gy1"] = c.X, c.Y+t.Pixel
				it.Attrs["gx2"], it.Attrs["gy2"] = c.X+c.Width, c.Y+t.Pixel
			}
		} else {
			it.Attrs["x"], it.Attrs["y"] = c.X+t.Pixel, p.Anchor.Y
			if grid != "" {
				it.Attrs["gx1"], it.Attrs["gy1"] = c.X+t.Pixel, c.Y
				it.Attrs["gx2"], it.Attrs["gy2"] = c.X+t.Pixel, c.Y+c.Height
			}
		}
		items = append(items, it)
	}
	log.Debug(log.CatRender, "axis", "axis", v.Key(), "ticks", len(items))
	return v.surface.Render(entity.Frame{
		Kind:   v.Kind(),
		Name:   v.Name(),
		Shape:  "axis",
		Origin: p.Anchor,
		Bounds: p.Box,
		Items:  items,
		Attrs:  attrs,
	})
}
