// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/registry"
)

// Gesture event names delivered to a view's Input dispatcher. The
// event Data is a Gesture.
const (
	DragStart = "dragstart"
	Drag      = "drag"
	DragEnd   = "dragend"
	Wheel     = "wheel"
)

// Gesture is the payload of a gesture event, in surface pixels.
type Gesture struct {
	X, Y float64

	// Delta is the wheel delta for Wheel events. Positive values
	// zoom out.
	Delta float64
}

// View mirrors a model entity for rendering. It has the same kind and
// name as its model and lives in a separate (view) registry.
//
// Attribute lookup checks the view's own attributes first and falls
// back to the model. A View fires "change" whenever its model does.
type View struct {
	*Node
	model Entity
	input event.Dispatcher
}

// NewView returns a view of model that registers in views. Like a
// Node, it is registered by Register, normally with the concrete view
// that embeds it.
func NewView(views *registry.Registry, model Entity) (*View, error) {
	v := &View{
		Node:  New(views, model.Kind(), model.Name()),
		model: model,
	}
	v.Node.self = v
	if err := v.Node.AddDependency(model); err != nil {
		return nil, err
	}
	return v, nil
}

// Model returns the entity v renders.
func (v *View) Model() Entity { return v.model }

// Lookup returns v's own value for key if it has one, and the model's
// otherwise.
func (v *View) Lookup(key string) (interface{}, bool) {
	if v.Node.Has(key) {
		return v.Node.Lookup(key)
	}
	return v.model.Lookup(key)
}

// Get returns the value of key as Lookup does, or nil.
func (v *View) Get(key string) interface{} {
	x, _ := v.Lookup(key)
	return x
}

// Input returns the dispatcher on which gesture events for this view
// are delivered. The surface or test harness fires events on it; the
// interaction controllers subscribe to it.
func (v *View) Input() *event.Dispatcher {
	return &v.input
}

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in surface pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Item is one datum of a mark frame: the source record and the
// visual attributes computed from it.
type Item struct {
	Record map[string]interface{}
	Attrs  map[string]interface{}
}

// Frame is everything a surface needs to draw one view. Mark item
// coordinates are relative to Origin; axis and area coordinates are
// absolute.
type Frame struct {
	Kind, Name string

	// Shape is the primitive to draw: "circle", "line", "rect",
	// "axis", or "area".
	Shape string

	// Origin is the absolute position of the view's coordinate
	// system.
	Origin Point

	// Bounds is the absolute box the view occupies.
	Bounds Rect

	// Items is the sequence of data to draw, for marks.
	Items []Item

	// Attrs holds position, size, and style attributes for chrome
	// (axes and areas).
	Attrs map[string]interface{}
}

// Surface draws frames. Rendering a view again replaces its previous
// frame.
type Surface interface {
	Render(f Frame) error
}
