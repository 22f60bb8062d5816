// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements areas: fixed-size content boxes with
// padding, to whose edges child views dock.
//
// Children attached to an edge slot stack outward from the content
// box, each offset by the sizes of the children attached before it.
// Children attached inside are drawn at the content origin. The
// content box is never resized to fit edge children; they are
// expected to fit in the padding.
package layout

import (
	"fmt"

	"github.com/aclements/vizspec/entity"
)

// Attachment slots of an area.
const (
	Top    = "top"
	Right  = "right"
	Bottom = "bottom"
	Left   = "left"
	Inside = "inside"
)

// Slots lists an area's attachment slots in rendering order.
var Slots = []string{Inside, Top, Right, Bottom, Left}

// A Sizer reports how much space a child needs along each axis.
// Either method may fail if the child's orientation leaves that
// dimension undefined.
type Sizer interface {
	CalculatedWidth() (float64, error)
	CalculatedHeight() (float64, error)
}

// A Child is a view that an area can place.
type Child interface {
	entity.Entity

	// Place renders the child at p.
	Place(p Placement) error
}

// Placement is where a child goes.
type Placement struct {
	Slot string

	// Anchor is the point of the child nearest the content box:
	// its right edge for left children, its left edge for right
	// children, its bottom edge for top children, its top edge
	// for bottom children, and the content origin for inside
	// children.
	Anchor entity.Point

	// Box is the space allotted to the child.
	Box entity.Rect

	// Content is the content box of the area.
	Content entity.Rect
}

// Geometry is the box model of an area.
type Geometry struct {
	X, Y          float64
	Width, Height float64

	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft float64
}

// Content returns the content box.
func (g Geometry) Content() entity.Rect {
	return entity.Rect{X: g.X + g.PaddingLeft, Y: g.Y + g.PaddingTop, Width: g.Width, Height: g.Height}
}

// Exterior returns the content box plus padding.
func (g Geometry) Exterior() entity.Rect {
	return entity.Rect{
		X: g.X, Y: g.Y,
		Width:  g.Width + g.PaddingLeft + g.PaddingRight,
		Height: g.Height + g.PaddingTop + g.PaddingBottom,
	}
}

// Arrange computes placements for children attached at slot, in
// attachment order.
func Arrange(g Geometry, slot string, children []Sizer) ([]Placement, error) {
	c := g.Content()
	out := make([]Placement, len(children))
	cum := 0.0
	for i, child := range children {
		p := Placement{Slot: slot, Content: c}
		switch slot {
		case Inside:
			p.Anchor = entity.Point{X: c.X, Y: c.Y}
			p.Box = c

		case Left, Right:
			w, err := child.CalculatedWidth()
			if err != nil {
				return nil, fmt.Errorf("%s child %d: %w", slot, i, err)
			}
			x := c.X - cum
			p.Box = entity.Rect{X: x - w, Y: c.Y, Width: w, Height: c.Height}
			if slot == Right {
				x = c.X + c.Width + cum
				p.Box.X = x
			}
			p.Anchor = entity.Point{X: x, Y: c.Y}
			cum += w

		case Top, Bottom:
			h, err := child.CalculatedHeight()
			if err != nil {
				return nil, fmt.Errorf("%s child %d: %w", slot, i, err)
			}
			y := c.Y - cum
			p.Box = entity.Rect{X: c.X, Y: y - h, Width: c.Width, Height: h}
			if slot == Bottom {
				y = c.Y + c.Height + cum
				p.Box.Y = y
			}
			p.Anchor = entity.Point{X: c.X, Y: y}
			cum += h

		default:
			return nil, fmt.Errorf("unknown slot %q", slot)
		}
		out[i] = p
	}
	return out, nil
}
