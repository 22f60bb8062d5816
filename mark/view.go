// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mark

import (
	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/layout"
	"github.com/aclements/vizspec/registry"
)

// View draws a mark. It is a layout.Child, normally attached inside
// an area.
type View struct {
	*entity.View
	mark    *Mark
	surface entity.Surface

	placed bool
	at     layout.Placement
}

// NewView returns a view of m, registered in views, that draws on s.
// Once placed, it re-renders whenever the mark, its source, or one of
// its scales changes.
func NewView(views *registry.Registry, m *Mark, s entity.Surface) (*View, error) {
	ev, err := entity.NewView(views, m)
	if err != nil {
		return nil, err
	}
	v := &View{View: ev, mark: m, surface: s}
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

// Mark returns the model of v.
func (v *View) Mark() *Mark { return v.mark }

// Place renders the mark with its coordinate origin at p.Anchor.
func (v *View) Place(p layout.Placement) error {
	v.at, v.placed = p, true
	return v.render()
}

func (v *View) render() error {
	items, err := v.mark.Items()
	if err != nil {
		return err
	}
	log.Debug(log.CatRender, "mark", "mark", v.Key(), "items", len(items))
	return v.surface.Render(entity.Frame{
		Kind:   v.Kind(),
		Name:   v.Name(),
		Shape:  string(v.mark.Type()),
		Origin: v.at.Anchor,
		Bounds: v.at.Box,
		Items:  items,
	})
}
