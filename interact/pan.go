// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"fmt"
	"math"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/registry"
)

// DefaultZoomFactor is the per-wheel-step zoom factor of a Zoom
// interaction.
const DefaultZoomFactor = 0.02

// dragAxis returns the unit vector whose component along a drag is
// the pan distance for a direction.
func dragAxis(dir string) (dx, dy float64, err error) {
	switch dir {
	case "e":
		return 1, 0, nil
	case "w":
		return -1, 0, nil
	case "s":
		return 0, 1, nil
	case "n":
		return 0, -1, nil
	}
	return 0, 0, fmt.Errorf("pan direction %q is not one of n, s, e, w", dir)
}

func (in *Interaction) direction() (dx, dy float64, err error) {
	dir, err := entity.String(in, "direction")
	if err != nil {
		return 0, 0, err
	}
	return dragAxis(dir)
}

// connectPan makes a drag on the target pan the scale.
//
// Each drag installs a move listener on dragstart and removes it on
// dragend; the dragstart listener stays.
func (in *Interaction) connectPan(views *registry.Registry) error {
	in.SetDefault("direction", "e")
	if _, _, err := in.direction(); err != nil {
		return err
	}
	s, err := in.scaleAttr("scale")
	if err != nil {
		return err
	}
	if err := in.resolveTarget(views); err != nil {
		return err
	}

	input := in.target.Input()
	var move event.Handle
	var last entity.Gesture
	in.listen(entity.DragStart, func(ev event.Event) error {
		g, err := gesture(ev)
		if err != nil {
			return err
		}
		ux, uy, err := in.direction()
		if err != nil {
			return err
		}
		last = g
		if move.Valid() {
			input.Off(move)
		}
		move = input.On(entity.Drag, func(ev event.Event) error {
			g, err := gesture(ev)
			if err != nil {
				return err
			}
			d := (g.X-last.X)*ux + (g.Y-last.Y)*uy
			last = g
			if d == 0 {
				return nil
			}
			log.Debug(log.CatInteract, "pan", "interaction", in.Key(), "pixels", d)
			return s.Pan(d)
		})
		return nil
	})
	in.listen(entity.DragEnd, func(event.Event) error {
		if move.Valid() {
			input.Off(move)
			move = event.Handle{}
		}
		return nil
	})
	prev := in.stop
	in.stop = func() {
		if move.Valid() {
			input.Off(move)
		}
		if prev != nil {
			prev()
		}
	}
	return nil
}

// connectZoom makes the wheel on the target zoom the scale by
// (1+zoomFactor)^delta.
func (in *Interaction) connectZoom(views *registry.Registry) error {
	in.SetDefault("zoomFactor", DefaultZoomFactor)
	if _, err := in.zoomFactor(); err != nil {
		return err
	}
	s, err := in.scaleAttr("scale")
	if err != nil {
		return err
	}
	if err := in.resolveTarget(views); err != nil {
		return err
	}
	in.listen(entity.Wheel, func(ev event.Event) error {
		g, err := gesture(ev)
		if err != nil {
			return err
		}
		if g.Delta == 0 {
			return nil
		}
		zf, err := in.zoomFactor()
		if err != nil {
			return err
		}
		f := math.Pow(1+zf, g.Delta)
		log.Debug(log.CatInteract, "zoom", "interaction", in.Key(), "factor", f)
		return s.Zoom(f)
	})
	return nil
}

func (in *Interaction) zoomFactor() (float64, error) {
	zf, err := entity.Float(in, "zoomFactor")
	if err != nil {
		return 0, err
	}
	if zf <= -1 {
		return 0, fmt.Errorf("zoomFactor %g must be greater than -1", zf)
	}
	return zf, nil
}
