// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/registry"
)

type box struct {
	w, h float64
	err  error
}

func (b box) CalculatedWidth() (float64, error)  { return b.w, b.err }
func (b box) CalculatedHeight() (float64, error) { return b.h, b.err }

var defaultGeometry = Geometry{
	Width: 400, Height: 300,
	PaddingTop: 10, PaddingRight: 10, PaddingBottom: 10, PaddingLeft: 10,
}

func TestArrange(t *testing.T) {
	g := defaultGeometry
	c := entity.Rect{X: 10, Y: 10, Width: 400, Height: 300}
	two := []Sizer{box{w: 30, h: 30}, box{w: 20, h: 20}}

	for _, test := range []struct {
		slot string
		want []Placement
	}{
		{Left, []Placement{
			{Left, entity.Point{X: 10, Y: 10}, entity.Rect{X: -20, Y: 10, Width: 30, Height: 300}, c},
			{Left, entity.Point{X: -20, Y: 10}, entity.Rect{X: -40, Y: 10, Width: 20, Height: 300}, c},
		}},
		{Right, []Placement{
			{Right, entity.Point{X: 410, Y: 10}, entity.Rect{X: 410, Y: 10, Width: 30, Height: 300}, c},
			{Right, entity.Point{X: 440, Y: 10}, entity.Rect{X: 440, Y: 10, Width: 20, Height: 300}, c},
		}},
		{Top, []Placement{
			{Top, entity.Point{X: 10, Y: 10}, entity.Rect{X: 10, Y: -20, Width: 400, Height: 30}, c},
			{Top, entity.Point{X: 10, Y: -20}, entity.Rect{X: 10, Y: -40, Width: 400, Height: 20}, c},
		}},
		{Bottom, []Placement{
			{Bottom, entity.Point{X: 10, Y: 310}, entity.Rect{X: 10, Y: 310, Width: 400, Height: 30}, c},
			{Bottom, entity.Point{X: 10, Y: 340}, entity.Rect{X: 10, Y: 340, Width: 400, Height: 20}, c},
		}},
		{Inside, []Placement{
			{Inside, entity.Point{X: 10, Y: 10}, c, c},
			{Inside, entity.Point{X: 10, Y: 10}, c, c},
		}},
	} {
		got, err := Arrange(g, test.slot, two)
		if err != nil {
			t.Errorf("%s: %v", test.slot, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", test.slot, diff)
		}
	}
}

func TestArrangeOffset(t *testing.T) {
	g := defaultGeometry
	g.X, g.Y = 100, 50
	got, err := Arrange(g, Bottom, []Sizer{box{h: 30}})
	require.NoError(t, err)
	assert.Equal(t, entity.Point{X: 110, Y: 360}, got[0].Anchor)
	assert.Equal(t, entity.Rect{X: 100, Y: 50, Width: 420, Height: 320}, g.Exterior())
}

func TestArrangeErrors(t *testing.T) {
	bad := errors.New("undefined")
	_, err := Arrange(defaultGeometry, Left, []Sizer{box{w: 10}, box{err: bad}})
	assert.ErrorIs(t, err, bad)

	// Inside children are never asked for a size.
	_, err = Arrange(defaultGeometry, Inside, []Sizer{box{err: bad}})
	assert.NoError(t, err)

	_, err = Arrange(defaultGeometry, "middle", []Sizer{box{}})
	assert.Error(t, err)
}

type recorder struct {
	frames []entity.Frame
}

func (r *recorder) Render(f entity.Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

type child struct {
	*entity.View
	box
	placed []Placement
}

func newChild(t *testing.T, views *registry.Registry, name string, b box) *child {
	t.Helper()
	model := entity.New(nil, "axis", name)
	ev, err := entity.NewView(views, model)
	require.NoError(t, err)
	c := &child{View: ev, box: b}
	require.NoError(t, c.Register(c))
	return c
}

func (c *child) Place(p Placement) error {
	c.placed = append(c.placed, p)
	return nil
}

func TestAreaView(t *testing.T) {
	models, views := registry.New(), registry.New()
	a, err := Parse(models, entity.SpecOf("name", "main", "width", 200, "paddingLeft", 40))
	require.NoError(t, err)
	var rec recorder
	v, err := NewView(views, a, &rec)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{Top, Right, Bottom, Left, Inside}, v.AttachmentPoints())

	y := newChild(t, views, "y", box{w: 30})
	x := newChild(t, views, "x", box{h: 25})
	require.NoError(t, v.Attach(y, Left))
	require.NoError(t, v.Attach(x, Bottom))

	err = v.Attach(x, "middle")
	assert.ErrorIs(t, err, entity.ErrInvalidSlot)
	assert.Len(t, v.Children(Bottom), 1)
	assert.Empty(t, v.Children(Top))

	require.NoError(t, v.Render())
	require.Len(t, rec.frames, 1)
	f := rec.frames[0]
	assert.Equal(t, "area", f.Shape)
	assert.Equal(t, entity.Rect{Width: 250, Height: 320}, f.Bounds)
	assert.Equal(t, entity.Point{X: 40, Y: 10}, f.Origin)

	require.Len(t, y.placed, 1)
	assert.Equal(t, entity.Point{X: 40, Y: 10}, y.placed[0].Anchor)
	require.Len(t, x.placed, 1)
	assert.Equal(t, entity.Point{X: 40, Y: 310}, x.placed[0].Anchor)

	// Changing the model re-renders the area and re-places its
	// children.
	require.NoError(t, a.Set("height", 100))
	require.Len(t, rec.frames, 2)
	require.Len(t, x.placed, 2)
	assert.Equal(t, entity.Point{X: 40, Y: 110}, x.placed[1].Anchor)
}

func TestAreaViewUnsized(t *testing.T) {
	models, views := registry.New(), registry.New()
	a, err := New(models, "main")
	require.NoError(t, err)
	v, err := NewView(views, a, &recorder{})
	require.NoError(t, err)

	// A child placed on an edge must report its size.
	model := entity.New(nil, "mark", "m")
	ev, err := entity.NewView(views, model)
	require.NoError(t, err)
	p := &placeOnly{View: ev}
	require.NoError(t, p.Register(p))
	require.NoError(t, v.Attach(p, Inside))
	require.NoError(t, v.Render())
	assert.True(t, p.placed)

	require.NoError(t, v.Attach(p, Top))
	assert.Error(t, v.Render())
}

type placeOnly struct {
	*entity.View
	placed bool
}

func (p *placeOnly) Place(Placement) error {
	p.placed = true
	return nil
}
