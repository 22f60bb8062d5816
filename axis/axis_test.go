// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/layout"
	"github.com/aclements/vizspec/registry"
	"github.com/aclements/vizspec/scale"
)

type recorder struct {
	frames []entity.Frame
}

func (r *recorder) Render(f entity.Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) last(shape string) entity.Frame {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].Shape == shape {
			return r.frames[i]
		}
	}
	return entity.Frame{}
}

type fixture struct {
	models, views *registry.Registry
	x             *scale.Scale
	area          *layout.View
	rec           recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{models: registry.New(), views: registry.New()}
	var err error
	f.x, err = scale.Parse(f.models, entity.SpecOf("name", "x", "domainBegin", 0, "domainEnd", 100, "rangeEnd", 200))
	require.NoError(t, err)
	_, err = scale.Parse(f.models, entity.SpecOf("name", "y", "domainBegin", 0, "domainEnd", 10, "rangeBegin", 100, "rangeEnd", 0))
	require.NoError(t, err)
	a, err := layout.Parse(f.models, entity.SpecOf("name", "main", "width", 200, "height", 100))
	require.NoError(t, err)
	f.area, err = layout.NewView(f.views, a, &f.rec)
	require.NoError(t, err)
	return f
}

func (f *fixture) axis(t *testing.T, kv ...interface{}) *View {
	t.Helper()
	a, err := Parse(f.models, entity.SpecOf(kv...))
	require.NoError(t, err)
	v, err := NewView(f.views, a, &f.rec)
	require.NoError(t, err)
	loc, err := entity.String(v, "location")
	require.NoError(t, err)
	require.NoError(t, f.area.Attach(v, loc))
	return v
}

func TestDefaults(t *testing.T) {
	f := newFixture(t)
	a, err := Parse(f.models, entity.SpecOf("name", "a", "scale", "scale:x", "orient", "left", "area", "area:main"))
	require.NoError(t, err)
	assert.Equal(t, "left", a.Get("location"))
	assert.Equal(t, 10, a.Get("ticks"))
	assert.Equal(t, 30, a.Get("size"))
	assert.Equal(t, "area:main", a.Get("area"))
	s, err := a.Scale()
	require.NoError(t, err)
	assert.Same(t, f.x, s)
}

func TestParseErrors(t *testing.T) {
	f := newFixture(t)
	_, err := Parse(f.models, entity.SpecOf("name", "a", "scale", "scale:x", "orient", "diagonal"))
	assert.ErrorIs(t, err, entity.ErrUnsupportedKind)
	_, err = Parse(f.models, entity.SpecOf("name", "b", "scale", "scale:nope"))
	assert.ErrorIs(t, err, registry.ErrNotFound)
	_, err = Parse(f.models, entity.SpecOf("name", "c"))
	var ae *entity.AttrError
	assert.ErrorAs(t, err, &ae)
}

func TestCalculatedSize(t *testing.T) {
	f := newFixture(t)
	bottom := f.axis(t, "name", "b", "scale", "scale:x", "orient", "bottom", "size", 25)
	left := f.axis(t, "name", "l", "scale", "scale:y", "orient", "left")

	h, err := bottom.CalculatedHeight()
	require.NoError(t, err)
	assert.Equal(t, 25.0, h)
	_, err = bottom.CalculatedWidth()
	assert.Error(t, err)

	w, err := left.CalculatedWidth()
	require.NoError(t, err)
	assert.Equal(t, 30.0, w)
	_, err = left.CalculatedHeight()
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	f := newFixture(t)
	f.axis(t, "name", "b", "scale", "scale:x", "orient", "bottom", "ticks", 5, "gridline", "#ddd")
	f.axis(t, "name", "l", "scale", "scale:y", "orient", "left")
	require.NoError(t, f.area.Render())

	b := f.rec.last("axis")
	require.Equal(t, "l", b.Name)
	// Left axis baseline runs down the content-left edge.
	assert.Equal(t, 10.0, b.Attrs["x1"])
	assert.Equal(t, 10.0, b.Attrs["y1"])
	assert.Equal(t, 110.0, b.Attrs["y2"])
	assert.Equal(t, -6.0, b.Attrs["tickLength"])
	for _, it := range b.Items {
		v := it.Record["value"].(float64)
		assert.InDelta(t, 10+100-10*v, it.Attrs["y"], 1e-9)
		assert.NotContains(t, it.Attrs, "gx1")
	}

	var bottom entity.Frame
	for _, fr := range f.rec.frames {
		if fr.Name == "b" {
			bottom = fr
		}
	}
	assert.Equal(t, 110.0, bottom.Attrs["y1"])
	assert.Equal(t, "#ddd", bottom.Attrs["gridline"])
	require.NotEmpty(t, bottom.Items)
	assert.LessOrEqual(t, len(bottom.Items), 5)
	for _, it := range bottom.Items {
		v := it.Record["value"].(float64)
		assert.InDelta(t, 10+2*v, it.Attrs["x"], 1e-9)
		assert.Equal(t, it.Attrs["x"], it.Attrs["gx1"])
		assert.Equal(t, 10.0, it.Attrs["gy1"])
		assert.Equal(t, 110.0, it.Attrs["gy2"])
	}
}

func TestRerenderOnScaleChange(t *testing.T) {
	f := newFixture(t)
	f.axis(t, "name", "b", "scale", "scale:x", "orient", "bottom")
	require.NoError(t, f.area.Render())
	n := len(f.rec.frames)

	require.NoError(t, f.x.Zoom(2))
	require.Greater(t, len(f.rec.frames), n)
	last := f.rec.last("axis")
	assert.Equal(t, "b", last.Name)
	for _, it := range last.Items {
		v := it.Record["value"].(float64)
		assert.InDelta(t, 10+(v+50), it.Attrs["x"], 1e-9)
	}
}
