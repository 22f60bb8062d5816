// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/interact"
	"github.com/aclements/vizspec/registry"
	"github.com/aclements/vizspec/scale"
)

// Sections appear out of build order on purpose.
const plotDoc = `
areas:
  - name: main
    width: 240
    height: 140
interactions:
  - type: pan
    scale: scale:x
    area: area:main
marks:
  - name: dots
    type: circle
    source: data:pts
    area: area:main
    properties:
      cx: {value: x, scale: 'scale:x'}
      cy: {value: y, scale: 'scale:y'}
      r: 3
axes:
  - name: xaxis
    scale: scale:x
    area: area:main
  - name: yaxis
    scale: scale:y
    orient: left
    area: area:main
data:
  - name: pts
    items:
      - {x: 1, y: 2}
      - {x: 3, y: 4}
scales:
  - name: x
    domainBegin: 0
    domainEnd: 10
    rangeEnd: 200
  - name: y
    domainBegin: 0
    domainEnd: 10
    rangeBegin: 100
    rangeEnd: 0
`

type recorder struct {
	frames []entity.Frame
}

func (r *recorder) Render(f entity.Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) names() []string {
	var out []string
	for _, f := range r.frames {
		out = append(out, f.Name)
	}
	return out
}

func (r *recorder) last(name string) (entity.Frame, bool) {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].Name == name {
			return r.frames[i], true
		}
	}
	return entity.Frame{}, false
}

func buildPlot(t *testing.T) (*Graph, *recorder) {
	t.Helper()
	doc, err := ParseBytes([]byte(plotDoc))
	require.NoError(t, err)
	var rec recorder
	g, err := Build(context.Background(), doc, DefaultConfig(), &rec)
	require.NoError(t, err)
	return g, &rec
}

func TestBuild(t *testing.T) {
	g, rec := buildPlot(t)

	assert.Equal(t, 8, g.Models.Count())
	assert.Equal(t, 4, g.Views.Count())
	assert.Len(t, g.Interactions(), 1)
	require.Len(t, g.DataSets(), 1)
	assert.Equal(t, "pts", g.DataSets()[0].Name())
	assert.Empty(t, rec.frames)

	require.NoError(t, g.Render())
	assert.Equal(t, []string{"main", "dots", "xaxis", "yaxis"}, rec.names())

	dots, _ := rec.last("dots")
	require.Len(t, dots.Items, 2)
	assert.InDelta(t, 20.0, dots.Items[0].Attrs["cx"], 1e-9)
	assert.InDelta(t, 80.0, dots.Items[0].Attrs["cy"], 1e-9)
	assert.Equal(t, entity.Point{X: 10, Y: 10}, dots.Origin)
}

func TestGesture(t *testing.T) {
	g, rec := buildPlot(t)
	require.NoError(t, g.Render())
	n := len(rec.frames)

	v, err := g.Views.Resolve("area:main")
	require.NoError(t, err)
	input := v.(interact.Target).Input()
	require.NoError(t, input.Fire(event.Event{Name: entity.DragStart, Data: entity.Gesture{X: 50, Y: 50}}))
	require.NoError(t, input.Fire(event.Event{Name: entity.Drag, Data: entity.Gesture{X: 70, Y: 50}}))
	require.NoError(t, input.Fire(event.Event{Name: entity.DragEnd, Data: entity.Gesture{X: 70, Y: 50}}))

	assert.Greater(t, len(rec.frames), n)
	dots, _ := rec.last("dots")
	assert.InDelta(t, 40.0, dots.Items[0].Attrs["cx"], 1e-9)
	_, ok := rec.last("xaxis")
	assert.True(t, ok)

	x, err := g.Models.Resolve("scale:x")
	require.NoError(t, err)
	b, e, err := x.(*scale.Scale).Span()
	require.NoError(t, err)
	assert.InDelta(t, -1, b, 1e-9)
	assert.InDelta(t, 9, e, 1e-9)

	g.Close()
	assert.Equal(t, 0, input.Count(entity.DragStart))
}

func TestBuildErrors(t *testing.T) {
	for _, test := range []struct {
		name, doc string
		is        error
	}{
		{"unknown section", "widgets: []", ErrUnknownSection},
		{"unknown scale type", "scales: [{name: x, type: log}]", entity.ErrUnsupportedKind},
		{"missing reference", "marks: [{name: m, type: line, source: \"data:nope\"}]", registry.ErrNotFound},
		{"missing area", "data: [{name: d}]\nmarks: [{name: m, type: line, source: \"data:d\", area: \"area:nope\"}]", registry.ErrNotFound},
		{"duplicate", "data: [{name: d}, {name: d}]", registry.ErrDuplicate},
	} {
		doc, err := ParseBytes([]byte(test.doc))
		require.NoError(t, err, test.name)
		_, err = Build(context.Background(), doc, DefaultConfig(), &recorder{})
		assert.ErrorIs(t, err, test.is, test.name)
	}
}

func TestBadSlot(t *testing.T) {
	doc, err := ParseBytes([]byte(`
scales: [{name: x}]
axes: [{name: a, scale: 'scale:x', area: 'area:main', location: middle}]
areas: [{name: main}]
`))
	require.NoError(t, err)
	_, err = Build(context.Background(), doc, DefaultConfig(), &recorder{})
	assert.ErrorIs(t, err, entity.ErrInvalidSlot)
}

func TestOverwritePolicy(t *testing.T) {
	doc, err := ParseBytes([]byte("scales: [{name: x, rangeEnd: 5}, {name: x, rangeEnd: 7}]"))
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Policy = registry.Overwrite
	g, err := Build(context.Background(), doc, cfg, &recorder{})
	require.NoError(t, err)
	x, err := g.Models.Resolve("scale:x")
	require.NoError(t, err)
	v, _ := x.Lookup("rangeEnd")
	assert.Equal(t, 7, v)
}

func TestParse(t *testing.T) {
	doc, err := ParseBytes([]byte("data:\nscales: [{name: a}, {name: b}]\nscales: [{name: c}]\n"))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 3)
	assert.Empty(t, doc.Specs("data"))
	var names []string
	for _, s := range doc.Specs("scales") {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	doc, err = ParseBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Sections)

	// JSON is YAML.
	doc, err = ParseBytes([]byte(`{"scales": [{"name": "x", "domainEnd": 2.5}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2.5, doc.Specs("scales")[0].Get("domainEnd"))

	for _, bad := range []string{"- a\n- b\n", "scales: 3\n", "scales: {name: x}\n", "scales: [3]\n"} {
		_, err := ParseBytes([]byte(bad))
		assert.Error(t, err, bad)
	}
}

func TestWriteDot(t *testing.T) {
	g, _ := buildPlot(t)
	var buf bytes.Buffer
	require.NoError(t, g.WriteDot(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `digraph "vizspec" {`))
	assert.Contains(t, out, `[label="mark:dots"]`)
	assert.Contains(t, out, `[label="scale:x"]`)
	assert.Contains(t, out, `subgraph "cluster_scale" {`)
	assert.Contains(t, out, "n3 -> n0;\n") // mark:dots -> data:pts
}

func TestTrace(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)))
	buildPlot(t)

	var names []string
	for _, s := range exp.GetSpans() {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "interp.Build")
	assert.Contains(t, names, "interp.mount")
	n := 0
	for _, name := range names {
		if name == "interp.section" {
			n++
		}
	}
	assert.Equal(t, 6, n)
}
