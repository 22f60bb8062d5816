// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp builds a live entity graph from a visualization
// document.
//
// Sections are built in the order given by a Config, not document
// order: each section's specs are parsed into model entities, and a
// view is created for every model whose kind renders. Once every
// section is built, views that name an area are attached to that
// area's view. After Build, all updates are driven by events.
package interp

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aclements/vizspec/axis"
	"github.com/aclements/vizspec/data"
	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/interact"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/layout"
	"github.com/aclements/vizspec/mark"
	"github.com/aclements/vizspec/registry"
	"github.com/aclements/vizspec/scale"
)

// ErrUnknownSection is returned by Build for a document section that
// the Config does not describe.
var ErrUnknownSection = errors.New("interp: unknown section")

var tracer = otel.Tracer("github.com/aclements/vizspec/interp")

// Kind tells the interpreter how to build the entities of one
// document section.
type Kind struct {
	// Section is the document section name.
	Section string

	// Parse builds and registers one model entity.
	Parse func(g *Graph, spec entity.Spec) (entity.Entity, error)

	// NewView builds and registers the view of a model built by
	// Parse. It is nil for kinds that do not render.
	NewView func(g *Graph, model entity.Entity) (entity.Entity, error)
}

// Config is the set of sections the interpreter understands, in
// build order.
type Config struct {
	Kinds []Kind

	// Policy is the duplicate-registration policy of both
	// registries.
	Policy registry.Policy
}

// DefaultConfig returns the standard sections: data, scales, marks,
// axes, areas, and interactions.
func DefaultConfig() Config {
	return Config{Kinds: []Kind{
		{
			Section: "data",
			Parse: func(g *Graph, spec entity.Spec) (entity.Entity, error) {
				return data.Parse(g.Models, spec)
			},
		},
		{
			Section: "scales",
			Parse: func(g *Graph, spec entity.Spec) (entity.Entity, error) {
				return scale.Parse(g.Models, spec)
			},
		},
		{
			Section: "marks",
			Parse: func(g *Graph, spec entity.Spec) (entity.Entity, error) {
				return mark.Parse(g.Models, spec)
			},
			NewView: func(g *Graph, m entity.Entity) (entity.Entity, error) {
				return mark.NewView(g.Views, m.(*mark.Mark), g.Surface)
			},
		},
		{
			Section: "axes",
			Parse: func(g *Graph, spec entity.Spec) (entity.Entity, error) {
				return axis.Parse(g.Models, spec)
			},
			NewView: func(g *Graph, m entity.Entity) (entity.Entity, error) {
				return axis.NewView(g.Views, m.(*axis.Axis), g.Surface)
			},
		},
		{
			Section: "areas",
			Parse: func(g *Graph, spec entity.Spec) (entity.Entity, error) {
				return layout.Parse(g.Models, spec)
			},
			NewView: func(g *Graph, m entity.Entity) (entity.Entity, error) {
				return layout.NewView(g.Views, m.(*layout.Area), g.Surface)
			},
		},
		{
			Section: "interactions",
			Parse: func(g *Graph, spec entity.Spec) (entity.Entity, error) {
				return interact.Parse(g.Models, g.Views, spec)
			},
		},
	}}
}

func (c Config) kind(section string) (Kind, bool) {
	for _, k := range c.Kinds {
		if k.Section == section {
			return k, true
		}
	}
	return Kind{}, false
}

// Graph is a built visualization: the model registry, the view
// registry, and the surface the views draw on.
type Graph struct {
	Models  *registry.Registry
	Views   *registry.Registry
	Surface entity.Surface
}

// Build builds the entity graph described by doc. It fails on the
// first error; entities built before the error stay registered in
// the (discarded) graph.
func Build(ctx context.Context, doc *Document, cfg Config, s entity.Surface) (*Graph, error) {
	ctx, span := tracer.Start(ctx, "interp.Build", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	g, err := build(ctx, doc, cfg, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("vizspec.models", g.Models.Count()),
		attribute.Int("vizspec.views", g.Views.Count()),
	)
	span.SetStatus(codes.Ok, "")
	return g, nil
}

func build(ctx context.Context, doc *Document, cfg Config, s entity.Surface) (*Graph, error) {
	for _, sec := range doc.Sections {
		if _, ok := cfg.kind(sec.Name); !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownSection, sec.Name)
		}
	}
	g := &Graph{
		Models:  registry.NewWithPolicy(cfg.Policy),
		Views:   registry.NewWithPolicy(cfg.Policy),
		Surface: s,
	}
	for _, k := range cfg.Kinds {
		if err := g.buildSection(ctx, k, doc.Specs(k.Section)); err != nil {
			return nil, err
		}
	}
	if err := g.mount(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) buildSection(ctx context.Context, k Kind, specs []entity.Spec) error {
	_, span := tracer.Start(ctx, "interp.section", trace.WithAttributes(
		attribute.String("vizspec.section", k.Section),
		attribute.Int("vizspec.specs", len(specs)),
	))
	defer span.End()

	for i, spec := range specs {
		m, err := k.Parse(g, spec)
		if err != nil {
			err = fmt.Errorf("%s[%d]: %w", k.Section, i, err)
			span.RecordError(err)
			return err
		}
		log.Debug(log.CatSpec, "built", "entity", m.Base().Key())
		if k.NewView == nil {
			continue
		}
		if _, err := k.NewView(g, m); err != nil {
			err = fmt.Errorf("%s view: %w", m.Base().Key(), err)
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// An attacher is a view that other views dock to.
type attacher interface {
	Attach(child layout.Child, slot string) error
}

// mount attaches every view whose model names an area to that area's
// view, at the view's location slot, or inside if it has none.
func (g *Graph) mount(ctx context.Context) error {
	_, span := tracer.Start(ctx, "interp.mount")
	defer span.End()

	n := 0
	for _, v := range g.Views.Entries() {
		path, err := entity.String(v, "area")
		if err != nil {
			return err
		}
		if path == "" {
			continue
		}
		p, err := g.Views.Resolve(path)
		if err != nil {
			return fmt.Errorf("%s: %w", registry.Key(v.Kind(), v.Name()), err)
		}
		parent, ok := p.(attacher)
		if !ok {
			return fmt.Errorf("%s: %s is not an area", registry.Key(v.Kind(), v.Name()), path)
		}
		child, ok := v.(layout.Child)
		if !ok {
			return fmt.Errorf("%s cannot be placed in an area", registry.Key(v.Kind(), v.Name()))
		}
		slot, err := entity.String(v, "location")
		if err != nil {
			return err
		}
		if slot == "" {
			slot = layout.Inside
		}
		if err := parent.Attach(child, slot); err != nil {
			return fmt.Errorf("%s: %w", registry.Key(v.Kind(), v.Name()), err)
		}
		n++
	}
	span.SetAttributes(attribute.Int("vizspec.mounted", n))
	return nil
}

// A renderer is a top-level view.
type renderer interface {
	Render() error
}

// Render draws every top-level view, which places and draws the views
// attached to it. After the first Render, views redraw themselves on
// change.
func (g *Graph) Render() error {
	for _, v := range g.Views.Entries() {
		r, ok := v.(renderer)
		if !ok {
			continue
		}
		if err := r.Render(); err != nil {
			log.Error(log.CatRender, "render failed", err, "view", registry.Key(v.Kind(), v.Name()))
			return err
		}
	}
	return nil
}

// Interactions returns the graph's interactions in build order.
func (g *Graph) Interactions() []*interact.Interaction {
	var out []*interact.Interaction
	for _, e := range g.Models.OfKind(interact.EntityKind) {
		if in, ok := e.(*interact.Interaction); ok {
			out = append(out, in)
		}
	}
	return out
}

// DataSets returns the graph's datasets in build order.
func (g *Graph) DataSets() []*data.DataSet {
	var out []*data.DataSet
	for _, e := range g.Models.OfKind(data.EntityKind) {
		if d, ok := e.(*data.DataSet); ok {
			out = append(out, d)
		}
	}
	return out
}

// Close disconnects every interaction.
func (g *Graph) Close() {
	for _, in := range g.Interactions() {
		in.Close()
	}
}
