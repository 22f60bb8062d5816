// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"io"
	"strings"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/internal/graph"
)

// WriteDot writes the model dependency graph to w in Graphviz Dot
// form, one cluster per kind. An edge a -> b means a re-derives when b
// changes.
func (g *Graph) WriteDot(w io.Writer) error {
	var b graph.Builder[string]
	for _, e := range g.Models.Entries() {
		m, ok := e.(entity.Entity)
		if !ok {
			continue
		}
		n := m.Base()
		b.Node(n.Key())
		for _, dep := range n.Dependencies() {
			b.Edge(n.Key(), dep.Base().Key())
		}
	}
	d := graph.Dot{
		Name:  "vizspec",
		Label: b.Key,
		Cluster: func(i int) string {
			kind, _, _ := strings.Cut(b.Key(i), ":")
			return kind
		},
	}
	return d.Fprint(b.Graph(), w)
}
