// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph provides small directed-graph algorithms used to
// reason about the dependency edges between entities.
package graph

// Graph represents a directed graph. The nodes of the graph must be
// densely numbered starting at 0.
type Graph interface {
	// NumNodes returns the number of nodes in this graph.
	NumNodes() int

	// Out returns the nodes to which node i points.
	Out(i int) []int
}

// IntGraph is a basic Graph g where g[i] is the list of out-edge
// indexes of node i.
type IntGraph [][]int

func (g IntGraph) NumNodes() int {
	return len(g)
}

func (g IntGraph) Out(i int) []int {
	return g[i]
}

// Builder accumulates the edges of an IntGraph over nodes identified
// by arbitrary comparable keys.
type Builder[K comparable] struct {
	index map[K]int
	keys  []K
	g     IntGraph
}

// Node returns the node number of k, adding k if it is new.
func (b *Builder[K]) Node(k K) int {
	if b.index == nil {
		b.index = make(map[K]int)
	}
	if i, ok := b.index[k]; ok {
		return i
	}
	i := len(b.keys)
	b.index[k] = i
	b.keys = append(b.keys, k)
	b.g = append(b.g, nil)
	return i
}

// Edge adds an edge from -> to.
func (b *Builder[K]) Edge(from, to K) {
	i, j := b.Node(from), b.Node(to)
	b.g[i] = append(b.g[i], j)
}

// Graph returns the graph built so far.
func (b *Builder[K]) Graph() IntGraph {
	return b.g
}

// Key returns the key of node i.
func (b *Builder[K]) Key(i int) K {
	return b.keys[i]
}
