// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// Path returns a shortest path of nodes from -> ... -> to, or nil if
// to is not reachable from from. A path from a node to itself
// requires at least one edge.
func Path(g Graph, from, to int) []int {
	prev := make([]int, g.NumNodes())
	for i := range prev {
		prev[i] = -1
	}
	queue := []int{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, succ := range g.Out(n) {
			if succ == to {
				path := []int{to, n}
				for p := n; p != from; {
					p = prev[p]
					path = append(path, p)
				}
				return Reverse(path)
			}
			if prev[succ] == -1 && succ != from {
				prev[succ] = n
				queue = append(queue, succ)
			}
		}
	}
	return nil
}

// Reverse reverses xs in place and returns the slice.
func Reverse(xs []int) []int {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
	return xs
}
