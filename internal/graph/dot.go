// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dot contains options for writing a Graph in Graphviz Dot form.
type Dot struct {
	// Name is the name given to the graph.
	Name string

	// Label returns the label of node. If nil, nodes are labeled
	// with their node numbers.
	Label func(node int) string

	// Cluster returns the name of the cluster node is drawn in, or
	// "" to draw it at the top level. Clusters appear in order of
	// their first node.
	Cluster func(node int) string
}

// Fprint writes the Dot form of g to w. All nodes are written before
// any edge.
func (d Dot) Fprint(g Graph, w io.Writer) error {
	label := d.Label
	if label == nil {
		label = strconv.Itoa
	}

	var clusters []string
	members := make(map[string][]int)
	for i := 0; i < g.NumNodes(); i++ {
		c := ""
		if d.Cluster != nil {
			c = d.Cluster(i)
		}
		if _, ok := members[c]; !ok {
			clusters = append(clusters, c)
		}
		members[c] = append(members[c], i)
	}

	// bufio.Writer keeps the first write error; Flush reports it.
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", dotString(d.Name))
	for _, c := range clusters {
		if c != "" {
			fmt.Fprintf(bw, "subgraph %s {\nlabel=%s;\n", dotString("cluster_"+c), dotString(c))
		}
		for _, i := range members[c] {
			fmt.Fprintf(bw, "n%d [label=%s];\n", i, dotString(label(i)))
		}
		if c != "" {
			fmt.Fprintf(bw, "}\n")
		}
	}
	for i := 0; i < g.NumNodes(); i++ {
		for _, out := range g.Out(i) {
			fmt.Fprintf(bw, "n%d -> n%d;\n", i, out)
		}
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}

var dotEscaper = strings.NewReplacer(
	"\n", `\n`,
	`\`, `\\`, `"`, `\"`,
	"{", `\{`, "}", `\}`,
	"<", `\<`, ">", `\>`, "|", `\|`,
)

// dotString returns s as a quoted dot string.
func dotString(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
