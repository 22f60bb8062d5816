// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"bytes"
	"reflect"
	"testing"
)

// Example graph from Muchnick, "Advanced Compiler Design &
// Implementation", figure 8.21.
var graphMuchnick = IntGraph{
	0: {1},
	1: {2},
	2: {3, 4},
	3: {2},
	4: {5, 6},
	5: {7},
	6: {7},
	7: {},
}

func TestPath(t *testing.T) {
	for _, test := range []struct {
		from, to int
		want     []int
	}{
		{0, 7, []int{0, 1, 2, 4, 5, 7}},
		{2, 2, []int{2, 3, 2}},
		{3, 4, []int{3, 2, 4}},
		{7, 0, nil},
		{0, 0, nil},
	} {
		got := Path(graphMuchnick, test.from, test.to)
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("Path(%d, %d): want %v, got %v", test.from, test.to, test.want, got)
		}
	}
}

func TestSelfLoop(t *testing.T) {
	g := IntGraph{0: {0}}
	if got, want := Path(g, 0, 0), []int{0, 0}; !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestBuilder(t *testing.T) {
	var b Builder[string]
	b.Edge("mark:m", "scale:x")
	b.Edge("mark:m", "data:d")
	b.Edge("scale:x", "data:d")
	b.Node("area:a")

	want := IntGraph{{1, 2}, {2}, nil, nil}
	if got := b.Graph(); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
	if b.Key(2) != "data:d" || b.Node("scale:x") != 1 {
		t.Errorf("bad node numbering")
	}
}

func TestDot(t *testing.T) {
	g := IntGraph{{1}, {}, {0}}
	var buf bytes.Buffer
	d := Dot{
		Name:    "deps",
		Label:   func(n int) string { return []string{`a"b`, "c", "d"}[n] },
		Cluster: func(n int) string { return []string{"scale", "", "scale"}[n] },
	}
	if err := d.Fprint(g, &buf); err != nil {
		t.Fatal(err)
	}
	want := `digraph "deps" {
subgraph "cluster_scale" {
label="scale";
n0 [label="a\"b"];
n2 [label="d"];
}
n1 [label="c"];
n0 -> n1;
n2 -> n0;
}
`
	if buf.String() != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}
