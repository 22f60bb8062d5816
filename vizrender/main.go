// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vizrender renders a visualization document to SVG.
//
// vizrender reads a document (a YAML or JSON mapping of sections to
// entity specs) from a path or URL, builds its entity graph, and
// writes the rendered views as SVG. A gesture script can be replayed
// against the graph before output to render the result of panning
// and zooming. With -watch, vizrender rebuilds the output whenever
// the document changes.
//
// Gesture scripts have one command per line, split with shell quoting
// rules:
//
//	drag KIND:NAME x0 y0 x1 y1
//	wheel KIND:NAME x y delta
//	set KIND:NAME.ATTR value
//
// Blank lines and lines starting with # are ignored.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetPrefix("vizrender: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
