// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/table"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/aclements/vizspec/interp"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/svg"
)

// renderer builds a document and writes its output.
type renderer struct {
	opts   *options
	stdout io.Writer
}

func isTerminalFd(fd int) bool {
	return os.Getenv("TERM") != "dumb" && terminal.IsTerminal(fd)
}

func (r *renderer) render(ctx context.Context, doc *interp.Document) error {
	s := svg.New()
	s.Width, s.Height = r.opts.Surface.Width, r.opts.Surface.Height
	if r.opts.Surface.FontSize > 0 {
		s.FontSize = r.opts.Surface.FontSize
	}
	s.Background = r.opts.Surface.Background

	g, err := interp.Build(ctx, doc, interp.DefaultConfig(), s)
	if err != nil {
		return err
	}
	defer g.Close()
	if err := g.Render(); err != nil {
		return err
	}
	if r.opts.Script != "" {
		f, err := os.Open(r.opts.Script)
		if err != nil {
			return err
		}
		err = runScript(g, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", r.opts.Script, err)
		}
	}

	return r.output(func(w io.Writer) error {
		switch {
		case r.opts.Table:
			return writeTables(w, g)
		case r.opts.Deps:
			return g.WriteDot(w)
		}
		if r.opts.Output == "" && !r.opts.Force && isTerminal(w) {
			return fmt.Errorf("not writing SVG to a terminal; use -o or -force")
		}
		_, err := s.WriteTo(w)
		return err
	})
}

// output calls write with the output file or stdout.
func (r *renderer) output(write func(w io.Writer) error) error {
	if r.opts.Output == "" {
		return write(r.stdout)
	}
	f, err := os.Create(r.opts.Output)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info(log.CatRender, "wrote output", "file", r.opts.Output)
	return nil
}

func writeTables(w io.Writer, g *interp.Graph) error {
	for i, d := range g.DataSets() {
		tab, err := d.Table()
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", d.Key())
		table.Fprint(w, tab)
	}
	return nil
}
