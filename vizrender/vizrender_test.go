// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/vizspec/interp"
	"github.com/aclements/vizspec/scale"
	"github.com/aclements/vizspec/svg"
)

const testDoc = `
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
marks:
  - name: dots
    type: circle
    source: "data:pts"
    area: "area:main"
    properties:
      cx: {value: x, scale: "scale:x"}
      cy: {value: y, scale: "scale:y"}
axes:
  - name: xaxis
    scale: "scale:x"
    area: "area:main"
areas:
  - name: main
interactions:
  - name: pan
    type: pan
    scale: "scale:x"
    area: "area:main"
  - name: zoom
    type: zoom
    scale: "scale:x"
    area: "area:main"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func defaultOptions() *options {
	opts := new(options)
	opts.WatchDebounce = 10 * time.Millisecond
	opts.Surface.FontSize = 10
	return opts
}

func buildTestGraph(t *testing.T) *interp.Graph {
	t.Helper()
	doc, err := interp.ParseBytes([]byte(testDoc))
	require.NoError(t, err)
	g, err := interp.Build(context.Background(), doc, interp.DefaultConfig(), svg.New())
	require.NoError(t, err)
	require.NoError(t, g.Render())
	return g
}

func domainOf(t *testing.T, g *interp.Graph, path string) (float64, float64) {
	t.Helper()
	e, err := g.Models.Resolve(path)
	require.NoError(t, err)
	b, end, err := e.(*scale.Scale).Span()
	require.NoError(t, err)
	return b, end
}

func TestScript(t *testing.T) {
	g := buildTestGraph(t)
	script := `
# Drag right by 40 pixels, then back by 20.
drag area:main 100 50 140 50
drag 'area:main' 140 50 120 50

wheel area:main 0 0 0
set scale:x.rangeEnd 400
`
	require.NoError(t, runScript(g, strings.NewReader(script)))
	b, e := domainOf(t, g, "scale:x")
	assert.InDelta(t, -1, b, 1e-9)
	assert.InDelta(t, 9, e, 1e-9)
	x, _ := g.Models.Resolve("scale:x")
	v, _ := x.Lookup("rangeEnd")
	assert.Equal(t, 400.0, v)
}

func TestScriptErrors(t *testing.T) {
	for _, script := range []string{
		"spin area:main\n",
		"drag area:main 1 2 3\n",
		"drag area:main 1 2 3 x\n",
		"drag area:nope 1 2 3 4\n",
		"wheel data:pts 0 0 1\n",
		"wheel 'area:main 1 2 3\n",
		"set scale:x 1\n",
		"set scale:nope.domainEnd 1\n",
	} {
		g := buildTestGraph(t)
		err := runScript(g, strings.NewReader(script))
		assert.Error(t, err, script)
	}
	g := buildTestGraph(t)
	err := runScript(g, strings.NewReader("\n\nspin\n"))
	assert.ErrorContains(t, err, "line 3")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "plot.yaml", testDoc)
	script := writeFile(t, dir, "gestures", "wheel area:main 0 0 10\n")

	opts := defaultOptions()
	opts.Output = filepath.Join(dir, "plot.svg")
	opts.Script = script
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), doc, opts, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	out, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Contains(t, string(out), `id="mark-dots"`)
	assert.Contains(t, string(out), `id="axis-xaxis"`)

	// Tables and the dependency graph go to stdout.
	opts = defaultOptions()
	opts.Table = true
	stdout.Reset()
	require.NoError(t, run(context.Background(), doc, opts, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "data:pts:")
	assert.Equal(t, []string{"x", "y"}, strings.Fields(strings.Split(stdout.String(), "\n")[1]))

	opts = defaultOptions()
	opts.Deps = true
	stdout.Reset()
	require.NoError(t, run(context.Background(), doc, opts, &stdout, &stderr))
	assert.Contains(t, stdout.String(), `[label="mark:dots"]`)

	// A buffer is not a terminal.
	opts = defaultOptions()
	stdout.Reset()
	require.NoError(t, run(context.Background(), doc, opts, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "<svg")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "plot.yaml", testDoc)
	var stdout, stderr bytes.Buffer

	opts := defaultOptions()
	opts.Watch = true
	assert.ErrorContains(t, run(context.Background(), doc, opts, &stdout, &stderr), "requires -o")

	opts = defaultOptions()
	assert.Error(t, run(context.Background(), filepath.Join(dir, "missing.yaml"), opts, &stdout, &stderr))

	bad := writeFile(t, dir, "bad.yaml", "widgets: []\n")
	assert.ErrorIs(t, run(context.Background(), bad, opts, &stdout, &stderr), interp.ErrUnknownSection)
}

func TestLoaderCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plot.yaml", testDoc)
	l := newLoader()
	ctx := context.Background()

	d1, changed, err := l.load(ctx, path)
	require.NoError(t, err)
	assert.True(t, changed)
	d2, changed, err := l.load(ctx, path)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, d1, d2)

	writeFile(t, dir, "plot.yaml", testDoc+"\n# edited\n")
	_, changed, err = l.load(ctx, path)
	require.NoError(t, err)
	assert.True(t, changed)

	l.stdin = strings.NewReader("scales: [{name: s}]")
	d, _, err := l.load(ctx, "-")
	require.NoError(t, err)
	assert.Len(t, d.Specs("scales"), 1)
}

func TestContentHash(t *testing.T) {
	a, err := contentHash([]byte("abc"))
	require.NoError(t, err)
	b, err := contentHash([]byte("abc"))
	require.NoError(t, err)
	c, err := contentHash([]byte("abd"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plot.yaml", testDoc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 10*time.Millisecond, func() error {
			rebuilt <- struct{}{}
			return nil
		}, func(err error) { t.Error(err) })
	}()

	// Give the watcher time to start, then keep editing until it
	// notices.
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for seen := false; !seen; {
		select {
		case <-tick.C:
			writeFile(t, dir, "plot.yaml", testDoc+"\n# "+time.Now().String()+"\n")
		case <-rebuilt:
			seen = true
		case <-deadline:
			t.Fatal("no rebuild after writing the document")
		}
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "surface:\n  font_size: 14\n  background: ivory\ndebug: true\nwatch_debounce: 1s\n")
	opts, err := loadOptions(viper.New(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 14, opts.Surface.FontSize)
	assert.Equal(t, "ivory", opts.Surface.Background)
	assert.True(t, opts.Debug)
	assert.Equal(t, time.Second, opts.WatchDebounce)

	opts, err = loadOptions(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Surface.FontSize)
	assert.Equal(t, 200*time.Millisecond, opts.WatchDebounce)

	_, err = loadOptions(viper.New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRootCmd(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "plot.yaml", testDoc)
	out := filepath.Join(dir, "out.svg")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-o", out, "--font-size", "12", doc})
	require.NoError(t, cmd.Execute())
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `font-size="12"`)

	cmd = newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	assert.Error(t, cmd.Execute())
}
