// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aclements/vizspec/internal/log"
)

// options is the resolved configuration of one vizrender run.
type options struct {
	Output        string        `mapstructure:"output"`
	Script        string        `mapstructure:"script"`
	Debug         bool          `mapstructure:"debug"`
	Table         bool          `mapstructure:"table"`
	Deps          bool          `mapstructure:"deps"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	Trace         bool          `mapstructure:"trace"`
	Force         bool          `mapstructure:"force"`
	Surface       struct {
		Width      int    `mapstructure:"width"`
		Height     int    `mapstructure:"height"`
		FontSize   int    `mapstructure:"font_size"`
		Background string `mapstructure:"background"`
	} `mapstructure:"surface"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "")
	v.SetDefault("script", "")
	v.SetDefault("debug", false)
	v.SetDefault("table", false)
	v.SetDefault("deps", false)
	v.SetDefault("watch", false)
	v.SetDefault("watch_debounce", 200*time.Millisecond)
	v.SetDefault("trace", false)
	v.SetDefault("force", false)
	v.SetDefault("surface.width", 0)
	v.SetDefault("surface.height", 0)
	v.SetDefault("surface.font_size", 10)
	v.SetDefault("surface.background", "")
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "vizrender [flags] document",
		Short: "Render a visualization document to SVG",
		Long: `vizrender builds the entity graph of a visualization document,
optionally replays a gesture script against it, and writes the rendered
views as SVG, the document's datasets as tables, or the dependency graph
in Graphviz Dot form.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "read settings from YAML `file`")
	f := cmd.Flags()
	f.StringP("output", "o", "", "write output to `file` (default: stdout)")
	f.String("script", "", "replay the gesture script in `file` before output")
	f.Bool("debug", false, "log debugging output to stderr")
	f.Bool("table", false, "print datasets as tables instead of rendering")
	f.Bool("deps", false, "print the dependency graph in Dot form instead of rendering")
	f.Bool("watch", false, "re-render whenever the document changes")
	f.Duration("watch-debounce", 200*time.Millisecond, "wait `duration` after a change before re-rendering")
	f.Bool("trace", false, "export trace spans to stderr")
	f.Bool("force", false, "write SVG even if stdout is a terminal")
	f.Int("width", 0, "canvas width in pixels (default: fit)")
	f.Int("height", 0, "canvas height in pixels (default: fit)")
	f.Int("font-size", 10, "axis label size in pixels")
	f.String("background", "", "canvas background color")

	for key, flag := range map[string]string{
		"output":             "output",
		"script":             "script",
		"debug":              "debug",
		"table":              "table",
		"deps":               "deps",
		"watch":              "watch",
		"watch_debounce":     "watch-debounce",
		"trace":              "trace",
		"force":              "force",
		"surface.width":      "width",
		"surface.height":     "height",
		"surface.font_size":  "font-size",
		"surface.background": "background",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

func loadOptions(v *viper.Viper, cfgFile string) (*options, error) {
	setDefaults(v)
	v.SetEnvPrefix("VIZRENDER")
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	opts := new(options)
	if err := v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return opts, nil
}

func run(ctx context.Context, location string, opts *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Debug {
		log.Init(stderr, log.LevelDebug)
	}
	if opts.Trace {
		shutdown, err := startTracing(stderr)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	l := newLoader()
	r := &renderer{opts: opts, stdout: stdout}
	doc, _, err := l.load(ctx, location)
	if err != nil {
		return err
	}
	if err := r.render(ctx, doc); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	if opts.Output == "" {
		return fmt.Errorf("-watch requires -o")
	}
	if location == "-" || strings.Contains(location, "://") {
		return fmt.Errorf("-watch requires a local document file")
	}
	return watch(ctx, location, opts.WatchDebounce, func() error {
		doc, changed, err := l.load(ctx, location)
		if err != nil {
			return err
		}
		if !changed {
			log.Debug(log.CatWatch, "document unchanged", "location", location)
			return nil
		}
		return r.render(ctx, doc)
	}, func(err error) {
		fmt.Fprintf(stderr, "vizrender: %v\n", err)
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminalFd(int(f.Fd()))
}
