// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/interact"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/interp"
	"github.com/aclements/vizspec/registry"
)

// runScript replays the gesture script in r against g.
func runScript(g *interp.Graph, r io.Reader) error {
	scan := bufio.NewScanner(r)
	for line := 1; scan.Scan(); line++ {
		text := strings.TrimSpace(scan.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		args, err := shellquote.Split(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := runCommand(g, args); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scan.Err()
}

func runCommand(g *interp.Graph, args []string) error {
	log.Debug(log.CatInteract, "script", "command", args)
	switch args[0] {
	case "drag":
		nums, err := parseArgs(args, 5)
		if err != nil {
			return err
		}
		input, err := targetInput(g, args[1])
		if err != nil {
			return err
		}
		from := entity.Gesture{X: nums[0], Y: nums[1]}
		to := entity.Gesture{X: nums[2], Y: nums[3]}
		for _, ev := range []event.Event{
			{Name: entity.DragStart, Data: from},
			{Name: entity.Drag, Data: to},
			{Name: entity.DragEnd, Data: to},
		} {
			if err := input.Fire(ev); err != nil {
				return err
			}
		}
		return nil

	case "wheel":
		nums, err := parseArgs(args, 4)
		if err != nil {
			return err
		}
		input, err := targetInput(g, args[1])
		if err != nil {
			return err
		}
		return input.Fire(event.Event{Name: entity.Wheel, Data: entity.Gesture{X: nums[0], Y: nums[1], Delta: nums[2]}})

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: set KIND:NAME.ATTR value")
		}
		p, err := registry.ParsePropertyPath(args[1])
		if err != nil {
			return err
		}
		e, err := g.Models.ResolvePath(p)
		if err != nil {
			return err
		}
		setter, ok := e.(interface {
			Set(key string, value interface{}) error
		})
		if !ok {
			return fmt.Errorf("%s is read-only", args[1])
		}
		var v interface{} = args[2]
		if f, err := strconv.ParseFloat(args[2], 64); err == nil {
			v = f
		}
		return setter.Set(p.Attr, v)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// parseArgs checks that args is a command, a path, and n-1 numbers,
// and returns the numbers.
func parseArgs(args []string, n int) ([]float64, error) {
	if len(args) != n+1 {
		return nil, fmt.Errorf("%s: want %d arguments, got %d", args[0], n, len(args)-1)
	}
	nums := make([]float64, n-1)
	for i, a := range args[2:] {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad number %q", args[0], a)
		}
		nums[i] = f
	}
	return nums, nil
}

func targetInput(g *interp.Graph, path string) (*event.Dispatcher, error) {
	v, err := g.Views.Resolve(path)
	if err != nil {
		return nil, err
	}
	t, ok := v.(interact.Target)
	if !ok {
		return nil, fmt.Errorf("%s does not take gestures", path)
	}
	return t.Input(), nil
}
