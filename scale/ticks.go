// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"
	"time"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/aclements/vizspec/entity"
)

// A Tick is one labeled position along a scale.
type Tick struct {
	Value interface{} // domain value
	Pixel float64     // range position
	Label string
}

// Ticks returns at most max nicely-spaced major ticks over the
// scale's domain, in increasing domain order.
func (s *Scale) Ticks(max int) ([]Tick, error) {
	if max < 1 {
		return nil, nil
	}
	if s.typ == Identity {
		return nil, &entity.UnsupportedOperationError{Op: "ticks", Kind: "identity scale"}
	}
	m, err := s.DerivedMapping()
	if err != nil {
		return nil, err
	}

	if s.typ == Ordinal {
		step := (len(m.Levels) + max - 1) / max
		var ticks []Tick
		for i := 0; i < len(m.Levels); i += step {
			ticks = append(ticks, Tick{m.Levels[i], m.Apply(float64(i)), m.Levels[i]})
		}
		return ticks, nil
	}

	lo, hi := m.Domain.Min, m.Domain.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	var major []float64
	if lo == hi || math.IsNaN(lo) || math.IsInf(hi-lo, 0) {
		major = []float64{lo}
	} else {
		ls := mscale.Linear{Min: lo, Max: hi}
		o := mscale.TickOptions{Max: max}
		if s.typ == Time {
			// Don't tick below whole milliseconds.
			o.MinLevel, o.MaxLevel = 0, 1000
		}
		major, _ = ls.Ticks(o)
	}

	ticks := make([]Tick, len(major))
	for i, x := range major {
		t := Tick{Value: x, Pixel: m.Apply(x), Label: fmt.Sprintf("%.6g", x)}
		if s.typ == Time {
			tm := FromMillis(x)
			t.Value, t.Label = tm, formatTime(tm)
		}
		ticks[i] = t
	}
	return ticks, nil
}

func formatTime(t time.Time) string {
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
