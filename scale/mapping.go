// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"errors"
	"fmt"
	"math"
	"time"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/aclements/vizspec/entity"
)

// ErrZeroRange is returned when inverting through a scale whose range
// has zero width.
var ErrZeroRange = errors.New("scale: zero-width range")

// Mapping is the numeric domain-to-range mapping derived from a
// scale's attributes. For time scales the domain is in milliseconds
// since the Unix epoch.
type Mapping struct {
	Type Type

	// Domain maps the numeric domain onto [0, 1].
	Domain mscale.Linear

	// R0 and R1 are the range bounds in pixels.
	R0, R1 float64

	// Levels is the ordered domain of an ordinal scale.
	Levels []string
}

// Apply maps a numeric domain value to the range. For ordinal
// mappings, x is a level index.
func (m Mapping) Apply(x float64) float64 {
	switch m.Type {
	case Identity:
		return x
	case Ordinal:
		n := len(m.Levels)
		if n == 0 {
			return m.R0
		}
		// The middle of the x'th of n equal subdivisions.
		return m.R0 + (x+0.5)/float64(n)*(m.R1-m.R0)
	}
	return m.R0 + m.Domain.Map(x)*(m.R1-m.R0)
}

// Invert maps a range value back to the numeric domain.
func (m Mapping) Invert(y float64) (float64, error) {
	switch m.Type {
	case Identity:
		return y, nil
	case Ordinal:
		return 0, &entity.UnsupportedOperationError{Op: "invert", Kind: "ordinal scale"}
	}
	if m.R1 == m.R0 {
		return 0, ErrZeroRange
	}
	return m.Domain.Unmap((y - m.R0) / (m.R1 - m.R0)), nil
}

// Level returns the index of v in an ordinal mapping.
func (m Mapping) Level(v interface{}) (int, bool) {
	key := fmt.Sprint(v)
	for i, l := range m.Levels {
		if l == key {
			return i, true
		}
	}
	return -1, false
}

// A ValueParser converts a domain value into a number.
type ValueParser func(interface{}) (float64, error)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime converts v to an instant. It accepts time.Time values,
// strings in RFC 3339 or date-only form, and numbers, which are
// milliseconds since the Unix epoch.
func ParseTime(v interface{}) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a time", v)
	}
	if ms, ok := entity.ToFloat(v); ok {
		return FromMillis(ms), nil
	}
	return time.Time{}, fmt.Errorf("cannot use %T as a time", v)
}

// Millis returns t in milliseconds since the Unix epoch.
func Millis(t time.Time) float64 {
	return float64(t.UnixMilli()) + float64(t.Nanosecond()%1e6)/1e6
}

// FromMillis is the inverse of Millis.
func FromMillis(ms float64) time.Time {
	whole := math.Floor(ms)
	ns := time.Duration(math.Round((ms - whole) * 1e6))
	return time.UnixMilli(int64(whole)).Add(ns).UTC()
}

func parseNumber(v interface{}) (float64, error) {
	f, ok := entity.ToFloat(v)
	if !ok {
		return 0, fmt.Errorf("cannot use %v (%T) as a number", v, v)
	}
	return f, nil
}

func parseMillis(v interface{}) (float64, error) {
	t, err := ParseTime(v)
	if err != nil {
		return 0, err
	}
	return Millis(t), nil
}
