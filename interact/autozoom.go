// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/vizspec/data"
	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/event"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/scale"
)

// DefaultPadding is the fraction of the fitted range domain that an
// AutoZoom adds on each side.
const DefaultPadding = 0.05

// connectAutoZoom makes every change to the domain scale refit the
// range scale's domain to the records visible in the domain scale.
func (in *Interaction) connectAutoZoom() error {
	in.SetDefault("padding", DefaultPadding)
	ds, err := in.scaleAttr("domainScale")
	if err != nil {
		return err
	}
	if _, err := in.scaleAttr("rangeScale"); err != nil {
		return err
	}
	if _, err := in.dataSet(); err != nil {
		return err
	}
	for _, k := range []string{"domainKey", "rangeKey"} {
		if v, _ := entity.String(in, k); v == "" {
			return fmt.Errorf("missing %s", k)
		}
	}
	var handles []event.Handle
	for _, k := range []string{"domainBegin", "domainEnd"} {
		handles = append(handles, ds.On(event.ChangeOf(k), func(event.Event) error {
			return in.Fit()
		}))
	}
	in.stop = func() {
		for _, h := range handles {
			ds.Off(h)
		}
	}
	return nil
}

func (in *Interaction) dataSet() (*data.DataSet, error) {
	e, err := entity.Ref(in, "dataSet")
	if err != nil {
		return nil, err
	}
	d, ok := e.(*data.DataSet)
	if !ok {
		return nil, fmt.Errorf("%s is not a dataset", e.Base().Key())
	}
	return d, nil
}

// Fit sets the range scale's domain to the padded bounds of the
// rangeKey values of the records whose domainKey value lies in the
// domain scale's domain. The range scale's domain keeps its
// direction. If no record is visible, Fit does nothing.
//
// Fit is only meaningful for AutoZoom interactions.
func (in *Interaction) Fit() error {
	if in.typ != AutoZoom {
		return &entity.UnsupportedOperationError{Op: "fit", Kind: string(in.typ) + " interaction"}
	}
	ds, err := in.scaleAttr("domainScale")
	if err != nil {
		return err
	}
	rs, err := in.scaleAttr("rangeScale")
	if err != nil {
		return err
	}
	d, err := in.dataSet()
	if err != nil {
		return err
	}
	dk, _ := entity.String(in, "domainKey")
	rk, _ := entity.String(in, "rangeKey")
	pad, err := entity.Float(in, "padding")
	if err != nil {
		return err
	}

	lo, hi, err := ds.Span()
	if err != nil {
		return err
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	items, err := d.Items()
	if err != nil {
		return err
	}
	var ys []float64
	for _, r := range items {
		x, err := domainValue(ds, r[dk])
		if err != nil || x < lo || x > hi {
			continue
		}
		if y, ok := entity.ToFloat(r[rk]); ok {
			ys = append(ys, y)
		}
	}
	if len(ys) == 0 {
		return nil
	}
	min, max := stats.Bounds(ys)
	p := (max - min) * pad
	min, max = min-p, max+p

	b, e, err := rs.Span()
	if err != nil {
		return err
	}
	if b > e {
		min, max = max, min
	}
	log.Debug(log.CatInteract, "autozoom", "interaction", in.Key(), "visible", len(ys), "min", min, "max", max)
	return rs.SetDomain(min, max)
}

// domainValue converts a record value to the numeric domain of s.
func domainValue(s *scale.Scale, v interface{}) (float64, error) {
	if s.Type() == scale.Time {
		t, err := scale.ParseTime(v)
		if err != nil {
			return 0, err
		}
		return scale.Millis(t), nil
	}
	f, ok := entity.ToFloat(v)
	if !ok {
		return 0, fmt.Errorf("%v is not a number", v)
	}
	return f, nil
}
