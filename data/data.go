// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package data implements datasets: named, reactive sequences of
// records that marks draw from.
//
// A plain dataset holds its items directly. A derived dataset
// computes its items from a source dataset on every read and cannot
// be assigned.
package data

import (
	"fmt"
	"sort"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/vizspec/entity"
	"github.com/aclements/vizspec/internal/log"
	"github.com/aclements/vizspec/registry"
)

// EntityKind is the registry kind of every dataset.
const EntityKind = "data"

// Record is one datum.
type Record = map[string]interface{}

// Type is a dataset variant.
type Type string

const (
	// Plain datasets hold their items.
	Plain Type = "items"

	// Bar datasets add bar bucket fields to the items of a source
	// dataset. See BarBuckets.
	Bar Type = "bar"
)

// DataSet is a dataset entity.
type DataSet struct {
	*entity.Node
	typ Type
}

// New returns an empty plain dataset named name, registered in reg.
func New(reg *registry.Registry, name string) (*DataSet, error) {
	return newDataSet(reg, Plain, name)
}

func newDataSet(reg *registry.Registry, t Type, name string) (*DataSet, error) {
	d := &DataSet{Node: entity.New(reg, EntityKind, name), typ: t}
	if t == Plain {
		d.SetDefault("items", []interface{}{})
	}
	if err := d.Register(d); err != nil {
		return nil, err
	}
	return d, nil
}

// NewBar returns a bar dataset named name that derives its items
// from source, bucketing on the domain field.
func NewBar(reg *registry.Registry, name string, source *DataSet, domain string) (*DataSet, error) {
	d, err := newDataSet(reg, Bar, name)
	if err != nil {
		return nil, err
	}
	if err := d.AddDependency(source); err != nil {
		return nil, err
	}
	if err := d.Set("source", source); err != nil {
		return nil, err
	}
	if err := d.Set("domain", domain); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse builds a dataset from spec and registers it in reg. A spec
// with no type is a plain dataset.
func Parse(reg *registry.Registry, spec entity.Spec) (*DataSet, error) {
	typ, err := spec.String("type", string(Plain))
	if err != nil {
		return nil, err
	}
	t := Type(typ)
	if t != Plain && t != Bar {
		return nil, &entity.UnsupportedKindError{What: "data", Type: typ}
	}
	name := spec.Name()
	if name == "" {
		return nil, fmt.Errorf("data: missing name")
	}
	d, err := newDataSet(reg, t, name)
	if err != nil {
		return nil, err
	}
	if err := d.Node.Apply(spec.Without("type")); err != nil {
		return nil, err
	}
	if t == Bar {
		// Check the source now rather than at the first read.
		if _, err := d.source(); err != nil {
			return nil, err
		}
	}
	log.Debug(log.CatSpec, "parsed dataset", "name", name, "type", t)
	return d, nil
}

// Type returns the dataset's variant.
func (d *DataSet) Type() Type { return d.typ }

// Derived reports whether d computes its items from another dataset.
func (d *DataSet) Derived() bool { return d.typ != Plain }

// Items returns a copy of d's records.
func (d *DataSet) Items() ([]Record, error) {
	switch d.typ {
	case Bar:
		src, err := d.source()
		if err != nil {
			return nil, err
		}
		items, err := src.Items()
		if err != nil {
			return nil, err
		}
		domain, err := entity.String(d, "domain")
		if err != nil {
			return nil, err
		}
		return BarBuckets(items, domain)
	}
	raw, _ := d.Get("items").([]interface{})
	items := make([]Record, 0, len(raw))
	for i, x := range raw {
		r, ok := toRecord(x)
		if !ok {
			return nil, fmt.Errorf("%s: item %d is a %T, not a record", d.Key(), i, x)
		}
		items = append(items, r)
	}
	return items, nil
}

func toRecord(x interface{}) (Record, bool) {
	switch x := x.(type) {
	case Record:
		return x, true
	case entity.Spec:
		return x.Map(), true
	}
	return nil, false
}

// SetItems replaces d's records and fires "change". Derived datasets
// are read-only and return an *entity.UnsupportedOperationError.
func (d *DataSet) SetItems(items []Record) error {
	if d.Derived() {
		return &entity.UnsupportedOperationError{Op: "setItems", Kind: "derived dataset"}
	}
	raw := make([]interface{}, len(items))
	for i, r := range items {
		raw[i] = r
	}
	return d.Set("items", raw)
}

// Set assigns attribute key. The items of a derived dataset are
// computed, so assigning them returns an
// *entity.UnsupportedOperationError.
func (d *DataSet) Set(key string, value interface{}) error {
	if key == "items" && d.Derived() {
		return &entity.UnsupportedOperationError{Op: "set items", Kind: "derived dataset"}
	}
	return d.Node.Set(key, value)
}

func (d *DataSet) source() (*DataSet, error) {
	e, err := entity.Ref(d, "source")
	if err != nil {
		return nil, err
	}
	src, ok := e.(*DataSet)
	if !ok {
		return nil, fmt.Errorf("%s: source %s is not a dataset", d.Key(), e.Base().Key())
	}
	return src, nil
}

// Table returns d's records as a table with one column per field, in
// order of first appearance. Numeric columns are float64; all others
// are formatted as strings.
func (d *DataSet) Table() (*table.Table, error) {
	items, err := d.Items()
	if err != nil {
		return nil, err
	}
	var cols []string
	seen := map[string]bool{}
	for _, r := range items {
		keys := make([]string, 0, len(r))
		for k := range r {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			cols = append(cols, k)
		}
	}

	b := new(table.Builder)
	for _, col := range cols {
		nums := make([]float64, len(items))
		numeric := true
		for i, r := range items {
			v, ok := r[col]
			if _, isStr := v.(string); !ok || isStr {
				numeric = false
				break
			}
			if nums[i], ok = entity.ToFloat(v); !ok {
				numeric = false
				break
			}
		}
		if numeric {
			b.Add(col, nums)
			continue
		}
		strs := make([]string, len(items))
		for i, r := range items {
			if v, ok := r[col]; ok && v != nil {
				strs[i] = fmt.Sprint(v)
			}
		}
		b.Add(col, strs)
	}
	return b.Done(), nil
}
