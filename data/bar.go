// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/vizspec/entity"
)

// BarFill is the fraction of the smallest gap between adjacent domain
// values that a bar covers.
const BarFill = 0.95

// BarBuckets returns a copy of items with bar geometry added to each
// record: barWidth is BarFill times the smallest gap between adjacent
// domain values, and bucketLow and bucketHigh center a bar of that
// width on the record's domain value, which sits on base 0. With
// fewer than two items barWidth is 0.
//
// Items keep their original order.
func BarBuckets(items []Record, domain string) ([]Record, error) {
	vals := make([]float64, len(items))
	for i, r := range items {
		v, ok := entity.ToFloat(r[domain])
		if _, isStr := r[domain].(string); !ok || isStr {
			return nil, fmt.Errorf("bar: item %d: domain field %q is %v, not a number", i, domain, r[domain])
		}
		vals[i] = v
	}

	width := 0.0
	if len(vals) >= 2 {
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		gap := math.Inf(1)
		for i := 1; i < len(sorted); i++ {
			gap = math.Min(gap, sorted[i]-sorted[i-1])
		}
		width = BarFill * gap
	}

	out := make([]Record, len(items))
	for i, r := range items {
		o := make(Record, len(r)+4)
		for k, v := range r {
			o[k] = v
		}
		o["bucketLow"] = vals[i] - width/2
		o["bucketHigh"] = vals[i] + width/2
		o["base"] = 0.0
		o["barWidth"] = width
		out[i] = o
	}
	return out, nil
}
