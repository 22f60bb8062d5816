// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aclements/vizspec/entity"
)

// Document is a parsed visualization document: a list of entity specs
// per section, in document order.
type Document struct {
	Sections []Section
}

// Section is one top-level section of a document.
type Section struct {
	Name  string
	Specs []entity.Spec
}

// Specs returns every spec in the sections named name, in document
// order.
func (d *Document) Specs(name string) []entity.Spec {
	var out []entity.Spec
	for _, s := range d.Sections {
		if s.Name == name {
			out = append(out, s.Specs...)
		}
	}
	return out
}

// Parse reads a YAML (or JSON) document from r.
func Parse(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, err
	}
	n := &root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return &Document{}, nil
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document must be a mapping of sections", n.Line)
	}
	doc := new(Document)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		sec := Section{Name: kn.Value}
		switch vn.Kind {
		case yaml.ScalarNode:
			if vn.Tag != "!!null" {
				return nil, fmt.Errorf("line %d: section %q must be a list", vn.Line, sec.Name)
			}
		case yaml.SequenceNode:
			for _, item := range vn.Content {
				var spec entity.Spec
				if err := item.Decode(&spec); err != nil {
					return nil, fmt.Errorf("section %q: %w", sec.Name, err)
				}
				sec.Specs = append(sec.Specs, spec)
			}
		default:
			return nil, fmt.Errorf("line %d: section %q must be a list", vn.Line, sec.Name)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

// ParseBytes is Parse on an in-memory document.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}
