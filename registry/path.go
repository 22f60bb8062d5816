// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"regexp"
	"strings"
)

var (
	objectPathRe   = regexp.MustCompile(`^[\w\-]+:[\w\-]+$`)
	propertyPathRe = regexp.MustCompile(`^[\w\-]+:[\w\-]+\.[\w\-]+$`)
)

// Path is a parsed reference of the form KIND:NAME (an object
// reference) or KIND:NAME.ATTR (a property reference).
type Path struct {
	Kind, Name string

	// Attr is the attribute name of a property reference, or ""
	// for an object reference.
	Attr string
}

// IsObjectPath reports whether s has the form KIND:NAME.
func IsObjectPath(s string) bool {
	return objectPathRe.MatchString(s)
}

// IsPropertyPath reports whether s has the form KIND:NAME.ATTR.
func IsPropertyPath(s string) bool {
	return propertyPathRe.MatchString(s)
}

// ParsePath parses either form of path. It returns a
// *MalformedPathError if s is neither.
func ParsePath(s string) (Path, error) {
	switch {
	case IsObjectPath(s):
		i := strings.IndexByte(s, ':')
		return Path{Kind: s[:i], Name: s[i+1:]}, nil
	case IsPropertyPath(s):
		i := strings.IndexByte(s, ':')
		j := strings.IndexByte(s, '.')
		return Path{Kind: s[:i], Name: s[i+1 : j], Attr: s[j+1:]}, nil
	}
	return Path{}, &MalformedPathError{Path: s}
}

// ParseObjectPath parses a KIND:NAME path.
func ParseObjectPath(s string) (Path, error) {
	if !IsObjectPath(s) {
		return Path{}, &MalformedPathError{Path: s, Want: "object"}
	}
	return ParsePath(s)
}

// ParsePropertyPath parses a KIND:NAME.ATTR path.
func ParsePropertyPath(s string) (Path, error) {
	if !IsPropertyPath(s) {
		return Path{}, &MalformedPathError{Path: s, Want: "property"}
	}
	return ParsePath(s)
}

// IsProperty reports whether p is a property reference.
func (p Path) IsProperty() bool {
	return p.Attr != ""
}

// Object returns the object reference part of p.
func (p Path) Object() Path {
	return Path{Kind: p.Kind, Name: p.Name}
}

// Key returns the registry key of the object p refers to.
func (p Path) Key() string {
	return Key(p.Kind, p.Name)
}

func (p Path) String() string {
	if p.Attr == "" {
		return p.Key()
	}
	return p.Key() + "." + p.Attr
}

// Key returns the registry key for (kind, name).
func Key(kind, name string) string {
	return kind + ":" + name
}
