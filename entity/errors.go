// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSlot is matched by every *InvalidSlotError.
	ErrInvalidSlot = errors.New("entity: invalid attachment slot")
	// ErrUnsupportedOperation is matched by every
	// *UnsupportedOperationError.
	ErrUnsupportedOperation = errors.New("entity: unsupported operation")
	// ErrUnsupportedKind is matched by every *UnsupportedKindError.
	ErrUnsupportedKind = errors.New("entity: unsupported kind")
	// ErrCycle is matched by every *CycleError.
	ErrCycle = errors.New("entity: dependency cycle")
	// ErrNoRegistry is returned when a reference is bound on an
	// entity that has no registry to resolve it in.
	ErrNoRegistry = errors.New("entity: reference on unregistered entity")
)

// InvalidSlotError reports an attempt to attach a child at a slot
// the parent does not declare.
type InvalidSlotError struct {
	Parent string // "kind:name" of the parent
	Slot   string
	Slots  []string // the parent's attachment points
}

func (e *InvalidSlotError) Error() string {
	if len(e.Slots) == 0 {
		return fmt.Sprintf("%s: no attachment points (attaching at %q)", e.Parent, e.Slot)
	}
	return fmt.Sprintf("%s: invalid attachment point %q (have %s)", e.Parent, e.Slot, strings.Join(e.Slots, ", "))
}

func (e *InvalidSlotError) Is(target error) bool { return target == ErrInvalidSlot }

// UnsupportedOperationError reports an operation that a variant does
// not implement, or a mutation of a read-only entity.
type UnsupportedOperationError struct {
	Op   string // operation, e.g. "pan"
	Kind string // variant, e.g. "ordinal scale"
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s not supported by %s", e.Op, e.Kind)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

// UnsupportedKindError reports an unknown "type" discriminator.
type UnsupportedKindError struct {
	What string // what was being parsed, e.g. "scale"
	Type string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported %s type %q", e.What, e.Type)
}

func (e *UnsupportedKindError) Is(target error) bool { return target == ErrUnsupportedKind }

// CycleError reports an object reference that would make an entity
// re-trigger its own change events.
type CycleError struct {
	// Path lists the "kind:name" keys along the cycle; the first
	// and last elements are the same.
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }
