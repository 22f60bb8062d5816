// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event implements a synchronous, per-object publish/subscribe
// dispatcher.
//
// A Dispatcher knows nothing about other dispatchers. Listeners for a
// given event name run in subscription order, and a listener may fire
// further events (on this or any other dispatcher) which run to
// completion before Fire returns. There is no queue and no batching.
//
// Dispatchers are not safe for concurrent use.
package event

import (
	"errors"
	"fmt"
)

// Change is the name of the event fired whenever any attribute of an
// object changes.
const Change = "change"

// ChangeOf returns the name of the event fired when attribute key
// changes.
func ChangeOf(key string) string {
	return Change + ":" + key
}

// DefaultMaxDepth is the re-entrant firing depth used by a Dispatcher
// whose MaxDepth is 0.
const DefaultMaxDepth = 64

// ErrReentrancy is returned (wrapped) by Fire when an event fires
// re-entrantly on the same dispatcher more than MaxDepth times. This
// almost always indicates a binding cycle whose values never settle.
var ErrReentrancy = errors.New("event: re-entrancy limit exceeded")

// Event is a single notification delivered to listeners.
type Event struct {
	// Name is the event name, such as "change" or "change:width".
	Name string

	// Source is the object on whose behalf the event fired.
	Source interface{}

	// Key is the attribute key for attribute change events.
	Key string

	// Data is an event-specific payload.
	Data interface{}
}

// A Listener handles an event. A non-nil error stops delivery of the
// event to later listeners and is returned from Fire.
type Listener func(ev Event) error

// Handle identifies one subscription. The zero Handle is not a valid
// subscription.
type Handle struct {
	name string
	id   uint64
}

// Valid reports whether h refers to a subscription.
func (h Handle) Valid() bool {
	return h.id != 0
}

// Dispatcher is an ordered set of listeners keyed by event name. The
// zero Dispatcher is ready to use.
type Dispatcher struct {
	// MaxDepth bounds re-entrant firing. If 0, DefaultMaxDepth is
	// used.
	MaxDepth int

	listeners map[string][]entry
	next      uint64
	depth     int
}

type entry struct {
	id uint64
	fn Listener
}

// On subscribes fn to events named name.
func (d *Dispatcher) On(name string, fn Listener) Handle {
	if d.listeners == nil {
		d.listeners = make(map[string][]entry)
	}
	d.next++
	// Always build a new slice so an in-progress Fire keeps
	// iterating over its own snapshot.
	old := d.listeners[name]
	ls := make([]entry, len(old), len(old)+1)
	copy(ls, old)
	d.listeners[name] = append(ls, entry{d.next, fn})
	return Handle{name, d.next}
}

// Off removes the subscription h. It reports whether h was
// subscribed.
func (d *Dispatcher) Off(h Handle) bool {
	old := d.listeners[h.name]
	for i, e := range old {
		if e.id != h.id {
			continue
		}
		ls := make([]entry, 0, len(old)-1)
		ls = append(ls, old[:i]...)
		ls = append(ls, old[i+1:]...)
		if len(ls) == 0 {
			delete(d.listeners, h.name)
		} else {
			d.listeners[h.name] = ls
		}
		return true
	}
	return false
}

// Count returns the number of listeners subscribed to name.
func (d *Dispatcher) Count(name string) int {
	return len(d.listeners[name])
}

// Fire delivers ev to every listener subscribed to ev.Name at the
// time of the call, in subscription order.
func (d *Dispatcher) Fire(ev Event) error {
	ls := d.listeners[ev.Name]
	if len(ls) == 0 {
		return nil
	}

	max := d.MaxDepth
	if max == 0 {
		max = DefaultMaxDepth
	}
	if d.depth >= max {
		return fmt.Errorf("firing %q: %w", ev.Name, ErrReentrancy)
	}
	d.depth++
	defer func() { d.depth-- }()

	for _, e := range ls {
		if err := e.fn(ev); err != nil {
			return err
		}
	}
	return nil
}
