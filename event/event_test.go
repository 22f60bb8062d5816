// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"errors"
	"reflect"
	"testing"
)

func TestOrder(t *testing.T) {
	var d Dispatcher
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		d.On("x", func(Event) error {
			got = append(got, i)
			return nil
		})
	}
	d.On("y", func(Event) error {
		t.Fatal("listener for y called")
		return nil
	})
	if err := d.Fire(Event{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestOff(t *testing.T) {
	var d Dispatcher
	n := 0
	h := d.On("x", func(Event) error { n++; return nil })
	keep := d.On("x", func(Event) error { n += 10; return nil })
	if !d.Off(h) {
		t.Fatal("Off of live subscription returned false")
	}
	if d.Off(h) {
		t.Fatal("second Off returned true")
	}
	d.Fire(Event{Name: "x"})
	if n != 10 {
		t.Errorf("want 10, got %d", n)
	}
	if !keep.Valid() || (Handle{}).Valid() {
		t.Errorf("bad Valid")
	}
	if d.Count("x") != 1 {
		t.Errorf("want 1 listener, got %d", d.Count("x"))
	}
}

func TestOffDuringFire(t *testing.T) {
	// A listener removed while an event is firing still sees
	// that event; it does not see later ones.
	var d Dispatcher
	calls := 0
	var h Handle
	d.On("x", func(Event) error { d.Off(h); return nil })
	h = d.On("x", func(Event) error { calls++; return nil })
	d.Fire(Event{Name: "x"})
	d.Fire(Event{Name: "x"})
	if calls != 1 {
		t.Errorf("want 1 call, got %d", calls)
	}
}

func TestErrorStops(t *testing.T) {
	var d Dispatcher
	boom := errors.New("boom")
	d.On("x", func(Event) error { return boom })
	d.On("x", func(Event) error {
		t.Fatal("listener after error called")
		return nil
	})
	if err := d.Fire(Event{Name: "x"}); err != boom {
		t.Errorf("want %v, got %v", boom, err)
	}
}

func TestReentrant(t *testing.T) {
	// Nested firing runs depth-first.
	var a, b Dispatcher
	var trace []string
	a.On("x", func(Event) error {
		trace = append(trace, "a1")
		return b.Fire(Event{Name: "y"})
	})
	a.On("x", func(Event) error {
		trace = append(trace, "a2")
		return nil
	})
	b.On("y", func(Event) error {
		trace = append(trace, "b")
		return nil
	})
	a.Fire(Event{Name: "x"})
	if want := []string{"a1", "b", "a2"}; !reflect.DeepEqual(want, trace) {
		t.Errorf("want %v, got %v", want, trace)
	}
}

func TestReentrancyLimit(t *testing.T) {
	var a, b Dispatcher
	a.MaxDepth = 5
	a.On("x", func(Event) error { return b.Fire(Event{Name: "x"}) })
	b.On("x", func(Event) error { return a.Fire(Event{Name: "x"}) })
	err := a.Fire(Event{Name: "x"})
	if !errors.Is(err, ErrReentrancy) {
		t.Fatalf("want ErrReentrancy, got %v", err)
	}
	// The depth counter must unwind.
	if a.depth != 0 || b.depth != 0 {
		t.Errorf("depth not unwound: %d, %d", a.depth, b.depth)
	}
}

func TestChangeOf(t *testing.T) {
	if got := ChangeOf("width"); got != "change:width" {
		t.Errorf("got %q", got)
	}
}
