// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/router.go
// Summary: Translates tcell mouse events into viewport manipulation and wheel input.

package input

import (
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelzoom/viewport"
)

// PinchStep is the scale applied by one modified wheel step.
const PinchStep = 1.1

// subscribers is the handler set shared by the input sources.
type subscribers struct {
	mu       sync.Mutex
	next     int
	handlers map[int]viewport.InputHandler
}

// Subscribe registers h and returns its release function.
func (s *subscribers) Subscribe(h viewport.InputHandler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = make(map[int]viewport.InputHandler)
	}
	s.next++
	id := s.next
	s.handlers[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// each calls fn for every handler in subscription order, outside the lock.
func (s *subscribers) each(fn func(viewport.InputHandler)) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	hs := make([]viewport.InputHandler, len(ids))
	for i, id := range ids {
		hs[i] = s.handlers[id]
	}
	s.mu.Unlock()
	for _, h := range hs {
		fn(h)
	}
}

// Router turns terminal mouse events over a widget into viewport input.
// A primary-button drag is a pan manipulation; the wheel emits Notch-sized
// wheel deltas (positive for wheel up); the wheel with PinchModifier held
// is a one-step pinch anchored at the pointer.
type Router struct {
	subscribers
	Notch         int
	PinchModifier tcell.ModMask

	dragging bool
	last     viewport.Vec2
}

// NewRouter returns a router emitting notch per wheel step.
func NewRouter(notch int) *Router {
	if notch < 1 {
		notch = 1
	}
	return &Router{Notch: notch, PinchModifier: tcell.ModCtrl}
}

// Dragging reports whether a drag manipulation is in progress.
func (r *Router) Dragging() bool { return r.dragging }

// HandleMouse translates ev, whose position is made relative to origin.
// It reports whether the event produced input.
func (r *Router) HandleMouse(ev *tcell.EventMouse, originX, originY int) bool {
	x, y := ev.Position()
	pos := viewport.Vec2{X: float64(x - originX), Y: float64(y - originY)}
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		if !r.dragging {
			r.dragging = true
			r.last = pos
			r.each(func(h viewport.InputHandler) { h.ManipulationStarted(pos) })
			return true
		}
		delta := viewport.Vec2{X: pos.X - r.last.X, Y: pos.Y - r.last.Y}
		r.last = pos
		if delta == (viewport.Vec2{}) {
			return true
		}
		r.each(func(h viewport.InputHandler) {
			h.ManipulationDelta(viewport.ManipulationDelta{Scale: 1, Translation: delta})
		})
		return true

	case r.dragging:
		r.dragging = false
		r.each(func(h viewport.InputHandler) { h.ManipulationCompleted() })
		if buttons&(tcell.WheelUp|tcell.WheelDown) == 0 {
			return true
		}
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		return r.wheel(ev, pos, 1)
	case buttons&tcell.WheelDown != 0:
		return r.wheel(ev, pos, -1)
	}
	return false
}

func (r *Router) wheel(ev *tcell.EventMouse, pos viewport.Vec2, dir int) bool {
	if r.PinchModifier != 0 && ev.Modifiers()&r.PinchModifier != 0 {
		scale := PinchStep
		if dir < 0 {
			scale = 1 / PinchStep
		}
		r.Pinch(pos, scale)
		return true
	}
	r.each(func(h viewport.InputHandler) {
		h.WheelChanged(viewport.WheelEvent{Position: pos, Delta: dir * r.Notch})
	})
	return true
}

// Pinch emits a complete one-step manipulation scaling around pos.
func (r *Router) Pinch(pos viewport.Vec2, scale float64) {
	r.each(func(h viewport.InputHandler) {
		h.ManipulationStarted(pos)
		h.ManipulationDelta(viewport.ManipulationDelta{Scale: scale})
		h.ManipulationCompleted()
	})
}
