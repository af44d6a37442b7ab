// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/uimanager.go
// Summary: Owns the widget list, routes input and composes the framebuffer.

package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UIManager owns a small z-ordered widget list and composes it into a buffer.
type UIManager struct {
	mu       sync.Mutex // protects widgets, focus, capture, buffer
	dirtyMu  sync.Mutex // protects dirty list and notifier
	W, H     int
	widgets  []Widget // later entries draw on top
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	capture  Widget
	buf      [][]Cell
	dirty    []Rect
}

// NewUIManager returns a manager that clears to bg.
func NewUIManager(bg tcell.Style) *UIManager {
	return &UIManager{bgStyle: bg}
}

// SetRefreshNotifier registers a channel poked (non-blocking) on invalidation.
func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	u.W, u.H = max(w, 0), max(h, 0)
	u.buf = nil
	u.invalidateAllLocked()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.widgets = append(u.widgets, w)
	u.propagateInvalidator(w)
	u.dirtyMu.Lock()
	u.invalidateAllLocked()
	u.dirtyMu.Unlock()
}

func (u *UIManager) propagateInvalidator(w Widget) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { u.propagateInvalidator(child) })
	}
}

func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() || u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

// HandleKey offers the key to the focused widget. When the widget consumes
// it without invalidating anything the whole surface is redrawn.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.focused == nil || !u.focused.HandleKey(ev) {
		return false
	}
	u.dirtyMu.Lock()
	if len(u.dirty) == 0 {
		u.invalidateAllLocked()
	} else {
		u.requestRefreshLocked()
	}
	u.dirtyMu.Unlock()
	return true
}

// HandleMouse routes mouse events: a press captures the widget under the
// pointer until release, wheel events go to the topmost widget.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	prevIsDown := u.capture != nil
	nowDown := buttons&tcell.Button1 != 0

	if !prevIsDown && nowDown {
		w := u.topmostAtLocked(x, y)
		if w == nil {
			return false
		}
		u.focusLocked(w)
		u.capture = w
		if mw, ok := w.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		u.invalidateAll()
		return true
	}

	if u.capture != nil {
		if mw, ok := u.capture.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		if !nowDown {
			u.capture = nil
		}
		u.invalidateAll()
		return true
	}

	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		if w := u.topmostAtLocked(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok && mw.HandleMouse(ev) {
				u.invalidateAll()
				return true
			}
		}
	}
	return false
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if w := deepHit(u.widgets[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

// deepHit prefers the innermost MouseAware child under the point.
func deepHit(w Widget, x, y int) Widget {
	if !w.HitTest(x, y) {
		return nil
	}
	if cc, ok := w.(ChildContainer); ok {
		var res Widget
		cc.VisitChildren(func(child Widget) {
			if res != nil {
				return
			}
			if dw := deepHit(child, x, y); dw != nil {
				if _, ok := dw.(MouseAware); ok {
					res = dw
				}
			}
		})
		if res != nil {
			return res
		}
	}
	return w
}

// Invalidate marks a region for redraw. Thread-safe.
func (u *UIManager) Invalidate(r Rect) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if r.Empty() {
		return
	}
	u.dirty = append(u.dirty, r)
	u.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.invalidateAllLocked()
}

func (u *UIManager) invalidateAll() {
	u.dirtyMu.Lock()
	u.invalidateAllLocked()
	u.dirtyMu.Unlock()
}

// assumes dirtyMu is held
func (u *UIManager) invalidateAllLocked() {
	u.dirty = append(u.dirty, Rect{W: u.W, H: u.H})
	u.requestRefreshLocked()
}

// assumes dirtyMu is held
func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

// Render redraws the dirty regions and returns the framebuffer. With no
// dirty regions the full frame is composed.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.buf == nil || len(u.buf) != u.H || (u.H > 0 && len(u.buf[0]) != u.W) {
		u.buf = NewBuffer(u.W, u.H, u.bgStyle)
	}

	u.dirtyMu.Lock()
	dirty := u.dirty
	u.dirty = nil
	u.dirtyMu.Unlock()

	full := Rect{W: u.W, H: u.H}
	clips := []Rect{full}
	if len(dirty) > 0 {
		clips = mergeRects(dirty)
	}
	for _, clip := range clips {
		clip = clip.Intersect(full)
		if clip.Empty() {
			continue
		}
		p := NewPainter(u.buf, clip)
		p.Fill(clip, ' ', u.bgStyle)
		for _, w := range u.widgets {
			wx, wy := w.Position()
			ww, wh := w.Size()
			if !(Rect{X: wx, Y: wy, W: ww, H: wh}).Intersect(clip).Empty() {
				w.Draw(p)
			}
		}
	}
	return u.buf
}

// Show renders and copies the framebuffer onto screen.
func (u *UIManager) Show(screen tcell.Screen) {
	buf := u.Render()
	for y, row := range buf {
		for x, c := range row {
			if c.Ch == 0 {
				continue
			}
			screen.SetContent(x, y, c.Ch, nil, c.Style)
		}
	}
	screen.Show()
}

// mergeRects unions overlapping or edge-adjacent rectangles until stable.
func mergeRects(in []Rect) []Rect {
	out := make([]Rect, 0, len(in))
	for _, r := range in {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(out) && !changed; i++ {
			for j := i + 1; j < len(out) && !changed; j++ {
				if touches(out[i], out[j]) {
					out[i] = union(out[i], out[j])
					out = append(out[:j], out[j+1:]...)
					changed = true
				}
			}
		}
	}
	return out
}

// touches reports overlap or a shared edge/corner.
func touches(a, b Rect) bool {
	grown := Rect{X: a.X - 1, Y: a.Y - 1, W: a.W + 2, H: a.H + 2}
	return !grown.Intersect(b).Empty()
}

func union(a, b Rect) Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
