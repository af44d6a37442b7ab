// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type miniWidget struct {
	BaseWidget
	toggled bool
	mouse   []tcell.ButtonMask
}

func (m *miniWidget) Draw(p *Painter) {
	ch := 'X'
	if m.toggled {
		ch = 'Y'
	}
	p.Fill(m.Rect, ch, tcell.StyleDefault)
}

func (m *miniWidget) HandleKey(ev *tcell.EventKey) bool { return ev.Key() == tcell.KeyRune }

func (m *miniWidget) HandleMouse(ev *tcell.EventMouse) bool {
	m.mouse = append(m.mouse, ev.Buttons())
	return true
}

func newMini(x, y, w, h int) *miniWidget {
	m := &miniWidget{}
	m.SetPosition(x, y)
	m.Resize(w, h)
	m.SetFocusable(true)
	return m
}

func TestUIManagerRendersFrameAndChild(t *testing.T) {
	ui := NewUIManager(tcell.StyleDefault)
	ui.Resize(20, 5)

	f := NewFrame(0, 0, 20, 5, tcell.StyleDefault)
	f.Title = "doc"
	child := newMini(0, 0, 1, 1)
	f.SetChild(child)
	ui.AddWidget(f)

	buf := ui.Render()
	if len(buf) != 5 || len(buf[0]) != 20 {
		t.Fatalf("unexpected buffer size %dx%d", len(buf[0]), len(buf))
	}
	if buf[0][0].Ch != '┌' || buf[4][19].Ch != '┘' {
		t.Fatalf("border corners missing: %q %q", buf[0][0].Ch, buf[4][19].Ch)
	}
	if buf[0][3].Ch != 'd' {
		t.Fatalf("title not drawn, got %q", buf[0][3].Ch)
	}
	if w, h := child.Size(); w != 18 || h != 3 {
		t.Fatalf("child size = %dx%d, want 18x3", w, h)
	}
	if buf[1][1].Ch != 'X' || buf[3][18].Ch != 'X' {
		t.Fatalf("child not drawn in client area")
	}
}

func TestFrameStatusInvalidatesBottomEdge(t *testing.T) {
	ui := NewUIManager(tcell.StyleDefault)
	ui.Resize(20, 4)
	f := NewFrame(0, 0, 20, 4, tcell.StyleDefault)
	ui.AddWidget(f)
	_ = ui.Render()

	f.SetStatus("50%")
	buf := ui.Render()
	// " 50% " ends two columns before the right edge.
	if got := string([]rune{buf[3][14].Ch, buf[3][15].Ch, buf[3][16].Ch}); got != "50%" {
		t.Fatalf("status = %q", got)
	}
}

// If a widget consumes keys but doesn't invalidate, UIManager falls back to full redraw.
func TestUIManagerKeyFallbackRedraw(t *testing.T) {
	ui := NewUIManager(tcell.StyleDefault)
	ui.Resize(6, 3)
	mw := newMini(1, 1, 1, 1)
	ui.AddWidget(mw)

	buf := ui.Render()
	if got := buf[1][1].Ch; got != 'X' {
		t.Fatalf("expected 'X', got %q", string(got))
	}

	ui.Focus(mw)
	mw.toggled = true
	if !ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'z', 0)) {
		t.Fatalf("key not consumed")
	}
	buf = ui.Render()
	if got := buf[1][1].Ch; got != 'Y' {
		t.Fatalf("expected 'Y' after fallback redraw, got %q", string(got))
	}
}

func TestUIManagerCapturesDragUntilRelease(t *testing.T) {
	ui := NewUIManager(tcell.StyleDefault)
	ui.Resize(10, 10)
	mw := newMini(0, 0, 4, 4)
	ui.AddWidget(mw)

	ui.HandleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, 0))
	// Dragging outside the widget still reaches it.
	ui.HandleMouse(tcell.NewEventMouse(8, 8, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(8, 8, tcell.ButtonNone, 0))
	if len(mw.mouse) != 3 {
		t.Fatalf("captured events = %d, want 3", len(mw.mouse))
	}
	// After release, events outside are not routed.
	if ui.HandleMouse(tcell.NewEventMouse(8, 8, tcell.WheelUp, 0)) {
		t.Fatalf("wheel outside widget should not be consumed")
	}
	if !ui.HandleMouse(tcell.NewEventMouse(2, 2, tcell.WheelDown, 0)) {
		t.Fatalf("wheel over widget should be consumed")
	}
}

func TestMergeRectsJoinsAdjacent(t *testing.T) {
	got := mergeRects([]Rect{{0, 0, 2, 2}, {2, 0, 2, 2}, {10, 10, 1, 1}, {0, 0, 0, 5}})
	if len(got) != 2 {
		t.Fatalf("merged = %+v", got)
	}
	if got[0] != (Rect{0, 0, 4, 2}) {
		t.Fatalf("first = %+v", got[0])
	}
}

func TestPainterClipsAndWideRunes(t *testing.T) {
	buf := NewBuffer(6, 1, tcell.StyleDefault)
	p := NewPainter(buf, Rect{W: 6, H: 1}).WithClip(Rect{X: 1, W: 4, H: 1})
	n := p.DrawText(0, 0, "a界bc", tcell.StyleDefault)
	if n != 5 {
		t.Fatalf("columns = %d, want 5", n)
	}
	if buf[0][0].Ch != ' ' {
		t.Fatalf("wrote outside clip: %q", buf[0][0].Ch)
	}
	if buf[0][1].Ch != '界' || buf[0][2].Ch != 0 || buf[0][3].Ch != 'b' {
		t.Fatalf("row = %+v", buf[0])
	}
	if buf[0][5].Ch != ' ' {
		t.Fatalf("wrote past clip")
	}
}
