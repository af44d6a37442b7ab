// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelzoom/ui"
	"github.com/framegrace/texelzoom/viewport"
)

// gridContent is a w×h surface whose cell (x, y) is cellRune(x, y).
type gridContent struct{ w, h int }

func (g gridContent) Measure(avail viewport.Size) viewport.Size {
	return viewport.Size{Width: min(float64(g.w), avail.Width), Height: min(float64(g.h), avail.Height)}
}
func (g gridContent) ActualSize() viewport.Size {
	return viewport.Size{Width: float64(g.w), Height: float64(g.h)}
}
func (g gridContent) Cell(x, y int) ui.Cell {
	return ui.Cell{Ch: cellRune(x, y), Style: tcell.StyleDefault}
}

// cellRune encodes the row as a letter and the column as a digit offset.
func cellRune(x, y int) rune { return rune('A' + y*10 + x%10) }

func newTestPane(t *testing.T) *ZoomPane {
	t.Helper()
	opts := viewport.DefaultOptions()
	opts.ZoomMode = viewport.ZoomEnabled
	opts.MaxZoomFactor = 2
	zp, err := NewZoomPane(0, 0, 10, 4, tcell.StyleDefault, opts, 3)
	if err != nil {
		t.Fatalf("NewZoomPane: %v", err)
	}
	zp.ShowIndicators(false)
	zp.SetContent(gridContent{w: 20, h: 8})
	return zp
}

func render(zp *ZoomPane) [][]ui.Cell {
	w, h := zp.Size()
	buf := ui.NewBuffer(w, h, tcell.StyleDefault)
	zp.Draw(ui.NewPainter(buf, ui.Rect{W: w, H: h}))
	return buf
}

func TestZoomPaneDrawsIdentity(t *testing.T) {
	zp := newTestPane(t)
	buf := render(zp)
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			if buf[y][x].Ch != cellRune(x, y) {
				t.Fatalf("cell (%d,%d) = %q, want %q", x, y, buf[y][x].Ch, cellRune(x, y))
			}
		}
	}
	if zp.ScrollableHeight() != 8 || zp.ScrollableWidth() != 20 {
		t.Fatalf("scrollable = %dx%d", zp.ScrollableWidth(), zp.ScrollableHeight())
	}
}

func TestZoomPanePageDownAndHome(t *testing.T) {
	zp := newTestPane(t)
	events := 0
	zp.OnViewChanged(func(viewport.ViewChangedEvent) { events++ })

	if !zp.HandleKey(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone)) {
		t.Fatalf("PgDn not handled")
	}
	if zp.VerticalOffset() != 8 {
		t.Fatalf("VerticalOffset = %d, want 8", zp.VerticalOffset())
	}
	if got := zp.Visual().Offset().Y; got != -4 {
		t.Fatalf("visual Y = %v, want -4", got)
	}
	if buf := render(zp); buf[0][0].Ch != cellRune(0, 4) {
		t.Fatalf("top-left after PgDn = %q", buf[0][0].Ch)
	}

	zp.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	if zp.VerticalOffset() != 0 || zp.Visual().Offset().Y != 0 {
		t.Fatalf("Home left offset %d", zp.VerticalOffset())
	}
	if events != 2 {
		t.Fatalf("ViewChanged fired %d times, want 2", events)
	}
}

func TestZoomPaneWheelPans(t *testing.T) {
	zp := newTestPane(t)
	zp.HandleMouse(tcell.NewEventMouse(2, 2, tcell.WheelUp, 0))
	if zp.VerticalOffset() != 0 {
		t.Fatalf("wheel up at the top moved to %d", zp.VerticalOffset())
	}
	zp.HandleMouse(tcell.NewEventMouse(2, 2, tcell.WheelDown, 0))
	if zp.VerticalOffset() != 3 {
		t.Fatalf("VerticalOffset = %d, want 3", zp.VerticalOffset())
	}
	if buf := render(zp); buf[0][0].Ch != cellRune(0, 1) {
		t.Fatalf("top-left after wheel = %q", buf[0][0].Ch)
	}
	if zp.HandleMouse(tcell.NewEventMouse(30, 30, tcell.WheelDown, 0)) {
		t.Fatalf("event outside the pane was consumed")
	}
}

func TestZoomPaneZoomKeysSampleContent(t *testing.T) {
	zp := newTestPane(t)
	zp.HandleKey(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	if zp.ZoomFactor() != viewport.WheelZoomStep {
		t.Fatalf("ZoomFactor = %v", zp.ZoomFactor())
	}
	zp.HandleKey(tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone))
	if zp.ZoomFactor() != 1 {
		t.Fatalf("reset ZoomFactor = %v", zp.ZoomFactor())
	}

	// Zoom to 2 via a pinch anchored at the origin: each content cell
	// covers two screen cells.
	zp.Router().Pinch(viewport.Vec2{}, 2)
	if zp.ZoomFactor() != 2 {
		t.Fatalf("pinch ZoomFactor = %v", zp.ZoomFactor())
	}
	buf := render(zp)
	if buf[0][0].Ch != cellRune(0, 0) || buf[0][1].Ch != cellRune(0, 0) || buf[0][2].Ch != cellRune(1, 0) {
		t.Fatalf("zoomed row = %q %q %q", buf[0][0].Ch, buf[0][1].Ch, buf[0][2].Ch)
	}
	if buf[2][0].Ch != cellRune(0, 1) {
		t.Fatalf("zoomed third row = %q", buf[2][0].Ch)
	}
}

func TestZoomPaneIndicators(t *testing.T) {
	zp := newTestPane(t)
	zp.ShowIndicators(true)
	if o := zp.Overflow(); o.Up || !o.Down || o.Left || !o.Right {
		t.Fatalf("overflow at origin = %+v", o)
	}
	buf := render(zp)
	if buf[3][9].Ch != DefaultDownGlyph || buf[3][8].Ch != DefaultRightGlyph {
		t.Fatalf("indicators = %q %q", buf[3][9].Ch, buf[3][8].Ch)
	}
	if ZoomLabel(0.925) != "93%" {
		t.Fatalf("ZoomLabel = %q", ZoomLabel(0.925))
	}
}

func TestDrawContentWideRunes(t *testing.T) {
	src := wideContent{}
	buf := ui.NewBuffer(4, 1, tcell.StyleDefault)
	p := ui.NewPainter(buf, ui.Rect{W: 4, H: 1})

	v := viewport.NewMemoryVisual()
	DrawContent(p, ui.Rect{W: 4, H: 1}, src, v)
	if buf[0][0].Ch != '中' || buf[0][1].Ch != 0 || buf[0][2].Ch != 'x' {
		t.Fatalf("identity row = %q %q %q", buf[0][0].Ch, buf[0][1].Ch, buf[0][2].Ch)
	}

	// Shifted by one column the head is off-screen and its trailer blanks.
	v.SetOffset(viewport.Vec2{X: -1})
	buf = ui.NewBuffer(4, 1, tcell.StyleDefault)
	DrawContent(ui.NewPainter(buf, ui.Rect{W: 4, H: 1}), ui.Rect{W: 4, H: 1}, src, v)
	if buf[0][0].Ch != ' ' || buf[0][1].Ch != 'x' {
		t.Fatalf("shifted row = %q %q", buf[0][0].Ch, buf[0][1].Ch)
	}
}

type wideContent struct{}

func (wideContent) Measure(viewport.Size) viewport.Size { return viewport.Size{Width: 3, Height: 1} }
func (wideContent) ActualSize() viewport.Size           { return viewport.Size{Width: 3, Height: 1} }
func (wideContent) Cell(x, y int) ui.Cell {
	return ui.Cell{Ch: []rune{'中', 0, 'x'}[x]}
}
