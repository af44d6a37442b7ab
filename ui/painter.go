// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/painter.go
// Summary: Cell buffer, rectangles and a clipping painter for widgets.

package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell: a rune and its style. Ch == 0 marks the
// trailing half of a wide rune.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is an integer rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Intersect returns the overlap of r and o; the result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports a zero-area rectangle.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// NewBuffer allocates a w×h buffer filled with blanks in style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// Painter writes into a cell buffer, dropping anything outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter returns a painter over buf restricted to clip.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// Clip returns the current clip rectangle.
func (p *Painter) Clip() Rect { return p.clip }

// WithClip returns a painter whose clip is the intersection with r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes one cell if it is inside the clip and the buffer.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) || y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText writes s starting at (x, y) and returns the number of columns
// used. Wide runes take two columns.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(col, y, r, style)
		if w == 2 {
			p.SetCell(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// DrawBorder draws a box along r using charset (h, v, tl, tr, bl, br).
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		p.SetCell(x, r.Y, charset[0], style)
		p.SetCell(x, y1, charset[0], style)
	}
	for y := r.Y + 1; y < y1; y++ {
		p.SetCell(r.X, y, charset[1], style)
		p.SetCell(x1, y, charset[1], style)
	}
	p.SetCell(r.X, r.Y, charset[2], style)
	p.SetCell(x1, r.Y, charset[3], style)
	p.SetCell(r.X, y1, charset[4], style)
	p.SetCell(x1, y1, charset[5], style)
}
