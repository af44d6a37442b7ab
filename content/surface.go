// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/surface.go
// Summary: Cell grid hosted by the viewport container.

package content

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelzoom/ui"
	"github.com/framegrace/texelzoom/viewport"
)

// Surface is an immutable grid of styled cells. Rows may be ragged; the
// surface width is the longest row.
type Surface struct {
	Name     string
	Language string
	rows     [][]ui.Cell
	width    int
	blank    ui.Cell
}

// NewSurface wraps rows. The rows are not copied.
func NewSurface(name string, rows [][]ui.Cell, base tcell.Style) *Surface {
	s := &Surface{Name: name, rows: rows, blank: ui.Cell{Ch: ' ', Style: base}}
	for _, r := range rows {
		s.width = max(s.width, len(r))
	}
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return len(s.rows) }

// Cell returns the cell at (x, y), or a blank outside the text.
func (s *Surface) Cell(x, y int) ui.Cell {
	if y < 0 || y >= len(s.rows) || x < 0 || x >= len(s.rows[y]) {
		return s.blank
	}
	return s.rows[y][x]
}

// Row returns row y, or nil out of range.
func (s *Surface) Row(y int) []ui.Cell {
	if y < 0 || y >= len(s.rows) {
		return nil
	}
	return s.rows[y]
}

// Measure reports the natural size limited by available.
func (s *Surface) Measure(available viewport.Size) viewport.Size {
	n := s.ActualSize()
	return viewport.Size{
		Width:  min(n.Width, available.Width),
		Height: min(n.Height, available.Height),
	}
}

// ActualSize is the full grid size in cells.
func (s *Surface) ActualSize() viewport.Size {
	return viewport.Size{Width: float64(s.width), Height: float64(len(s.rows))}
}

// Text returns the rows as plain strings; wide-rune placeholders are skipped.
func (s *Surface) Text() []string {
	out := make([]string, len(s.rows))
	for y, row := range s.rows {
		rs := make([]rune, 0, len(row))
		for _, c := range row {
			if c.Ch != 0 {
				rs = append(rs, c.Ch)
			}
		}
		out[y] = string(rs)
	}
	return out
}
