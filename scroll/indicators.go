// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/indicators.go
// Summary: Overflow indicator rendering for zoomable panes.
// Shows ▲/▼/◀/▶ glyphs on the edges where transformed content extends past the viewport.

package scroll

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelzoom/ui"
	"github.com/framegrace/texelzoom/viewport"
)

// Default indicator glyphs.
const (
	DefaultUpGlyph    = '▲'
	DefaultDownGlyph  = '▼'
	DefaultLeftGlyph  = '◀'
	DefaultRightGlyph = '▶'
)

// IndicatorConfig configures the appearance of overflow indicators.
type IndicatorConfig struct {
	// Style is the tcell style for indicator glyphs.
	Style tcell.Style

	UpGlyph    rune
	DownGlyph  rune
	LeftGlyph  rune
	RightGlyph rune
}

// DefaultIndicatorConfig returns a configuration with the standard glyphs.
func DefaultIndicatorConfig(style tcell.Style) IndicatorConfig {
	return IndicatorConfig{
		Style:      style,
		UpGlyph:    DefaultUpGlyph,
		DownGlyph:  DefaultDownGlyph,
		LeftGlyph:  DefaultLeftGlyph,
		RightGlyph: DefaultRightGlyph,
	}
}

// Overflow reports on which sides the transformed content is cut off.
type Overflow struct {
	Up, Down, Left, Right bool
}

// Any reports whether content is cut off on any side.
func (o Overflow) Any() bool { return o.Up || o.Down || o.Left || o.Right }

// OverflowOf computes the overflow of content of the given natural size
// drawn through v into a viewport of size vp.
func OverflowOf(v viewport.Visual, content, vp viewport.Size) Overflow {
	if v == nil {
		return Overflow{}
	}
	s, off := v.Scale(), v.Offset()
	w, h := content.Width*s.X, content.Height*s.Y
	return Overflow{
		Up:    off.Y < 0,
		Down:  off.Y+h > vp.Height,
		Left:  off.X < 0,
		Right: off.X+w > vp.Width,
	}
}

// DrawIndicators renders overflow glyphs on rect. Vertical indicators sit in
// the rightmost column; horizontal ones on the bottom row.
func DrawIndicators(painter *ui.Painter, rect ui.Rect, o Overflow, config IndicatorConfig) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	right := rect.X + rect.W - 1
	bottom := rect.Y + rect.H - 1

	if o.Up {
		painter.SetCell(right, rect.Y, glyph(config.UpGlyph, DefaultUpGlyph), config.Style)
	}
	if o.Down {
		painter.SetCell(right, bottom, glyph(config.DownGlyph, DefaultDownGlyph), config.Style)
	}
	if o.Left {
		painter.SetCell(rect.X, bottom, glyph(config.LeftGlyph, DefaultLeftGlyph), config.Style)
	}
	if o.Right && rect.W > 2 {
		painter.SetCell(right-1, bottom, glyph(config.RightGlyph, DefaultRightGlyph), config.Style)
	}
}

func glyph(r, fallback rune) rune {
	if r == 0 {
		return fallback
	}
	return r
}

// ZoomLabel formats a zoom factor as a whole percentage, e.g. "75%".
func ZoomLabel(z float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(z*100)))
}
