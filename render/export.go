// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/export.go
// Summary: Rasterizes a cell surface through a viewport transform into PNG.
// Usage: The export command restores or scripts a view, then calls ExportPNG
// with the container's visual and viewport size.

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/framegrace/texelzoom/scroll"
	"github.com/framegrace/texelzoom/viewport"
)

// ErrEmptyViewport is returned when there is nothing to rasterize.
var ErrEmptyViewport = errors.New("render: empty viewport")

// Options controls rasterization.
type Options struct {
	// CellWidth and CellHeight are the pixel size of one cell at zoom 1.
	CellWidth  float64
	CellHeight float64
	// Background fills pixels not covered by a cell background.
	Background color.Color
	// Foreground is used for cells with the default foreground.
	Foreground color.Color
	// Glyphs draws characters; otherwise cells render as minimap bars.
	Glyphs bool
}

// DefaultOptions returns 8x16 cells with glyphs on a dark background.
func DefaultOptions() Options {
	return Options{
		CellWidth:  8,
		CellHeight: 16,
		Background: color.RGBA{R: 0x27, G: 0x28, B: 0x22, A: 0xff},
		Foreground: color.RGBA{R: 0xf8, G: 0xf8, B: 0xf2, A: 0xff},
		Glyphs:     true,
	}
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func monoFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(gomono.TTF)
	})
	return fontSource, fontErr
}

// Render draws src, transformed by v, into an image of vp cells.
func Render(src scroll.Content, v viewport.Visual, vp viewport.Size, opts Options) (image.Image, error) {
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		d := DefaultOptions()
		opts.CellWidth, opts.CellHeight = d.CellWidth, d.CellHeight
	}
	w := int(math.Ceil(vp.Width * opts.CellWidth))
	h := int(math.Ceil(vp.Height * opts.CellHeight))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyViewport
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	if opts.Background != nil {
		dc.ClearWithColor(gg.FromColor(opts.Background))
	}

	scale, off := v.Scale(), v.Offset()
	if !(scale.X > 0) || !(scale.Y > 0) {
		return dc.Image(), nil
	}
	cw, ch := opts.CellWidth, opts.CellHeight
	size := src.ActualSize()

	// Visible content range.
	x0 := max(0, int(math.Floor(-off.X/scale.X)))
	y0 := max(0, int(math.Floor(-off.Y/scale.Y)))
	x1 := min(int(size.Width), int(math.Ceil((vp.Width-off.X)/scale.X)))
	y1 := min(int(size.Height), int(math.Ceil((vp.Height-off.Y)/scale.Y)))

	dc.Push()
	dc.Translate(off.X*cw, off.Y*ch)
	dc.Scale(scale.X, scale.Y)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cell := src.Cell(x, y)
			_, bg, _ := cell.Style.Decompose()
			if c, ok := rgb(bg); ok {
				dc.SetColor(c)
				dc.DrawRectangle(float64(x)*cw, float64(y)*ch, cw, ch)
				if err := dc.Fill(); err != nil {
					dc.Pop()
					return nil, fmt.Errorf("render: fill: %w", err)
				}
			}
			if !opts.Glyphs && cell.Ch != 0 && cell.Ch != ' ' {
				dc.SetColor(foreground(cell.Style, opts.Foreground))
				dc.DrawRectangle(float64(x)*cw, float64(y)*ch+ch/4, cw, ch/2)
				if err := dc.Fill(); err != nil {
					dc.Pop()
					return nil, fmt.Errorf("render: fill: %w", err)
				}
			}
		}
	}
	dc.Pop()

	if opts.Glyphs {
		if err := drawGlyphs(dc, src, scale, off, opts, x0, y0, x1, y1); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

// drawGlyphs places text in screen space; text is not affected by the
// context transform, so positions and face size are scaled here.
func drawGlyphs(dc *gg.Context, src scroll.Content, scale, off viewport.Vec2, opts Options, x0, y0, x1, y1 int) error {
	source, err := monoFont()
	if err != nil {
		return fmt.Errorf("render: load font: %w", err)
	}
	cw, ch := opts.CellWidth, opts.CellHeight
	dc.SetFont(source.Face(ch * scale.Y * 0.75))
	for y := y0; y < y1; y++ {
		baseline := (float64(y)+0.8)*ch*scale.Y + off.Y*ch
		for x := x0; x < x1; x++ {
			cell := src.Cell(x, y)
			if cell.Ch == 0 || cell.Ch == ' ' {
				continue
			}
			dc.SetColor(foreground(cell.Style, opts.Foreground))
			dc.DrawString(string(cell.Ch), float64(x)*cw*scale.X+off.X*cw, baseline)
		}
	}
	return nil
}

// ExportPNG renders and writes the result to path.
func ExportPNG(path string, src scroll.Content, v viewport.Visual, vp viewport.Size, opts Options) error {
	img, err := Render(src, v, vp, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	b := img.Bounds()
	log.Printf("Render: Wrote %s (%dx%d)", path, b.Dx(), b.Dy())
	return nil
}

func rgb(c tcell.Color) (color.Color, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return nil, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return nil, false
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, true
}

func foreground(st tcell.Style, fallback color.Color) color.Color {
	fg, _, _ := st.Decompose()
	if c, ok := rgb(fg); ok {
		return c
	}
	if fallback == nil {
		return color.White
	}
	return fallback
}
