// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/zoompane.go
// Summary: ZoomPane widget hosting a cell surface inside a viewport container.
// Composes viewport.Container, an input.Router and the overflow indicators.

package scroll

import (
	"log"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelzoom/input"
	"github.com/framegrace/texelzoom/ui"
	"github.com/framegrace/texelzoom/viewport"
)

// WidePlaceholder stands in for a wide rune whose two columns do not both
// survive sampling at the current zoom.
const WidePlaceholder = '·'

// Content is a measurable cell surface.
type Content interface {
	viewport.Content
	Cell(x, y int) ui.Cell
}

// ZoomPane is the chrome around a viewport container: it lays the container
// out to its rect, feeds it mouse input, maps scroll keys onto ChangeView and
// draws the content through the container's visual.
type ZoomPane struct {
	ui.BaseWidget
	Style          tcell.Style
	IndicatorStyle tcell.Style

	container *viewport.Container
	visual    *viewport.MemoryVisual
	router    *input.Router
	content   Content
	sources   []viewport.InputSource

	inv             func(ui.Rect)
	showIndicators  bool
	indicatorConfig IndicatorConfig
	release         func()
}

// NewZoomPane creates a pane with the given geometry and viewport options.
// notch is the wheel delta emitted per wheel step.
func NewZoomPane(x, y, w, h int, style tcell.Style, opts viewport.Options, notch int) (*ZoomPane, error) {
	c, err := viewport.NewContainer(opts)
	if err != nil {
		return nil, err
	}
	zp := &ZoomPane{
		Style:          style,
		container:      c,
		visual:         viewport.NewMemoryVisual(),
		router:         input.NewRouter(notch),
		showIndicators: true,
	}
	fg, bg, _ := style.Decompose()
	if fg == tcell.ColorDefault {
		fg = tcell.ColorGray
	}
	zp.IndicatorStyle = tcell.StyleDefault.Foreground(fg).Background(bg).Dim(true)
	zp.indicatorConfig = DefaultIndicatorConfig(zp.IndicatorStyle)
	zp.release = c.OnViewChanged(func(viewport.ViewChangedEvent) { zp.invalidate() })

	zp.SetPosition(x, y)
	zp.Resize(w, h)
	zp.SetFocusable(true)
	return zp, nil
}

// Container exposes the hosted viewport container.
func (zp *ZoomPane) Container() *viewport.Container { return zp.container }

// Router exposes the mouse router, e.g. to change its notch.
func (zp *ZoomPane) Router() *input.Router { return zp.router }

// Visual returns the transform the pane draws through.
func (zp *ZoomPane) Visual() viewport.Visual { return zp.visual }

// Content returns the hosted content, or nil.
func (zp *ZoomPane) Content() Content { return zp.content }

// SetContent replaces the hosted content, measures it and attaches the
// visual with the router plus any extra input sources. A nil content
// detaches the container.
func (zp *ZoomPane) SetContent(c Content, extra ...viewport.InputSource) {
	zp.content = c
	if c == nil {
		zp.container.Detach()
		zp.container.SetContent(nil)
		zp.invalidate()
		return
	}
	zp.sources = append([]viewport.InputSource{zp.router}, extra...)
	zp.container.SetContent(c)
	zp.layout()
	zp.container.Attach(zp.visual, zp.sources...)
	zp.invalidate()
}

// OnViewChanged relays the container's ViewChanged notifications.
func (zp *ZoomPane) OnViewChanged(fn viewport.ViewChangedFunc) (unsubscribe func()) {
	return zp.container.OnViewChanged(fn)
}

// Configure applies new viewport options.
func (zp *ZoomPane) Configure(opts viewport.Options) error {
	if err := zp.container.Configure(opts); err != nil {
		return err
	}
	zp.invalidate()
	return nil
}

// Close detaches the container and drops the pane's own subscription.
func (zp *ZoomPane) Close() {
	zp.container.Detach()
	if zp.release != nil {
		zp.release()
		zp.release = nil
	}
}

// Mirrored container state.

func (zp *ZoomPane) ZoomFactor() float64   { return zp.container.ZoomFactor() }
func (zp *ZoomPane) HorizontalOffset() int { return zp.container.HorizontalOffset() }
func (zp *ZoomPane) VerticalOffset() int   { return zp.container.VerticalOffset() }
func (zp *ZoomPane) ScrollableWidth() int  { return zp.container.ScrollableWidth() }
func (zp *ZoomPane) ScrollableHeight() int { return zp.container.ScrollableHeight() }

// ShowIndicators enables or disables overflow indicators.
func (zp *ZoomPane) ShowIndicators(show bool) { zp.showIndicators = show }

// SetIndicatorConfig sets the indicator configuration.
func (zp *ZoomPane) SetIndicatorConfig(config IndicatorConfig) { zp.indicatorConfig = config }

// Overflow reports where the content is currently cut off.
func (zp *ZoomPane) Overflow() Overflow {
	if !zp.container.Attached() {
		return Overflow{}
	}
	return OverflowOf(zp.visual, zp.container.ContentSize(), zp.container.ViewportSize())
}

// SetInvalidator sets the invalidation callback.
func (zp *ZoomPane) SetInvalidator(fn func(ui.Rect)) { zp.inv = fn }

func (zp *ZoomPane) invalidate() {
	if zp.inv != nil {
		zp.inv(zp.Rect)
	}
}

// Resize updates the viewport size; the content is re-measured.
func (zp *ZoomPane) Resize(w, h int) {
	zp.BaseWidget.Resize(w, h)
	if zp.container == nil {
		return
	}
	zp.layout()
	zp.invalidate()
}

func (zp *ZoomPane) layout() {
	size := viewport.Size{Width: float64(zp.Rect.W), Height: float64(zp.Rect.H)}
	zp.container.Measure(size)
	if err := zp.container.Arrange(size); err != nil {
		log.Printf("ZoomPane: arrange failed: %v", err)
	}
}

// Draw renders the content through the visual transform.
func (zp *ZoomPane) Draw(painter *ui.Painter) {
	rect := zp.Rect
	painter.Fill(rect, ' ', zp.Style)
	if zp.content == nil || !zp.container.Attached() {
		return
	}
	clipped := painter.WithClip(rect)
	DrawContent(clipped, rect, zp.content, zp.visual)
	if zp.showIndicators {
		DrawIndicators(painter, rect, zp.Overflow(), zp.indicatorConfig)
	}
}

// DrawContent samples src through v into rect. Each screen cell shows the
// content cell its left/top edge maps to.
func DrawContent(p *ui.Painter, rect ui.Rect, src Content, v viewport.Visual) {
	scale, off := v.Scale(), v.Offset()
	if !(scale.X > 0) || !(scale.Y > 0) {
		return
	}
	size := src.ActualSize()
	sample := func(local int, offset, s, limit float64) (int, bool) {
		c := math.Floor((float64(local) - offset) / s)
		if c < 0 || c >= limit {
			return 0, false
		}
		return int(c), true
	}

	for ly := 0; ly < rect.H; ly++ {
		cy, ok := sample(ly, off.Y, scale.Y, size.Height)
		if !ok {
			continue
		}
		for lx := 0; lx < rect.W; lx++ {
			cx, ok := sample(lx, off.X, scale.X, size.Width)
			if !ok {
				continue
			}
			sx, sy := rect.X+lx, rect.Y+ly
			cell := src.Cell(cx, cy)
			switch {
			case cell.Ch == 0:
				// Trailer whose head was not drawn.
				p.SetCell(sx, sy, ' ', cell.Style)
			case runewidth.RuneWidth(cell.Ch) == 2:
				next, ok := sample(lx+1, off.X, scale.X, size.Width)
				if ok && lx+1 < rect.W && next == cx+1 {
					p.SetCell(sx, sy, cell.Ch, cell.Style)
					p.SetCell(sx+1, sy, 0, cell.Style)
					lx++
					continue
				}
				p.SetCell(sx, sy, WidePlaceholder, cell.Style)
			default:
				p.SetCell(sx, sy, cell.Ch, cell.Style)
			}
		}
	}
}

// HandleKey maps scrolling and zoom keys onto ChangeView.
func (zp *ZoomPane) HandleKey(ev *tcell.EventKey) bool {
	if !zp.container.Attached() {
		return false
	}
	switch ev.Key() {
	case tcell.KeyPgUp:
		zp.stepVertical(float64(zp.Rect.H))
	case tcell.KeyPgDn:
		zp.stepVertical(-float64(zp.Rect.H))
	case tcell.KeyUp:
		zp.stepVertical(1)
	case tcell.KeyDown:
		zp.stepVertical(-1)
	case tcell.KeyLeft:
		zp.stepHorizontal(1)
	case tcell.KeyRight:
		zp.stepHorizontal(-1)
	case tcell.KeyHome:
		vc := viewport.ViewChange{VerticalOffset: viewport.Ptr(0)}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			vc.HorizontalOffset = viewport.Ptr(0)
		}
		zp.container.ChangeView(vc)
	case tcell.KeyEnd:
		zp.container.ChangeView(viewport.ViewChange{
			VerticalOffset: viewport.Ptr(float64(zp.container.ScrollableHeight())),
		})
	case tcell.KeyRune:
		return zp.handleZoomRune(ev.Rune())
	default:
		return false
	}
	return true
}

func (zp *ZoomPane) handleZoomRune(r rune) bool {
	z := zp.container.ZoomFactor()
	switch r {
	case '+', '=':
		z /= viewport.WheelZoomStep
	case '-', '_':
		z *= viewport.WheelZoomStep
	case '0':
		z = 1
	default:
		return false
	}
	zp.container.ChangeView(viewport.ViewChange{ZoomFactor: viewport.Ptr(z)})
	return true
}

// stepVertical moves the visual by cells on screen (positive moves the
// content down, revealing what is above).
func (zp *ZoomPane) stepVertical(cells float64) {
	vp := zp.container.ViewportSize().Height
	scaled := zp.container.ContentSize().Height * zp.container.ZoomFactor()
	if scaled <= vp {
		return
	}
	target := viewport.VisualToOffset(zp.visual.Offset().Y+cells, vp, scaled)
	target = max(0, min(target, zp.container.ScrollableHeight()))
	zp.container.ChangeView(viewport.ViewChange{VerticalOffset: viewport.Ptr(float64(target))})
}

func (zp *ZoomPane) stepHorizontal(cells float64) {
	vp := zp.container.ViewportSize().Width
	scaled := zp.container.ContentSize().Width * zp.container.ZoomFactor()
	if scaled <= vp {
		return
	}
	target := viewport.VisualToOffset(zp.visual.Offset().X+cells, vp, scaled)
	target = max(0, min(target, zp.container.ScrollableWidth()))
	zp.container.ChangeView(viewport.ViewChange{HorizontalOffset: viewport.Ptr(float64(target))})
}

// HandleMouse forwards mouse events over the pane, and every event of a drag
// that started over it, to the router.
func (zp *ZoomPane) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !zp.HitTest(x, y) && !zp.router.Dragging() {
		return false
	}
	zp.router.HandleMouse(ev, zp.Rect.X, zp.Rect.Y)
	return true
}
