// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/container.go
// Summary: Viewport container owning state, visual reference and controllers.
// Usage: Hosts call Measure/Arrange on layout, Attach/Detach around the
// content's lifetime, ChangeView for programmatic scrolling, and subscribe to
// ViewChanged. Input arrives through the InputHandler methods.
// Notes: Single-threaded; drive it from the UI event loop only.

package viewport

import (
	"log"
	"math"
)

// Content is the hosted surface as seen by layout.
type Content interface {
	// Measure returns the desired size given the offered size.
	Measure(available Size) Size
	// ActualSize is used when Measure reports 0x0.
	ActualSize() Size
}

// ViewChange carries the optional fields of a ChangeView call.
// Nil fields are left unchanged.
type ViewChange struct {
	HorizontalOffset *float64
	VerticalOffset   *float64
	ZoomFactor       *float64
}

// Ptr returns a pointer to v, for building ViewChange literals.
func Ptr(v float64) *float64 { return &v }

type viewSnapshot struct {
	zoom             float64
	horizontal       int
	vertical         int
	scrollableWidth  int
	scrollableHeight int
	scale            Vec2
	offset           Vec2
}

// Container owns a State and drives a Visual from gestures, wheel input,
// layout and ChangeView.
type Container struct {
	state   *State
	opts    Options
	visual  Visual
	content Content

	gesture *GestureController
	wheel   *WheelController

	observers observers
	teardown  []func()

	// batching
	depth   int
	pending bool

	// false while offsets are re-derived from the visual, so the write does
	// not map back onto the visual.
	mapOffsets bool
}

// NewContainer validates opts and returns a detached container.
func NewContainer(opts Options) (*Container, error) {
	st, err := NewState(opts)
	if err != nil {
		log.Printf("Viewport: rejected options: %v", err)
		return nil, err
	}
	c := &Container{
		state:      st,
		opts:       opts,
		mapOffsets: true,
	}
	c.gesture = &GestureController{c: c}
	c.wheel = &WheelController{c: c}
	st.SetChangeHook(c.onStateChanged)
	return c, nil
}

// OnViewChanged subscribes fn and returns its unsubscribe function.
func (c *Container) OnViewChanged(fn ViewChangedFunc) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := c.observers.add(fn)
	return func() { c.observers.remove(id) }
}

// Attach binds the visual and subscribes to every input source. Any
// previous attachment is released first.
func (c *Container) Attach(visual Visual, sources ...InputSource) {
	c.Detach()
	if visual == nil {
		return
	}
	c.visual = visual
	c.syncVisual()
	for _, src := range sources {
		if src == nil {
			continue
		}
		c.teardown = append(c.teardown, src.Subscribe(c))
	}
	log.Printf("Viewport: attached visual with %d input source(s)", len(c.teardown))
}

// Detach releases all input subscriptions and drops the visual reference.
// It is the only teardown path and is safe to call repeatedly.
func (c *Container) Detach() {
	if c.visual == nil && len(c.teardown) == 0 {
		return
	}
	for i := len(c.teardown) - 1; i >= 0; i-- {
		c.teardown[i]()
	}
	c.teardown = nil
	c.gesture.End()
	c.visual = nil
	log.Printf("Viewport: detached")
}

// Attached reports whether a visual is bound.
func (c *Container) Attached() bool { return c.visual != nil }

// SetContent replaces the hosted content. Call Measure afterwards.
func (c *Container) SetContent(content Content) { c.content = content }

// Measure offers the configured maximum measure size to the content, records
// its natural size, and resets both offsets. It returns available unchanged.
func (c *Container) Measure(available Size) Size {
	if c.content == nil {
		return available
	}
	offered := Size{Width: c.opts.OverrideMaximumMeasureWidth, Height: c.opts.OverrideMaximumMeasureHeight}
	natural := c.content.Measure(offered)
	if natural.IsZero() {
		natural = c.content.ActualSize()
	}
	c.batch(CauseLayout, func() {
		if err := c.state.SetContentSize(natural); err != nil {
			log.Printf("Viewport: ignoring content size: %v", err)
		}
		c.state.SetHorizontalOffset(0)
		c.state.SetVerticalOffset(0)
	})
	return available
}

// Arrange records the final viewport size.
func (c *Container) Arrange(final Size) error {
	return c.state.SetViewportSize(final)
}

// ChangeView overwrites each present field through its normal update path.
// Offsets are truncated toward zero; non-finite values are ignored.
func (c *Container) ChangeView(vc ViewChange) {
	if v := vc.HorizontalOffset; v != nil && isFinite(*v) {
		c.batch(CauseChangeView, func() { c.state.SetHorizontalOffset(int(*v)) })
	}
	if v := vc.VerticalOffset; v != nil && isFinite(*v) {
		c.batch(CauseChangeView, func() { c.state.SetVerticalOffset(int(*v)) })
	}
	if z := vc.ZoomFactor; z != nil && isFinite(*z) {
		c.batch(CauseChangeView, func() { c.state.SetZoomFactor(*z) })
	}
}

// Configure applies new options. Offsets and content are kept; the zoom
// factor is re-clamped into the new bounds.
func (c *Container) Configure(opts Options) error {
	if err := opts.Validate(); err != nil {
		log.Printf("Viewport: rejected options: %v", err)
		return err
	}
	c.opts = opts
	var err error
	c.batch(CauseConfig, func() {
		err = c.state.SetZoomBounds(opts.MinZoomFactor, opts.MaxZoomFactor)
		c.state.SetZoomMode(opts.ZoomMode)
		c.state.SetWheelBehaviour(opts.WheelBehaviour)
	})
	return err
}

// Options returns the options last applied.
func (c *Container) Options() Options { return c.opts }

// InputHandler implementation.

func (c *Container) ManipulationStarted(position Vec2)         { c.gesture.Begin(position) }
func (c *Container) ManipulationDelta(delta ManipulationDelta) { c.gesture.Delta(delta) }
func (c *Container) ManipulationCompleted()                    { c.gesture.End() }
func (c *Container) WheelChanged(ev WheelEvent)                { c.wheel.Handle(ev) }

// Read access.

func (c *Container) ZoomFactor() float64            { return c.state.ZoomFactor() }
func (c *Container) MinZoomFactor() float64         { return c.state.MinZoomFactor() }
func (c *Container) MaxZoomFactor() float64         { return c.state.MaxZoomFactor() }
func (c *Container) HorizontalOffset() int          { return c.state.HorizontalOffset() }
func (c *Container) VerticalOffset() int            { return c.state.VerticalOffset() }
func (c *Container) ScrollableWidth() int           { return c.state.ScrollableWidth() }
func (c *Container) ScrollableHeight() int          { return c.state.ScrollableHeight() }
func (c *Container) WheelBehaviour() WheelBehaviour { return c.state.WheelBehaviour() }
func (c *Container) ZoomMode() ZoomMode             { return c.state.ZoomMode() }
func (c *Container) ContentSize() Size              { return c.state.ContentSize() }
func (c *Container) ViewportSize() Size             { return c.state.ViewportSize() }
func (c *Container) GesturePhase() GesturePhase     { return c.gesture.Phase() }

// Visual returns the bound visual, or nil when detached.
func (c *Container) Visual() Visual { return c.visual }

// onStateChanged is the State change hook: it maps the written field onto
// the visual and records that observers need a notification.
func (c *Container) onStateChanged(p Property) {
	switch p {
	case PropZoomFactor:
		if c.visual != nil && c.state.ZoomMode() == ZoomEnabled {
			z := c.state.ZoomFactor()
			c.visual.SetScale(Vec2{X: z, Y: z})
		}
	case PropHorizontalOffset:
		if c.visual != nil && c.mapOffsets {
			off := c.visual.Offset()
			off.X = OffsetToVisual(c.state.HorizontalOffset(), c.state.ViewportSize().Width, c.state.ScaledContentSize().Width)
			c.visual.SetOffset(off)
		}
	case PropVerticalOffset:
		if c.visual != nil && c.mapOffsets {
			off := c.visual.Offset()
			off.Y = OffsetToVisual(c.state.VerticalOffset(), c.state.ViewportSize().Height, c.state.ScaledContentSize().Height)
			c.visual.SetOffset(off)
		}
	case PropZoomMode:
		if c.visual != nil && c.state.ZoomMode() == ZoomEnabled {
			z := c.state.ZoomFactor()
			c.visual.SetScale(Vec2{X: z, Y: z})
		}
	case PropViewportSize, PropWheelBehaviour:
		return
	}
	if c.depth > 0 {
		c.pending = true
		return
	}
	c.fire(CauseChangeView)
}

// setOffsetsFromVisual stores offsets derived from the visual without
// mapping them back onto it.
func (c *Container) setOffsetsFromVisual(horizontal, vertical int) {
	c.mapOffsets = false
	defer func() { c.mapOffsets = true }()
	c.state.SetHorizontalOffset(horizontal)
	c.state.SetVerticalOffset(vertical)
}

// syncVisual pushes the stored view onto a freshly attached visual.
func (c *Container) syncVisual() {
	if c.visual == nil {
		return
	}
	if c.state.ZoomMode() == ZoomEnabled {
		z := c.state.ZoomFactor()
		c.visual.SetScale(Vec2{X: z, Y: z})
	}
	vp := c.state.ViewportSize()
	scaled := c.state.ScaledContentSize()
	c.visual.SetOffset(Vec2{
		X: OffsetToVisual(c.state.HorizontalOffset(), vp.Width, scaled.Width),
		Y: OffsetToVisual(c.state.VerticalOffset(), vp.Height, scaled.Height),
	})
}

// batch runs fn and fires at most one ViewChanged for everything it changed,
// including visual-only changes.
func (c *Container) batch(cause ChangeCause, fn func()) {
	before := c.snapshot()
	c.depth++
	fn()
	c.depth--
	if c.depth > 0 {
		return
	}
	if c.pending || c.snapshot() != before {
		c.pending = false
		c.fire(cause)
	}
}

func (c *Container) snapshot() viewSnapshot {
	s := viewSnapshot{
		zoom:             c.state.ZoomFactor(),
		horizontal:       c.state.HorizontalOffset(),
		vertical:         c.state.VerticalOffset(),
		scrollableWidth:  c.state.ScrollableWidth(),
		scrollableHeight: c.state.ScrollableHeight(),
	}
	if c.visual != nil {
		s.scale = c.visual.Scale()
		s.offset = c.visual.Offset()
	}
	return s
}

func (c *Container) fire(cause ChangeCause) {
	c.observers.broadcast(ViewChangedEvent{
		Cause:            cause,
		ZoomFactor:       c.state.ZoomFactor(),
		HorizontalOffset: c.state.HorizontalOffset(),
		VerticalOffset:   c.state.VerticalOffset(),
	})
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
