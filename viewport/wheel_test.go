// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewport

import (
	"math"
	"testing"
)

func wheelOptions(b WheelBehaviour) Options {
	opts := zoomOptions(0.45, 2)
	opts.WheelBehaviour = b
	return opts
}

func TestWheelVerticalPanMovesAgainstDelta(t *testing.T) {
	c, vis, src := newTestContainer(t, wheelOptions(WheelVerticalPan))
	events := countEvents(c)

	src.wheel(Vec2{X: 10, Y: 10}, -120)
	if c.VerticalOffset() != 120 {
		t.Fatalf("VerticalOffset = %d, want 120", c.VerticalOffset())
	}
	if vis.Offset().Y != -60 {
		t.Fatalf("visual Y = %v, want -60", vis.Offset().Y)
	}
	if c.HorizontalOffset() != 0 {
		t.Fatalf("horizontal offset moved")
	}
	if len(*events) != 1 || (*events)[0].Cause != CauseWheel {
		t.Fatalf("events = %+v", *events)
	}

	src.wheel(Vec2{}, 120)
	if c.VerticalOffset() != 0 {
		t.Fatalf("VerticalOffset = %d after scrolling back", c.VerticalOffset())
	}
}

func TestWheelPanIgnoredAtBoundaries(t *testing.T) {
	c, vis, src := newTestContainer(t, wheelOptions(WheelVerticalPan))
	events := countEvents(c)

	// At the start, wheel-up does nothing.
	src.wheel(Vec2{}, 120)
	src.wheel(Vec2{}, 0)
	if c.VerticalOffset() != 0 || len(*events) != 0 {
		t.Fatalf("pan at start: offset %d events %d", c.VerticalOffset(), len(*events))
	}

	c.ChangeView(ViewChange{VerticalOffset: Ptr(1000)})
	before := vis.Offset()
	*events = nil

	// At the end, wheel-down does nothing.
	src.wheel(Vec2{}, -120)
	if c.VerticalOffset() != 1000 || vis.Offset() != before || len(*events) != 0 {
		t.Fatalf("pan at end: offset %d visual %+v events %d", c.VerticalOffset(), vis.Offset(), len(*events))
	}

	src.wheel(Vec2{}, 120)
	if c.VerticalOffset() != 880 {
		t.Fatalf("VerticalOffset = %d, want 880", c.VerticalOffset())
	}
}

func TestWheelPanClampsIntoExtent(t *testing.T) {
	c, _, src := newTestContainer(t, wheelOptions(WheelVerticalPan))
	c.ChangeView(ViewChange{VerticalOffset: Ptr(950)})
	src.wheel(Vec2{}, -120)
	if c.VerticalOffset() != 1000 {
		t.Fatalf("VerticalOffset = %d, want clamped to 1000", c.VerticalOffset())
	}
	src.wheel(Vec2{}, 5000)
	if c.VerticalOffset() != 0 {
		t.Fatalf("VerticalOffset = %d, want clamped to 0", c.VerticalOffset())
	}
}

func TestWheelHorizontalPan(t *testing.T) {
	c, vis, src := newTestContainer(t, wheelOptions(WheelHorizontalPan))
	src.wheel(Vec2{}, -240)
	if c.HorizontalOffset() != 240 || c.VerticalOffset() != 0 {
		t.Fatalf("offsets = %d,%d want 240,0", c.HorizontalOffset(), c.VerticalOffset())
	}
	if vis.Offset().X != -120 {
		t.Fatalf("visual X = %v, want -120", vis.Offset().X)
	}
}

func TestWheelZoomAtMaximumIsNoop(t *testing.T) {
	opts := zoomOptions(0.45, 1)
	opts.WheelBehaviour = WheelZoom
	c, vis, src := newTestContainer(t, opts)
	events := countEvents(c)

	src.wheel(Vec2{X: 100, Y: 100}, 120)
	if c.ZoomFactor() != 1 || vis.Offset() != (Vec2{}) {
		t.Fatalf("zoom %v offset %+v", c.ZoomFactor(), vis.Offset())
	}
	if len(*events) != 0 {
		t.Fatalf("expected no notification, got %d", len(*events))
	}
}

func TestWheelZoomInKeepsPointerAnchored(t *testing.T) {
	c, vis, src := newTestContainer(t, wheelOptions(WheelZoom))
	src.wheel(Vec2{X: 100, Y: 100}, 120)

	want := 1 / WheelZoomStep
	if !approx(c.ZoomFactor(), want) {
		t.Fatalf("ZoomFactor = %v, want %v", c.ZoomFactor(), want)
	}
	shift := -100 * (want - 1)
	if !approx(vis.Offset().X, shift) || !approx(vis.Offset().Y, shift) {
		t.Fatalf("visual offset = %+v, want %v", vis.Offset(), shift)
	}
	if math.Abs(shift+8.108) > 0.001 {
		t.Fatalf("unexpected shift %v", shift)
	}
	if c.ScrollableWidth() != 1081 {
		t.Fatalf("ScrollableWidth = %d, want 1081", c.ScrollableWidth())
	}
}

func TestWheelZoomOutClampsPosition(t *testing.T) {
	c, vis, src := newTestContainer(t, wheelOptions(WheelZoom))
	src.wheel(Vec2{X: 100, Y: 100}, -120)
	if !approx(c.ZoomFactor(), WheelZoomStep) {
		t.Fatalf("ZoomFactor = %v, want %v", c.ZoomFactor(), WheelZoomStep)
	}
	// The anchor shift would move the content right of the origin.
	if vis.Offset() != (Vec2{}) {
		t.Fatalf("visual offset = %+v, want origin", vis.Offset())
	}
	if got := c.Options(); got.WheelBehaviour != WheelZoom {
		t.Fatalf("options changed: %+v", got)
	}
}

func TestWheelWithoutVisualIsNoop(t *testing.T) {
	c, err := NewContainer(wheelOptions(WheelZoom))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	c.WheelChanged(WheelEvent{Position: Vec2{X: 1, Y: 1}, Delta: 120})
	if c.ZoomFactor() != 1 {
		t.Fatalf("zoom changed without a visual")
	}
}
