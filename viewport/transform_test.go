// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewport

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestClampScaleStaysInRangeAndIsIdempotent(t *testing.T) {
	min, max := 0.45, 1.0
	for _, s := range []float64{-3, 0, 0.1, 0.45, 0.5, 0.999, 1, 1.0001, 2, 1e9, math.Inf(1), math.Inf(-1)} {
		got := ClampScale(s, min, max)
		if got < min || got > max {
			t.Fatalf("ClampScale(%v) = %v, outside [%v, %v]", s, got, min, max)
		}
		if again := ClampScale(got, min, max); again != got {
			t.Fatalf("ClampScale not idempotent for %v: %v then %v", s, got, again)
		}
	}
	if got := ClampScale(0.7, min, max); got != 0.7 {
		t.Fatalf("in-range scale changed: %v", got)
	}
}

func TestClampPositionLargeContent(t *testing.T) {
	vp := Size{Width: 500, Height: 400}
	scaled := Size{Width: 1000, Height: 900}
	for _, x := range []float64{-2000, -501, -500, -250, -1, 0, 1, 300} {
		for _, y := range []float64{-2000, -500, -10, 0, 50} {
			p := ClampPosition(x, y, vp, scaled)
			if p.X < vp.Width-scaled.Width || p.X > 0 {
				t.Fatalf("x=%v clamped to %v, outside [%v, 0]", x, p.X, vp.Width-scaled.Width)
			}
			if p.Y < vp.Height-scaled.Height || p.Y > 0 {
				t.Fatalf("y=%v clamped to %v, outside [%v, 0]", y, p.Y, vp.Height-scaled.Height)
			}
		}
	}
	if p := ClampPosition(-120, -30, vp, scaled); p.X != -120 || p.Y != -30 {
		t.Fatalf("in-range position moved: %+v", p)
	}
}

// Content smaller than the viewport is pinned to the far edge.
func TestClampPositionSmallContentPinsToFarEdge(t *testing.T) {
	vp := Size{Width: 500, Height: 500}
	scaled := Size{Width: 200, Height: 100}
	for _, x := range []float64{-100, 0, 50, 1000} {
		p := ClampPosition(x, x, vp, scaled)
		if p.X != 300 || p.Y != 400 {
			t.Fatalf("ClampPosition(%v) = %+v, want (300, 400)", x, p)
		}
	}
}

func TestOffsetToVisual(t *testing.T) {
	if got := OffsetToVisual(500, 500, 1000); got != -250 {
		t.Fatalf("OffsetToVisual(500, 500, 1000) = %v, want -250", got)
	}
	if got := OffsetToVisual(0, 500, 1000); got != 0 {
		t.Fatalf("zero offset mapped to %v", got)
	}
}

func TestOffsetMappingDegenerateExtents(t *testing.T) {
	cases := []struct {
		name         string
		axis, scaled float64
	}{
		{"no content", 500, 0},
		{"exact fit", 500, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OffsetToVisual(40, tc.axis, tc.scaled); got != 0 {
				t.Fatalf("OffsetToVisual = %v, want 0", got)
			}
			if got := VisualToOffset(-40, tc.axis, tc.scaled); got != 0 {
				t.Fatalf("VisualToOffset = %v, want 0", got)
			}
		})
	}
}

// The two mappings are kept in their historical forms. Algebraically they
// reduce to inverse functions, so a round trip only loses the truncation.
func TestOffsetMappingRoundTrip(t *testing.T) {
	cases := []struct {
		offset       int
		axis, scaled float64
	}{
		{500, 500, 1000},
		{120, 80, 300},
		{1, 500, 2000},
		{750, 640, 1800},
	}
	for _, tc := range cases {
		tr := OffsetToVisual(tc.offset, tc.axis, tc.scaled)
		back := VisualToOffset(tr, tc.axis, tc.scaled)
		if d := back - tc.offset; d < -1 || d > 1 {
			t.Fatalf("offset %d -> %v -> %d", tc.offset, tr, back)
		}
	}
	if got := VisualToOffset(-250, 500, 1000); got != 500 {
		t.Fatalf("VisualToOffset(-250, 500, 1000) = %d, want 500", got)
	}
}

func TestZoomAnchorKeepsPointStationary(t *testing.T) {
	anchors := []Vec2{{0, 0}, {100, 100}, {37.5, 410}, {-20, 5}}
	scales := [][2]float64{{1, 1.5}, {1, 0.45}, {0.8, 1}, {2, 2}}
	oldT := Vec2{X: -120, Y: -33}
	for _, a := range anchors {
		for _, s := range scales {
			d := ZoomAnchorDelta(s[0], s[1], a)
			before := Vec2{X: a.X*s[0] + oldT.X, Y: a.Y*s[0] + oldT.Y}
			after := Vec2{X: a.X*s[1] + oldT.X + d.X, Y: a.Y*s[1] + oldT.Y + d.Y}
			if !approx(before.X, after.X) || !approx(before.Y, after.Y) {
				t.Fatalf("anchor %+v scale %v->%v moved from %+v to %+v", a, s[0], s[1], before, after)
			}
		}
	}
}

func TestParseEnums(t *testing.T) {
	if b, err := ParseWheelBehaviour("zoom"); err != nil || b != WheelZoom {
		t.Fatalf("ParseWheelBehaviour(zoom) = %v, %v", b, err)
	}
	if b, err := ParseWheelBehaviour(WheelHorizontalPan.String()); err != nil || b != WheelHorizontalPan {
		t.Fatalf("round trip horizontal_pan = %v, %v", b, err)
	}
	if _, err := ParseWheelBehaviour("sideways"); err == nil {
		t.Fatalf("expected error for unknown behaviour")
	}
	if m, err := ParseZoomMode("Enabled"); err != nil || m != ZoomEnabled {
		t.Fatalf("ParseZoomMode(Enabled) = %v, %v", m, err)
	}
	if _, err := ParseZoomMode("maybe"); err == nil {
		t.Fatalf("expected error for unknown zoom mode")
	}
}
