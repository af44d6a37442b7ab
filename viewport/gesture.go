// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/gesture.go
// Summary: Continuous manipulation (pinch/drag) handling.

package viewport

// GesturePhase is the manipulation state.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureActive
)

func (p GesturePhase) String() string {
	if p == GestureActive {
		return "active"
	}
	return "idle"
}

// GestureController applies manipulation deltas to its container.
// The anchor is fixed at Begin and discarded at End.
type GestureController struct {
	c      *Container
	phase  GesturePhase
	anchor Vec2
}

// Phase returns the current phase.
func (g *GestureController) Phase() GesturePhase { return g.phase }

// Anchor returns the gesture's start position; meaningful only while active.
func (g *GestureController) Anchor() Vec2 { return g.anchor }

// Begin starts a manipulation anchored at position (viewport-local).
func (g *GestureController) Begin(position Vec2) {
	if g.c.visual == nil {
		return
	}
	g.phase = GestureActive
	g.anchor = position
}

// Delta applies one incremental step. Deltas outside an active gesture, or
// without a visual, are dropped. A non-positive scale factor means "no zoom".
func (g *GestureController) Delta(d ManipulationDelta) {
	c := g.c
	v := c.visual
	if g.phase != GestureActive || v == nil {
		return
	}
	factor := d.Scale
	if !(factor > 0) || !isFinite(factor) {
		factor = 1
	}
	st := c.state
	c.batch(CauseGesture, func() {
		current := v.Scale().X
		newScale := ClampScale(current*factor, st.MinZoomFactor(), st.MaxZoomFactor())

		// Translation is clamped against the pre-zoom scaled size.
		raw := v.Offset().Add(d.Translation)
		vp := st.ViewportSize()
		scaled := st.ScaledContentSize()
		pos := ClampPosition(raw.X, raw.Y, vp, scaled)
		v.SetOffset(pos)

		c.setOffsetsFromVisual(
			VisualToOffset(pos.X, vp.Width, scaled.Width),
			VisualToOffset(pos.Y, vp.Height, scaled.Height),
		)

		shift := ZoomAnchorDelta(current, newScale, g.anchor)
		st.SetZoomFactor(newScale)

		// Not re-clamped: a zoom step may leave the content briefly out of bounds.
		v.SetOffset(v.Offset().Add(shift))
	})
}

// End returns to idle. Already committed changes are kept.
func (g *GestureController) End() {
	g.phase = GestureIdle
	g.anchor = Vec2{}
}
