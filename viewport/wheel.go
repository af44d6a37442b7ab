// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/wheel.go
// Summary: Mouse wheel dispatch by configured wheel behaviour.

package viewport

// WheelController turns wheel notches into pans or anchored zoom steps.
// The anchor is refreshed from the pointer on every event.
type WheelController struct {
	c      *Container
	anchor Vec2
}

// Anchor returns the pointer position of the last handled event.
func (w *WheelController) Anchor() Vec2 { return w.anchor }

// Handle processes one wheel event. Events that would scroll past either
// end are ignored; without a visual nothing happens.
func (w *WheelController) Handle(ev WheelEvent) {
	c := w.c
	v := c.visual
	if v == nil {
		return
	}
	w.anchor = ev.Position
	st := c.state

	switch st.WheelBehaviour() {
	case WheelVerticalPan:
		off, extent := st.VerticalOffset(), st.ScrollableHeight()
		if ignorePan(off, extent, ev.Delta) {
			return
		}
		c.batch(CauseWheel, func() { st.SetVerticalOffset(clampOffset(off-ev.Delta, extent)) })

	case WheelHorizontalPan:
		off, extent := st.HorizontalOffset(), st.ScrollableWidth()
		if ignorePan(off, extent, ev.Delta) {
			return
		}
		c.batch(CauseWheel, func() { st.SetHorizontalOffset(clampOffset(off-ev.Delta, extent)) })

	case WheelZoom:
		multiplier := WheelZoomStep
		if ev.Delta > 0 {
			multiplier = 1 / WheelZoomStep
		}
		current := v.Scale().X
		newScale := ClampScale(current*multiplier, st.MinZoomFactor(), st.MaxZoomFactor())
		shift := ZoomAnchorDelta(current, newScale, w.anchor)
		c.batch(CauseWheel, func() {
			st.SetZoomFactor(newScale)
			raw := v.Offset().Add(shift)
			v.SetOffset(ClampPosition(raw.X, raw.Y, st.ViewportSize(), st.ScaledContentSize()))
		})
	}
}

// ignorePan reports a wheel step pushing past the start or the end.
func ignorePan(offset, extent, delta int) bool {
	if offset <= 0 && delta >= 0 {
		return true
	}
	if offset >= extent && delta <= 0 {
		return true
	}
	return false
}

func clampOffset(offset, extent int) int {
	if offset > extent {
		offset = extent
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
