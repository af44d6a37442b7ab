// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/transform.go
// Summary: Pure offset/visual mapping and clamping functions.
// Usage: Shared by the gesture path, the wheel path and the container setters.
// Notes: OffsetToVisual and VisualToOffset are kept in their historical forms;
// see DESIGN.md for how they relate.

package viewport

// WheelZoomStep is the per-notch zoom-out multiplier. Zooming in uses its inverse.
const WheelZoomStep = 0.925

// ClampScale returns requested clamped into [min, max].
// An inverted range is rejected by Options.Validate and State.SetZoomBounds
// before it can reach this function.
func ClampScale(requested, min, max float64) float64 {
	if requested > max {
		requested = max
	}
	if requested < min {
		requested = min
	}
	return requested
}

// ClampPosition keeps the content's top-left edge from moving past the
// viewport origin and its bottom-right edge from moving inside the far edge.
// When content is smaller than the viewport the far-edge check runs last and
// wins, pinning the content to the far edge.
func ClampPosition(x, y float64, viewport, scaled Size) Vec2 {
	if x > 0 {
		x = 0
	}
	if y > 0 {
		y = 0
	}
	if minX := viewport.Width - scaled.Width; x < minX {
		x = minX
	}
	if minY := viewport.Height - scaled.Height; y < minY {
		y = minY
	}
	return Vec2{X: x, Y: y}
}

// OffsetToVisual maps a public offset to a compositor translation on one axis.
// Degenerate extents (no content, or content exactly filling the axis) map to 0.
func OffsetToVisual(offset int, axisExtent, scaledExtent float64) float64 {
	if scaledExtent == 0 || scaledExtent == axisExtent {
		return 0
	}
	return float64(offset) * (axisExtent - scaledExtent) / scaledExtent
}

// VisualToOffset re-derives the public offset from a compositor translation
// on one axis. The result is truncated toward zero.
func VisualToOffset(translation, axisExtent, scaledExtent float64) int {
	span := axisExtent - scaledExtent
	if scaledExtent == 0 || span == 0 {
		return 0
	}
	return int(-translation - (-translation/span)*axisExtent)
}

// ZoomAnchorDelta returns the translation adjustment that keeps anchor
// visually stationary while the scale moves from currentScale to newScale.
func ZoomAnchorDelta(currentScale, newScale float64, anchor Vec2) Vec2 {
	change := newScale - currentScale
	return Vec2{X: -(anchor.X * change), Y: -(anchor.Y * change)}
}
