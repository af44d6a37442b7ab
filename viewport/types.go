// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/types.go
// Summary: Geometry and enum types shared by the viewport engine.

package viewport

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D vector in viewport-local units.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Size is a width/height pair in unscaled units.
type Size struct {
	Width, Height float64
}

// Scale returns the size multiplied by factor on both axes.
func (s Size) Scale(factor float64) Size {
	return Size{Width: s.Width * factor, Height: s.Height * factor}
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// ZoomMode gates whether zoom-factor writes reach the visual.
type ZoomMode int

const (
	// ZoomDisabled stores zoom factor changes without scaling the visual.
	ZoomDisabled ZoomMode = iota
	// ZoomEnabled scales the visual whenever the zoom factor changes.
	ZoomEnabled
)

func (m ZoomMode) String() string {
	switch m {
	case ZoomEnabled:
		return "enabled"
	default:
		return "disabled"
	}
}

// ParseZoomMode parses "enabled" or "disabled" (case-insensitive).
func ParseZoomMode(s string) (ZoomMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enabled", "on", "true":
		return ZoomEnabled, nil
	case "disabled", "off", "false", "":
		return ZoomDisabled, nil
	}
	return ZoomDisabled, fmt.Errorf("unknown zoom mode %q", s)
}

// WheelBehaviour selects what a mouse wheel event does.
type WheelBehaviour int

const (
	// WheelVerticalPan scrolls the vertical offset.
	WheelVerticalPan WheelBehaviour = iota
	// WheelHorizontalPan scrolls the horizontal offset.
	WheelHorizontalPan
	// WheelZoom zooms around the pointer.
	WheelZoom
)

func (b WheelBehaviour) String() string {
	switch b {
	case WheelHorizontalPan:
		return "horizontal_pan"
	case WheelZoom:
		return "zoom"
	default:
		return "vertical_pan"
	}
}

// ParseWheelBehaviour accepts the String() forms plus a few short aliases.
func ParseWheelBehaviour(s string) (WheelBehaviour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical_pan", "vertical", "v", "":
		return WheelVerticalPan, nil
	case "horizontal_pan", "horizontal", "h":
		return WheelHorizontalPan, nil
	case "zoom", "z":
		return WheelZoom, nil
	}
	return WheelVerticalPan, fmt.Errorf("unknown wheel behaviour %q", s)
}
