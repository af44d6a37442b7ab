// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/options.go
// Summary: Container configuration with defaults and validation.

package viewport

import (
	"fmt"
	"math"
)

// Default configuration values.
const (
	DefaultMinZoomFactor = 0.45
	DefaultMaxZoomFactor = 1.0
)

// Options configures a Container.
type Options struct {
	MinZoomFactor  float64
	MaxZoomFactor  float64
	WheelBehaviour WheelBehaviour
	ZoomMode       ZoomMode

	// OverrideMaximumMeasureWidth/Height cap the size offered to the content
	// during Measure. +Inf means uncapped.
	OverrideMaximumMeasureWidth  float64
	OverrideMaximumMeasureHeight float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MinZoomFactor:                DefaultMinZoomFactor,
		MaxZoomFactor:                DefaultMaxZoomFactor,
		WheelBehaviour:               WheelVerticalPan,
		ZoomMode:                     ZoomDisabled,
		OverrideMaximumMeasureWidth:  math.Inf(1),
		OverrideMaximumMeasureHeight: math.Inf(1),
	}
}

// Validate rejects configuration the clamp functions cannot handle.
func (o Options) Validate() error {
	if err := validateZoomBounds(o.MinZoomFactor, o.MaxZoomFactor); err != nil {
		return err
	}
	if math.IsNaN(o.OverrideMaximumMeasureWidth) || o.OverrideMaximumMeasureWidth < 0 {
		return fmt.Errorf("override maximum measure width %v: %w", o.OverrideMaximumMeasureWidth, ErrInvalidSize)
	}
	if math.IsNaN(o.OverrideMaximumMeasureHeight) || o.OverrideMaximumMeasureHeight < 0 {
		return fmt.Errorf("override maximum measure height %v: %w", o.OverrideMaximumMeasureHeight, ErrInvalidSize)
	}
	return nil
}

func validateZoomBounds(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || min <= 0 || max <= 0 || min > max {
		return fmt.Errorf("min %v max %v: %w", min, max, ErrInvalidZoomBounds)
	}
	return nil
}

func validateSize(s Size) error {
	if math.IsNaN(s.Width) || math.IsNaN(s.Height) || s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%vx%v: %w", s.Width, s.Height, ErrInvalidSize)
	}
	return nil
}
