// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/viewport.go
// Summary: Conversion of the viewport section into viewport.Options.

package config

import (
	"fmt"
	"math"

	"github.com/framegrace/texelzoom/viewport"
)

// ViewportOptions builds validated container options from the viewport
// section. A measure override of 0 or less means unbounded.
func ViewportOptions(cfg Config) (viewport.Options, error) {
	opts := viewport.DefaultOptions()
	opts.MinZoomFactor = cfg.GetFloat("viewport", "min_zoom_factor", viewport.DefaultMinZoomFactor)
	opts.MaxZoomFactor = cfg.GetFloat("viewport", "max_zoom_factor", viewport.DefaultMaxZoomFactor)

	wheel, err := viewport.ParseWheelBehaviour(cfg.GetString("viewport", "wheel_behaviour", ""))
	if err != nil {
		return opts, fmt.Errorf("viewport.wheel_behaviour: %w", err)
	}
	opts.WheelBehaviour = wheel

	mode, err := viewport.ParseZoomMode(cfg.GetString("viewport", "zoom_mode", viewport.ZoomEnabled.String()))
	if err != nil {
		return opts, fmt.Errorf("viewport.zoom_mode: %w", err)
	}
	opts.ZoomMode = mode

	opts.OverrideMaximumMeasureWidth = measureLimit(cfg.GetFloat("viewport", "override_max_measure_width", 0))
	opts.OverrideMaximumMeasureHeight = measureLimit(cfg.GetFloat("viewport", "override_max_measure_height", 0))

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("viewport section: %w", err)
	}
	return opts, nil
}

// WheelNotch is the wheel delta produced by one terminal wheel step.
func WheelNotch(cfg Config) int {
	n := cfg.GetInt("viewport", "wheel_notch", 3)
	if n < 1 {
		return 1
	}
	return n
}

func measureLimit(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}
