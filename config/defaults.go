// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for texelzoom.json.

package config

import "github.com/framegrace/texelzoom/viewport"

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("viewport", Section{
		"min_zoom_factor":             viewport.DefaultMinZoomFactor,
		"max_zoom_factor":             viewport.DefaultMaxZoomFactor,
		"wheel_behaviour":             viewport.WheelVerticalPan.String(),
		"zoom_mode":                   viewport.ZoomEnabled.String(),
		"override_max_measure_width":  0,
		"override_max_measure_height": 0,
		"wheel_notch":                 3,
	})
	cfg.RegisterDefaults("content", Section{
		"style":     "monokai",
		"tab_width": 4,
	})
	cfg.RegisterDefaults("state", Section{
		"enabled": true,
		"db_path": "",
	})
}
