// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches the parsed defaults from the embedded JSON file.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/framegrace/texelzoom/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

func embeddedDefaults() (Config, error) {
	embeddedOnce.Do(func() {
		var cfg Config
		if err := json.Unmarshal(defaults.Config(), &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = cfg
	})
	return embedded, embeddedErr
}

// defaultConfig returns a copy of the embedded defaults, or nil if they
// cannot be parsed.
func defaultConfig() Config {
	cfg, err := embeddedDefaults()
	if err != nil {
		log.Printf("Config: Embedded defaults unusable: %v", err)
		return nil
	}
	return Clone(cfg)
}
