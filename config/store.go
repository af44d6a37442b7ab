// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load logic for the config store.

package config

import "log"

// loadLocked reads texelzoom.json, seeding it from the embedded defaults
// when it is missing or empty. The returned config always carries defaults.
func loadLocked() (Config, error) {
	path, err := Path()
	if err != nil {
		log.Printf("Config: Failed to resolve config path: %v", err)
		cfg := make(Config)
		applyDefaults(cfg)
		return cfg, err
	}
	return loadFile(path, true)
}

// loadFile reads path and applies defaults. With seed set, a missing or
// empty file is written with the embedded defaults.
func loadFile(path string, seed bool) (Config, error) {
	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read %s: %v", path, readErr)
		cfg = make(Config)
	}

	if seed && (!exists || (readErr == nil && len(cfg) == 0)) {
		if def := defaultConfig(); def != nil {
			cfg = def
		} else {
			cfg = make(Config)
		}
		applyDefaults(cfg)
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default config: %v", err)
			return cfg, err
		}
		return cfg, nil
	}

	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	if readErr == nil && exists {
		log.Printf("Config: Loaded config from %s", path)
	}
	return cfg, readErr
}

// Load reads the config file at path without touching the process store.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	return loadFile(path, false)
}
