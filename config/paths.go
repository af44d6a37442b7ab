// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelzoom configuration and state files.

package config

import (
	"os"
	"path/filepath"
)

// Root returns the texelzoom configuration directory.
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelzoom"), nil
}

// Path returns the location of texelzoom.json.
func Path() (string, error) {
	return underRoot(configName)
}

// LogPath returns the file the viewer logs to while it owns the terminal.
func LogPath() (string, error) {
	return underRoot("texelzoom.log")
}

// StatePath resolves the view database path: the state.db_path setting
// when present, otherwise views.db under the config directory.
func StatePath(cfg Config) (string, error) {
	if p := cfg.GetString("state", "db_path", ""); p != "" {
		return p, nil
	}
	return underRoot("views.db")
}

func underRoot(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}
