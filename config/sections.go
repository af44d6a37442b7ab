// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/sections.go
// Summary: Section access, defaults registration, typed getters and cloning.

package config

import (
	"encoding/json"
	"strconv"
)

// Section returns the named section or nil if missing. The empty name
// addresses the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills missing keys of a section without overwriting
// existing ones.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(name)
	if section == nil {
		section = make(Section, len(defaults))
		c[name] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

// Set stores a value, creating the section when needed.
func (c Config) Set(name, key string, value interface{}) {
	if c == nil {
		return
	}
	section := c.Section(name)
	if section == nil {
		section = make(Section)
		c[name] = section
	}
	section[key] = value
}

func (c Config) lookup(name, key string) (interface{}, bool) {
	section := c.Section(name)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// GetString retrieves a string value.
func (c Config) GetString(name, key, defaultValue string) string {
	if v, ok := c.lookup(name, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetFloat retrieves a float value. Numeric strings are accepted.
func (c Config) GetFloat(name, key string, defaultValue float64) float64 {
	v, ok := c.lookup(name, key)
	if !ok {
		return defaultValue
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value; fractional numbers are truncated.
func (c Config) GetInt(name, key string, defaultValue int) int {
	v, ok := c.lookup(name, key)
	if !ok {
		return defaultValue
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case float32:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value.
func (c Config) GetBool(name, key string, defaultValue bool) bool {
	v, ok := c.lookup(name, key)
	if !ok {
		return defaultValue
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return defaultValue
}

// Clone returns a copy of the config with each section copied.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		var src map[string]interface{}
		switch v := raw.(type) {
		case Section:
			src = v
		case map[string]interface{}:
			src = v
		default:
			out[name] = raw
			continue
		}
		section := make(Section, len(src))
		for key, value := range src {
			section[key] = value
		}
		out[name] = section
	}
	return out
}
