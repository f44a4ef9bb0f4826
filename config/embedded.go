// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from the embedded JSON file.
// The embedded JSON in defaults/ is the single source of truth.

package config

import (
	"sync"

	"github.com/goccy/go-json"

	"github.com/framegrace/limn/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

// embeddedDefaults returns the parsed defaults from the embedded JSON.
// The result is cached after the first call.
func embeddedDefaults() (Config, error) {
	embeddedOnce.Do(func() {
		data, err := defaults.Config()
		if err != nil {
			embeddedErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = cfg
	})
	return embedded, embeddedErr
}

// defaultConfig returns a clone of the embedded defaults, or nil when the
// embedded file cannot be parsed (applyDefaults still covers every key).
func defaultConfig() Config {
	cfg, err := embeddedDefaults()
	if err != nil || cfg == nil {
		return nil
	}
	return Clone(cfg)
}
