// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the limn configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"fps": 60,
	})
	cfg.RegisterDefaults("colors", Section{
		"active":     "#89b4fa",
		"inactive":   "#585b70",
		"background": "#1e1e2e",
	})
	cfg.RegisterDefaults("animations.active", Section{
		"spiral": 40.0,
		"fade":   3.0,
	})
	cfg.RegisterDefaults("animations.inactive", Section{
		"fade": 3.0,
	})
	cfg.RegisterDefaults("easing", Section{
		"x1": 0.42,
		"y1": 0.0,
		"x2": 0.58,
		"y2": 1.0,
	})
	cfg.RegisterDefaults("journal", Section{
		"enabled": true,
		"path":    "",
	})
	cfg.RegisterDefaults("daemon", Section{
		"socket":  "",
		"pidfile": "",
	})
}
