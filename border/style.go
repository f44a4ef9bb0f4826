// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: border/style.go
// Summary: Builds a border Style from the loaded configuration.

package border

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/config"
)

const (
	defaultActiveColor   = "#89b4fa"
	defaultInactiveColor = "#585b70"
)

// StyleFromConfig resolves the shared border style once at startup.
// Every border created afterwards reuses the same resolved speeds,
// easing curve, and colors.
func StyleFromConfig(cfg config.Config) Style {
	speeds := anim.ResolveSpeeds(
		map[string]interface{}(cfg.Section("animations.active")),
		map[string]interface{}(cfg.Section("animations.inactive")),
		cfg.GetInt("", "fps", anim.DefaultFPS))

	return Style{
		Speeds:   speeds,
		Easing:   easingFromConfig(cfg),
		Active:   colorFromConfig(cfg, "active", defaultActiveColor),
		Inactive: colorFromConfig(cfg, "inactive", defaultInactiveColor),
	}
}

// easingFromConfig builds the fade easing curve. A curve with control
// points outside the unit square is rejected; fades then hold their
// current frame instead of silently easing differently than asked.
func easingFromConfig(cfg config.Config) anim.Fn {
	x1 := cfg.GetFloat("easing", "x1", 0.42)
	y1 := cfg.GetFloat("easing", "y1", 0.0)
	x2 := cfg.GetFloat("easing", "x2", 0.58)
	y2 := cfg.GetFloat("easing", "y2", 1.0)

	fn, err := anim.CubicBezier(x1, y1, x2, y2)
	if err != nil {
		log.Printf("Border: invalid easing curve (%v, %v, %v, %v), fades will hold their frame: %v",
			x1, y1, x2, y2, err)
		return nil
	}
	return fn
}

func colorFromConfig(cfg config.Config, key, fallback string) tcell.Color {
	raw := cfg.GetString("colors", key, fallback)
	if c, ok := ParseHexColor(raw); ok {
		return c
	}
	log.Printf("Border: invalid %s color %q, using %s", key, raw, fallback)
	c, _ := ParseHexColor(fallback)
	return c
}
