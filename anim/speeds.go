// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/speeds.go
// Summary: Animation speed resolution from raw config sections.
// Notes: Resolution runs once at load time, never per frame.

package anim

import (
	"log"
	"strconv"
)

const (
	// DefaultSpeed is substituted for any configured kind whose speed is
	// missing, null, or malformed. Units are degrees/second for the spiral
	// kinds and progress-units/second for fades.
	DefaultSpeed = 100.0

	// DefaultFPS advises the frame driver's preferred cadence. It does not
	// gate correctness; ticks are driven by elapsed wall-clock time.
	DefaultFPS = 60
)

// Speeds is the resolved animation configuration for one border: which
// kinds run on each focus side and how fast. A Speeds value is read-only
// after resolution and shared by every frame of the border's lifetime.
type Speeds struct {
	Active   map[Kind]float64
	Inactive map[Kind]float64
	FPS      int
}

// Has reports whether the kind is configured on either focus side.
func (s Speeds) Has(kind Kind) bool {
	_, a := s.Active[kind]
	_, i := s.Inactive[kind]
	return a || i
}

// HasOn reports whether the kind is configured on the given focus side.
func (s Speeds) HasOn(kind Kind, focused bool) bool {
	side := s.Inactive
	if focused {
		side = s.Active
	}
	_, ok := side[kind]
	return ok
}

// SpeedFor returns the kind's speed on the given focus side, falling back
// to DefaultSpeed when the side does not carry the kind.
func (s Speeds) SpeedFor(kind Kind, focused bool) float64 {
	side := s.Inactive
	if focused {
		side = s.Active
	}
	if speed, ok := side[kind]; ok {
		return speed
	}
	return DefaultSpeed
}

// ResolveSpeeds builds a Speeds from the raw "active"/"inactive" config
// sections, each mapping an animation kind name to a number or null.
// Missing and null speeds resolve to DefaultSpeed, malformed values fall
// back to DefaultSpeed with a log line, and unknown kind names are logged
// and skipped. An fps below 1 resolves to DefaultFPS.
func ResolveSpeeds(active, inactive map[string]interface{}, fps int) Speeds {
	if fps < 1 {
		fps = DefaultFPS
	}
	return Speeds{
		Active:   resolveSide("active", active),
		Inactive: resolveSide("inactive", inactive),
		FPS:      fps,
	}
}

func resolveSide(side string, raw map[string]interface{}) map[Kind]float64 {
	out := make(map[Kind]float64, len(raw))
	for name, value := range raw {
		kind, ok := ParseKind(name)
		if !ok {
			log.Printf("Anim: unknown %s animation %q, skipping", side, name)
			continue
		}
		out[kind] = speedOrDefault(side, name, value)
	}
	return out
}

// speedOrDefault coerces a raw JSON value to a speed. nil covers both an
// explicit null and an absent value and is not an error.
func speedOrDefault(side, name string, raw interface{}) float64 {
	switch v := raw.(type) {
	case nil:
		return DefaultSpeed
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	log.Printf("Anim: malformed %s speed for %q (%v), using default %v", side, name, raw, DefaultSpeed)
	return DefaultSpeed
}
