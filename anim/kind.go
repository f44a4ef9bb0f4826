// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/kind.go
// Summary: Animation kind enumeration and config-name parsing.

package anim

import (
	"fmt"
	"strings"
)

// Kind identifies one animation family. Kinds are comparable and usable as
// map keys; the zero value None means no event animation is in flight.
type Kind int

const (
	None Kind = iota
	Spiral
	ReverseSpiral
	Fade
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Spiral:
		return "spiral"
	case ReverseSpiral:
		return "reverse_spiral"
	case Fade:
		return "fade"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind resolves a config name to a Kind. Matching is case-insensitive
// and the reverse spiral accepts "reverse_spiral", "reverse-spiral" and
// "reversespiral".
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "spiral":
		return Spiral, true
	case "reverse_spiral", "reverse-spiral", "reversespiral":
		return ReverseSpiral, true
	case "fade":
		return Fade, true
	}
	return None, false
}
