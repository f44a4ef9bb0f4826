// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/state.go
// Summary: Per-border animation runtime state.

package anim

// State is the mutable animation state of one border. It is created zeroed
// when the border is constructed, discarded when the border is destroyed,
// and never transferred between borders. Only the border's own update cycle
// may mutate it.
type State struct {
	// SpiralAngle is the current rotation offset in degrees, nominally in
	// [0,360). It may transiently leave that range between ticks; the next
	// spiral tick normalizes it before advancing.
	SpiralAngle float64

	// FadeProgress is the cross-fade position in [0,1]:
	// 0 = fully inactive-colored, 1 = fully active-colored.
	FadeProgress float64

	// FadeToVisible marks a first-appearance reveal, where only one side
	// fades in from transparent instead of the usual symmetric cross-fade.
	FadeToVisible bool

	// Event is the event-driven animation currently in flight. None when
	// idle; TickFade resets it to None when the fade completes.
	Event Kind
}
