// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/tick.go
// Summary: Per-kind animation tick functions.
// Notes: Ticks consume one elapsed interval and a speed; they are bounded,
// never block, and touch nothing beyond the passed state and visual.

package anim

import (
	"math"
	"time"

	"github.com/framegrace/limn/geom"
)

// maxTickDelta caps the angular advance of a single tick so a frame hitch
// cannot produce a discontinuous jump.
const maxTickDelta = 359.0

// Visual holds the render parameters the tick functions derive, consumed by
// the rendering collaborator. It persists across frames on the border; a
// zero Visual is the state of a border that has never been drawn.
type Visual struct {
	// ActiveOpacity and InactiveOpacity weight the two border color layers
	// in [0,1]. Outside a fade-to-visible reveal they sum to 1.
	ActiveOpacity   float64
	InactiveOpacity float64

	// Transform is the rotation about the border rect center produced by
	// the spiral kinds.
	Transform geom.Matrix
}

// TickSpiral advances the spiral rotation by elapsed·speed degrees and
// derives the rotation transform about the center of rect. Spiral kinds
// have no terminal state; they run while they stay configured.
func TickSpiral(st *State, vis *Visual, rect geom.Rect, elapsed time.Duration, speed float64) {
	advanceSpiral(st, vis, rect, elapsed, speed)
}

// TickReverseSpiral is TickSpiral with the rotation direction flipped.
func TickReverseSpiral(st *State, vis *Visual, rect geom.Rect, elapsed time.Duration, speed float64) {
	advanceSpiral(st, vis, rect, elapsed, -speed)
}

func advanceSpiral(st *State, vis *Visual, rect geom.Rect, elapsed time.Duration, speed float64) {
	st.SpiralAngle = NormalizeAngle(st.SpiralAngle)

	delta := elapsed.Seconds() * speed
	if delta > maxTickDelta {
		delta = maxTickDelta
	} else if delta < -maxTickDelta {
		delta = -maxTickDelta
	}
	st.SpiralAngle += delta

	cx, cy := rect.Center()
	vis.Transform = geom.Rotation(st.SpiralAngle, cx, cy)
}

// NormalizeAngle wraps an angle into [0,360), for both overflow and
// underflow.
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// TickFade advances the focus cross-fade by elapsed·speed progress units,
// +1 direction while focused and -1 otherwise, and maps the progress
// through ease to the opacity pair.
//
// When both opacities are exactly zero the window has just appeared (or
// been revealed), so the progress is seeded to the far end of the travel
// and only the relevant side fades in from transparent. Once the progress
// reaches a bound the fade is finished: the progress clamps, the opacities
// take their final values, and Event resets to None so the frame driver
// stops invoking the fade until the next focus change. A nil ease freezes
// the frame instead of crashing; opacities stay untouched.
func TickFade(st *State, vis *Visual, focused bool, elapsed time.Duration, speed float64, ease Fn) {
	if ease == nil {
		return
	}

	if vis.ActiveOpacity == 0.0 && vis.InactiveOpacity == 0.0 {
		if focused {
			st.FadeProgress = 0.0
		} else {
			st.FadeProgress = 1.0
		}
		st.FadeToVisible = true
	}

	direction := -1.0
	if focused {
		direction = 1.0
	}
	st.FadeProgress += elapsed.Seconds() * speed * direction

	if st.FadeProgress <= 0.0 || st.FadeProgress >= 1.0 {
		final := math.Min(math.Max(st.FadeProgress, 0.0), 1.0)
		vis.ActiveOpacity = final
		vis.InactiveOpacity = 1.0 - final
		st.FadeProgress = final
		st.FadeToVisible = false
		st.Event = None
		return
	}

	y := ease(st.FadeProgress)
	if st.FadeToVisible {
		if focused {
			vis.ActiveOpacity, vis.InactiveOpacity = y, 0.0
		} else {
			vis.ActiveOpacity, vis.InactiveOpacity = 0.0, 1.0-y
		}
		return
	}
	vis.ActiveOpacity, vis.InactiveOpacity = y, 1.0-y
}
