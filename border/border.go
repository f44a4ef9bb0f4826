// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: border/border.go
// Summary: Per-window decoration entity and its event-driven state machine.
// Usage: The tracker owns every Border and is the only caller of its
// methods; no Border method is safe for concurrent use.
// Notes: A border is Tracking while visible, Hidden after a hide event,
// and gone after Destroy. Animation state never moves between borders.

package border

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

// Style is the resolved look of every border: which animations run on
// each focus side, the shared easing curve, and the two color layers.
// One Style is built at load time and shared read-only by all borders.
type Style struct {
	Speeds   anim.Speeds
	Easing   anim.Fn
	Active   tcell.Color
	Inactive tcell.Color
}

// Border decorates one target window. It owns that window's animation
// runtime state and the drawing surface, and mutates both only from the
// tracker's update cycle.
type Border struct {
	id      platform.WindowID
	rect    geom.Rect
	focused bool
	visible bool

	style   Style
	state   anim.State
	vis     anim.Visual
	surface platform.Surface
}

// New builds the border for a newly visible window. When a fade is
// configured the border appears transparent and reveals itself over the
// following ticks; otherwise it snaps straight to its resolved opacities.
func New(info platform.WindowInfo, style Style, surface platform.Surface) *Border {
	b := &Border{
		id:      info.ID,
		rect:    info.Rect,
		focused: info.Focused,
		visible: true,
		style:   style,
		surface: surface,
	}
	surface.SetRect(b.rect)
	if style.Speeds.Has(anim.Fade) {
		b.state.Event = anim.Fade
	} else {
		b.snapOpacities()
		surface.Present(b.vis)
	}
	surface.Show()
	return b
}

func (b *Border) ID() platform.WindowID { return b.id }
func (b *Border) Rect() geom.Rect       { return b.rect }
func (b *Border) Focused() bool         { return b.focused }
func (b *Border) Visible() bool         { return b.visible }

// Visual returns the most recently computed frame.
func (b *Border) Visual() anim.Visual { return b.vis }

// Animating reports whether the next tick will produce a new frame.
func (b *Border) Animating() bool {
	if !b.visible {
		return false
	}
	return b.state.Event != anim.None ||
		b.style.Speeds.HasOn(anim.Spiral, b.focused) ||
		b.style.Speeds.HasOn(anim.ReverseSpiral, b.focused)
}

// SetRect follows the target window to a new position or size. The
// border repaints immediately; animation state is untouched.
func (b *Border) SetRect(r geom.Rect) {
	if r == b.rect {
		return
	}
	b.rect = r
	b.surface.SetRect(r)
	b.surface.Present(b.vis)
}

// SetFocused flips the border to the other focus side. A configured fade
// cross-fades from the current progress; without one the opacities snap.
// Calling it with the current side is a no-op, so rapid focus flapping
// mid-fade only changes direction and never restarts the fade.
func (b *Border) SetFocused(focused bool) {
	if b.focused == focused {
		return
	}
	b.focused = focused
	if b.style.Speeds.Has(anim.Fade) {
		b.state.Event = anim.Fade
		return
	}
	b.snapOpacities()
	b.surface.Present(b.vis)
}

// Hide conceals the border without discarding it. Opacities drop to zero
// so the next Show runs the initial-reveal path again.
func (b *Border) Hide() {
	if !b.visible {
		return
	}
	b.visible = false
	b.vis.ActiveOpacity = 0
	b.vis.InactiveOpacity = 0
	b.state.Event = anim.None
	b.state.FadeToVisible = false
	b.surface.Hide()
}

// Show brings a hidden border back. Showing a border that is already
// visible only re-asserts the surface.
func (b *Border) Show() {
	if b.visible {
		b.surface.Show()
		return
	}
	b.visible = true
	if b.style.Speeds.Has(anim.Fade) {
		b.state.Event = anim.Fade
	} else {
		b.snapOpacities()
		b.surface.Present(b.vis)
	}
	b.surface.Show()
}

// Destroy tears the border down. The tracker drops its reference
// afterwards; no other method is called on a destroyed border.
func (b *Border) Destroy() {
	b.visible = false
	b.surface.Destroy()
}

// Tick advances every animation active on the current focus side by one
// elapsed interval and presents the resulting frame. It reports whether
// a frame was drawn. Non-positive elapsed intervals are skipped so a
// zero-delta frame can never terminate a freshly seeded fade.
func (b *Border) Tick(elapsed time.Duration) bool {
	if !b.visible || elapsed <= 0 {
		return false
	}
	drew := false
	if b.style.Speeds.HasOn(anim.Spiral, b.focused) {
		anim.TickSpiral(&b.state, &b.vis, b.rect, elapsed, b.style.Speeds.SpeedFor(anim.Spiral, b.focused))
		drew = true
	}
	if b.style.Speeds.HasOn(anim.ReverseSpiral, b.focused) {
		anim.TickReverseSpiral(&b.state, &b.vis, b.rect, elapsed, b.style.Speeds.SpeedFor(anim.ReverseSpiral, b.focused))
		drew = true
	}
	if b.state.Event == anim.Fade {
		anim.TickFade(&b.state, &b.vis, b.focused, elapsed, b.style.Speeds.SpeedFor(anim.Fade, b.focused), b.style.Easing)
		drew = true
	}
	if drew {
		b.surface.Present(b.vis)
	}
	return drew
}

// snapOpacities resolves the opacity pair directly, used when no fade is
// configured for the transition.
func (b *Border) snapOpacities() {
	if b.focused {
		b.vis.ActiveOpacity, b.vis.InactiveOpacity = 1, 0
	} else {
		b.vis.ActiveOpacity, b.vis.InactiveOpacity = 0, 1
	}
}
