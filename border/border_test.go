// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package border

import (
	"math"
	"testing"
	"time"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

// recordSurface captures every surface call so tests can assert on the
// drawing side without a compositor.
type recordSurface struct {
	rects    []geom.Rect
	shows    int
	hides    int
	destroys int
	frames   []anim.Visual
}

func (s *recordSurface) SetRect(r geom.Rect)   { s.rects = append(s.rects, r) }
func (s *recordSurface) Show()                 { s.shows++ }
func (s *recordSurface) Hide()                 { s.hides++ }
func (s *recordSurface) Destroy()              { s.destroys++ }
func (s *recordSurface) Present(v anim.Visual) { s.frames = append(s.frames, v) }

func (s *recordSurface) lastFrame(t *testing.T) anim.Visual {
	t.Helper()
	if len(s.frames) == 0 {
		t.Fatal("no frame presented")
	}
	return s.frames[len(s.frames)-1]
}

var testRect = geom.Rect{Left: 20, Top: 10, Right: 120, Bottom: 70}

func testInfo(focused bool) platform.WindowInfo {
	return platform.WindowInfo{ID: 7, Title: "editor", Rect: testRect, Visible: true, Focused: focused}
}

func fadeStyle(speed float64) Style {
	return Style{
		Speeds: anim.Speeds{
			Active:   map[anim.Kind]float64{anim.Fade: speed},
			Inactive: map[anim.Kind]float64{anim.Fade: speed},
			FPS:      60,
		},
		Easing: anim.EaseInOut(),
	}
}

func spiralStyle(speed float64) Style {
	return Style{
		Speeds: anim.Speeds{
			Active:   map[anim.Kind]float64{anim.Spiral: speed},
			Inactive: map[anim.Kind]float64{},
			FPS:      60,
		},
		Easing: anim.EaseInOut(),
	}
}

func TestNewSnapsWhenNoFadeConfigured(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), spiralStyle(40), surf)

	if surf.shows != 1 {
		t.Fatalf("shows = %d, want 1", surf.shows)
	}
	if len(surf.rects) == 0 || surf.rects[0] != testRect {
		t.Fatalf("surface rect = %v, want %v", surf.rects, testRect)
	}
	frame := surf.lastFrame(t)
	if frame.ActiveOpacity != 1 || frame.InactiveOpacity != 0 {
		t.Fatalf("focused snap = (%v, %v), want (1, 0)", frame.ActiveOpacity, frame.InactiveOpacity)
	}
	if !b.Animating() {
		t.Error("spiral border should report animating")
	}

	surf = &recordSurface{}
	New(testInfo(false), spiralStyle(40), surf)
	frame = surf.lastFrame(t)
	if frame.ActiveOpacity != 0 || frame.InactiveOpacity != 1 {
		t.Fatalf("unfocused snap = (%v, %v), want (0, 1)", frame.ActiveOpacity, frame.InactiveOpacity)
	}
}

func TestNewArmsRevealWhenFadeConfigured(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), fadeStyle(2.0), surf)

	// Nothing is painted until the first tick; the border starts
	// transparent.
	if len(surf.frames) != 0 {
		t.Fatalf("premature frames: %v", surf.frames)
	}
	if !b.Animating() {
		t.Fatal("fade border should report animating after construction")
	}

	if !b.Tick(250 * time.Millisecond) {
		t.Fatal("tick drew nothing")
	}
	frame := surf.lastFrame(t)
	if frame.InactiveOpacity != 0 {
		t.Fatalf("reveal leaked inactive opacity %v", frame.InactiveOpacity)
	}
	if frame.ActiveOpacity <= 0 || frame.ActiveOpacity >= 1 {
		t.Fatalf("mid-reveal active opacity = %v, want in (0,1)", frame.ActiveOpacity)
	}

	b.Tick(250 * time.Millisecond)
	frame = surf.lastFrame(t)
	if frame.ActiveOpacity != 1 || frame.InactiveOpacity != 0 {
		t.Fatalf("reveal ended at (%v, %v), want (1, 0)", frame.ActiveOpacity, frame.InactiveOpacity)
	}
	if b.state.Event != anim.None {
		t.Fatalf("event animation = %v after completion, want None", b.state.Event)
	}
	if b.Animating() {
		t.Error("completed fade should stop reporting animating")
	}
}

func TestFocusFlapContinuesCrossFade(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), fadeStyle(2.0), surf)
	b.Tick(250 * time.Millisecond)
	b.Tick(250 * time.Millisecond) // reveal complete, progress 1.0

	b.SetFocused(false)
	if b.state.Event != anim.Fade {
		t.Fatal("focus change did not arm the fade")
	}
	b.Tick(100 * time.Millisecond)
	if math.Abs(b.state.FadeProgress-0.8) > 1e-9 {
		t.Fatalf("progress = %v, want 0.8 (continuing down from 1.0)", b.state.FadeProgress)
	}
	frame := surf.lastFrame(t)
	if sum := frame.ActiveOpacity + frame.InactiveOpacity; math.Abs(sum-1) > 1e-9 {
		t.Fatalf("cross-fade opacity sum = %v, want 1", sum)
	}

	// Flap back mid-fade: progress continues from 0.8, no reset.
	b.SetFocused(true)
	b.Tick(50 * time.Millisecond)
	if math.Abs(b.state.FadeProgress-0.9) > 1e-9 {
		t.Fatalf("progress = %v, want 0.9 (continuing up from 0.8)", b.state.FadeProgress)
	}
}

func TestHideZeroesAndShowRevealsAgain(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), fadeStyle(2.0), surf)
	b.Tick(250 * time.Millisecond)
	b.Tick(250 * time.Millisecond)

	b.Hide()
	if surf.hides != 1 {
		t.Fatalf("hides = %d, want 1", surf.hides)
	}
	if b.Visible() {
		t.Fatal("border still visible after Hide")
	}
	if b.vis.ActiveOpacity != 0 || b.vis.InactiveOpacity != 0 {
		t.Fatalf("hidden opacities = (%v, %v), want zeroed", b.vis.ActiveOpacity, b.vis.InactiveOpacity)
	}
	if b.Tick(16 * time.Millisecond) {
		t.Fatal("hidden border ticked")
	}

	b.Show()
	if !b.Visible() || b.state.Event != anim.Fade {
		t.Fatal("Show did not re-arm the reveal")
	}
	b.Tick(250 * time.Millisecond)
	if !b.state.FadeToVisible {
		t.Fatal("re-shown border should be mid initial reveal")
	}
	frame := surf.lastFrame(t)
	if frame.InactiveOpacity != 0 || frame.ActiveOpacity >= 1 {
		t.Fatalf("re-reveal frame = (%v, %v)", frame.ActiveOpacity, frame.InactiveOpacity)
	}
}

func TestSetFocusedWithoutFadeSnaps(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), spiralStyle(40), surf)
	frames := len(surf.frames)

	b.SetFocused(false)
	if len(surf.frames) != frames+1 {
		t.Fatalf("frames = %d, want %d", len(surf.frames), frames+1)
	}
	frame := surf.lastFrame(t)
	if frame.ActiveOpacity != 0 || frame.InactiveOpacity != 1 {
		t.Fatalf("snap = (%v, %v), want (0, 1)", frame.ActiveOpacity, frame.InactiveOpacity)
	}

	// Same side again: nothing to do.
	b.SetFocused(false)
	if len(surf.frames) != frames+1 {
		t.Fatal("repeated SetFocused repainted")
	}
}

func TestTickSpiralPresentsRotation(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), spiralStyle(90), surf)

	if !b.Tick(time.Second) {
		t.Fatal("tick drew nothing")
	}
	frame := surf.lastFrame(t)
	if got := frame.Transform.Angle(); math.Abs(got-90) > 1e-9 {
		t.Fatalf("transform angle = %v, want 90", got)
	}
	cx, cy := testRect.Center()
	x, y := frame.Transform.Apply(cx, cy)
	if math.Abs(x-cx) > 1e-9 || math.Abs(y-cy) > 1e-9 {
		t.Fatalf("rect center moved to (%v, %v)", x, y)
	}

	// Unfocused side has no spiral configured, so ticking stops.
	b.SetFocused(false)
	if b.Tick(time.Second) {
		t.Fatal("unfocused border ticked a spiral it does not carry")
	}
}

func TestSetRectRepaints(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), spiralStyle(40), surf)
	moved := geom.Rect{Left: 40, Top: 30, Right: 140, Bottom: 90}

	b.SetRect(moved)
	if b.Rect() != moved {
		t.Fatalf("rect = %v, want %v", b.Rect(), moved)
	}
	if surf.rects[len(surf.rects)-1] != moved {
		t.Fatalf("surface rect = %v, want %v", surf.rects[len(surf.rects)-1], moved)
	}
	frames := len(surf.frames)
	b.SetRect(moved)
	if len(surf.frames) != frames {
		t.Fatal("unchanged rect repainted")
	}
}

func TestZeroElapsedTickSkips(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(false), fadeStyle(2.0), surf)
	if b.Tick(0) || b.Tick(-time.Second) {
		t.Fatal("non-positive elapsed ticked")
	}
	if len(surf.frames) != 0 {
		t.Fatalf("frames = %v, want none", surf.frames)
	}
}

func TestDestroyReleasesSurface(t *testing.T) {
	surf := &recordSurface{}
	b := New(testInfo(true), spiralStyle(40), surf)
	b.Destroy()
	if surf.destroys != 1 {
		t.Fatalf("destroys = %d, want 1", surf.destroys)
	}
	if b.Tick(16 * time.Millisecond) {
		t.Fatal("destroyed border ticked")
	}
}
