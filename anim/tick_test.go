// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package anim

import (
	"math"
	"testing"
	"time"

	"github.com/framegrace/limn/geom"
)

var tickRect = geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 60}

func TestSpiralWrapsOverflow(t *testing.T) {
	// Angle 359 advanced by 0.1s at 20 deg/s lands on 361, stored as-is;
	// the next tick normalizes it to 1 before advancing.
	st := &State{SpiralAngle: 359.0}
	vis := &Visual{}

	TickSpiral(st, vis, tickRect, 100*time.Millisecond, 20.0)
	if st.SpiralAngle != 361.0 {
		t.Fatalf("angle after tick = %v, want 361 (normalized next tick)", st.SpiralAngle)
	}

	TickSpiral(st, vis, tickRect, 0, 20.0)
	if st.SpiralAngle != 1.0 {
		t.Fatalf("angle after normalize = %v, want 1", st.SpiralAngle)
	}
}

func TestReverseSpiralWrapsUnderflow(t *testing.T) {
	st := &State{SpiralAngle: 1.0}
	vis := &Visual{}

	TickReverseSpiral(st, vis, tickRect, 100*time.Millisecond, 20.0)
	if st.SpiralAngle != -1.0 {
		t.Fatalf("angle after tick = %v, want -1 (normalized next tick)", st.SpiralAngle)
	}

	TickReverseSpiral(st, vis, tickRect, 0, 20.0)
	if st.SpiralAngle != 359.0 {
		t.Fatalf("angle after normalize = %v, want 359", st.SpiralAngle)
	}
}

func TestSpiralDeltaCap(t *testing.T) {
	// A frame hitch of 10s at 100 deg/s would jump 1000 degrees; the
	// per-tick delta is capped at 359 instead.
	st := &State{}
	vis := &Visual{}
	TickSpiral(st, vis, tickRect, 10*time.Second, 100.0)
	if st.SpiralAngle != 359.0 {
		t.Fatalf("angle = %v, want capped 359", st.SpiralAngle)
	}

	st = &State{SpiralAngle: 10.0}
	TickReverseSpiral(st, vis, tickRect, 10*time.Second, 100.0)
	if st.SpiralAngle != 10.0-359.0 {
		t.Fatalf("reverse angle = %v, want %v", st.SpiralAngle, 10.0-359.0)
	}
}

func TestSpiralStaysNormalizedAcrossTicks(t *testing.T) {
	st := &State{}
	vis := &Visual{}
	elapsed := []time.Duration{16 * time.Millisecond, time.Second, 3 * time.Second, 8 * time.Millisecond}
	speeds := []float64{40, 720, 100, 5000}

	for i := 0; i < 200; i++ {
		TickSpiral(st, vis, tickRect, elapsed[i%len(elapsed)], speeds[i%len(speeds)])
		// Between ticks the stored angle may exceed [0,360) by at most
		// one capped delta.
		if st.SpiralAngle < -359.0 || st.SpiralAngle >= 360.0+359.0 {
			t.Fatalf("tick %d: angle %v drifted out of transient range", i, st.SpiralAngle)
		}
		if norm := NormalizeAngle(st.SpiralAngle); norm < 0 || norm >= 360 {
			t.Fatalf("tick %d: normalized angle %v outside [0,360)", i, norm)
		}
	}
	for i := 0; i < 200; i++ {
		TickReverseSpiral(st, vis, tickRect, elapsed[i%len(elapsed)], speeds[i%len(speeds)])
		if norm := NormalizeAngle(st.SpiralAngle); norm < 0 || norm >= 360 {
			t.Fatalf("reverse tick %d: normalized angle %v outside [0,360)", i, norm)
		}
	}
}

func TestSpiralTransformRotatesAboutCenter(t *testing.T) {
	st := &State{SpiralAngle: 0}
	vis := &Visual{}
	TickSpiral(st, vis, tickRect, time.Second, 90.0)

	if got := vis.Transform.Angle(); math.Abs(got-90) > 1e-9 {
		t.Fatalf("transform angle = %v, want 90", got)
	}
	cx, cy := tickRect.Center()
	x, y := vis.Transform.Apply(cx, cy)
	if math.Abs(x-cx) > 1e-9 || math.Abs(y-cy) > 1e-9 {
		t.Fatalf("center moved to (%v, %v), want fixed point (%v, %v)", x, y, cx, cy)
	}
}

func TestFadeInFromZeroCompletesExactly(t *testing.T) {
	// A focused window appearing with both opacities at zero seeds
	// progress 0 with fade-to-visible; 0.5s at speed 2 lands exactly on
	// 1.0, which finishes the fade and clears the event animation.
	st := &State{Event: Fade}
	vis := &Visual{}

	TickFade(st, vis, true, 500*time.Millisecond, 2.0, EaseInOut())

	if st.FadeProgress != 1.0 {
		t.Fatalf("progress = %v, want exactly 1", st.FadeProgress)
	}
	if vis.ActiveOpacity != 1.0 || vis.InactiveOpacity != 0.0 {
		t.Fatalf("opacities = (%v, %v), want (1, 0)", vis.ActiveOpacity, vis.InactiveOpacity)
	}
	if st.FadeToVisible {
		t.Error("fade_to_visible still set after completion")
	}
	if st.Event != None {
		t.Errorf("event animation = %v, want None", st.Event)
	}
}

func TestFadeSeedsUnfocusedReveal(t *testing.T) {
	st := &State{Event: Fade}
	vis := &Visual{}

	TickFade(st, vis, false, 100*time.Millisecond, 2.0, EaseInOut())

	if !st.FadeToVisible {
		t.Fatal("expected fade_to_visible after both-zero seed")
	}
	if math.Abs(st.FadeProgress-0.8) > 1e-9 {
		t.Fatalf("progress = %v, want 0.8", st.FadeProgress)
	}
	if vis.ActiveOpacity != 0.0 {
		t.Fatalf("active opacity = %v, want pinned 0 during unfocused reveal", vis.ActiveOpacity)
	}
	if vis.InactiveOpacity <= 0.0 || vis.InactiveOpacity >= 1.0 {
		t.Fatalf("inactive opacity = %v, want in (0,1)", vis.InactiveOpacity)
	}
	if st.Event != Fade {
		t.Fatalf("event animation = %v, want still Fade", st.Event)
	}
}

func TestFadeCrossFadeOpacitiesSumToOne(t *testing.T) {
	st := &State{FadeProgress: 0.2, Event: Fade}
	vis := &Visual{ActiveOpacity: 0.2, InactiveOpacity: 0.8}
	ease := EaseInOut()

	for i := 0; i < 10; i++ {
		TickFade(st, vis, true, 16*time.Millisecond, 2.0, ease)
		if st.Event == None {
			break
		}
		if sum := vis.ActiveOpacity + vis.InactiveOpacity; math.Abs(sum-1) > 1e-9 {
			t.Fatalf("tick %d: opacity sum = %v, want 1", i, sum)
		}
	}
}

func TestFadeIdempotentAtBounds(t *testing.T) {
	st := &State{Event: Fade}
	vis := &Visual{}
	ease := EaseInOut()

	// Drive to completion at the top bound.
	TickFade(st, vis, true, time.Second, 2.0, ease)
	if st.FadeProgress != 1.0 || st.Event != None {
		t.Fatalf("setup: progress=%v event=%v", st.FadeProgress, st.Event)
	}

	// Further same-direction ticks must not move it.
	for i := 0; i < 3; i++ {
		TickFade(st, vis, true, time.Second, 2.0, ease)
		if st.FadeProgress != 1.0 {
			t.Fatalf("tick %d: progress = %v, want clamped 1", i, st.FadeProgress)
		}
		if vis.ActiveOpacity != 1.0 || vis.InactiveOpacity != 0.0 {
			t.Fatalf("tick %d: opacities drifted to (%v, %v)", i, vis.ActiveOpacity, vis.InactiveOpacity)
		}
	}
}

func TestFadeFlapContinuesFromCurrentProgress(t *testing.T) {
	// Focus flipping mid-fade reverses direction without resetting the
	// progress to either bound.
	ease := EaseInOut()
	st := &State{FadeProgress: 0.3, Event: Fade}
	y := ease(0.3)
	vis := &Visual{ActiveOpacity: y, InactiveOpacity: 1 - y}

	TickFade(st, vis, false, 50*time.Millisecond, 2.0, ease)

	if math.Abs(st.FadeProgress-0.2) > 1e-9 {
		t.Fatalf("progress = %v, want 0.2 (continuing down from 0.3)", st.FadeProgress)
	}
	if st.FadeToVisible {
		t.Error("flap must not re-enter fade_to_visible")
	}
}

func TestFadeTerminatesAtLowerBound(t *testing.T) {
	ease := EaseInOut()
	st := &State{FadeProgress: 0.1, Event: Fade}
	y := ease(0.1)
	vis := &Visual{ActiveOpacity: y, InactiveOpacity: 1 - y}

	TickFade(st, vis, false, time.Second, 2.0, ease)

	if st.FadeProgress != 0.0 {
		t.Fatalf("progress = %v, want clamped 0", st.FadeProgress)
	}
	if vis.ActiveOpacity != 0.0 || vis.InactiveOpacity != 1.0 {
		t.Fatalf("opacities = (%v, %v), want (0, 1)", vis.ActiveOpacity, vis.InactiveOpacity)
	}
	if st.Event != None {
		t.Errorf("event animation = %v, want None", st.Event)
	}
}

func TestFadeNilEasingFreezesFrame(t *testing.T) {
	st := &State{FadeProgress: 0.4, Event: Fade}
	vis := &Visual{ActiveOpacity: 0.4, InactiveOpacity: 0.6}

	TickFade(st, vis, true, time.Second, 2.0, nil)

	if st.FadeProgress != 0.4 {
		t.Errorf("progress advanced to %v with nil easing", st.FadeProgress)
	}
	if vis.ActiveOpacity != 0.4 || vis.InactiveOpacity != 0.6 {
		t.Errorf("opacities changed to (%v, %v) with nil easing", vis.ActiveOpacity, vis.InactiveOpacity)
	}
	if st.Event != Fade {
		t.Errorf("event animation = %v, want untouched Fade", st.Event)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{361, 1},
		{725, 5},
		{-1, 359},
		{-360, 0},
		{-725, 355},
	}
	for _, tc := range cases {
		if got := NormalizeAngle(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
