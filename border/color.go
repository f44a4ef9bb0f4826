// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: border/color.go
// Summary: Color parsing and opacity blending for border rendering.

package border

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/limn/anim"
)

// ParseHexColor parses a hex color string (e.g. "#89b4fa") into a tcell
// color. It returns the parsed color and true, or ColorDefault and false
// when the string is not a 7-character hex color.
func ParseHexColor(value string) (tcell.Color, bool) {
	if len(value) == 7 && value[0] == '#' {
		if v, err := strconv.ParseInt(value[1:], 16, 32); err == nil {
			r := int32((v >> 16) & 0xFF)
			g := int32((v >> 8) & 0xFF)
			b := int32(v & 0xFF)
			return tcell.NewRGBColor(r, g, b), true
		}
	}
	return tcell.ColorDefault, false
}

// Blend resolves the border's current paint color: the active and
// inactive layers weighted by their opacities, with any remaining weight
// falling through to the background. During a cross-fade the two layer
// weights sum to one and the background contributes nothing; during an
// initial reveal the border mixes up out of the background.
func Blend(active, inactive, background tcell.Color, v anim.Visual) tcell.Color {
	if !active.Valid() || !inactive.Valid() {
		return background
	}
	if !background.Valid() {
		background = tcell.ColorBlack
	}

	aw := clamp01(v.ActiveOpacity)
	iw := clamp01(v.InactiveOpacity)
	bw := 1 - aw - iw
	if bw < 0 {
		bw = 0
	}

	ar, ag, ab := active.RGB()
	ir, ig, ib := inactive.RGB()
	xr, xg, xb := background.RGB()

	r := channel(float64(ar)*aw + float64(ir)*iw + float64(xr)*bw)
	g := channel(float64(ag)*aw + float64(ig)*iw + float64(xg)*bw)
	b := channel(float64(ab)*aw + float64(ib)*iw + float64(xb)*bw)
	return tcell.NewRGBColor(r, g, b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// channel rounds a blended component back into the valid 0..255 range.
func channel(v float64) int32 {
	c := int32(v + 0.5)
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return c
}
