// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sim/draw.go
// Summary: Compositing pass for the simulator desktop.
// Notes: Windows first, then the tracker's border frames on their
// perimeters, then the footer. Border color comes from blending the
// style's layers by the opacities each border last presented, so fades
// and reveals are visible exactly as the animation state computed them.

package sim

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

func (d *Desktop) draw() {
	d.screen.Clear()

	for _, w := range d.windows {
		if w.visible {
			d.drawWindow(w)
		}
	}

	for _, s := range d.snapshotSurfaces() {
		rect, visual, visible := s.frame()
		if visible {
			d.drawFrame(rect, visual, d.windowTitle(s.id))
		}
	}

	d.drawFooter()
	d.screen.Show()
}

// snapshotSurfaces copies the surface list out of the shared map so the
// draw pass iterates without holding the lock.
func (d *Desktop) snapshotSurfaces() []*borderSurface {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*borderSurface, 0, len(d.surfaces))
	for _, s := range d.surfaces {
		out = append(out, s)
	}
	return out
}

func (d *Desktop) windowTitle(id platform.WindowID) string {
	for _, w := range d.windows {
		if w.id == id {
			return w.title
		}
	}
	return fmt.Sprintf("win %d", id)
}

// drawWindow fills the window interior and blits the content tail.
func (d *Desktop) drawWindow(w *Window) {
	interior := w.rect.Inset(1)
	if interior.Empty() {
		return
	}
	fill := tcell.StyleDefault.Background(d.background)
	for y := interior.Top; y < interior.Bottom; y++ {
		for x := interior.Left; x < interior.Right; x++ {
			d.screen.SetContent(x, y, ' ', nil, fill)
		}
	}

	lines := w.content.Lines()
	if rows := interior.Height(); len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, line := range lines {
		x := interior.Left
		for _, r := range stripControl(line) {
			if x >= interior.Right {
				break
			}
			d.screen.SetContent(x, interior.Top+i, r, nil, fill)
			x += runewidth.RuneWidth(r)
		}
	}
}

// drawFrame paints one border ring: perimeter in the blended layer
// color, the spiral marker at the transform's angle, and the title.
func (d *Desktop) drawFrame(rect geom.Rect, v anim.Visual, title string) {
	if rect.Width() < 2 || rect.Height() < 2 {
		return
	}
	color := border.Blend(d.style.Active, d.style.Inactive, d.background, v)
	style := tcell.StyleDefault.Foreground(color).Background(d.background)

	for x := rect.Left; x < rect.Right; x++ {
		d.screen.SetContent(x, rect.Top, tcell.RuneHLine, nil, style)
		d.screen.SetContent(x, rect.Bottom-1, tcell.RuneHLine, nil, style)
	}
	for y := rect.Top; y < rect.Bottom; y++ {
		d.screen.SetContent(rect.Left, y, tcell.RuneVLine, nil, style)
		d.screen.SetContent(rect.Right-1, y, tcell.RuneVLine, nil, style)
	}
	d.screen.SetContent(rect.Left, rect.Top, tcell.RuneULCorner, nil, style)
	d.screen.SetContent(rect.Right-1, rect.Top, tcell.RuneURCorner, nil, style)
	d.screen.SetContent(rect.Left, rect.Bottom-1, tcell.RuneLLCorner, nil, style)
	d.screen.SetContent(rect.Right-1, rect.Bottom-1, tcell.RuneLRCorner, nil, style)

	if !v.Transform.IsIdentity() {
		d.drawMarker(rect, v.Transform.Angle(), style)
	}
	d.drawTitle(rect, title, style)
}

// drawMarker walks the ring perimeter to the cell matching the rotation
// angle and highlights a short run there, so a spinning transform reads
// as a marker orbiting the border.
func (d *Desktop) drawMarker(rect geom.Rect, angleDeg float64, style tcell.Style) {
	total := perimeterLen(rect)
	if total <= 0 {
		return
	}
	start := int(angleDeg / 360.0 * float64(total))
	marker := style.Reverse(true)
	for i := 0; i < markerLen; i++ {
		x, y := perimeterCell(rect, start+i)
		d.screen.SetContent(x, y, tcell.RuneBlock, nil, marker)
	}
}

// drawTitle writes the window title over the top border line, truncated
// to the frame width.
func (d *Desktop) drawTitle(rect geom.Rect, title string, style tcell.Style) {
	w := rect.Width()
	if title == "" || w <= 6 {
		return
	}
	label := " " + runewidth.Truncate(title, w-6, "…") + " "
	x := rect.Left + 2
	for _, r := range label {
		d.screen.SetContent(x, rect.Top, r, nil, style.Bold(true))
		x += runewidth.RuneWidth(r)
	}
}

// drawFooter renders the key hints and, when wired, the tracker's live
// counters on the bottom screen row.
func (d *Desktop) drawFooter() {
	deskW, deskH := d.screen.Size()
	if deskH < 1 {
		return
	}
	style := tcell.StyleDefault.Background(d.background).Dim(true)

	left := " q quit"
	if d.interactive {
		left = " tab focus  arrows move  n new  x close  h hide  s show  +/- size  q quit"
	}
	x := 0
	for _, r := range left {
		if x >= deskW {
			break
		}
		d.screen.SetContent(x, deskH-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}

	if d.stats == nil {
		return
	}
	snap := d.stats()
	right := fmt.Sprintf("borders %d  events %d  frames %d ", snap.Tracked, snap.Notifications, snap.Frames)
	x = deskW - runewidth.StringWidth(right)
	if x <= runewidth.StringWidth(left)+1 {
		return
	}
	for _, r := range right {
		d.screen.SetContent(x, deskH-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// perimeterLen is the number of cells on the ring of rect.
func perimeterLen(rect geom.Rect) int {
	w, h := rect.Width(), rect.Height()
	if w < 2 || h < 2 {
		return 0
	}
	return 2*w + 2*h - 4
}

// perimeterCell maps an index along the ring, clockwise from the
// top-left corner, to screen coordinates. Indices wrap in both
// directions.
func perimeterCell(rect geom.Rect, idx int) (int, int) {
	total := perimeterLen(rect)
	idx %= total
	if idx < 0 {
		idx += total
	}
	w, h := rect.Width(), rect.Height()

	if idx < w {
		return rect.Left + idx, rect.Top
	}
	idx -= w
	if idx < h-1 {
		return rect.Right - 1, rect.Top + 1 + idx
	}
	idx -= h - 1
	if idx < w-1 {
		return rect.Right - 2 - idx, rect.Bottom - 1
	}
	idx -= w - 1
	return rect.Left, rect.Bottom - 2 - idx
}
