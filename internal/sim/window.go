// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sim/window.go
// Summary: Synthetic top-level windows owned by the simulator desktop.

package sim

import (
	"log"

	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

// minWindowWidth and minWindowHeight keep a window large enough to carry
// its frame and at least one content cell.
const (
	minWindowWidth  = 12
	minWindowHeight = 4
)

// Window is one simulated top-level window. The rect covers the full
// frame; content is drawn inset by one cell on every edge. Windows are
// mutated only from the desktop loop.
type Window struct {
	id      platform.WindowID
	title   string
	rect    geom.Rect
	visible bool
	content Content
}

func (w *Window) ID() platform.WindowID { return w.id }
func (w *Window) Title() string         { return w.title }
func (w *Window) Rect() geom.Rect       { return w.rect }
func (w *Window) Visible() bool         { return w.visible }

// Info reports the window the way a platform enumeration would.
func (w *Window) Info(focused bool) platform.WindowInfo {
	return platform.WindowInfo{
		ID:      w.id,
		Title:   w.title,
		Rect:    w.rect,
		Visible: w.visible,
		Focused: focused,
	}
}

// moveBy shifts the window, keeping at least its top-left corner on the
// desktop so it can always be grabbed again.
func (w *Window) moveBy(dx, dy, deskW, deskH int) {
	r := w.rect.Translate(dx, dy)
	if r.Left < 0 {
		r = r.Translate(-r.Left, 0)
	}
	if r.Top < 0 {
		r = r.Translate(0, -r.Top)
	}
	if r.Left > deskW-minWindowWidth {
		r = r.Translate(deskW-minWindowWidth-r.Left, 0)
	}
	if r.Top > deskH-minWindowHeight {
		r = r.Translate(0, deskH-minWindowHeight-r.Top)
	}
	w.setRect(r)
}

// growBy resizes the window around its top-left corner, clamped to the
// minimum frame size.
func (w *Window) growBy(dw, dh int) {
	r := w.rect
	r.Right += dw
	r.Bottom += dh
	if r.Width() < minWindowWidth {
		r.Right = r.Left + minWindowWidth
	}
	if r.Height() < minWindowHeight {
		r.Bottom = r.Top + minWindowHeight
	}
	w.setRect(r)
}

func (w *Window) setRect(r geom.Rect) {
	if r == w.rect {
		return
	}
	w.rect = r
	if w.content != nil {
		w.content.Resize(r.Width()-2, r.Height()-2)
	}
}

func (w *Window) closeContent() {
	if w.content != nil {
		if err := w.content.Close(); err != nil {
			log.Printf("Sim: content close: %v", err)
		}
	}
}
