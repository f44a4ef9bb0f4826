// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sim/surface.go
// Summary: Drawing surfaces bridging the tracker loop to the desktop.
// Notes: Surface methods run on the tracker goroutine, the draw pass on
// the desktop goroutine. The shared frame state sits behind a short
// mutex and every call ends with a non-blocking refresh request, so the
// tracker is never stalled waiting on a render.

package sim

import (
	"sync"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

// borderSurface holds the last presented frame of one border.
type borderSurface struct {
	id      platform.WindowID
	desktop *Desktop

	mu      sync.Mutex
	rect    geom.Rect
	visual  anim.Visual
	visible bool
	gone    bool
}

func (s *borderSurface) SetRect(r geom.Rect) {
	s.mu.Lock()
	s.rect = r
	s.mu.Unlock()
	s.desktop.requestRefresh()
}

func (s *borderSurface) Show() {
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
	s.desktop.requestRefresh()
}

func (s *borderSurface) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	s.desktop.requestRefresh()
}

func (s *borderSurface) Destroy() {
	s.mu.Lock()
	s.visible = false
	s.gone = true
	s.mu.Unlock()
	s.desktop.dropSurface(s.id)
}

func (s *borderSurface) Present(v anim.Visual) {
	s.mu.Lock()
	s.visual = v
	s.mu.Unlock()
	s.desktop.requestRefresh()
}

// frame snapshots the surface for the draw pass.
func (s *borderSurface) frame() (geom.Rect, anim.Visual, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rect, s.visual, s.visible && !s.gone
}
