// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tracker/registry.go
// Summary: Fallible window-to-border lookup owned by the tracker loop.
// Notes: No lock: the registry is touched only from the tracker goroutine.
// A missing entry is an answer, never a reason to abort.

package tracker

import (
	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/platform"
)

// Registry maps tracked windows to their borders.
type Registry struct {
	borders map[platform.WindowID]*border.Border
}

func NewRegistry() *Registry {
	return &Registry{borders: make(map[platform.WindowID]*border.Border)}
}

// Add registers a border under its window ID, replacing any stale entry.
func (r *Registry) Add(b *border.Border) {
	r.borders[b.ID()] = b
}

// Lookup returns the border tracking the window, if any.
func (r *Registry) Lookup(id platform.WindowID) (*border.Border, bool) {
	b, ok := r.borders[id]
	return b, ok
}

// Remove forgets the window. Removing an untracked window is a no-op.
func (r *Registry) Remove(id platform.WindowID) {
	delete(r.borders, id)
}

func (r *Registry) Len() int {
	return len(r.borders)
}

// Each visits every tracked border. The visit order is unspecified; fn
// must not add or remove entries.
func (r *Registry) Each(fn func(*border.Border)) {
	for _, b := range r.borders {
		fn(b)
	}
}
