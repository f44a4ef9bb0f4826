// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tracker/watcher.go
// Summary: Creation watcher gating window adoption.
// Notes: Persistent platforms keep the watcher armed and filter per event.
// Platforms with one-shot creation hooks disarm for the duration of each
// adoption; the re-arm is an explicit atomic transition, and creations
// landing in the disarmed gap are counted, not silently lost.

package tracker

import "sync/atomic"

// Watcher decides whether a window-creation event may be adopted.
type Watcher struct {
	oneShot bool
	armed   atomic.Bool
	misses  atomic.Uint64
}

// NewWatcher builds a watcher. oneShot selects the disarm-per-adoption
// behavior required by platforms whose creation hook fires once and must
// be re-registered.
func NewWatcher(oneShot bool) *Watcher {
	w := &Watcher{oneShot: oneShot}
	w.armed.Store(true)
	return w
}

// Accept claims a creation event. Persistent watchers always accept.
// One-shot watchers accept only while armed, atomically disarming; a
// creation arriving while disarmed is dropped and counted as a miss.
func (w *Watcher) Accept() bool {
	if !w.oneShot {
		return true
	}
	if w.armed.CompareAndSwap(true, false) {
		return true
	}
	w.misses.Add(1)
	return false
}

// Rearm re-enables a one-shot watcher once the adoption it gated has
// finished, successfully or not.
func (w *Watcher) Rearm() {
	if w.oneShot {
		w.armed.Store(true)
	}
}

// Armed reports whether the next creation would be accepted.
func (w *Watcher) Armed() bool {
	if !w.oneShot {
		return true
	}
	return w.armed.Load()
}

// Missed returns how many creations were dropped in disarmed gaps.
func (w *Watcher) Missed() uint64 {
	return w.misses.Load()
}
