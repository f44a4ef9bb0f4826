// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tracker/stats.go
// Summary: Atomic counters describing a running tracker.
// Usage: Written from the tracker goroutine, snapshotted from anywhere
// (the stats socket reads these without touching border state).

package tracker

import "sync/atomic"

// Stats counts tracker activity. All fields are safe for concurrent use.
type Stats struct {
	Notifications atomic.Uint64
	CursorDropped atomic.Uint64
	Ignored       atomic.Uint64
	Adopted       atomic.Uint64
	Destroyed     atomic.Uint64
	Frames        atomic.Uint64
	Tracked       atomic.Int64
	StartNano     atomic.Int64
}

// Snapshot is a point-in-time copy of the counters in wire form.
type Snapshot struct {
	Notifications uint64  `json:"notifications"`
	CursorDropped uint64  `json:"cursor_dropped"`
	Ignored       uint64  `json:"ignored"`
	Adopted       uint64  `json:"adopted"`
	Destroyed     uint64  `json:"destroyed"`
	Frames        uint64  `json:"frames"`
	Tracked       int64   `json:"tracked"`
	CreationGaps  uint64  `json:"creation_gaps"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
