// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: journal/replay.go
// Summary: Replays a recorded run as a live notification source.

package journal

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/framegrace/limn/platform"
)

// Replayer feeds a recorded run back through the tracker as if the
// notifications were arriving live. Pacing follows the recorded
// timestamps scaled by Speed; a Speed of 0 replays as fast as possible.
//
// The pump goroutine starts when Bootstrap is called, so the tracker
// sees the same ordering a live source gives it: adopt the pre-existing
// windows first, then consume the stream. The notification channel is
// closed after the last entry, which ends the tracker run.
type Replayer struct {
	entries []Entry
	speed   float64

	ch      chan platform.Notification
	stopCh  chan struct{}
	started sync.Once
	stopped sync.Once
}

// NewReplayer builds a replayer over entries at the given speed
// multiplier. 1.0 is real time, 2.0 twice as fast, 0 unpaced.
func NewReplayer(entries []Entry, speed float64) *Replayer {
	if speed < 0 {
		speed = 0
	}
	return &Replayer{
		entries: entries,
		speed:   speed,
		ch:      make(chan platform.Notification, 16),
		stopCh:  make(chan struct{}),
	}
}

// Notifications returns the replayed stream.
func (r *Replayer) Notifications() <-chan platform.Notification {
	return r.ch
}

// Bootstrap enumerates windows that were already alive when recording
// started: anything whose first journaled event is not a create never
// gets created during replay, so it is synthesized here. Calling
// Bootstrap also starts the pump.
func (r *Replayer) Bootstrap(ctx context.Context) ([]platform.WindowInfo, error) {
	seen := make(map[platform.WindowID]bool)
	var infos []platform.WindowInfo

	for _, e := range r.entries {
		if e.Object != platform.ObjectWindow || seen[e.Window] {
			continue
		}
		seen[e.Window] = true
		if e.Event == platform.EventCreate {
			continue
		}
		infos = append(infos, platform.WindowInfo{
			ID:      e.Window,
			Rect:    e.Rect,
			Visible: true,
		})
	}

	r.started.Do(func() { go r.pump() })
	return infos, nil
}

// Close stops the pump. The notification channel is closed by the pump
// itself once it exits.
func (r *Replayer) Close() error {
	r.stopped.Do(func() { close(r.stopCh) })
	return nil
}

func (r *Replayer) pump() {
	defer close(r.ch)

	var prev time.Time
	for i, e := range r.entries {
		if r.speed > 0 && i > 0 {
			gap := e.Time.Sub(prev)
			if gap > 0 {
				delay := time.Duration(float64(gap) / r.speed)
				select {
				case <-time.After(delay):
				case <-r.stopCh:
					return
				}
			}
		}
		prev = e.Time

		select {
		case r.ch <- e.Notification:
		case <-r.stopCh:
			return
		}
	}
	log.Printf("[JOURNAL] Replay finished after %d event(s)", len(r.entries))
}
