// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tracker/tracker.go
// Summary: Single-goroutine engine turning window notifications into
// border state and animation frames.
// Usage: limn serve and limn sim each run one Tracker over their source.
// Notes: All border mutation happens on the Run goroutine. Platform
// callbacks never touch a border directly; they enqueue notifications on
// the source channel and the loop here consumes them between ticks.

package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/platform"
)

// Recorder observes every notification before dispatch, including the
// cursor noise the dispatcher drops, so a replayed stream matches what
// the tracker saw. Record must not block.
type Recorder interface {
	Record(n platform.Notification)
}

// Options configure a Tracker.
type Options struct {
	// Style is shared read-only by every border.
	Style border.Style
	// Surfaces builds the drawing side of each adopted window. Nil runs
	// headless on NopSurface.
	Surfaces platform.SurfaceFactory
	// Recorder, when set, captures the notification stream.
	Recorder Recorder
	// Watcher gates creation adoption. Nil installs a persistent one.
	Watcher *Watcher
}

// Tracker owns every border for one notification source.
type Tracker struct {
	source   platform.Source
	style    border.Style
	surfaces platform.SurfaceFactory
	recorder Recorder
	watcher  *Watcher

	registry *Registry
	stats    Stats
}

func New(source platform.Source, opts Options) *Tracker {
	if opts.Surfaces == nil {
		opts.Surfaces = platform.NopFactory
	}
	if opts.Watcher == nil {
		opts.Watcher = NewWatcher(false)
	}
	return &Tracker{
		source:   source,
		style:    opts.Style,
		surfaces: opts.Surfaces,
		recorder: opts.Recorder,
		watcher:  opts.Watcher,
		registry: NewRegistry(),
	}
}

// Run adopts the windows that already exist, then consumes notifications
// and drives the frame cadence until the context ends or the source
// closes its channel. The source is closed on the way out.
func (t *Tracker) Run(ctx context.Context) error {
	t.stats.StartNano.Store(time.Now().UnixNano())
	if err := t.bootstrap(ctx); err != nil {
		t.source.Close()
		return err
	}

	fps := t.style.Speeds.FPS
	if fps < 1 {
		fps = anim.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			t.teardown("context done")
			return nil
		case n, ok := <-t.source.Notifications():
			if !ok {
				t.teardown("source closed")
				return nil
			}
			t.dispatch(n)
		case now := <-ticker.C:
			t.tickAll(now.Sub(last))
			last = now
		}
	}
}

func (t *Tracker) bootstrap(ctx context.Context) error {
	infos, err := t.source.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("tracker: bootstrap: %w", err)
	}
	for _, info := range infos {
		if !info.Visible {
			continue
		}
		t.adopt(info)
	}
	log.Printf("Tracker: bootstrap adopted %d of %d window(s)", t.registry.Len(), len(infos))
	return nil
}

// dispatch applies one notification. Recording happens before any
// filtering so the journal captures the stream unmodified.
func (t *Tracker) dispatch(n platform.Notification) {
	t.stats.Notifications.Add(1)
	if t.recorder != nil {
		t.recorder.Record(n)
	}
	if n.Object != platform.ObjectWindow {
		if n.Object == platform.ObjectCursor {
			t.stats.CursorDropped.Add(1)
		} else {
			t.stats.Ignored.Add(1)
		}
		return
	}

	switch n.Event {
	case platform.EventCreate:
		if !t.watcher.Accept() {
			return
		}
		t.adopt(platform.WindowInfo{ID: n.Window, Rect: n.Rect, Visible: true})
		t.watcher.Rearm()

	case platform.EventDestroy:
		b, ok := t.lookup(n)
		if !ok {
			return
		}
		b.Destroy()
		t.registry.Remove(n.Window)
		t.stats.Destroyed.Add(1)
		t.stats.Tracked.Store(int64(t.registry.Len()))

	case platform.EventHide:
		if b, ok := t.lookup(n); ok {
			b.Hide()
		}

	case platform.EventShow:
		if b, ok := t.lookup(n); ok {
			b.Show()
		}

	case platform.EventForeground:
		b, ok := t.lookup(n)
		if !ok {
			return
		}
		if !n.Rect.Empty() {
			b.SetRect(n.Rect)
		}
		t.registry.Each(func(other *border.Border) {
			other.SetFocused(other == b)
		})

	case platform.EventLocationChange:
		if b, ok := t.lookup(n); ok && !n.Rect.Empty() {
			b.SetRect(n.Rect)
		}

	default:
		t.stats.Ignored.Add(1)
	}
}

// lookup resolves the border a notification targets. A stale or unknown
// window is logged and counted, never fatal.
func (t *Tracker) lookup(n platform.Notification) (*border.Border, bool) {
	b, ok := t.registry.Lookup(n.Window)
	if !ok {
		t.stats.Ignored.Add(1)
		log.Printf("Tracker: %s for untracked window %d, ignoring", n.Event, n.Window)
	}
	return b, ok
}

func (t *Tracker) adopt(info platform.WindowInfo) {
	if _, ok := t.registry.Lookup(info.ID); ok {
		return
	}
	surface, err := t.surfaces(info)
	if err != nil {
		log.Printf("Tracker: surface for window %d: %v", info.ID, err)
		return
	}
	t.registry.Add(border.New(info, t.style, surface))
	t.stats.Adopted.Add(1)
	t.stats.Tracked.Store(int64(t.registry.Len()))
}

func (t *Tracker) tickAll(elapsed time.Duration) {
	drew := false
	t.registry.Each(func(b *border.Border) {
		if b.Tick(elapsed) {
			drew = true
		}
	})
	if drew {
		t.stats.Frames.Add(1)
	}
}

func (t *Tracker) teardown(reason string) {
	log.Printf("Tracker: shutting down (%s), releasing %d border(s)", reason, t.registry.Len())
	t.registry.Each(func(b *border.Border) { b.Destroy() })
	t.registry = NewRegistry()
	t.stats.Tracked.Store(0)
	if err := t.source.Close(); err != nil {
		log.Printf("Tracker: source close: %v", err)
	}
}

// Snapshot copies the counters. Safe to call from any goroutine.
func (t *Tracker) Snapshot() Snapshot {
	var uptime float64
	if start := t.stats.StartNano.Load(); start != 0 {
		uptime = time.Since(time.Unix(0, start)).Seconds()
	}
	return Snapshot{
		Notifications: t.stats.Notifications.Load(),
		CursorDropped: t.stats.CursorDropped.Load(),
		Ignored:       t.stats.Ignored.Load(),
		Adopted:       t.stats.Adopted.Load(),
		Destroyed:     t.stats.Destroyed.Load(),
		Frames:        t.stats.Frames.Load(),
		Tracked:       t.stats.Tracked.Load(),
		CreationGaps:  t.watcher.Missed(),
		UptimeSeconds: uptime,
	}
}
