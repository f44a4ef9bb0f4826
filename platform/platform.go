// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: platform/platform.go
// Summary: Window-system event model shared by every notification source.
// Notes: Sources deliver Notifications; the tracker turns them into border
// state. Surfaces are the drawing side, one per tracked window, fed the
// visual frame computed on each tick.

package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/geom"
)

// WindowID identifies a top-level window for the lifetime of the window.
// Sources must never reuse an ID while the window is still tracked.
type WindowID int64

// ObjectID qualifies which object inside a window a notification refers
// to. Window systems attach the same event stream to child objects (the
// caret, the cursor, accessibility nodes); only ObjectWindow notifications
// describe the window itself.
type ObjectID int32

const (
	// ObjectWindow marks a notification about the window proper.
	ObjectWindow ObjectID = 0
	// ObjectCursor marks cursor-object noise. Cursors emit location
	// storms while blinking; the dispatcher drops these before any
	// per-window work.
	ObjectCursor ObjectID = -9
)

// EventKind enumerates the window notifications the tracker reacts to.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventCreate
	EventDestroy
	EventShow
	EventHide
	EventForeground
	EventLocationChange
)

var eventNames = map[EventKind]string{
	EventUnknown:        "unknown",
	EventCreate:         "create",
	EventDestroy:        "destroy",
	EventShow:           "show",
	EventHide:           "hide",
	EventForeground:     "foreground",
	EventLocationChange: "location_change",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// ParseEventKind maps the stable wire name of an event back to its kind.
// Matching is case-insensitive and tolerates surrounding whitespace.
func ParseEventKind(name string) (EventKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, s := range eventNames {
		if s == name && kind != EventUnknown {
			return kind, true
		}
	}
	return EventUnknown, false
}

// MarshalJSON writes the stable wire name. The names are load-bearing:
// they appear on the notify socket and in journal rows.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

func (k *EventKind) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("platform: event kind: %w", err)
	}
	parsed, ok := ParseEventKind(s)
	if !ok {
		return fmt.Errorf("platform: unknown event kind %q", s)
	}
	*k = parsed
	return nil
}

// Notification is one window-system event as delivered by a Source.
type Notification struct {
	Event  EventKind `json:"event"`
	Window WindowID  `json:"window"`
	Object ObjectID  `json:"object"`
	Rect   geom.Rect `json:"rect"`
	Time   time.Time `json:"time"`
}

// WindowInfo is the tracker-relevant snapshot of an existing window,
// reported during bootstrap enumeration.
type WindowInfo struct {
	ID      WindowID  `json:"id"`
	Title   string    `json:"title"`
	Rect    geom.Rect `json:"rect"`
	Visible bool      `json:"visible"`
	Focused bool      `json:"focused"`
}

// Source feeds window notifications to the tracker.
//
// Notifications returns the event channel. The source closes it when it
// shuts down; the tracker treats the close as end of input. Bootstrap
// enumerates windows that already exist so the tracker can adopt them
// before the first live event arrives.
type Source interface {
	Notifications() <-chan Notification
	Bootstrap(ctx context.Context) ([]WindowInfo, error)
	Close() error
}

// Surface is the drawing side of one tracked window's border. All calls
// arrive from the tracker goroutine, never concurrently.
type Surface interface {
	// SetRect moves the surface to follow the window it decorates.
	SetRect(r geom.Rect)
	// Show and Hide toggle visibility without losing state.
	Show()
	Hide()
	// Destroy releases the surface. No call follows Destroy.
	Destroy()
	// Present draws one visual frame.
	Present(v anim.Visual)
}

// SurfaceFactory builds the drawing surface for a newly adopted window.
type SurfaceFactory func(info WindowInfo) (Surface, error)

// NopSurface draws nothing. Headless daemons use it so the tracker can
// run, and the journal record, without a compositor attached.
type NopSurface struct{}

func (NopSurface) SetRect(geom.Rect)   {}
func (NopSurface) Show()               {}
func (NopSurface) Hide()               {}
func (NopSurface) Destroy()            {}
func (NopSurface) Present(anim.Visual) {}

// NopFactory hands every window a NopSurface.
func NopFactory(WindowInfo) (Surface, error) { return NopSurface{}, nil }
