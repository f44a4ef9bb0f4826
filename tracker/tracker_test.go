// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tracker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

type stubSurface struct {
	rects    []geom.Rect
	shows    int
	hides    int
	destroys int
	frames   int
}

func (s *stubSurface) SetRect(r geom.Rect) { s.rects = append(s.rects, r) }
func (s *stubSurface) Show()               { s.shows++ }
func (s *stubSurface) Hide()               { s.hides++ }
func (s *stubSurface) Destroy()            { s.destroys++ }
func (s *stubSurface) Present(anim.Visual) { s.frames++ }

type stubFactory struct {
	surfaces map[platform.WindowID]*stubSurface
}

func newStubFactory() *stubFactory {
	return &stubFactory{surfaces: make(map[platform.WindowID]*stubSurface)}
}

func (f *stubFactory) create(info platform.WindowInfo) (platform.Surface, error) {
	s := &stubSurface{}
	f.surfaces[info.ID] = s
	return s, nil
}

type fakeSource struct {
	ch     chan platform.Notification
	infos  []platform.WindowInfo
	closed atomic.Bool
}

func newFakeSource(infos ...platform.WindowInfo) *fakeSource {
	return &fakeSource{ch: make(chan platform.Notification, 16), infos: infos}
}

func (s *fakeSource) Notifications() <-chan platform.Notification { return s.ch }
func (s *fakeSource) Bootstrap(context.Context) ([]platform.WindowInfo, error) {
	return s.infos, nil
}
func (s *fakeSource) Close() error { s.closed.Store(true); return nil }

func plainStyle() border.Style {
	return border.Style{Speeds: anim.Speeds{FPS: 60}}
}

func win(id platform.WindowID, focused bool) platform.WindowInfo {
	return platform.WindowInfo{
		ID:      id,
		Rect:    geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50},
		Visible: true,
		Focused: focused,
	}
}

func note(event platform.EventKind, id platform.WindowID) platform.Notification {
	return platform.Notification{
		Event:  event,
		Window: id,
		Object: platform.ObjectWindow,
		Rect:   geom.Rect{Left: 5, Top: 5, Right: 105, Bottom: 55},
		Time:   time.Now(),
	}
}

func newTestTracker(t *testing.T, style border.Style, infos ...platform.WindowInfo) (*Tracker, *stubFactory, *fakeSource) {
	t.Helper()
	src := newFakeSource(infos...)
	f := newStubFactory()
	tr := New(src, Options{Style: style, Surfaces: f.create})
	return tr, f, src
}

func TestBootstrapAdoptsVisibleWindows(t *testing.T) {
	hidden := platform.WindowInfo{ID: 3, Rect: geom.Rect{Right: 10, Bottom: 10}}
	tr, f, _ := newTestTracker(t, plainStyle(), win(1, true), win(2, false), hidden)

	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if tr.registry.Len() != 2 {
		t.Fatalf("tracked = %d, want 2", tr.registry.Len())
	}
	if _, ok := tr.registry.Lookup(3); ok {
		t.Error("adopted a window that was not visible")
	}
	if len(f.surfaces) != 2 {
		t.Errorf("surfaces = %d, want 2", len(f.surfaces))
	}
	snap := tr.Snapshot()
	if snap.Adopted != 2 || snap.Tracked != 2 {
		t.Errorf("snapshot = %+v, want 2 adopted / 2 tracked", snap)
	}
}

func TestDispatchCursorNoiseDropped(t *testing.T) {
	tr, _, _ := newTestTracker(t, plainStyle(), win(1, true))
	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	n := note(platform.EventLocationChange, 1)
	n.Object = platform.ObjectCursor
	tr.dispatch(n)

	b, _ := tr.registry.Lookup(1)
	if b.Rect() != win(1, true).Rect {
		t.Errorf("cursor noise moved the border to %v", b.Rect())
	}
	if snap := tr.Snapshot(); snap.CursorDropped != 1 {
		t.Errorf("cursor_dropped = %d, want 1", snap.CursorDropped)
	}
}

func TestDispatchLocationChangeRepositions(t *testing.T) {
	tr, f, _ := newTestTracker(t, plainStyle(), win(1, true))
	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	n := note(platform.EventLocationChange, 1)
	tr.dispatch(n)

	b, _ := tr.registry.Lookup(1)
	if b.Rect() != n.Rect {
		t.Errorf("border rect = %v, want %v", b.Rect(), n.Rect)
	}
	surf := f.surfaces[1]
	if surf.rects[len(surf.rects)-1] != n.Rect {
		t.Errorf("surface rect = %v, want %v", surf.rects[len(surf.rects)-1], n.Rect)
	}
}

func TestDispatchUntrackedIgnored(t *testing.T) {
	tr, _, _ := newTestTracker(t, plainStyle(), win(1, true))
	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	tr.dispatch(note(platform.EventLocationChange, 99))
	tr.dispatch(note(platform.EventDestroy, 99))

	if snap := tr.Snapshot(); snap.Ignored != 2 {
		t.Errorf("ignored = %d, want 2", snap.Ignored)
	}
	if tr.registry.Len() != 1 {
		t.Errorf("tracked = %d, want 1", tr.registry.Len())
	}
}

func TestDispatchForegroundFansOut(t *testing.T) {
	tr, _, _ := newTestTracker(t, plainStyle(), win(1, true), win(2, false))
	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	n := note(platform.EventForeground, 2)
	tr.dispatch(n)

	b1, _ := tr.registry.Lookup(1)
	b2, _ := tr.registry.Lookup(2)
	if !b2.Focused() {
		t.Error("foreground target not focused")
	}
	if b1.Focused() {
		t.Error("previous foreground window kept focus")
	}
	if b2.Rect() != n.Rect {
		t.Errorf("foreground did not reposition: %v", b2.Rect())
	}
}

func TestDispatchHideShowDestroy(t *testing.T) {
	tr, f, _ := newTestTracker(t, plainStyle(), win(1, true))
	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	b, _ := tr.registry.Lookup(1)

	tr.dispatch(note(platform.EventHide, 1))
	if b.Visible() {
		t.Fatal("border visible after hide")
	}
	tr.dispatch(note(platform.EventShow, 1))
	if !b.Visible() {
		t.Fatal("border hidden after show")
	}

	tr.dispatch(note(platform.EventDestroy, 1))
	if _, ok := tr.registry.Lookup(1); ok {
		t.Fatal("border still tracked after destroy")
	}
	if f.surfaces[1].destroys != 1 {
		t.Errorf("surface destroys = %d, want 1", f.surfaces[1].destroys)
	}
	snap := tr.Snapshot()
	if snap.Destroyed != 1 || snap.Tracked != 0 {
		t.Errorf("snapshot = %+v, want 1 destroyed / 0 tracked", snap)
	}
}

func TestDispatchCreateAdopts(t *testing.T) {
	tr, f, _ := newTestTracker(t, plainStyle())

	n := note(platform.EventCreate, 7)
	tr.dispatch(n)

	b, ok := tr.registry.Lookup(7)
	if !ok {
		t.Fatal("created window not adopted")
	}
	if b.Focused() {
		t.Error("fresh border should start unfocused")
	}
	if b.Rect() != n.Rect {
		t.Errorf("adopted rect = %v, want %v", b.Rect(), n.Rect)
	}
	if f.surfaces[7] == nil {
		t.Fatal("no surface created")
	}

	// A duplicate create for a tracked window changes nothing.
	tr.dispatch(n)
	if snap := tr.Snapshot(); snap.Adopted != 1 {
		t.Errorf("adopted = %d after duplicate create, want 1", snap.Adopted)
	}
}

func TestWatcherOneShotGap(t *testing.T) {
	w := NewWatcher(true)
	if !w.Accept() {
		t.Fatal("armed watcher rejected the first creation")
	}
	if w.Armed() {
		t.Fatal("watcher still armed mid-adoption")
	}
	if w.Accept() {
		t.Fatal("disarmed watcher accepted a creation")
	}
	if w.Missed() != 1 {
		t.Fatalf("missed = %d, want 1", w.Missed())
	}
	w.Rearm()
	if !w.Armed() || !w.Accept() {
		t.Fatal("re-armed watcher rejected a creation")
	}

	p := NewWatcher(false)
	if !p.Accept() || !p.Accept() || !p.Armed() {
		t.Fatal("persistent watcher must always accept")
	}
	p.Rearm()
	if p.Missed() != 0 {
		t.Fatalf("persistent watcher missed = %d, want 0", p.Missed())
	}
}

func TestCreateRearmsOneShotWatcher(t *testing.T) {
	src := newFakeSource()
	f := newStubFactory()
	w := NewWatcher(true)
	tr := New(src, Options{Style: plainStyle(), Surfaces: f.create, Watcher: w})

	tr.dispatch(note(platform.EventCreate, 4))
	if !w.Armed() {
		t.Fatal("watcher left disarmed after adoption")
	}
	if _, ok := tr.registry.Lookup(4); !ok {
		t.Fatal("window not adopted")
	}
	if snap := tr.Snapshot(); snap.CreationGaps != 0 {
		t.Errorf("creation_gaps = %d, want 0", snap.CreationGaps)
	}
}

func TestTickAllCountsFrames(t *testing.T) {
	style := border.Style{
		Speeds: anim.Speeds{
			Active: map[anim.Kind]float64{anim.Spiral: 90},
			FPS:    60,
		},
	}
	tr, f, _ := newTestTracker(t, style, win(1, true))
	if err := tr.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	tr.tickAll(16 * time.Millisecond)
	if snap := tr.Snapshot(); snap.Frames != 1 {
		t.Errorf("frames = %d, want 1", snap.Frames)
	}
	// One snap paint at adoption plus one animated frame.
	if f.surfaces[1].frames != 2 {
		t.Errorf("surface frames = %d, want 2", f.surfaces[1].frames)
	}

	// A border with nothing to animate contributes no frames.
	tr2, _, _ := newTestTracker(t, plainStyle(), win(1, true))
	if err := tr2.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	tr2.tickAll(16 * time.Millisecond)
	if snap := tr2.Snapshot(); snap.Frames != 0 {
		t.Errorf("idle frames = %d, want 0", snap.Frames)
	}
}

func TestRunDrainsAndCloses(t *testing.T) {
	tr, f, src := newTestTracker(t, plainStyle(), win(1, true))

	done := make(chan error, 1)
	go func() { done <- tr.Run(context.Background()) }()

	src.ch <- note(platform.EventCreate, 2)
	close(src.ch)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop after source closed")
	}
	if !src.closed.Load() {
		t.Error("source not closed on shutdown")
	}
	for id, s := range f.surfaces {
		if s.destroys != 1 {
			t.Errorf("surface %d destroys = %d, want 1", id, s.destroys)
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	tr, _, src := newTestTracker(t, plainStyle(), win(1, true))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop on cancel")
	}
	if !src.closed.Load() {
		t.Error("source not closed on shutdown")
	}
}
