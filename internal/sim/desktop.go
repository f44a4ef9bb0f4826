// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sim/desktop.go
// Summary: Terminal desktop simulator driving the tracker with synthetic
// window events.
// Usage: `limn sim` wires a Desktop as the tracker's platform source and
// surface factory; keys create, move, hide, and focus windows, and the
// tracker's animated borders are drawn around them.
// Notes: The Run goroutine owns the windows and the screen. The tracker
// goroutine reaches the desktop only through the notification channel and
// the surface frames; both paths are non-blocking.

package sim

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/limn/anim"
	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
	"github.com/framegrace/limn/tracker"
)

const (
	moveStepX = 2
	moveStepY = 1
	markerLen = 3
)

// Options configure a simulator desktop.
type Options struct {
	// Screen overrides the tcell screen, which tests point at a
	// simulation screen. Nil opens the real terminal.
	Screen tcell.Screen

	// Style supplies the border colors used to paint surface frames.
	Style border.Style

	// Background fills the desktop behind the windows.
	Background tcell.Color

	// Windows is how many windows exist before the tracker bootstraps.
	Windows int

	// Command, when set, runs inside every window through a pty; its
	// output tail becomes the window content.
	Command string

	// Interactive enables the window-management keys. Off, the desktop
	// is a pure border viewer for replayed runs: quit keys only.
	Interactive bool

	// FPS overrides the draw cadence. Zero uses the animation default.
	FPS int

	// Stats, when set, feeds the footer's live counters.
	Stats func() tracker.Snapshot
}

// Desktop is a synthetic window system rendered in a terminal. It
// implements platform.Source for the tracker and hands out the drawing
// surfaces its draw loop composes.
type Desktop struct {
	screen      tcell.Screen
	style       border.Style
	background  tcell.Color
	command     string
	interactive bool
	fps         int
	stats       func() tracker.Snapshot

	notifs    chan platform.Notification
	refresh   chan bool
	quit      chan struct{}
	closeOnce sync.Once
	dropped   int

	mu       sync.Mutex
	surfaces map[platform.WindowID]*borderSurface

	// Run-goroutine state. Nothing below is touched elsewhere.
	windows  []*Window
	focusIdx int
	nextID   platform.WindowID
	initial  []platform.WindowInfo
}

// NewDesktop initializes the screen and spawns the initial windows.
// Callers must Run the desktop; the screen is released when Run returns.
func NewDesktop(opts Options) (*Desktop, error) {
	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("sim: open screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("sim: screen init: %w", err)
	}

	background := opts.Background
	if !background.Valid() {
		background = tcell.ColorBlack
	}
	screen.SetStyle(tcell.StyleDefault.Background(background))
	screen.HideCursor()

	fps := opts.FPS
	if fps < 1 {
		fps = opts.Style.Speeds.FPS
	}
	if fps < 1 {
		fps = anim.DefaultFPS
	}

	d := &Desktop{
		screen:      screen,
		style:       opts.Style,
		background:  background,
		command:     opts.Command,
		interactive: opts.Interactive,
		fps:         fps,
		stats:       opts.Stats,
		notifs:      make(chan platform.Notification, 64),
		refresh:     make(chan bool, 1),
		quit:        make(chan struct{}),
		surfaces:    make(map[platform.WindowID]*borderSurface),
		nextID:      1,
	}

	if opts.Interactive {
		for i := 0; i < opts.Windows; i++ {
			d.spawnWindow()
		}
	}
	for i, w := range d.windows {
		d.initial = append(d.initial, w.Info(i == d.focusIdx))
	}
	return d, nil
}

// Notifications implements platform.Source.
func (d *Desktop) Notifications() <-chan platform.Notification { return d.notifs }

// Bootstrap reports the windows that existed before Run started emitting
// live events.
func (d *Desktop) Bootstrap(ctx context.Context) ([]platform.WindowInfo, error) {
	return d.initial, nil
}

// Close asks the run loop to stop. Safe to call from any goroutine and
// more than once; the notification channel closes when the loop exits.
func (d *Desktop) Close() error {
	d.closeOnce.Do(func() { close(d.quit) })
	return nil
}

// SurfaceFactory returns the factory the tracker uses to build a drawing
// surface per adopted window.
func (d *Desktop) SurfaceFactory() platform.SurfaceFactory {
	return func(info platform.WindowInfo) (platform.Surface, error) {
		s := &borderSurface{id: info.ID, desktop: d, rect: info.Rect}
		d.mu.Lock()
		d.surfaces[info.ID] = s
		d.mu.Unlock()
		return s, nil
	}
}

func (d *Desktop) dropSurface(id platform.WindowID) {
	d.mu.Lock()
	delete(d.surfaces, id)
	d.mu.Unlock()
	d.requestRefresh()
}

// requestRefresh marks the desktop dirty without ever blocking.
func (d *Desktop) requestRefresh() {
	select {
	case d.refresh <- true:
	default:
	}
}

// Run drives the event and draw loop until a quit key, Close, or context
// cancellation. The screen is finalized and the notification channel
// closed on the way out.
func (d *Desktop) Run(ctx context.Context) error {
	defer func() {
		for _, w := range d.windows {
			w.closeContent()
		}
		d.screen.Fini()
		close(d.notifs)
	}()

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-d.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(d.fps))
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.quit:
			return nil
		case ev := <-events:
			if quit := d.handleEvent(ev); quit {
				return nil
			}
			dirty = true
		case <-d.refresh:
			dirty = true
		case <-ticker.C:
			if dirty {
				d.draw()
				dirty = false
			}
		}
	}
}

// post emits a notification toward the tracker. Sends never block: a
// saturated channel drops the event, the same accepted loss a flooded
// OS hook queue has.
func (d *Desktop) post(event platform.EventKind, id platform.WindowID, object platform.ObjectID, rect geom.Rect) {
	n := platform.Notification{
		Event:  event,
		Window: id,
		Object: object,
		Rect:   rect,
		Time:   time.Now(),
	}
	select {
	case d.notifs <- n:
	default:
		d.dropped++
		if d.dropped == 1 {
			log.Printf("Sim: notification channel saturated, dropping events")
		}
	}
}

func (d *Desktop) handleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
		return false
	case *tcell.EventKey:
		return d.handleKey(tev)
	}
	return false
}

func (d *Desktop) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
		return true
	}
	if !d.interactive {
		if ev.Rune() == 'q' {
			return true
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyTab:
		d.focusNext()
		return false
	case tcell.KeyUp:
		d.moveFocused(0, -moveStepY)
		return false
	case tcell.KeyDown:
		d.moveFocused(0, moveStepY)
		return false
	case tcell.KeyLeft:
		d.moveFocused(-moveStepX, 0)
		return false
	case tcell.KeyRight:
		d.moveFocused(moveStepX, 0)
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'n':
		d.createWindow()
	case 'x':
		d.destroyFocused()
	case 'h':
		d.hideFocused()
	case 's':
		d.showHidden()
	case '+', '=':
		d.resizeFocused(moveStepX, moveStepY)
	case '-', '_':
		d.resizeFocused(-moveStepX, -moveStepY)
	case 'c':
		d.cursorNoise()
	}
	return false
}

// spawnWindow adds a window without announcing it, used for the initial
// population before the tracker bootstraps.
func (d *Desktop) spawnWindow() *Window {
	deskW, deskH := d.screen.Size()
	k := int(d.nextID) - 1
	rect := geom.Rect{
		Left: 2 + 4*(k%6),
		Top:  1 + 2*(k%6),
	}
	rect.Right = rect.Left + 36
	rect.Bottom = rect.Top + 12
	if rect.Right > deskW && deskW > minWindowWidth {
		rect.Right = deskW - 1
	}
	if rect.Bottom > deskH && deskH > minWindowHeight {
		rect.Bottom = deskH - 1
	}

	w := &Window{
		id:      d.nextID,
		title:   fmt.Sprintf("window %d", d.nextID),
		rect:    rect,
		visible: true,
	}
	d.nextID++

	if d.command != "" {
		w.title = d.command
		content, err := startCommand(d.command, rect.Width()-2, rect.Height()-2, d.requestRefresh)
		if err != nil {
			log.Printf("Sim: %v, falling back to static content", err)
		} else {
			w.content = content
		}
	}
	if w.content == nil {
		w.content = newStaticContent(
			"",
			fmt.Sprintf("  window %d", w.id),
			"",
			"  tab: focus   arrows: move",
			"  n: new   x: close   h/s: hide/show",
			"  +/-: resize   c: cursor noise   q: quit",
		)
	}

	d.windows = append(d.windows, w)
	return w
}

func (d *Desktop) focused() *Window {
	if d.focusIdx < 0 || d.focusIdx >= len(d.windows) {
		return nil
	}
	w := d.windows[d.focusIdx]
	if !w.visible {
		return nil
	}
	return w
}

// focusNext cycles focus over the visible windows, announcing the new
// foreground window.
func (d *Desktop) focusNext() {
	n := len(d.windows)
	for step := 1; step <= n; step++ {
		idx := (d.focusIdx + step) % n
		if d.windows[idx].visible {
			d.focusIdx = idx
			w := d.windows[idx]
			d.post(platform.EventForeground, w.id, platform.ObjectWindow, w.rect)
			return
		}
	}
}

// focusWindow makes the window at idx foreground.
func (d *Desktop) focusWindow(idx int) {
	if idx < 0 || idx >= len(d.windows) || !d.windows[idx].visible {
		return
	}
	d.focusIdx = idx
	w := d.windows[idx]
	d.post(platform.EventForeground, w.id, platform.ObjectWindow, w.rect)
}

func (d *Desktop) moveFocused(dx, dy int) {
	w := d.focused()
	if w == nil {
		return
	}
	deskW, deskH := d.screen.Size()
	w.moveBy(dx, dy, deskW, deskH)
	d.post(platform.EventLocationChange, w.id, platform.ObjectWindow, w.rect)
}

func (d *Desktop) resizeFocused(dw, dh int) {
	w := d.focused()
	if w == nil {
		return
	}
	w.growBy(dw, dh)
	d.post(platform.EventLocationChange, w.id, platform.ObjectWindow, w.rect)
}

func (d *Desktop) createWindow() {
	w := d.spawnWindow()
	d.post(platform.EventCreate, w.id, platform.ObjectWindow, w.rect)
	d.focusWindow(len(d.windows) - 1)
}

func (d *Desktop) destroyFocused() {
	w := d.focused()
	if w == nil {
		return
	}
	w.closeContent()
	idx := d.focusIdx
	d.windows = append(d.windows[:idx], d.windows[idx+1:]...)
	if d.focusIdx >= len(d.windows) {
		d.focusIdx = 0
	}
	d.post(platform.EventDestroy, w.id, platform.ObjectWindow, w.rect)
	if next := d.firstVisible(); next >= 0 {
		d.focusWindow(next)
	}
}

func (d *Desktop) hideFocused() {
	w := d.focused()
	if w == nil {
		return
	}
	w.visible = false
	d.post(platform.EventHide, w.id, platform.ObjectWindow, w.rect)
	if next := d.firstVisible(); next >= 0 {
		d.focusWindow(next)
	}
}

// showHidden reveals the longest-hidden window and gives it focus.
func (d *Desktop) showHidden() {
	for idx, w := range d.windows {
		if !w.visible {
			w.visible = true
			d.post(platform.EventShow, w.id, platform.ObjectWindow, w.rect)
			d.focusWindow(idx)
			return
		}
	}
}

// cursorNoise emits the cursor-object chatter real window systems
// produce, which the tracker must drop before any per-window work.
func (d *Desktop) cursorNoise() {
	w := d.focused()
	if w == nil {
		return
	}
	d.post(platform.EventLocationChange, w.id, platform.ObjectCursor, w.rect)
}

func (d *Desktop) firstVisible() int {
	for idx, w := range d.windows {
		if w.visible {
			return idx
		}
	}
	return -1
}
