// Package tray is the system tray interface for Handwave: per-gesture
// checkboxes, a pause toggle, and a last-gesture display. It writes
// through the runtime config store so the engine picks changes up on
// the next frame.
package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/store"
)

// Labels for the gesture checkboxes, in menu order.
var gestureLabels = []struct {
	kind  gesture.Kind
	label string
}{
	{gesture.SwipeUp, "Swipe up"},
	{gesture.SwipeDown, "Swipe down"},
	{gesture.SwipeLeft, "Swipe left"},
	{gesture.SwipeRight, "Swipe right"},
	{gesture.Scroll, "Scroll mode"},
}

// Tray owns the systray menu. Run blocks for the process lifetime.
type Tray struct {
	cfg      *config.Store
	settings *store.SettingsRepository

	mu      sync.RWMutex
	onQuit  func()
	paused  *systray.MenuItem
	last    *systray.MenuItem
	toggles map[gesture.Kind]*systray.MenuItem
}

// New creates a Tray bound to the runtime config. settings may be nil
// when flag persistence is disabled.
func New(cfg *config.Store, settings *store.SettingsRepository) *Tray {
	return &Tray{
		cfg:      cfg,
		settings: settings,
		toggles:  make(map[gesture.Kind]*systray.MenuItem),
	}
}

// OnQuit sets the callback invoked when the quit item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray loop. Blocks until systray.Quit.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit tears the tray down from outside, for example when the engine
// stops first.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Handwave")
	systray.SetTooltip("Handwave gesture control")

	snap := t.cfg.Snapshot()

	t.mu.Lock()
	t.paused = systray.AddMenuItemCheckbox("Paused", "Suspend gesture dispatch", snap.Paused())
	systray.AddSeparator()

	t.last = systray.AddMenuItem("Last: none", "Last dispatched gesture")
	t.last.Disable()
	systray.AddSeparator()

	for _, g := range gestureLabels {
		item := systray.AddMenuItemCheckbox(g.label, "Enable "+g.label, snap.IsEnabled(g.kind))
		t.toggles[g.kind] = item
	}
	systray.AddSeparator()

	quit := systray.AddMenuItem("Quit", "Quit Handwave")
	t.mu.Unlock()

	for _, g := range gestureLabels {
		go t.watchToggle(g.kind)
	}

	go func() {
		for {
			select {
			case <-t.paused.ClickedCh:
				t.handlePause()
			case <-quit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// watchToggle flips one gesture's enable flag on every click.
func (t *Tray) watchToggle(kind gesture.Kind) {
	t.mu.RLock()
	item := t.toggles[kind]
	t.mu.RUnlock()

	for range item.ClickedCh {
		enabled := t.cfg.Toggle(kind)
		if enabled {
			item.Check()
		} else {
			item.Uncheck()
		}
		if t.settings != nil {
			if err := t.settings.SetGestureEnabled(kind, enabled); err != nil {
				log.Printf("persist gesture %s: %v", kind, err)
			}
		}
	}
}

func (t *Tray) handlePause() {
	paused := t.cfg.TogglePaused()
	if paused {
		t.paused.Check()
	} else {
		t.paused.Uncheck()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// SetLastGesture updates the last-gesture display.
func (t *Tray) SetLastGesture(kind gesture.Kind) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.last == nil {
		return
	}
	if kind == "" {
		t.last.SetTitle("Last: none")
		return
	}
	t.last.SetTitle("Last: " + string(kind))
}

// SetPaused reflects an externally driven pause change, for example
// from the hotkey or the HTTP API.
func (t *Tray) SetPaused(paused bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.paused == nil {
		return
	}
	if paused {
		t.paused.Check()
	} else {
		t.paused.Uncheck()
	}
}
