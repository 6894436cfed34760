// Package hotkey registers the global pause shortcut. A single
// key chord flips the engine's paused flag without touching the tray
// or the HTTP API.
package hotkey

import (
	"log"

	hook "github.com/robotn/gohook"

	"github.com/averma/handwave/internal/config"
)

// DefaultChord is the pause shortcut.
var DefaultChord = []string{"p", "ctrl", "alt"}

// Listener flips the runtime paused flag whenever the chord is pressed.
type Listener struct {
	cfg      *config.Store
	chord    []string
	onToggle func(paused bool)
}

// New creates a Listener for the runtime config. A nil chord uses the
// default.
func New(cfg *config.Store, chord []string) *Listener {
	if len(chord) == 0 {
		chord = DefaultChord
	}
	return &Listener{cfg: cfg, chord: chord}
}

// OnToggle sets a callback invoked with the new paused state, for
// keeping the tray checkbox in sync.
func (l *Listener) OnToggle(fn func(paused bool)) {
	l.onToggle = fn
}

// Run registers the chord and blocks processing hook events until Stop
// is called.
func (l *Listener) Run() {
	hook.Register(hook.KeyDown, l.chord, func(e hook.Event) {
		paused := l.cfg.TogglePaused()
		log.Printf("hotkey: paused=%v", paused)
		if l.onToggle != nil {
			l.onToggle(paused)
		}
	})

	s := hook.Start()
	<-hook.Process(s)
}

// Stop ends hook processing and unblocks Run.
func (l *Listener) Stop() {
	hook.End()
}
