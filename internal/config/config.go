// Package config holds the runtime gesture configuration and the TOML
// settings file with all tuning thresholds.
package config

import (
	"sync/atomic"

	"github.com/averma/handwave/internal/gesture"
)

// Snapshot is an immutable view of the runtime gesture configuration.
// The pipeline takes one snapshot per frame so compound decisions never
// see a half-updated state.
type Snapshot struct {
	enabled map[gesture.Kind]bool
	paused  bool
}

// IsEnabled reports whether the gesture kind is enabled.
func (s Snapshot) IsEnabled(k gesture.Kind) bool {
	return s.enabled[k]
}

// Paused reports whether the whole engine is paused.
func (s Snapshot) Paused() bool {
	return s.paused
}

// Enabled returns the per-kind flags as a fresh map, for the HTTP API.
func (s Snapshot) Enabled() map[gesture.Kind]bool {
	out := make(map[gesture.Kind]bool, len(s.enabled))
	for k, v := range s.enabled {
		out[k] = v
	}
	return out
}

// Store holds the live gesture configuration. The UI collaborators
// (tray, HTTP API, hotkey) write it at any time; the pipeline reads one
// whole snapshot per frame. Writes replace the snapshot atomically.
type Store struct {
	v atomic.Pointer[Snapshot]
}

// NewStore creates a Store with the default flags: vertical swipes and
// scrolling enabled, horizontal swipes off.
func NewStore() *Store {
	s := &Store{}
	s.v.Store(&Snapshot{enabled: map[gesture.Kind]bool{
		gesture.SwipeLeft:  false,
		gesture.SwipeRight: false,
		gesture.SwipeUp:    true,
		gesture.SwipeDown:  true,
		gesture.Scroll:     true,
	}})
	return s
}

// Snapshot returns the current configuration. The returned value is
// immutable; later writes produce new snapshots.
func (s *Store) Snapshot() Snapshot {
	return *s.v.Load()
}

// SetEnabled enables or disables one gesture kind.
func (s *Store) SetEnabled(k gesture.Kind, enabled bool) {
	s.update(func(next *Snapshot) {
		next.enabled[k] = enabled
	})
}

// Toggle flips one gesture kind and returns the new value.
func (s *Store) Toggle(k gesture.Kind) bool {
	var now bool
	s.update(func(next *Snapshot) {
		next.enabled[k] = !next.enabled[k]
		now = next.enabled[k]
	})
	return now
}

// SetPaused pauses or resumes the engine.
func (s *Store) SetPaused(paused bool) {
	s.update(func(next *Snapshot) {
		next.paused = paused
	})
}

// TogglePaused flips the paused flag and returns the new value.
func (s *Store) TogglePaused() bool {
	var now bool
	s.update(func(next *Snapshot) {
		next.paused = !next.paused
		now = next.paused
	})
	return now
}

// Restore overlays persisted per-kind flags onto the current snapshot,
// used when loading settings at startup.
func (s *Store) Restore(enabled map[gesture.Kind]bool) {
	s.update(func(next *Snapshot) {
		for k, v := range enabled {
			next.enabled[k] = v
		}
	})
}

// update clones the current snapshot, applies fn, and swaps the pointer.
// Concurrent writers serialize through a compare-and-swap loop.
func (s *Store) update(fn func(*Snapshot)) {
	for {
		cur := s.v.Load()
		next := &Snapshot{
			enabled: make(map[gesture.Kind]bool, len(cur.enabled)),
			paused:  cur.paused,
		}
		for k, v := range cur.enabled {
			next.enabled[k] = v
		}
		fn(next)
		if s.v.CompareAndSwap(cur, next) {
			return
		}
	}
}
