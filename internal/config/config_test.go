package config

import (
	"sync"
	"testing"

	"github.com/averma/handwave/internal/gesture"
)

func TestStore_Defaults(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()

	if !snap.IsEnabled(gesture.SwipeUp) || !snap.IsEnabled(gesture.SwipeDown) || !snap.IsEnabled(gesture.Scroll) {
		t.Error("vertical swipes and scroll should be enabled by default")
	}
	if snap.IsEnabled(gesture.SwipeLeft) || snap.IsEnabled(gesture.SwipeRight) {
		t.Error("horizontal swipes should be disabled by default")
	}
	if snap.Paused() {
		t.Error("engine should not start paused")
	}
}

func TestStore_SetEnabled(t *testing.T) {
	s := NewStore()

	s.SetEnabled(gesture.SwipeLeft, true)
	if !s.Snapshot().IsEnabled(gesture.SwipeLeft) {
		t.Error("SwipeLeft should be enabled after SetEnabled")
	}

	s.SetEnabled(gesture.Scroll, false)
	snap := s.Snapshot()
	if snap.IsEnabled(gesture.Scroll) {
		t.Error("Scroll should be disabled")
	}
	if !snap.IsEnabled(gesture.SwipeLeft) {
		t.Error("SwipeLeft should stay enabled; writes must not clobber other flags")
	}
}

func TestStore_SnapshotIsImmutable(t *testing.T) {
	s := NewStore()
	before := s.Snapshot()

	s.SetEnabled(gesture.SwipeUp, false)

	if !before.IsEnabled(gesture.SwipeUp) {
		t.Error("an already-taken snapshot must not observe later writes")
	}
	if s.Snapshot().IsEnabled(gesture.SwipeUp) {
		t.Error("new snapshots must observe the write")
	}
}

func TestSnapshot_EnabledReturnsCopy(t *testing.T) {
	s := NewStore()
	flags := s.Snapshot().Enabled()

	if !flags[gesture.SwipeUp] {
		t.Fatal("SwipeUp should be enabled by default")
	}

	// Mutating the returned map must not leak into the store
	flags[gesture.SwipeUp] = false
	if !s.Snapshot().IsEnabled(gesture.SwipeUp) {
		t.Error("Enabled() must hand out a copy, not the live map")
	}
}

func TestStore_Toggle(t *testing.T) {
	s := NewStore()

	if got := s.Toggle(gesture.SwipeLeft); !got {
		t.Error("Toggle should flip SwipeLeft to true")
	}
	if got := s.Toggle(gesture.SwipeLeft); got {
		t.Error("Toggle should flip SwipeLeft back to false")
	}
}

func TestStore_Pause(t *testing.T) {
	s := NewStore()

	if got := s.TogglePaused(); !got {
		t.Error("TogglePaused should return true")
	}
	if !s.Snapshot().Paused() {
		t.Error("store should be paused")
	}
	s.SetPaused(false)
	if s.Snapshot().Paused() {
		t.Error("store should be resumed")
	}
}

func TestStore_Restore(t *testing.T) {
	s := NewStore()
	s.Restore(map[gesture.Kind]bool{
		gesture.SwipeLeft: true,
		gesture.Scroll:    false,
	})

	snap := s.Snapshot()
	if !snap.IsEnabled(gesture.SwipeLeft) {
		t.Error("restored SwipeLeft should be enabled")
	}
	if snap.IsEnabled(gesture.Scroll) {
		t.Error("restored Scroll should be disabled")
	}
	if !snap.IsEnabled(gesture.SwipeUp) {
		t.Error("kinds absent from the restored map keep their defaults")
	}
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.SetEnabled(gesture.SwipeLeft, j%2 == 0)
				s.Snapshot()
			}
		}()
	}
	wg.Wait()

	// The final value just needs to be consistent, no torn state
	s.SetEnabled(gesture.SwipeLeft, true)
	if !s.Snapshot().IsEnabled(gesture.SwipeLeft) {
		t.Error("final write lost")
	}
}
