package app

import (
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/averma/handwave/internal/capture"
	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/detector"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/input"
)

// testEngine builds an Engine on a looping single-frame camera, a
// scripted detector, and a recording injector. The motion gate is off
// so every frame reaches detection.
func testEngine(t *testing.T) (*Engine, *detector.MockDetector, *input.MockInjector, func()) {
	t.Helper()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	camera := capture.NewPlaybackCamera([]*gocv.Mat{&frame}, true)
	if err := camera.Open(); err != nil {
		t.Fatalf("camera.Open: %v", err)
	}

	det := detector.NewMockDetector()
	inj := input.NewMockInjector()

	e := New(Config{
		Settings:          config.DefaultSettings(),
		Camera:            camera,
		Detector:          det,
		Injector:          inj,
		DisableMotionGate: true,
	})

	cleanup := func() {
		e.dispatcher.Close()
		camera.Close()
		frame.Close()
	}
	return e, det, inj, cleanup
}

// drive steps the engine through n frames at the given interval.
func drive(e *Engine, start time.Time, n int, interval time.Duration) time.Time {
	now := start
	for i := 0; i < n; i++ {
		e.step(now)
		now = now.Add(interval)
	}
	return now
}

func TestEngine_SwipeUpDispatchesOnce(t *testing.T) {
	e, det, inj, cleanup := testEngine(t)
	defer cleanup()

	// A palm rising 0.05 image heights per frame at 20 FPS crosses the
	// displacement and speed thresholds well before the window fills.
	det.SetSequence(detector.SwipeSequence(10, 0, -0.05))

	drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 10, 50*time.Millisecond)
	e.dispatcher.Close()

	reqs := inj.Requests()
	if len(reqs) != 1 {
		t.Fatalf("len(requests) = %d, want 1 (%v)", len(reqs), reqs)
	}
	if reqs[0].Action != input.PageNext {
		t.Errorf("action = %s, want %s", reqs[0].Action, input.PageNext)
	}
}

func TestEngine_SwipeDownIsPagePrevious(t *testing.T) {
	e, det, inj, cleanup := testEngine(t)
	defer cleanup()

	det.SetSequence(detector.SwipeSequence(10, 0, 0.05))

	drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 10, 50*time.Millisecond)
	e.dispatcher.Close()

	reqs := inj.Requests()
	if len(reqs) != 1 {
		t.Fatalf("len(requests) = %d, want 1", len(reqs))
	}
	if reqs[0].Action != input.PagePrevious {
		t.Errorf("action = %s, want %s", reqs[0].Action, input.PagePrevious)
	}
}

func TestEngine_DisabledKindNeverDispatches(t *testing.T) {
	e, det, inj, cleanup := testEngine(t)
	defer cleanup()

	e.Flags().SetEnabled(gesture.SwipeUp, false)
	det.SetSequence(detector.SwipeSequence(10, 0, -0.05))

	drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 10, 50*time.Millisecond)
	e.dispatcher.Close()

	if reqs := inj.Requests(); len(reqs) != 0 {
		t.Errorf("requests = %v, want none", reqs)
	}
}

func TestEngine_PausedDropsEverything(t *testing.T) {
	e, det, inj, cleanup := testEngine(t)
	defer cleanup()

	e.Flags().SetPaused(true)
	det.SetSequence(detector.SwipeSequence(10, 0, -0.05))

	drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 10, 50*time.Millisecond)
	e.dispatcher.Close()

	if reqs := inj.Requests(); len(reqs) != 0 {
		t.Errorf("requests = %v, want none", reqs)
	}
	// Pause also keeps the scripted frames unconsumed by tracking: the
	// detector is never even asked.
	if det.Remaining() == 0 {
		t.Error("detector consumed frames while paused")
	}
}

func TestEngine_ScrollModeEmitsWheelUnits(t *testing.T) {
	e, det, inj, cleanup := testEngine(t)
	defer cleanup()

	var frames [][]detector.HandLandmarks
	// Hold an open palm long enough to arm and calibrate.
	for i := 0; i < 4; i++ {
		frames = append(frames, []detector.HandLandmarks{detector.OpenPalmLandmarks()})
	}
	// Then point with the index and pull the hand upward.
	pointing := detector.PointingIndexLandmarks()
	for i := 0; i < 5; i++ {
		frames = append(frames, []detector.HandLandmarks{pointing.Translated(0, -0.02*float64(i))})
	}
	det.SetSequence(frames)

	var modes []gesture.Mode
	e.OnMode(func(m gesture.Mode) { modes = append(modes, m) })

	drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), len(frames), 50*time.Millisecond)
	e.dispatcher.Close()

	if len(modes) == 0 || modes[0] != gesture.ScrollActive {
		t.Fatalf("modes = %v, want scroll entry", modes)
	}

	var scrolls []input.Request
	for _, req := range inj.Requests() {
		if req.Action == input.ScrollBy {
			scrolls = append(scrolls, req)
		}
	}
	if len(scrolls) == 0 {
		t.Fatal("no scroll requests dispatched")
	}
	for _, req := range scrolls {
		if req.Delta <= 0 {
			t.Errorf("upward fingertip motion gave delta %d, want positive", req.Delta)
		}
	}
}

func TestEngine_ScrollSuppressesSwipes(t *testing.T) {
	e, det, inj, cleanup := testEngine(t)
	defer cleanup()

	var frames [][]detector.HandLandmarks
	for i := 0; i < 4; i++ {
		frames = append(frames, []detector.HandLandmarks{detector.OpenPalmLandmarks()})
	}
	// A fast upward pointing motion: inside scroll mode it must come
	// through as wheel deltas, never as a page turn.
	pointing := detector.PointingIndexLandmarks()
	for i := 0; i < 8; i++ {
		frames = append(frames, []detector.HandLandmarks{pointing.Translated(0, -0.05*float64(i))})
	}
	det.SetSequence(frames)

	drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), len(frames), 50*time.Millisecond)
	e.dispatcher.Close()

	for _, req := range inj.Requests() {
		if req.Action == input.PageNext || req.Action == input.PagePrevious {
			t.Errorf("page action %s dispatched during scroll mode", req.Action)
		}
	}
}

func TestEngine_SameSequenceSameActions(t *testing.T) {
	run := func() []input.Request {
		e, det, inj, cleanup := testEngine(t)
		defer cleanup()

		det.SetSequence(detector.SwipeSequence(10, 0, -0.05))
		drive(e, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 10, 50*time.Millisecond)
		e.dispatcher.Close()
		return inj.Requests()
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Action != second[i].Action || first[i].Delta != second[i].Delta {
			t.Errorf("request %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEngine_StartStop(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	camera := capture.NewPlaybackCamera([]*gocv.Mat{&frame}, true)

	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})

	e := New(Config{
		Settings:          config.DefaultSettings(),
		Camera:            camera,
		Detector:          det,
		Injector:          input.NewMockInjector(),
		DisableMotionGate: true,
	})

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Starting twice is a no-op.
	if err := e.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	e.Stop()
	// Stopping twice is a no-op.
	e.Stop()

	if camera.IsOpen() {
		t.Error("camera still open after Stop")
	}
}
