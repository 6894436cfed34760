package capture

import (
	"errors"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func TestPlaybackCamera_Sequence(t *testing.T) {
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewPlaybackCamera([]*gocv.Mat{&frame1, &frame2}, false)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.Read()
		if err != nil {
			t.Fatalf("Read frame %d: %v", i, err)
		}
		f.Close()
	}

	if _, err := cam.Read(); !errors.Is(err, ErrEndOfFrames) {
		t.Errorf("read past the end error = %v, want ErrEndOfFrames", err)
	}
	if got := cam.Remaining(); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestPlaybackCamera_Loop(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewPlaybackCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.Read()
		if err != nil {
			t.Fatalf("Read iteration %d: %v", i, err)
		}
		f.Close()
	}
}

func TestPlaybackCamera_NotOpen(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewPlaybackCamera([]*gocv.Mat{&frame}, false)
	if _, err := cam.Read(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Read before Open error = %v, want ErrNotOpen", err)
	}
}

func TestPlaybackCamera_Rewind(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewPlaybackCamera([]*gocv.Mat{&frame}, false)
	cam.Open()
	defer cam.Close()

	f, err := cam.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	f.Close()

	cam.Rewind()
	f, err = cam.Read()
	if err != nil {
		t.Fatalf("Read after Rewind: %v", err)
	}
	f.Close()
}

func TestMotionGate_StillScene(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	now := time.Now()
	active, changed := gate.Observe(&frame1, now)
	if active {
		t.Error("priming frame reported active")
	}
	if changed != 0 {
		t.Errorf("priming frame changed = %f, want 0", changed)
	}

	active, changed = gate.Observe(&frame2, now.Add(200*time.Millisecond))
	if active {
		t.Errorf("identical frames reported active, changed = %f", changed)
	}
}

func TestMotionGate_MotionActivatesAndHolds(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()
	gate.SetHold(time.Second)

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	now := time.Now()
	gate.Observe(&black, now)

	active, changed := gate.Observe(&white, now.Add(100*time.Millisecond))
	if !active {
		t.Errorf("full-frame change not active, changed = %f", changed)
	}
	if changed < 50 {
		t.Errorf("changed = %f, want most of the frame", changed)
	}

	// A still frame inside the hold window stays active.
	active, _ = gate.Observe(&white, now.Add(600*time.Millisecond))
	if !active {
		t.Error("gate dropped inside the hold window")
	}

	// Past the hold window it goes idle.
	active, _ = gate.Observe(&white, now.Add(3*time.Second))
	if active {
		t.Error("gate still active past the hold window")
	}
}

func TestMotionGate_Reset(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	now := time.Now()
	gate.Observe(&black, now)
	gate.Observe(&white, now.Add(100*time.Millisecond))

	gate.Reset()

	// After reset the next frame only primes again.
	active, changed := gate.Observe(&white, now.Add(200*time.Millisecond))
	if active {
		t.Error("gate active right after Reset")
	}
	if changed != 0 {
		t.Errorf("priming frame after Reset changed = %f, want 0", changed)
	}
}
