package pose

import (
	"testing"
	"time"

	"github.com/averma/handwave/internal/detector"
)

func TestAdapt_NoHands(t *testing.T) {
	if s := Adapt(nil, time.Now(), 0.5); s != nil {
		t.Error("expected nil sample for empty detection")
	}
	if s := Adapt([]detector.HandLandmarks{}, time.Now(), 0.5); s != nil {
		t.Error("expected nil sample for empty slice")
	}
}

func TestAdapt_BelowConfidence(t *testing.T) {
	hand := detector.OpenPalmLandmarks()
	hand.Score = 0.3

	if s := Adapt([]detector.HandLandmarks{hand}, time.Now(), 0.5); s != nil {
		t.Errorf("expected nil sample for score %.2f below threshold", hand.Score)
	}
}

func TestAdapt_PicksHighestScore(t *testing.T) {
	weak := detector.OpenPalmLandmarks()
	weak.Score = 0.6
	weak.Handedness = "Left"

	strong := detector.OpenPalmLandmarks()
	strong.Score = 0.9
	strong.Handedness = "Right"

	s := Adapt([]detector.HandLandmarks{weak, strong}, time.Now(), 0.5)
	if s == nil {
		t.Fatal("expected a sample")
	}
	if s.Handedness != "Right" || s.Score != 0.9 {
		t.Errorf("expected the higher-scoring hand, got %s score %.2f", s.Handedness, s.Score)
	}
}

func TestAdapt_DegenerateKeypoints(t *testing.T) {
	// All-zero landmarks have no hand scale and must be rejected.
	hand := detector.HandLandmarks{Score: 0.9}

	if s := Adapt([]detector.HandLandmarks{hand}, time.Now(), 0.5); s != nil {
		t.Error("expected nil sample for degenerate keypoint set")
	}
}

func TestAdapt_Deterministic(t *testing.T) {
	hands := []detector.HandLandmarks{detector.OpenPalmLandmarks()}
	now := time.Unix(1000, 0)

	a := Adapt(hands, now, 0.5)
	b := Adapt(hands, now, 0.5)
	if a == nil || b == nil {
		t.Fatal("expected samples")
	}
	if *a != *b {
		t.Error("Adapt should be deterministic for identical input")
	}
}
