package pose

import (
	"time"

	"github.com/averma/handwave/internal/detector"
)

// minHandScale rejects degenerate keypoint sets where the landmarks have
// collapsed to a point, which the landmark service emits occasionally
// during tracking glitches.
const minHandScale = 1e-6

// Adapt normalizes one frame's raw detection output into a Sample.
// It selects the highest-scoring hand at or above minConfidence and
// returns nil when no usable hand is present: no detection, all
// detections below threshold, or a degenerate keypoint set. A nil
// result is the ordinary "hand absent" case, never an error.
// Deterministic given identical input.
func Adapt(hands []detector.HandLandmarks, now time.Time, minConfidence float64) *Sample {
	var best *detector.HandLandmarks
	for i := range hands {
		h := &hands[i]
		if h.Score < minConfidence {
			continue
		}
		if best == nil || h.Score > best.Score {
			best = h
		}
	}
	if best == nil {
		return nil
	}

	if best.Scale() < minHandScale {
		return nil
	}

	return &Sample{
		Time:       now,
		Points:     best.Points,
		Handedness: best.Handedness,
		Score:      best.Score,
	}
}
