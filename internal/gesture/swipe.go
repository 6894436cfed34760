package gesture

import (
	"math"

	"github.com/averma/handwave/internal/pose"
)

// Default swipe thresholds, in normalized image units. Empirical; all of
// them are exposed through the config file.
const (
	DefaultMinDisplacement = 0.18
	DefaultMinAxisRatio    = 2.0
	DefaultMinSpeed        = 0.6
)

// SwipeConfig holds tuning thresholds for the swipe detector.
type SwipeConfig struct {
	// MinDisplacement is the minimum accumulated displacement over the
	// tracking window for a swipe to fire.
	MinDisplacement float64
	// MinAxisRatio is how much the dominant axis displacement must
	// exceed the secondary axis. Rejects diagonal motion.
	MinAxisRatio float64
	// MinSpeed is the minimum peak speed within the window, in
	// normalized units per second. Rejects slow drifts.
	MinSpeed float64
}

// DefaultSwipeConfig returns a SwipeConfig with default thresholds.
func DefaultSwipeConfig() SwipeConfig {
	return SwipeConfig{
		MinDisplacement: DefaultMinDisplacement,
		MinAxisRatio:    DefaultMinAxisRatio,
		MinSpeed:        DefaultMinSpeed,
	}
}

// SwipeDetector fires a directional swipe when the hand crosses the
// displacement, axis-dominance, and speed thresholds. It is stateless;
// debouncing of repeated fires belongs to the state machine, and the
// pipeline resets the tracker window after a forwarded swipe so the tail
// of the same motion cannot re-trigger.
type SwipeDetector struct {
	cfg SwipeConfig
}

// NewSwipeDetector creates a SwipeDetector. Zero config fields fall back
// to defaults.
func NewSwipeDetector(cfg SwipeConfig) *SwipeDetector {
	if cfg.MinDisplacement <= 0 {
		cfg.MinDisplacement = DefaultMinDisplacement
	}
	if cfg.MinAxisRatio <= 0 {
		cfg.MinAxisRatio = DefaultMinAxisRatio
	}
	if cfg.MinSpeed <= 0 {
		cfg.MinSpeed = DefaultMinSpeed
	}
	return &SwipeDetector{cfg: cfg}
}

// Classify implements Classifier.
func (d *SwipeDetector) Classify(st pose.HandState) *Event {
	if !st.Present {
		return nil
	}

	adx := math.Abs(st.Displacement.X)
	ady := math.Abs(st.Displacement.Y)

	dominant, secondary := adx, ady
	horizontal := true
	if ady > adx {
		dominant, secondary = ady, adx
		horizontal = false
	}

	if dominant < d.cfg.MinDisplacement {
		return nil
	}
	// Ambiguous diagonal: no event, no tie-break.
	if dominant < secondary*d.cfg.MinAxisRatio {
		return nil
	}
	if st.PeakSpeed < d.cfg.MinSpeed {
		return nil
	}

	var kind Kind
	if horizontal {
		if st.Displacement.X > 0 {
			kind = SwipeRight
		} else {
			kind = SwipeLeft
		}
	} else {
		// Image y grows downward.
		if st.Displacement.Y > 0 {
			kind = SwipeDown
		} else {
			kind = SwipeUp
		}
	}

	return &Event{Kind: kind, Time: st.Time}
}
