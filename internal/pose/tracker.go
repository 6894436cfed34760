package pose

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Default tracker tuning. The window covers roughly half a second of
// history at the active frame rate.
const (
	DefaultWindow       = 8
	DefaultMaxGapFrames = 3
	DefaultMaxGap       = 250 * time.Millisecond
)

// TrackerConfig holds tuning parameters for the pose tracker.
type TrackerConfig struct {
	// Window is the number of recent samples retained for smoothing.
	Window int
	// MaxGapFrames is how many consecutive absent frames are tolerated
	// before the history is cleared.
	MaxGapFrames int
	// MaxGap is the maximum time between consecutive present samples
	// for them to count as a continuous observation.
	MaxGap time.Duration
}

// DefaultTrackerConfig returns a TrackerConfig with default values.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Window:       DefaultWindow,
		MaxGapFrames: DefaultMaxGapFrames,
		MaxGap:       DefaultMaxGap,
	}
}

// HandState is the tracked hand state derived from recent samples.
// Velocity and Displacement are zero unless at least two present samples
// exist within the allowed gap.
type HandState struct {
	Present bool
	Time    time.Time

	// Position is the moving-average centroid over the window.
	Position Vec2
	// Velocity is the finite-difference velocity across the window,
	// in normalized image units per second.
	Velocity Vec2
	// Displacement is the raw centroid displacement from the oldest to
	// the newest sample in the window.
	Displacement Vec2
	// PeakSpeed is the fastest inter-sample speed observed in the window.
	PeakSpeed float64

	// Fingers is the majority-voted finger-extension mask.
	Fingers FingerMask
	// RawFingers is the newest sample's unvoted mask.
	RawFingers FingerMask

	// IndexTip and IndexReach come from the newest sample only.
	IndexTip   Vec2
	IndexReach float64
}

// Tracker maintains a bounded window of recent samples and derives the
// current HandState. Single-writer: Update must be called from one
// goroutine, exactly once per frame.
type Tracker struct {
	cfg          TrackerConfig
	window       []Sample
	masks        []FingerMask
	absentStreak int
}

// NewTracker creates a Tracker. Zero config fields fall back to defaults.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxGapFrames <= 0 {
		cfg.MaxGapFrames = DefaultMaxGapFrames
	}
	if cfg.MaxGap <= 0 {
		cfg.MaxGap = DefaultMaxGap
	}
	return &Tracker{
		cfg:    cfg,
		window: make([]Sample, 0, cfg.Window),
		masks:  make([]FingerMask, 0, cfg.Window),
	}
}

// Reset clears the sample history. Called after a swipe fires so the
// tail of the same motion cannot trigger again, and internally when the
// presence gap is exceeded.
func (t *Tracker) Reset() {
	t.window = t.window[:0]
	t.masks = t.masks[:0]
	t.absentStreak = 0
}

// Update folds one frame's sample into the history and returns the
// derived state. A nil sample means no hand was observed this frame.
func (t *Tracker) Update(s *Sample) HandState {
	if s == nil {
		t.absentStreak++
		if t.absentStreak > t.cfg.MaxGapFrames {
			t.window = t.window[:0]
			t.masks = t.masks[:0]
		}
		return HandState{Present: false}
	}

	// A long pause between present samples means the hand left and came
	// back; stale history would produce a phantom velocity spike.
	if n := len(t.window); n > 0 && s.Time.Sub(t.window[n-1].Time) > t.cfg.MaxGap {
		t.window = t.window[:0]
		t.masks = t.masks[:0]
	}
	t.absentStreak = 0

	if len(t.window) >= t.cfg.Window {
		copy(t.window, t.window[1:])
		t.window = t.window[:t.cfg.Window-1]
		copy(t.masks, t.masks[1:])
		t.masks = t.masks[:t.cfg.Window-1]
	}
	t.window = append(t.window, *s)
	t.masks = append(t.masks, s.Fingers())

	return t.state()
}

// state derives the HandState from the current window. The window is
// never empty here.
func (t *Tracker) state() HandState {
	n := len(t.window)
	newest := &t.window[n-1]

	st := HandState{
		Present:    true,
		Time:       newest.Time,
		Fingers:    t.voteFingers(),
		RawFingers: t.masks[n-1],
		IndexTip:   newest.IndexTip(),
		IndexReach: newest.IndexReach(),
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range t.window {
		c := t.window[i].Centroid()
		xs[i] = c.X
		ys[i] = c.Y
	}
	st.Position = Vec2{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}

	if n < 2 {
		return st
	}

	oldest := &t.window[0]
	dt := newest.Time.Sub(oldest.Time).Seconds()
	st.Displacement = Vec2{X: xs[n-1] - xs[0], Y: ys[n-1] - ys[0]}
	if dt > 0 {
		st.Velocity = Vec2{X: st.Displacement.X / dt, Y: st.Displacement.Y / dt}
	}

	for i := 1; i < n; i++ {
		stepDt := t.window[i].Time.Sub(t.window[i-1].Time).Seconds()
		if stepDt <= 0 {
			continue
		}
		dx := xs[i] - xs[i-1]
		dy := ys[i] - ys[i-1]
		speed := math.Hypot(dx, dy) / stepDt
		if speed > st.PeakSpeed {
			st.PeakSpeed = speed
		}
	}

	return st
}

// voteFingers majority-votes each finger bit across the window to
// suppress single-frame misreads.
func (t *Tracker) voteFingers() FingerMask {
	n := len(t.masks)
	var voted FingerMask
	for bit := Thumb; bit <= Pinky; bit <<= 1 {
		count := 0
		for _, m := range t.masks {
			if m&bit != 0 {
				count++
			}
		}
		if count*2 > n {
			voted |= bit
		}
	}
	return voted
}
