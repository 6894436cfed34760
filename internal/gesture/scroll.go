package gesture

import "github.com/averma/handwave/internal/pose"

// Default scroll-mode tuning.
const (
	DefaultEntryDebounce = 3
	DefaultExitDebounce  = 3
	DefaultPointRatio    = 0.8
	DefaultScrollGain    = 1.0
)

// ScrollConfig holds tuning parameters for the scroll-mode detector.
type ScrollConfig struct {
	// EntryDebounce is how many consecutive open-palm frames are
	// required before the pointing configuration can activate scrolling.
	EntryDebounce int
	// ExitDebounce is how many consecutive non-matching frames end
	// scroll mode. Guards against flicker.
	ExitDebounce int
	// PointRatio is the fraction of the open-palm index reach below
	// which the index finger counts as pointing at the camera.
	PointRatio float64
	// Gain scales fingertip displacement into the emitted delta.
	Gain float64
	// Baseline seeds the open-palm index-reach calibration, typically
	// restored from the settings store. Zero means calibrate live.
	Baseline float64
}

// DefaultScrollConfig returns a ScrollConfig with default values.
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		EntryDebounce: DefaultEntryDebounce,
		ExitDebounce:  DefaultExitDebounce,
		PointRatio:    DefaultPointRatio,
		Gain:          DefaultScrollGain,
	}
}

// ScrollDetector recognizes the open-palm-then-point sequence that enters
// scroll mode and, while active, converts vertical fingertip motion into
// ScrollDelta events.
//
// Entry: all five fingers extended for EntryDebounce consecutive frames
// (during which the open-palm index reach is recorded as the calibration
// baseline), immediately followed by an index-only configuration with the
// index reach foreshortened below PointRatio of the baseline. Exit: the
// configuration stops matching for ExitDebounce consecutive frames.
type ScrollDetector struct {
	cfg ScrollConfig

	palmStreak     int
	armed          bool
	active         bool
	mismatchStreak int

	baseline  float64
	baselineN int

	lastTipY   float64
	hasLastTip bool
}

// NewScrollDetector creates a ScrollDetector. Zero config fields fall
// back to defaults.
func NewScrollDetector(cfg ScrollConfig) *ScrollDetector {
	if cfg.EntryDebounce <= 0 {
		cfg.EntryDebounce = DefaultEntryDebounce
	}
	if cfg.ExitDebounce <= 0 {
		cfg.ExitDebounce = DefaultExitDebounce
	}
	if cfg.PointRatio <= 0 {
		cfg.PointRatio = DefaultPointRatio
	}
	if cfg.Gain == 0 {
		cfg.Gain = DefaultScrollGain
	}
	d := &ScrollDetector{cfg: cfg}
	if cfg.Baseline > 0 {
		d.baseline = cfg.Baseline
		d.baselineN = 1
	}
	return d
}

// Active reports whether scroll mode is currently engaged.
func (d *ScrollDetector) Active() bool {
	return d.active
}

// Baseline returns the current open-palm index-reach calibration, zero
// if never calibrated. Persisted across runs by the settings store.
func (d *ScrollDetector) Baseline() float64 {
	return d.baseline
}

// Classify implements Classifier.
func (d *ScrollDetector) Classify(st pose.HandState) *Event {
	if d.active {
		return d.classifyActive(st)
	}
	d.classifyIdle(st)
	return nil
}

// classifyIdle advances the entry sequence: palm debounce, then point.
func (d *ScrollDetector) classifyIdle(st pose.HandState) {
	if !st.Present {
		d.disarm()
		return
	}

	switch {
	case st.Fingers == pose.AllFingers:
		d.palmStreak++
		d.calibrate(st.IndexReach)
		if d.palmStreak >= d.cfg.EntryDebounce {
			d.armed = true
		}

	case d.armed && d.pointing(st):
		d.active = true
		d.mismatchStreak = 0
		d.lastTipY = st.IndexTip.Y
		d.hasLastTip = true

	default:
		d.disarm()
	}
}

// classifyActive emits deltas while the pointing configuration holds and
// counts mismatch frames toward exit.
func (d *ScrollDetector) classifyActive(st pose.HandState) *Event {
	if !st.Present || st.Fingers != pose.IndexOnly {
		d.mismatchStreak++
		if d.mismatchStreak >= d.cfg.ExitDebounce {
			d.exit()
		}
		return nil
	}

	d.mismatchStreak = 0

	if !d.hasLastTip {
		d.lastTipY = st.IndexTip.Y
		d.hasLastTip = true
		return nil
	}

	// Image y grows downward; upward motion is a positive delta.
	delta := (d.lastTipY - st.IndexTip.Y) * d.cfg.Gain
	d.lastTipY = st.IndexTip.Y

	if delta == 0 {
		return nil
	}
	return &Event{Kind: Scroll, Delta: delta, Time: st.Time}
}

func (d *ScrollDetector) pointing(st pose.HandState) bool {
	return st.Fingers == pose.IndexOnly &&
		d.baseline > 0 &&
		st.IndexReach < d.cfg.PointRatio*d.baseline
}

// calibrate folds an open-palm reach observation into the running
// baseline mean.
func (d *ScrollDetector) calibrate(reach float64) {
	if reach <= 0 {
		return
	}
	d.baselineN++
	d.baseline += (reach - d.baseline) / float64(d.baselineN)
}

func (d *ScrollDetector) disarm() {
	d.palmStreak = 0
	d.armed = false
}

func (d *ScrollDetector) exit() {
	d.active = false
	d.mismatchStreak = 0
	d.hasLastTip = false
	d.disarm()
}
