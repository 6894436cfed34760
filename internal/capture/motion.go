package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Motion gate defaults.
const (
	// DefaultMotionThreshold is the percentage of changed pixels that
	// counts as motion.
	DefaultMotionThreshold = 1.0
	// DefaultActiveHold keeps the gate active this long after the last
	// motion so a briefly still hand does not drop the frame rate.
	DefaultActiveHold = 3 * time.Second

	blurKernel    = 21
	diffThreshold = 25
)

// MotionGate decides whether the scene is active by differencing
// consecutive frames. Frames are grayscaled and blurred before the
// absolute difference is thresholded and the changed-pixel fraction
// compared against the configured percentage.
type MotionGate struct {
	mu        sync.Mutex
	threshold float64
	hold      time.Duration

	prev       gocv.Mat
	primed     bool
	lastMotion time.Time
}

// NewMotionGate returns a gate with the given changed-pixel percentage
// threshold. Non-positive values fall back to the default.
func NewMotionGate(threshold float64) *MotionGate {
	if threshold <= 0 {
		threshold = DefaultMotionThreshold
	}
	return &MotionGate{
		threshold: threshold,
		hold:      DefaultActiveHold,
		prev:      gocv.NewMat(),
	}
}

// SetHold changes how long the gate stays active after motion stops.
func (g *MotionGate) SetHold(hold time.Duration) {
	if hold <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hold = hold
}

// Observe folds one frame into the gate and reports whether the scene
// counts as active at now, plus the changed-pixel percentage. The first
// frame only primes the baseline.
func (g *MotionGate) Observe(frame *gocv.Mat, now time.Time) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return g.activeLocked(now), 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !g.primed {
		blurred.CopyTo(&g.prev)
		g.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prev, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, diffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(mask)) / float64(mask.Rows()*mask.Cols()) * 100.0
	blurred.CopyTo(&g.prev)

	if changed > g.threshold {
		g.lastMotion = now
	}
	return g.activeLocked(now), changed
}

func (g *MotionGate) activeLocked(now time.Time) bool {
	return !g.lastMotion.IsZero() && now.Sub(g.lastMotion) < g.hold
}

// Reset drops the baseline frame and the active window.
func (g *MotionGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *MotionGate) resetLocked() {
	if !g.prev.Empty() {
		g.prev.Close()
		g.prev = gocv.NewMat()
	}
	g.primed = false
	g.lastMotion = time.Time{}
}

// Close releases the baseline Mat.
func (g *MotionGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}
