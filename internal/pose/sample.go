// Package pose turns per-frame hand landmark observations into a tracked
// hand state: smoothed position, velocity, and finger configuration.
package pose

import (
	"time"

	"github.com/averma/handwave/internal/detector"
)

// Vec2 is a 2D vector in normalized image coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// Sample is one frame's hand observation, immutable once created.
type Sample struct {
	Time       time.Time
	Points     [detector.NumLandmarks]detector.Point3D
	Handedness string
	Score      float64
}

// Centroid returns the palm centroid of the sample in image coordinates.
func (s *Sample) Centroid() Vec2 {
	h := detector.HandLandmarks{Points: s.Points}
	c := h.Centroid()
	return Vec2{X: c.X, Y: c.Y}
}

// Scale returns the characteristic hand size of the sample.
func (s *Sample) Scale() float64 {
	h := detector.HandLandmarks{Points: s.Points}
	return h.Scale()
}

// IndexTip returns the index fingertip position in image coordinates.
func (s *Sample) IndexTip() Vec2 {
	p := s.Points[detector.IndexTip]
	return Vec2{X: p.X, Y: p.Y}
}

// IndexReach returns the index fingertip distance from the wrist,
// measured on the wrist-origin, unit-scale landmarks so the value does
// not depend on how far the hand is from the camera. When the index
// finger points toward the camera the fingertip is foreshortened and
// the reach shrinks well below its open-palm value, which is what the
// scroll-mode heuristic keys on.
func (s *Sample) IndexReach() float64 {
	if s.Scale() < 1e-10 {
		return 0
	}
	h := detector.HandLandmarks{Points: s.Points}
	n := h.Normalize()
	return detector.Distance3D(detector.Point3D{}, n.Points[detector.IndexTip])
}
