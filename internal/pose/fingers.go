package pose

import (
	"strings"

	"github.com/averma/handwave/internal/detector"
)

// FingerMask is a bitmask of extended fingers, thumb in the lowest bit.
type FingerMask uint8

const (
	Thumb FingerMask = 1 << iota
	Index
	Middle
	Ring
	Pinky

	// AllFingers is the open-palm configuration.
	AllFingers FingerMask = Thumb | Index | Middle | Ring | Pinky
	// IndexOnly is the pointing configuration.
	IndexOnly = Index
)

// Count returns the number of extended fingers in the mask.
func (m FingerMask) Count() int {
	n := 0
	for b := m; b != 0; b >>= 1 {
		if b&1 != 0 {
			n++
		}
	}
	return n
}

// String returns a readable form like "thumb+index" for logging.
func (m FingerMask) String() string {
	if m == 0 {
		return "none"
	}
	names := []struct {
		bit  FingerMask
		name string
	}{
		{Thumb, "thumb"},
		{Index, "index"},
		{Middle, "middle"},
		{Ring, "ring"},
		{Pinky, "pinky"},
	}
	var parts []string
	for _, f := range names {
		if m&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "+")
}

// fingerJoints pairs each non-thumb fingertip with its PIP joint.
var fingerJoints = []struct {
	tip, pip int
	bit      FingerMask
}{
	{detector.IndexTip, detector.IndexPIP, Index},
	{detector.MiddleTip, detector.MiddlePIP, Middle},
	{detector.RingTip, detector.RingPIP, Ring},
	{detector.PinkyTip, detector.PinkyPIP, Pinky},
}

// Fingers derives the per-sample finger-extension bitmask from landmark
// geometry. Non-thumb fingers count as extended when the tip is above the
// PIP joint in image coordinates. The thumb extends sideways, so it is
// judged by whether the tip x clears the MCP in the direction away from
// the palm, with orientation inferred from the index and pinky MCPs.
func (s *Sample) Fingers() FingerMask {
	var mask FingerMask

	// Hand orientation: index MCP left of pinky MCP means the thumb
	// extends toward larger x, and vice versa.
	if s.Points[detector.IndexMCP].X < s.Points[detector.PinkyMCP].X {
		if s.Points[detector.ThumbTip].X > s.Points[detector.ThumbMCP].X {
			mask |= Thumb
		}
	} else {
		if s.Points[detector.ThumbTip].X < s.Points[detector.ThumbMCP].X {
			mask |= Thumb
		}
	}

	for _, f := range fingerJoints {
		if s.Points[f.tip].Y < s.Points[f.pip].Y {
			mask |= f.bit
		}
	}

	return mask
}
