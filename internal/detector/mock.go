package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It can return a fixed result for every frame, or play back a scripted
// per-frame sequence of detections for synthetic motion tests.
type MockDetector struct {
	mu       sync.Mutex
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	index    int
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets a fixed result returned by every Detect call.
// Clears any scripted sequence.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.sequence = nil
	m.index = 0
}

// SetSequence sets a scripted per-frame sequence. Each Detect call
// returns the next entry; a nil entry simulates a frame with no hand.
// After the sequence is exhausted, Detect returns no hands.
func (m *MockDetector) SetSequence(frames [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = frames
	m.index = 0
	m.hands = nil
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Remaining reports how many scripted frames have not yet been consumed.
func (m *MockDetector) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sequence) - m.index
}

// Detect returns the pre-configured hands, the next scripted frame, or
// the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.sequence != nil {
		if m.index >= len(m.sequence) {
			return nil, nil
		}
		out := m.sequence[m.index]
		m.index++
		return out, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open
// palm facing the camera: all five fingers extended, fingers pointing up.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb extended out to the side, tip x beyond the MCP
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.80, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.74, Z: 0.02}
	lm.Points[ThumbIP] = Point3D{X: 0.67, Y: 0.70, Z: 0.02}
	lm.Points[ThumbTip] = Point3D{X: 0.72, Y: 0.66, Z: 0.02}

	// Index finger extended upward
	lm.Points[IndexMCP] = Point3D{X: 0.42, Y: 0.68, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.42, Y: 0.56, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Middle finger extended upward
	lm.Points[MiddleMCP] = Point3D{X: 0.47, Y: 0.66, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.47, Y: 0.53, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.41, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.30, Z: 0.0}

	// Ring finger extended upward
	lm.Points[RingMCP] = Point3D{X: 0.53, Y: 0.67, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.53, Y: 0.55, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.53, Y: 0.44, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.53, Y: 0.34, Z: 0.0}

	// Pinky finger extended upward
	lm.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.70, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.58, Y: 0.61, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: 0.58, Y: 0.53, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}

	return lm
}

// PointingIndexLandmarks returns a preset HandLandmarks with only the
// index finger extended, pointing toward the camera. The fingertip is
// foreshortened: it projects just above the PIP in 2D with negative
// depth, so the index reach is well below the open-palm baseline.
func PointingIndexLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb curled across the palm, tip x short of the MCP
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.80, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.74, Z: -0.01}
	lm.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.73, Z: -0.03}
	lm.Points[ThumbTip] = Point3D{X: 0.57, Y: 0.72, Z: -0.03}

	// Index extended toward the camera: tip barely above the PIP,
	// strongly negative depth
	lm.Points[IndexMCP] = Point3D{X: 0.42, Y: 0.68, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.42, Y: 0.60, Z: -0.06}
	lm.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.57, Z: -0.11}
	lm.Points[IndexTip] = Point3D{X: 0.42, Y: 0.55, Z: -0.15}

	// Middle finger curled, tip below the PIP
	lm.Points[MiddleMCP] = Point3D{X: 0.47, Y: 0.66, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.47, Y: 0.58, Z: -0.04}
	lm.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.62, Z: -0.05}
	lm.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.66, Z: -0.03}

	// Ring finger curled
	lm.Points[RingMCP] = Point3D{X: 0.53, Y: 0.67, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.53, Y: 0.60, Z: -0.04}
	lm.Points[RingDIP] = Point3D{X: 0.53, Y: 0.64, Z: -0.05}
	lm.Points[RingTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.03}

	// Pinky finger curled
	lm.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.70, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.58, Y: 0.64, Z: -0.03}
	lm.Points[PinkyDIP] = Point3D{X: 0.58, Y: 0.68, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.58, Y: 0.71, Z: -0.02}

	return lm
}

// FistLandmarks returns a preset HandLandmarks with all fingers curled.
func FistLandmarks() HandLandmarks {
	lm := PointingIndexLandmarks()

	// Curl the index finger too
	lm.Points[IndexPIP] = Point3D{X: 0.42, Y: 0.60, Z: -0.04}
	lm.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.64, Z: -0.05}
	lm.Points[IndexTip] = Point3D{X: 0.42, Y: 0.68, Z: -0.03}

	return lm
}

// SwipeSequence builds a scripted frame sequence of an open palm
// translating by (dx, dy) per frame over n frames, for motion tests.
func SwipeSequence(n int, dx, dy float64) [][]HandLandmarks {
	base := OpenPalmLandmarks()
	frames := make([][]HandLandmarks, n)
	for i := 0; i < n; i++ {
		h := base.Translated(dx*float64(i), dy*float64(i))
		frames[i] = []HandLandmarks{h}
	}
	return frames
}
