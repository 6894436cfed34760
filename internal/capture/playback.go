package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrEndOfFrames is returned by a non-looping PlaybackCamera once its
// sequence is exhausted.
var ErrEndOfFrames = errors.New("end of frames")

// PlaybackCamera replays a fixed frame sequence. Tests use it in place
// of a device camera.
type PlaybackCamera struct {
	mu     sync.Mutex
	frames []*gocv.Mat
	index  int
	loop   bool
	fps    int
	open   bool
}

// NewPlaybackCamera returns a camera that plays frames in order. With
// loop set it wraps around instead of reporting ErrEndOfFrames.
func NewPlaybackCamera(frames []*gocv.Mat, loop bool) *PlaybackCamera {
	return &PlaybackCamera{frames: frames, loop: loop, fps: ActiveFPS}
}

func (c *PlaybackCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.index = 0
	return nil
}

func (c *PlaybackCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

// Read returns a clone of the next frame so callers may close it
// without disturbing the sequence.
func (c *PlaybackCamera) Read() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrNotOpen
	}
	if len(c.frames) == 0 {
		return nil, ErrEndOfFrames
	}
	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, ErrEndOfFrames
		}
		c.index = 0
	}

	frame := c.frames[c.index].Clone()
	c.index++
	return &frame, nil
}

func (c *PlaybackCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *PlaybackCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *PlaybackCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Rewind restarts playback from the first frame.
func (c *PlaybackCamera) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}

// Remaining reports how many frames are left before the sequence ends.
// Looping cameras always report the full length.
func (c *PlaybackCamera) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loop {
		return len(c.frames)
	}
	if c.index >= len(c.frames) {
		return 0
	}
	return len(c.frames) - c.index
}
