// Package capture reads video frames from a camera device through GoCV
// and gates the frame rate on scene motion so an idle desk does not
// burn CPU on landmark detection.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Frame rates used by the motion gate. The engine captures at IdleFPS
// until motion is seen, then raises the rate to ActiveFPS while a hand
// may be in frame.
const (
	IdleFPS   = 5
	ActiveFPS = 15
)

// Capture resolution. Landmark detection does not benefit from more
// pixels than this.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

// ErrNotOpen is returned when reading from a camera that is not open.
var ErrNotOpen = errors.New("camera not open")

// Camera is a source of video frames. Read hands ownership of the
// returned Mat to the caller, who must Close it.
type Camera interface {
	Open() error
	Close() error
	Read() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// deviceCamera captures from a local video device via GoCV.
type deviceCamera struct {
	device int

	mu   sync.Mutex
	cap  *gocv.VideoCapture
	fps  int
	open bool
}

// NewCamera returns a Camera for the given device index. The camera
// starts at IdleFPS until Open raises it.
func NewCamera(device int) Camera {
	return &deviceCamera{device: device, fps: IdleFPS}
}

func (c *deviceCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(c.device)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", c.device, err)
	}
	cap.Set(gocv.VideoCaptureFrameWidth, FrameWidth)
	cap.Set(gocv.VideoCaptureFrameHeight, FrameHeight)
	cap.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.cap = cap
	c.open = true
	return nil
}

func (c *deviceCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		c.open = false
		return nil
	}
	err := c.cap.Close()
	c.cap = nil
	c.open = false
	return err
}

func (c *deviceCamera) Read() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		return nil, ErrNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.cap.Read(&mat); !ok {
		mat.Close()
		return nil, fmt.Errorf("read frame from camera %d", c.device)
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("empty frame")
	}
	return &mat, nil
}

func (c *deviceCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.cap != nil {
		c.cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

func (c *deviceCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *deviceCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
