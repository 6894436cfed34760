// Package app wires the Handwave engine: camera frames through landmark
// detection, pose tracking, and gesture classification into dispatched
// OS actions.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/averma/handwave/internal/action"
	"github.com/averma/handwave/internal/capture"
	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/detector"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/input"
	"github.com/averma/handwave/internal/pose"
	"github.com/averma/handwave/internal/store"
)

// Config holds the engine wiring. Nil collaborators get defaults:
// a device camera from the settings, a MediaPipe detector with mock
// fallback, and the robotgo injector.
type Config struct {
	Settings config.Settings
	Flags    *config.Store
	Store    *store.Store

	Camera   capture.Camera
	Detector detector.Detector
	Injector input.Injector

	// MotionThreshold is the changed-pixel percentage that wakes the
	// engine from idle capture. Zero uses the default.
	MotionThreshold float64
	// DisableMotionGate runs detection on every frame regardless of
	// scene motion. Tests use it with playback cameras.
	DisableMotionGate bool
}

// Engine is the frame-processing core. One Engine runs per process.
type Engine struct {
	settings config.Settings
	flags    *config.Store
	st       *store.Store

	camera     capture.Camera
	gate       *capture.MotionGate
	det        detector.Detector
	tracker    *pose.Tracker
	gestures   *gesture.Set
	machine    *gesture.Machine
	dispatcher *action.Dispatcher

	onEvent func(gesture.Event)
	onMode  func(gesture.Mode)

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates an Engine from the given wiring.
func New(cfg Config) *Engine {
	flags := cfg.Flags
	if flags == nil {
		flags = config.NewStore()
	}

	camera := cfg.Camera
	if camera == nil {
		camera = capture.NewCamera(cfg.Settings.Camera.Device)
	}

	var gate *capture.MotionGate
	if !cfg.DisableMotionGate {
		gate = capture.NewMotionGate(cfg.MotionThreshold)
	}

	det := cfg.Detector
	if det == nil {
		mpCfg := detector.DefaultConfig()
		mpCfg.MinConfidence = cfg.Settings.Detector.MinConfidence
		if mp, err := detector.NewMediaPipeDetector(mpCfg); err == nil {
			det = mp
			log.Println("using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			det = detector.NewMockDetector()
		}
	}

	injector := cfg.Injector
	if injector == nil {
		injector = input.NewRobotgoInjector()
	}

	scrollCfg := cfg.Settings.ScrollConfig()
	if cfg.Store != nil {
		if baseline, err := cfg.Store.Settings().ScrollBaseline(); err == nil {
			scrollCfg.Baseline = baseline
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Printf("load scroll baseline: %v", err)
		}
	}

	var opts []action.Option
	if cfg.Store != nil {
		opts = append(opts, action.WithRecorder(cfg.Store.ActionLog()))
	}

	return &Engine{
		settings:   cfg.Settings,
		flags:      flags,
		st:         cfg.Store,
		camera:     camera,
		gate:       gate,
		det:        det,
		tracker:    pose.NewTracker(cfg.Settings.TrackerConfig()),
		gestures:   gesture.NewSet(cfg.Settings.SwipeConfig(), scrollCfg),
		machine:    gesture.NewMachine(cfg.Settings.MachineConfig()),
		dispatcher: action.NewDispatcher(injector, opts...),
	}
}

// OnEvent sets the callback invoked for every dispatched gesture event.
// Must be called before Start.
func (e *Engine) OnEvent(fn func(gesture.Event)) {
	e.onEvent = fn
}

// OnMode sets the callback invoked when the engine switches between
// idle and scroll mode. Must be called before Start.
func (e *Engine) OnMode(fn func(gesture.Mode)) {
	e.onMode = fn
}

// Flags returns the runtime gesture configuration.
func (e *Engine) Flags() *config.Store {
	return e.flags
}

// Camera returns the frame source.
func (e *Engine) Camera() capture.Camera {
	return e.camera
}

// Start opens the camera and begins the frame loop.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		return nil
	}
	if err := e.camera.Open(); err != nil {
		return err
	}
	e.camera.SetFPS(capture.IdleFPS)

	e.stopCh = make(chan struct{})
	e.wg.Add(1)
	go e.run(e.stopCh)

	log.Println("engine started")
	return nil
}

// Stop halts the frame loop and releases the camera, detector, and
// dispatcher.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh == nil {
		return
	}
	close(e.stopCh)
	e.stopCh = nil
	e.wg.Wait()

	if err := e.camera.Close(); err != nil {
		log.Printf("close camera: %v", err)
	}
	if e.gate != nil {
		e.gate.Close()
	}
	if err := e.det.Close(); err != nil {
		log.Printf("close detector: %v", err)
	}
	e.dispatcher.Close()

	log.Println("engine stopped")
}
