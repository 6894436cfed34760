// Package action maps classified gesture events to abstract OS-action
// requests and forwards them to the input-injection collaborator.
package action

import (
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/input"
)

// DefaultWheelGain converts a normalized scroll delta into mouse wheel
// units. Matches one wheel notch per ~0.1 image heights of fingertip
// travel.
const DefaultWheelGain = 1200

// queueSize bounds the in-flight requests so a stalled injector can
// never block the frame loop.
const queueSize = 16

// Recorder receives every dispatched request and its outcome, typically
// the action log in the settings store. May be nil.
type Recorder interface {
	Record(req input.Request, err error)
}

// Dispatcher translates gesture events into OS-action requests. Events
// whose kind is disabled in the config snapshot are dropped silently;
// enabled events are queued to a worker goroutine that calls the
// injector, so dispatch never blocks on the OS. Injector failures are
// logged and the single action is lost; the pipeline keeps running.
type Dispatcher struct {
	injector input.Injector
	recorder Recorder
	gain     float64

	queue chan input.Request
	done  chan struct{}
	once  sync.Once
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder attaches a Recorder for the action log.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithWheelGain overrides the scroll delta to wheel unit conversion.
func WithWheelGain(gain float64) Option {
	return func(d *Dispatcher) {
		if gain > 0 {
			d.gain = gain
		}
	}
}

// NewDispatcher creates a Dispatcher and starts its delivery worker.
func NewDispatcher(inj input.Injector, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		injector: inj,
		gain:     DefaultWheelGain,
		queue:    make(chan input.Request, queueSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.deliver()
	return d
}

// Dispatch maps one event against the frame's config snapshot. Returns
// true when the event was accepted for delivery.
func (d *Dispatcher) Dispatch(ev gesture.Event, cfg config.Snapshot) bool {
	if !cfg.IsEnabled(ev.Kind) {
		return false
	}

	req, ok := d.translate(ev)
	if !ok {
		return false
	}

	select {
	case d.queue <- req:
		return true
	default:
		// Queue full: the injector is badly stalled. Losing the action
		// beats stalling frame processing.
		log.Printf("action: dropping %s, delivery queue full", req.Action)
		return false
	}
}

// translate maps a gesture event to an abstract OS-action request.
// Up/left page forward, down/right page back; scroll deltas become
// wheel units.
func (d *Dispatcher) translate(ev gesture.Event) (input.Request, bool) {
	req := input.Request{
		ID:   uuid.New().String(),
		Time: ev.Time,
	}

	switch ev.Kind {
	case gesture.SwipeUp, gesture.SwipeLeft:
		req.Action = input.PageNext
	case gesture.SwipeDown, gesture.SwipeRight:
		req.Action = input.PagePrevious
	case gesture.Scroll:
		delta := int(math.Round(ev.Delta * d.gain))
		if delta == 0 {
			return input.Request{}, false
		}
		req.Action = input.ScrollBy
		req.Delta = delta
	default:
		return input.Request{}, false
	}

	return req, true
}

// deliver is the worker loop calling the injector.
func (d *Dispatcher) deliver() {
	defer close(d.done)
	for req := range d.queue {
		err := d.injector.Inject(req)
		if err != nil {
			log.Printf("action: %s failed: %v", req.Action, err)
		}
		if d.recorder != nil {
			d.recorder.Record(req, err)
		}
	}
}

// Close drains the queue and stops the worker. Dispatch must not be
// called after Close.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
