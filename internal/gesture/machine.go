package gesture

import (
	"log"
	"time"

	"github.com/averma/handwave/internal/pose"
)

// DefaultCooldown is the post-swipe window during which further swipes
// are suppressed.
const DefaultCooldown = time.Second

// Mode is the state machine's current mode.
type Mode int

const (
	// Idle is the initial mode: swipes are forwarded, scroll deltas
	// cannot occur.
	Idle Mode = iota
	// ScrollActive forwards only scroll deltas; swipes are suppressed.
	ScrollActive
)

// String returns the mode name for logging.
func (m Mode) String() string {
	if m == ScrollActive {
		return "scroll"
	}
	return "idle"
}

// MachineConfig holds tuning for the gesture state machine.
type MachineConfig struct {
	// Cooldown is how long after a forwarded swipe all further swipes
	// are suppressed.
	Cooldown time.Duration
}

// Machine arbitrates between concurrently firing detectors. It owns the
// Idle/ScrollActive mode, suppresses swipes during scroll mode, and
// enforces the post-swipe cooldown so one continuous motion cannot fire
// twice. Single-writer, stepped once per frame, runs for the process
// lifetime.
type Machine struct {
	cfg           MachineConfig
	mode          Mode
	cooldownUntil time.Time
}

// NewMachine creates a Machine starting in Idle.
func NewMachine(cfg MachineConfig) *Machine {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	return &Machine{cfg: cfg}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Step arbitrates one frame's detector output and returns the events to
// forward to the dispatcher. scrollActive is the scroll detector's mode
// report for this frame; transitions are edge-triggered by it.
func (m *Machine) Step(now time.Time, events []Event, scrollActive bool) []Event {
	if scrollActive && m.mode == Idle {
		m.mode = ScrollActive
		log.Printf("gesture: entering scroll mode")
	} else if !scrollActive && m.mode == ScrollActive {
		m.mode = Idle
		log.Printf("gesture: leaving scroll mode")
	}

	var out []Event
	for _, ev := range events {
		switch {
		case ev.Kind == Scroll:
			if m.mode == ScrollActive {
				out = append(out, ev)
			}
		case ev.Kind.IsSwipe():
			if m.mode != Idle {
				continue
			}
			if now.Before(m.cooldownUntil) {
				continue
			}
			m.cooldownUntil = now.Add(m.cfg.Cooldown)
			out = append(out, ev)
		}
	}
	return out
}

// Set is the fixed group of detectors run every frame. Precedence and
// mutual exclusion live in the Machine, not here.
type Set struct {
	swipe  *SwipeDetector
	scroll *ScrollDetector
}

// NewSet creates the detector set.
func NewSet(swipe SwipeConfig, scroll ScrollConfig) *Set {
	return &Set{
		swipe:  NewSwipeDetector(swipe),
		scroll: NewScrollDetector(scroll),
	}
}

// Scroll returns the scroll detector, exposed for calibration persistence.
func (s *Set) Scroll() *ScrollDetector {
	return s.scroll
}

// Classify runs every detector against the frame's hand state. Returns
// the emitted events (at most one per detector) and whether scroll mode
// is active after this frame.
func (s *Set) Classify(st pose.HandState) ([]Event, bool) {
	var events []Event
	for _, c := range []Classifier{s.scroll, s.swipe} {
		if ev := c.Classify(st); ev != nil {
			events = append(events, *ev)
		}
	}
	return events, s.scroll.Active()
}
