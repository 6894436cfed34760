// Package gesture classifies tracked hand state into discrete gesture
// events and arbitrates them so one physical motion yields one action.
package gesture

import (
	"time"

	"github.com/averma/handwave/internal/pose"
)

// Kind identifies a gesture type.
type Kind string

const (
	SwipeLeft  Kind = "swipe_left"
	SwipeRight Kind = "swipe_right"
	SwipeUp    Kind = "swipe_up"
	SwipeDown  Kind = "swipe_down"
	Scroll     Kind = "scroll"
)

// Kinds returns all gesture kinds in display order.
func Kinds() []Kind {
	return []Kind{SwipeLeft, SwipeRight, SwipeUp, SwipeDown, Scroll}
}

// IsSwipe reports whether the kind is one of the four directional swipes.
func (k Kind) IsSwipe() bool {
	switch k {
	case SwipeLeft, SwipeRight, SwipeUp, SwipeDown:
		return true
	}
	return false
}

// Event is a classified gesture for a single frame. Events are ephemeral:
// produced by a detector, consumed by the state machine, never stored.
type Event struct {
	Kind Kind
	// Delta is the signed scroll amount for Scroll events, in normalized
	// image units, upward motion positive. Zero for swipes.
	Delta float64
	Time  time.Time
}

// Classifier is a single gesture detector run against the tracked hand
// state once per frame. It returns at most one event per frame, or nil.
type Classifier interface {
	Classify(state pose.HandState) *Event
}
