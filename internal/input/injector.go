// Package input defines the OS input-injection boundary: abstract action
// requests and the Injector implementations that perform them.
package input

import (
	"sync"
	"time"
)

// Action identifies an abstract OS action.
type Action string

const (
	// PageNext advances a page (Page Down).
	PageNext Action = "page_next"
	// PagePrevious goes back a page (Page Up).
	PagePrevious Action = "page_previous"
	// ScrollBy scrolls the focused window by Delta wheel units.
	ScrollBy Action = "scroll_by"
)

// Request is one abstract OS-action request handed to an Injector.
type Request struct {
	ID     string    `json:"id"`
	Action Action    `json:"action"`
	Delta  int       `json:"delta,omitempty"` // wheel units, ScrollBy only
	Time   time.Time `json:"time"`
}

// Injector performs abstract OS-action requests. Implementations must
// tolerate being called from a single worker goroutine.
type Injector interface {
	Inject(req Request) error
}

// MockInjector records requests for tests.
type MockInjector struct {
	mu       sync.Mutex
	requests []Request
	err      error
}

// NewMockInjector creates a MockInjector.
func NewMockInjector() *MockInjector {
	return &MockInjector{}
}

// SetError makes subsequent Inject calls fail with err.
func (m *MockInjector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Inject records the request.
func (m *MockInjector) Inject(req Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.requests = append(m.requests, req)
	return nil
}

// Requests returns a copy of the recorded requests.
func (m *MockInjector) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears the recorded requests.
func (m *MockInjector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}
