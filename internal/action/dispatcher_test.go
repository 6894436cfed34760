package action

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/input"
)

func allEnabled() config.Snapshot {
	s := config.NewStore()
	for _, k := range gesture.Kinds() {
		s.SetEnabled(k, true)
	}
	return s.Snapshot()
}

func TestDispatcher_SwipeMapping(t *testing.T) {
	tests := []struct {
		kind gesture.Kind
		want input.Action
	}{
		{gesture.SwipeUp, input.PageNext},
		{gesture.SwipeLeft, input.PageNext},
		{gesture.SwipeDown, input.PagePrevious},
		{gesture.SwipeRight, input.PagePrevious},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			mock := input.NewMockInjector()
			d := NewDispatcher(mock)

			ok := d.Dispatch(gesture.Event{Kind: tt.kind, Time: time.Now()}, allEnabled())
			d.Close()

			if !ok {
				t.Fatal("Dispatch should accept the event")
			}
			reqs := mock.Requests()
			if len(reqs) != 1 {
				t.Fatalf("expected 1 injected request, got %d", len(reqs))
			}
			if reqs[0].Action != tt.want {
				t.Errorf("Action = %v, want %v", reqs[0].Action, tt.want)
			}
			if reqs[0].ID == "" {
				t.Error("request should carry an id")
			}
		})
	}
}

func TestDispatcher_ScrollMapping(t *testing.T) {
	mock := input.NewMockInjector()
	d := NewDispatcher(mock)

	d.Dispatch(gesture.Event{Kind: gesture.Scroll, Delta: 0.1, Time: time.Now()}, allEnabled())
	d.Dispatch(gesture.Event{Kind: gesture.Scroll, Delta: -0.05, Time: time.Now()}, allEnabled())
	d.Close()

	reqs := mock.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 injected requests, got %d", len(reqs))
	}
	if reqs[0].Action != input.ScrollBy || reqs[0].Delta != 120 {
		t.Errorf("first request = %+v, want ScrollBy 120", reqs[0])
	}
	if reqs[1].Delta != -60 {
		t.Errorf("second request delta = %d, want -60", reqs[1].Delta)
	}
}

func TestDispatcher_TinyScrollDeltaIgnored(t *testing.T) {
	mock := input.NewMockInjector()
	d := NewDispatcher(mock, WithWheelGain(10))

	ok := d.Dispatch(gesture.Event{Kind: gesture.Scroll, Delta: 0.01, Time: time.Now()}, allEnabled())
	d.Close()

	if ok {
		t.Error("a delta that rounds to zero wheel units should be dropped")
	}
	if len(mock.Requests()) != 0 {
		t.Error("no request should reach the injector")
	}
}

func TestDispatcher_DisabledKindDropped(t *testing.T) {
	mock := input.NewMockInjector()
	d := NewDispatcher(mock)

	store := config.NewStore()
	store.SetEnabled(gesture.SwipeUp, false)
	store.SetEnabled(gesture.SwipeDown, true)
	snap := store.Snapshot()

	if d.Dispatch(gesture.Event{Kind: gesture.SwipeUp, Time: time.Now()}, snap) {
		t.Error("disabled kind should be dropped")
	}
	if !d.Dispatch(gesture.Event{Kind: gesture.SwipeDown, Time: time.Now()}, snap) {
		t.Error("other kinds must stay unaffected")
	}
	d.Close()

	reqs := mock.Requests()
	if len(reqs) != 1 || reqs[0].Action != input.PagePrevious {
		t.Errorf("expected only the SwipeDown action, got %+v", reqs)
	}
}

type recordingSink struct {
	mu      sync.Mutex
	entries []error
}

func (r *recordingSink) Record(req input.Request, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, err)
}

func TestDispatcher_InjectorFailureDoesNotHalt(t *testing.T) {
	mock := input.NewMockInjector()
	mock.SetError(errors.New("no display"))
	rec := &recordingSink{}

	// Failure on one action must not prevent later dispatches
	d := NewDispatcher(mock, WithRecorder(rec))
	d.Dispatch(gesture.Event{Kind: gesture.SwipeUp, Time: time.Now()}, allEnabled())
	d.Close()

	mock.SetError(nil)
	d = NewDispatcher(mock, WithRecorder(rec))
	d.Dispatch(gesture.Event{Kind: gesture.SwipeDown, Time: time.Now()}, allEnabled())
	d.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.entries) != 2 {
		t.Fatalf("expected 2 recorded outcomes, got %d", len(rec.entries))
	}
	if rec.entries[0] == nil {
		t.Error("first outcome should carry the injector error")
	}
	if rec.entries[1] != nil {
		t.Errorf("second outcome should succeed, got %v", rec.entries[1])
	}
}
