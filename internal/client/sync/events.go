package sync

import (
	"sync"
	"time"
)

// EventType identifies a sync lifecycle event.
type EventType string

const (
	EventSyncStart    EventType = "sync-start"
	EventSyncComplete EventType = "sync-complete"
	EventSyncError    EventType = "sync-error"
	EventDriftWarning EventType = "drift-warning"
	EventDataChanged  EventType = "data-changed"
)

// Stats summarizes one completed sync cycle.
type Stats struct {
	Duration  time.Duration `json:"duration"`
	Pushed    int           `json:"pushed"`
	Pulled    int           `json:"pulled"`
	Deleted   int           `json:"deleted"`
	Conflicts int           `json:"conflicts"`
}

// Event is delivered to subscribers. Only the fields relevant to the event
// type are populated: Stats on sync-complete, Message on sync-error, Drift on
// drift-warning, Collection and Count on data-changed.
type Event struct {
	Stats      *Stats        `json:"stats,omitempty"`
	Type       EventType     `json:"type"`
	Message    string        `json:"message,omitempty"`
	Collection string        `json:"collection,omitempty"`
	Drift      time.Duration `json:"drift,omitempty"`
	Count      int           `json:"count,omitempty"`
}

// subscribers is a small registry decoupling event consumers from the
// orchestrator's internal state.
type subscribers struct {
	handlers map[int]func(Event)
	mu       sync.Mutex
	nextID   int
}

// add registers a handler and returns its unsubscribe function.
func (s *subscribers) add(handler func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers == nil {
		s.handlers = make(map[int]func(Event))
	}
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// emit delivers an event to every subscriber. Handlers run outside the
// registry lock so a handler may unsubscribe itself.
func (s *subscribers) emit(ev Event) {
	s.mu.Lock()
	handlers := make([]func(Event), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
