package events

import (
	"fmt"
	"sync"

	"github.com/lazharichir/blackjack/domain/events"
)

// EventStore is the interface for storing and retrieving game events.
type EventStore interface {
	Append(event events.Event) error
	LoadEvents(gameID string) ([]events.Event, error)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
type InMemoryEventStore struct {
	events map[string][]events.Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]events.Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event events.Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Extract gameID from the event
	gameID := events.ExtractGameID(event)
	if gameID == "" {
		return fmt.Errorf("event has no gameID")
	}

	s.events[gameID] = append(s.events[gameID], event)
	return nil
}

// LoadEvents retrieves all events for the given gameID.
func (s *InMemoryEventStore) LoadEvents(gameID string) ([]events.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stored, exists := s.events[gameID]; exists {
		// Make a copy to avoid potential race conditions
		result := make([]events.Event, len(stored))
		copy(result, stored)
		return result, nil
	}

	// Return empty slice if no events found
	return []events.Event{}, nil
}
