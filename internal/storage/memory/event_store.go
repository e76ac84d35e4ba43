package memory

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// EventStore is an in-memory implementation of storage.EventStore.
type EventStore struct {
	src stateSource
	mu  rwLocker
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

// Append adds an event.
func (s *EventStore) Append(_ context.Context, e *domain.Event) error {
	if e == nil || e.Type == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := *e
	st := s.src.current()
	st.events = append(st.events, &event)
	return nil
}

// ListByMint retrieves events for a mint, newest first, up to limit
// (0 = no limit).
func (s *EventStore) ListByMint(_ context.Context, mint string, limit int) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.src.current().events
	var result []*domain.Event
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Mint != mint {
			continue
		}
		event := *events[i]
		result = append(result, &event)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
