package postgres

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// EventStore implements storage.EventStore using PostgreSQL. Events are
// append-only; rows are written inside the same transaction as the state
// change they describe.
type EventStore struct {
	q querier
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

// Append writes one event.
func (s *EventStore) Append(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO engine_events (event_type, mint, occurred_at, payload)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.q.Exec(ctx, query, string(e.Type), e.Mint, e.At, e.Payload)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListByMint returns events for a mint, newest first, up to limit
// (0 = no limit).
func (s *EventStore) ListByMint(ctx context.Context, mint string, limit int) ([]*domain.Event, error) {
	query := `
		SELECT event_type, mint, occurred_at, payload
		FROM engine_events
		WHERE mint = $1
		ORDER BY id DESC
	`
	args := []any{mint}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var (
			e   domain.Event
			typ string
		)
		if err := rows.Scan(&typ, &e.Mint, &e.At, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Type = domain.EventType(typ)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
