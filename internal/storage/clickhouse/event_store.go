package clickhouse

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// EventStore implements storage.EventStore using ClickHouse. The table is a
// MergeTree, so Append never reports duplicates; the Postgres event log is
// the authoritative copy.
type EventStore struct {
	conn *Conn
}

// NewEventStore creates a new EventStore.
func NewEventStore(conn *Conn) *EventStore {
	return &EventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

// Append writes one event.
func (s *EventStore) Append(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO engine_events (event_type, mint, occurred_at, payload)
		VALUES (?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query, string(e.Type), e.Mint, uint64(e.At), string(e.Payload))
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// AppendBulk writes a batch of events.
func (s *EventStore) AppendBulk(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO engine_events (event_type, mint, occurred_at, payload)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		if err := batch.Append(string(e.Type), e.Mint, uint64(e.At), string(e.Payload)); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// ListByMint returns events for a mint, newest first, up to limit
// (0 = no limit).
func (s *EventStore) ListByMint(ctx context.Context, mint string, limit int) ([]*domain.Event, error) {
	query := `
		SELECT event_type, mint, occurred_at, payload
		FROM engine_events
		WHERE mint = ?
		ORDER BY occurred_at DESC
	`
	args := []any{mint}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, uint64(limit))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var (
			e          domain.Event
			typ        string
			occurredAt uint64
			payload    string
		)
		if err := rows.Scan(&typ, &e.Mint, &occurredAt, &payload); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		e.Type = domain.EventType(typ)
		e.At = int64(occurredAt)
		e.Payload = []byte(payload)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}
