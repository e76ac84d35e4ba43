package postgres

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// BlacklistStore implements storage.BlacklistStore using PostgreSQL.
type BlacklistStore struct {
	q querier
}

// Compile-time interface check.
var _ storage.BlacklistStore = (*BlacklistStore)(nil)

// Insert adds a deny-list entry. Returns ErrDuplicateKey if the target is
// already listed for the mint.
func (s *BlacklistStore) Insert(ctx context.Context, e *domain.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist_entries (address, mint, target, added_by, added_at, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.q.Exec(ctx, query,
		e.Address,
		e.Mint,
		e.Target,
		e.AddedBy,
		e.AddedAt,
		e.Reason,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert blacklist entry: %w", err)
	}
	return nil
}

// Get retrieves a deny-list entry by address. Returns ErrNotFound if it
// does not exist.
func (s *BlacklistStore) Get(ctx context.Context, address string) (*domain.BlacklistEntry, error) {
	query := `
		SELECT address, mint, target, added_by, added_at, reason
		FROM blacklist_entries WHERE address = $1
	`

	var e domain.BlacklistEntry
	err := s.q.QueryRow(ctx, query, address).Scan(
		&e.Address,
		&e.Mint,
		&e.Target,
		&e.AddedBy,
		&e.AddedAt,
		&e.Reason,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get blacklist entry: %w", err)
	}
	return &e, nil
}

// Delete removes a deny-list entry. Returns ErrNotFound if it does not
// exist.
func (s *BlacklistStore) Delete(ctx context.Context, address string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM blacklist_entries WHERE address = $1`, address)
	if err != nil {
		return fmt.Errorf("delete blacklist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
