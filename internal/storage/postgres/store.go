package postgres

import (
	"context"
	"fmt"

	"stablecoin-core/internal/storage"
)

// Store bundles the PostgreSQL stores and implements storage.TxManager.
type Store struct {
	pool *Pool
}

// NewStore creates a Store over a connection pool.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Compile-time interface check.
var _ storage.TxManager = (*Store)(nil)

// InTx runs fn in one database transaction. Any error aborts and rolls
// back; no partial mutation persists and nothing is retried.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, st storage.Stores) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(ctx, storesFor(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Stores returns direct, non-transactional access, used by the gate's read
// path and by queries.
func (s *Store) Stores() storage.Stores {
	return storesFor(s.pool)
}

func storesFor(q querier) storage.Stores {
	return storage.Stores{
		Configs:   &ConfigStore{q: q},
		Roles:     &RoleStore{q: q},
		Blacklist: &BlacklistStore{q: q},
		Events:    &EventStore{q: q},
	}
}
