package storage

import (
	"context"

	"stablecoin-core/internal/domain"
)

// ConfigStore provides access to token config records, keyed by derived
// config address.
type ConfigStore interface {
	// Insert adds a new config. Returns ErrDuplicateKey if the address exists.
	Insert(ctx context.Context, c *domain.TokenConfig) error

	// Get retrieves a config by its derived address. Returns ErrNotFound if
	// it does not exist.
	Get(ctx context.Context, address string) (*domain.TokenConfig, error)

	// GetForUpdate retrieves a config and locks it for the remainder of the
	// surrounding transaction. All mutating operations on a token serialize
	// through this lock.
	GetForUpdate(ctx context.Context, address string) (*domain.TokenConfig, error)

	// Update persists changes to an existing config. Returns ErrNotFound if
	// it does not exist.
	Update(ctx context.Context, c *domain.TokenConfig) error
}

// RoleStore provides access to capability records, keyed by derived role
// address. Existence of a record is the authorization.
type RoleStore interface {
	// Insert adds a new role record. Returns ErrDuplicateKey if the address
	// exists; a capability is never implicitly overwritten.
	Insert(ctx context.Context, r *domain.RoleRecord) error

	// Get retrieves a role record by its derived address. Returns
	// ErrNotFound if it does not exist.
	Get(ctx context.Context, address string) (*domain.RoleRecord, error)

	// Update persists changes to an existing record (quota, minted counter).
	Update(ctx context.Context, r *domain.RoleRecord) error

	// Delete removes a record. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, address string) error
}

// BlacklistStore provides access to deny-list entries, keyed by derived
// entry address. Existence of an entry is the denial flag.
type BlacklistStore interface {
	// Insert adds a new entry. Returns ErrDuplicateKey if the address exists.
	Insert(ctx context.Context, e *domain.BlacklistEntry) error

	// Get retrieves an entry by its derived address. Returns ErrNotFound if
	// it does not exist.
	Get(ctx context.Context, address string) (*domain.BlacklistEntry, error)

	// Delete removes an entry. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, address string) error
}

// EventStore provides access to the append-only engine event log. Events
// are observability records and are never read back for authorization.
type EventStore interface {
	// Append adds an event.
	Append(ctx context.Context, e *domain.Event) error

	// ListByMint retrieves events for a mint, newest first, up to limit
	// (0 = no limit).
	ListByMint(ctx context.Context, mint string, limit int) ([]*domain.Event, error)
}

// Stores bundles the record stores visible inside one transaction.
type Stores struct {
	Configs   ConfigStore
	Roles     RoleStore
	Blacklist BlacklistStore
	Events    EventStore
}

// TxManager runs a function as one atomic, all-or-nothing transaction. Any
// error aborts the whole request and no partial mutation persists; there is
// no internal retry. Concurrent transactions touching the same token config
// serialize through ConfigStore.GetForUpdate.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
