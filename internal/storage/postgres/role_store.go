package postgres

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// RoleStore implements storage.RoleStore using PostgreSQL.
type RoleStore struct {
	q querier
}

// Compile-time interface check.
var _ storage.RoleStore = (*RoleStore)(nil)

const roleColumns = `
	address, config, holder, role, granted_by, granted_at,
	mint_quota, amount_minted
`

// Insert adds a new role record. Returns ErrDuplicateKey if the holder
// already has this role.
func (s *RoleStore) Insert(ctx context.Context, r *domain.RoleRecord) error {
	query := `
		INSERT INTO role_records (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.q.Exec(ctx, query,
		r.Address,
		r.Config,
		r.Holder,
		int16(r.Role),
		r.GrantedBy,
		r.GrantedAt,
		optUint64(r.MintQuota),
		int64(r.AmountMinted),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// Get retrieves a role record by address. Returns ErrNotFound if it does
// not exist.
func (s *RoleStore) Get(ctx context.Context, address string) (*domain.RoleRecord, error) {
	query := `SELECT ` + roleColumns + ` FROM role_records WHERE address = $1`

	var (
		r      domain.RoleRecord
		role   int16
		quota  *int64
		minted int64
	)
	err := s.q.QueryRow(ctx, query, address).Scan(
		&r.Address,
		&r.Config,
		&r.Holder,
		&role,
		&r.GrantedBy,
		&r.GrantedAt,
		&quota,
		&minted,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	r.Role = domain.Role(role)
	r.MintQuota = optToUint64(quota)
	r.AmountMinted = uint64(minted)
	return &r, nil
}

// Update persists changes to an existing role record.
func (s *RoleStore) Update(ctx context.Context, r *domain.RoleRecord) error {
	query := `
		UPDATE role_records SET mint_quota = $2, amount_minted = $3
		WHERE address = $1
	`

	tag, err := s.q.Exec(ctx, query,
		r.Address,
		optUint64(r.MintQuota),
		int64(r.AmountMinted),
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes a role record. Returns ErrNotFound if it does not exist.
func (s *RoleStore) Delete(ctx context.Context, address string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM role_records WHERE address = $1`, address)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
