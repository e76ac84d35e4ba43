package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// ConfigStore implements storage.ConfigStore using PostgreSQL.
type ConfigStore struct {
	q querier
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

const configColumns = `
	address, authority, mint, preset, paused, supply_cap,
	total_minted, total_burned, name, symbol, uri, decimals,
	enable_permanent_delegate, enable_transfer_hook, default_account_frozen,
	admin_count, created_at
`

// Insert adds a new config. Returns ErrDuplicateKey if the address exists.
func (s *ConfigStore) Insert(ctx context.Context, c *domain.TokenConfig) error {
	query := `
		INSERT INTO token_configs (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := s.q.Exec(ctx, query,
		c.Address,
		c.Authority,
		c.Mint,
		int16(c.Preset),
		c.Paused,
		optUint64(c.SupplyCap),
		int64(c.TotalMinted),
		int64(c.TotalBurned),
		c.Name,
		c.Symbol,
		c.URI,
		int16(c.Decimals),
		c.EnablePermanentDelegate,
		c.EnableTransferHook,
		c.DefaultAccountFrozen,
		int32(c.AdminCount),
		c.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert config: %w", err)
	}
	return nil
}

// Get retrieves a config by address. Returns ErrNotFound if it does not
// exist.
func (s *ConfigStore) Get(ctx context.Context, address string) (*domain.TokenConfig, error) {
	query := `SELECT ` + configColumns + ` FROM token_configs WHERE address = $1`
	return s.get(ctx, query, address)
}

// GetForUpdate retrieves a config and takes its row lock for the remainder
// of the transaction, serializing all mutations of this token.
func (s *ConfigStore) GetForUpdate(ctx context.Context, address string) (*domain.TokenConfig, error) {
	query := `SELECT ` + configColumns + ` FROM token_configs WHERE address = $1 FOR UPDATE`
	return s.get(ctx, query, address)
}

func (s *ConfigStore) get(ctx context.Context, query, address string) (*domain.TokenConfig, error) {
	c, err := scanConfig(s.q.QueryRow(ctx, query, address))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return c, nil
}

// Update persists changes to an existing config.
func (s *ConfigStore) Update(ctx context.Context, c *domain.TokenConfig) error {
	query := `
		UPDATE token_configs SET
			authority = $2, paused = $3, supply_cap = $4,
			total_minted = $5, total_burned = $6, admin_count = $7
		WHERE address = $1
	`

	tag, err := s.q.Exec(ctx, query,
		c.Address,
		c.Authority,
		c.Paused,
		optUint64(c.SupplyCap),
		int64(c.TotalMinted),
		int64(c.TotalBurned),
		int32(c.AdminCount),
	)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanConfig(row pgx.Row) (*domain.TokenConfig, error) {
	var (
		c         domain.TokenConfig
		preset    int16
		decimals  int16
		supplyCap *int64
		minted    int64
		burned    int64
		admins    int32
	)
	err := row.Scan(
		&c.Address,
		&c.Authority,
		&c.Mint,
		&preset,
		&c.Paused,
		&supplyCap,
		&minted,
		&burned,
		&c.Name,
		&c.Symbol,
		&c.URI,
		&decimals,
		&c.EnablePermanentDelegate,
		&c.EnableTransferHook,
		&c.DefaultAccountFrozen,
		&admins,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Preset = domain.Preset(preset)
	c.Decimals = uint8(decimals)
	c.SupplyCap = optToUint64(supplyCap)
	c.TotalMinted = uint64(minted)
	c.TotalBurned = uint64(burned)
	c.AdminCount = uint32(admins)
	return &c, nil
}

// optUint64 converts an optional uint64 for a nullable BIGINT column.
func optUint64(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}

func optToUint64(v *int64) *uint64 {
	if v == nil {
		return nil
	}
	u := uint64(*v)
	return &u
}
