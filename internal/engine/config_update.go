package engine

import (
	"context"
	"errors"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/storage"
)

// UpdateSupplyCap sets or clears the supply cap. Requires the caller's
// Admin capability. A new cap below the current circulating supply is
// rejected.
func (e *Engine) UpdateSupplyCap(ctx context.Context, admin, mint string, newCap *uint64) error {
	return e.run(ctx, "update_supply_cap", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, admin, domain.RoleAdmin); err != nil {
			return err
		}

		if newCap != nil && *newCap < cfg.CurrentSupply() {
			return ErrInvalidSupplyCap
		}

		cfg.SupplyCap = newCap
		if err := s.Configs.Update(ctx, cfg); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventConfigUpdated, mint, e.now(), domain.ConfigUpdatedPayload{
			Config:    cfg.Address,
			SupplyCap: newCap,
			UpdatedBy: admin,
		})
	})
}

// UpdateMinterQuota sets or clears a minter's quota without resetting its
// cumulative-minted counter. Requires the caller's Admin capability; the
// target must hold the Minter role.
func (e *Engine) UpdateMinterQuota(ctx context.Context, admin, mint, minter string, newQuota *uint64) error {
	return e.run(ctx, "update_minter_quota", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, admin, domain.RoleAdmin); err != nil {
			return err
		}

		address, _, err := keys.RoleAddress(cfg.Address, minter, domain.RoleMinter)
		if err != nil {
			return err
		}
		record, err := s.Roles.Get(ctx, address)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidRole
		}
		if err != nil {
			return err
		}

		record.MintQuota = newQuota
		if err := s.Roles.Update(ctx, record); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventMinterQuotaUpdated, mint, e.now(), domain.MinterQuotaUpdatedPayload{
			Config:    cfg.Address,
			Minter:    minter,
			Quota:     newQuota,
			UpdatedBy: admin,
		})
	})
}
