package engine

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/storage"
)

// GrantRole creates a capability record for (token, grantee, role).
// Requires the caller's Admin capability. Fails with
// storage.ErrDuplicateKey if the triple already holds the role; an existing
// capability is never overwritten.
func (e *Engine) GrantRole(ctx context.Context, admin, mint, grantee string, role domain.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	return e.run(ctx, "grant_role", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, admin, domain.RoleAdmin); err != nil {
			return err
		}

		if role == domain.RoleAdmin {
			cfg.AdminCount, err = checkedAdd32(cfg.AdminCount, 1)
			if err != nil {
				return err
			}
			if err := s.Configs.Update(ctx, cfg); err != nil {
				return err
			}
		}

		address, _, err := keys.RoleAddress(cfg.Address, grantee, role)
		if err != nil {
			return err
		}
		record := &domain.RoleRecord{
			Address:   address,
			Config:    cfg.Address,
			Holder:    grantee,
			Role:      role,
			GrantedBy: admin,
			GrantedAt: e.now(),
		}
		if err := s.Roles.Insert(ctx, record); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventRoleGranted, mint, record.GrantedAt, domain.RoleGrantedPayload{
			Config:    cfg.Address,
			Holder:    grantee,
			Role:      role,
			GrantedBy: admin,
		})
	})
}

// RevokeRole deletes the capability record at recordAddress. Requires the
// caller's Admin capability; the target must belong to this token. Revoking
// an Admin capability requires more than one admin to remain; removing the
// last admin would brick the token permanently.
func (e *Engine) RevokeRole(ctx context.Context, admin, mint, recordAddress string) error {
	return e.run(ctx, "revoke_role", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, admin, domain.RoleAdmin); err != nil {
			return err
		}

		target, err := s.Roles.Get(ctx, recordAddress)
		if err != nil {
			return err
		}
		if target.Config != cfg.Address {
			return ErrMintMismatch
		}
		// The record must sit at its canonical derived address; a record
		// that merely claims (config, holder, role) is not accepted.
		ok, err := keys.VerifyRoleAddress(recordAddress, target.Config, target.Holder, target.Role)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnauthorized
		}

		if target.Role == domain.RoleAdmin {
			if cfg.AdminCount <= 1 {
				return ErrLastAdmin
			}
			cfg.AdminCount--
			if err := s.Configs.Update(ctx, cfg); err != nil {
				return err
			}
		}

		if err := s.Roles.Delete(ctx, recordAddress); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventRoleRevoked, mint, e.now(), domain.RoleRevokedPayload{
			Config:    cfg.Address,
			Holder:    target.Holder,
			Role:      target.Role,
			RevokedBy: admin,
		})
	})
}

// TransferAuthority atomically grants newAuthority an Admin capability,
// revokes the caller's own, and updates the config's recorded authority for
// query purposes. AdminCount is unchanged: one added, one removed.
func (e *Engine) TransferAuthority(ctx context.Context, admin, mint, newAuthority string) error {
	return e.run(ctx, "transfer_authority", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}

		current, err := requireRole(ctx, s, cfg.Address, admin, domain.RoleAdmin)
		if err != nil {
			return err
		}

		newAddr, _, err := keys.RoleAddress(cfg.Address, newAuthority, domain.RoleAdmin)
		if err != nil {
			return err
		}
		record := &domain.RoleRecord{
			Address:   newAddr,
			Config:    cfg.Address,
			Holder:    newAuthority,
			Role:      domain.RoleAdmin,
			GrantedBy: admin,
			GrantedAt: e.now(),
		}
		if err := s.Roles.Insert(ctx, record); err != nil {
			return err
		}
		if err := s.Roles.Delete(ctx, current.Address); err != nil {
			return err
		}

		cfg.Authority = newAuthority
		if err := s.Configs.Update(ctx, cfg); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventAuthorityTransferred, mint, record.GrantedAt, domain.AuthorityTransferredPayload{
			Config: cfg.Address,
			From:   admin,
			To:     newAuthority,
		})
	})
}
