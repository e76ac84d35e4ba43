package engine

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/storage"
)

// BlacklistParams are the arguments to AddToBlacklist.
type BlacklistParams struct {
	Blacklister string // caller; must hold the Blacklister capability
	Mint        string
	Target      string
	Reason      string // compliance reason, <=512 chars
}

// AddToBlacklist creates the deny-list entry for (mint, target). The
// caller's Blacklister capability is proven for THIS token by re-deriving
// the config address from the mint and then the expected role address from
// (config, caller, Blacklister); a capability reference supplied by the
// caller is never trusted.
func (e *Engine) AddToBlacklist(ctx context.Context, p BlacklistParams) error {
	if len(p.Reason) > domain.MaxReasonLen {
		return ErrReasonTooLong
	}

	err := e.run(ctx, "blacklist_add", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, p.Mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, p.Blacklister, domain.RoleBlacklister); err != nil {
			return err
		}

		address, _, err := keys.BlacklistAddress(p.Mint, p.Target)
		if err != nil {
			return err
		}
		entry := &domain.BlacklistEntry{
			Address: address,
			Mint:    p.Mint,
			Target:  p.Target,
			AddedBy: p.Blacklister,
			AddedAt: e.now(),
			Reason:  p.Reason,
		}
		if err := s.Blacklist.Insert(ctx, entry); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventAddressBlacklisted, p.Mint, entry.AddedAt, domain.BlacklistPayload{
			Mint:   p.Mint,
			Target: p.Target,
			Actor:  p.Blacklister,
			Reason: p.Reason,
		})
	})
	if err != nil {
		return err
	}
	if e.metrics != nil {
		e.metrics.BlacklistEntries.Inc()
	}
	return nil
}

// RemoveFromBlacklist deletes the deny-list entry for (mint, target),
// un-denying the address. Same authorization as AddToBlacklist.
func (e *Engine) RemoveFromBlacklist(ctx context.Context, blacklister, mint, target string) error {
	err := e.run(ctx, "blacklist_remove", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, blacklister, domain.RoleBlacklister); err != nil {
			return err
		}

		address, _, err := keys.BlacklistAddress(mint, target)
		if err != nil {
			return err
		}
		if err := s.Blacklist.Delete(ctx, address); err != nil {
			return err
		}

		return ev.emit(ctx, domain.EventAddressUnblacklisted, mint, e.now(), domain.BlacklistPayload{
			Mint:   mint,
			Target: target,
			Actor:  blacklister,
		})
	})
	if err != nil {
		return err
	}
	if e.metrics != nil {
		e.metrics.BlacklistEntries.Dec()
	}
	return nil
}
