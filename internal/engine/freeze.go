package engine

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// FreezeAccount freezes one external account. Requires the Freezer
// capability and an unpaused token.
func (e *Engine) FreezeAccount(ctx context.Context, freezer, mint, account string) error {
	return e.setFrozen(ctx, freezer, mint, account, true)
}

// ThawAccount unfreezes one external account. Requires the Freezer
// capability and an unpaused token.
func (e *Engine) ThawAccount(ctx context.Context, freezer, mint, account string) error {
	return e.setFrozen(ctx, freezer, mint, account, false)
}

func (e *Engine) setFrozen(ctx context.Context, freezer, mint, account string, frozen bool) error {
	op := "thaw"
	eventType := domain.EventAccountThawed
	if frozen {
		op = "freeze"
		eventType = domain.EventAccountFrozen
	}

	return e.run(ctx, op, func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return ErrPaused
		}

		if _, err := requireRole(ctx, s, cfg.Address, freezer, domain.RoleFreezer); err != nil {
			return err
		}

		if err := e.ledger.SetFrozen(ctx, cfg.Address, mint, account, frozen); err != nil {
			return fmt.Errorf("ledger set frozen: %w", err)
		}

		return ev.emit(ctx, eventType, mint, e.now(), domain.AccountFrozenPayload{
			Mint:    mint,
			Account: account,
			Freezer: freezer,
		})
	})
}
