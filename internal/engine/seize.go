package engine

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// SeizeParams are the arguments to Seize.
type SeizeParams struct {
	Seizer string // caller; must hold the Seizer capability
	Mint   string
	From   string
	To     string
	Amount uint64
}

// Seize force-transfers tokens under the config's delegated authority, not
// the account owner's. There is deliberately NO pause check: seizure must
// remain available during an emergency halt.
func (e *Engine) Seize(ctx context.Context, p SeizeParams) error {
	if p.Amount == 0 {
		return ErrZeroAmount
	}

	err := e.run(ctx, "seize", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, p.Mint)
		if err != nil {
			return err
		}

		if _, err := requireRole(ctx, s, cfg.Address, p.Seizer, domain.RoleSeizer); err != nil {
			return err
		}

		if err := e.ledger.Transfer(ctx, cfg.Address, p.Mint, p.From, p.To, p.Amount); err != nil {
			return fmt.Errorf("ledger transfer: %w", err)
		}

		return ev.emit(ctx, domain.EventTokensSeized, p.Mint, e.now(), domain.TokensSeizedPayload{
			Mint:   p.Mint,
			From:   p.From,
			To:     p.To,
			Amount: p.Amount,
			Seizer: p.Seizer,
		})
	})
	if err != nil {
		return err
	}
	if e.metrics != nil {
		e.metrics.SeizedTotal.Add(float64(p.Amount))
	}
	return nil
}
