package engine

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// BurnParams are the arguments to Burn.
type BurnParams struct {
	Burner string // caller; must hold the Burner capability
	Mint   string
	From   string // source account owner
	Amount uint64
}

// Burn destroys tokens. Preconditions: token not paused, amount positive,
// caller holds the Burner capability. The ledger validates that the source
// balance is sufficient; that check is its responsibility, not the
// engine's.
func (e *Engine) Burn(ctx context.Context, p BurnParams) (*MintResult, error) {
	if p.Amount == 0 {
		return nil, ErrZeroAmount
	}

	var result *MintResult
	err := e.run(ctx, "burn", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, p.Mint)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return ErrPaused
		}

		if _, err := requireRole(ctx, s, cfg.Address, p.Burner, domain.RoleBurner); err != nil {
			return err
		}

		cfg.TotalBurned, err = checkedAdd64(cfg.TotalBurned, p.Amount)
		if err != nil {
			return err
		}
		if err := s.Configs.Update(ctx, cfg); err != nil {
			return err
		}

		// Debit under the config's permanent-delegate authority.
		if err := e.ledger.BurnFrom(ctx, cfg.Address, p.Mint, p.From, p.Amount); err != nil {
			return fmt.Errorf("ledger burn: %w", err)
		}

		result = &MintResult{NewSupply: cfg.CurrentSupply()}
		return ev.emit(ctx, domain.EventTokensBurned, p.Mint, e.now(), domain.TokensBurnedPayload{
			Mint:      p.Mint,
			From:      p.From,
			Amount:    p.Amount,
			Burner:    p.Burner,
			NewSupply: cfg.CurrentSupply(),
		})
	})
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.BurnedTotal.Add(float64(p.Amount))
	}
	return result, nil
}
