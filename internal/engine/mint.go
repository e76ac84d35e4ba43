package engine

import (
	"context"
	"fmt"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// MintParams are the arguments to Mint.
type MintParams struct {
	Minter string // caller; must hold the Minter capability
	Mint   string
	To     string // destination account owner
	Amount uint64

	// PriceFeed optionally references an oracle price account. When set,
	// the supply cap is interpreted as USD-denominated and converted to
	// token units at the quoted price. Empty = use the raw cap.
	PriceFeed string
}

// MintResult reports the committed outcome of a mint.
type MintResult struct {
	NewSupply uint64
}

// Mint issues tokens. Preconditions: token not paused, amount positive,
// caller holds the Minter capability, the minter's quota and the effective
// supply cap both admit the amount. All arithmetic is checked.
func (e *Engine) Mint(ctx context.Context, p MintParams) (*MintResult, error) {
	if p.Amount == 0 {
		return nil, ErrZeroAmount
	}

	var result *MintResult
	err := e.run(ctx, "mint", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, p.Mint)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return ErrPaused
		}

		minterRole, err := requireRole(ctx, s, cfg.Address, p.Minter, domain.RoleMinter)
		if err != nil {
			return err
		}

		// Per-minter quota: checked add, then bound.
		newMinted, err := checkedAdd64(minterRole.AmountMinted, p.Amount)
		if err != nil {
			return err
		}
		if minterRole.MintQuota != nil && newMinted > *minterRole.MintQuota {
			return ErrQuotaExceeded
		}

		effectiveCap, err := e.effectiveCap(ctx, cfg, p.PriceFeed)
		if err != nil {
			return err
		}

		newSupply, err := checkedAdd64(cfg.CurrentSupply(), p.Amount)
		if err != nil {
			return err
		}
		if effectiveCap != nil && newSupply > *effectiveCap {
			return ErrSupplyCapExceeded
		}

		cfg.TotalMinted, err = checkedAdd64(cfg.TotalMinted, p.Amount)
		if err != nil {
			return err
		}
		if err := s.Configs.Update(ctx, cfg); err != nil {
			return err
		}

		minterRole.AmountMinted = newMinted
		if err := s.Roles.Update(ctx, minterRole); err != nil {
			return err
		}

		// Credit under the config's delegated authority.
		if err := e.ledger.MintTo(ctx, cfg.Address, p.Mint, p.To, p.Amount); err != nil {
			return fmt.Errorf("ledger mint: %w", err)
		}

		result = &MintResult{NewSupply: cfg.CurrentSupply()}
		return ev.emit(ctx, domain.EventTokensMinted, p.Mint, e.now(), domain.TokensMintedPayload{
			Mint:      p.Mint,
			To:        p.To,
			Amount:    p.Amount,
			Minter:    p.Minter,
			NewSupply: cfg.CurrentSupply(),
		})
	})
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.MintedTotal.Add(float64(p.Amount))
	}
	return result, nil
}

// effectiveCap resolves the supply cap to enforce for this mint: the raw
// cap, or the oracle-converted cap when a price feed is supplied. An absent
// cap means unlimited and the oracle is not consulted.
func (e *Engine) effectiveCap(ctx context.Context, cfg *domain.TokenConfig, priceFeed string) (*uint64, error) {
	if priceFeed == "" {
		return cfg.SupplyCap, nil
	}
	if cfg.SupplyCap == nil {
		return nil, nil
	}
	if e.prices == nil {
		return nil, fmt.Errorf("price feed %s supplied but no oracle source configured", priceFeed)
	}
	quote, err := e.prices.GetQuote(ctx, priceFeed)
	if err != nil {
		return nil, err
	}
	return e.converter.EffectiveCap(cfg.SupplyCap, quote, cfg.Decimals)
}
