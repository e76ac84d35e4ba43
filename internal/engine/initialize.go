package engine

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/storage"
)

// InitializeParams are the arguments to Initialize.
type InitializeParams struct {
	Authority string // caller; becomes the first admin
	Mint      string // token mint identity, created externally
	Preset    domain.Preset
	Name      string
	Symbol    string
	URI       string
	Decimals  uint8

	// SupplyCap is the optional supply cap in token base units (or USD
	// when mints supply a price feed). nil = unlimited.
	SupplyCap *uint64

	// Preset feature-flag overrides. nil = use the preset default.
	EnablePermanentDelegate *bool
	EnableTransferHook      *bool
	DefaultAccountFrozen    *bool
}

// Initialize creates the token config and the caller's Admin capability.
// The config address is derived from the mint; a token can only be
// initialized once.
func (e *Engine) Initialize(ctx context.Context, p InitializeParams) (*domain.TokenConfig, error) {
	if !p.Preset.Valid() {
		return nil, ErrInvalidPreset
	}
	if len(p.Name) > domain.MaxNameLen {
		return nil, ErrNameTooLong
	}
	if len(p.Symbol) > domain.MaxSymbolLen {
		return nil, ErrSymbolTooLong
	}
	if len(p.URI) > domain.MaxURILen {
		return nil, ErrURITooLong
	}

	var created *domain.TokenConfig
	err := e.run(ctx, "initialize", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		configAddr, _, err := keys.ConfigAddress(p.Mint)
		if err != nil {
			return err
		}
		adminAddr, _, err := keys.RoleAddress(configAddr, p.Authority, domain.RoleAdmin)
		if err != nil {
			return err
		}

		permDelegate, hook, frozen := p.Preset.FeatureDefaults()
		if p.EnablePermanentDelegate != nil {
			permDelegate = *p.EnablePermanentDelegate
		}
		if p.EnableTransferHook != nil {
			hook = *p.EnableTransferHook
		}
		if p.DefaultAccountFrozen != nil {
			frozen = *p.DefaultAccountFrozen
		}

		now := e.now()
		cfg := &domain.TokenConfig{
			Address:                 configAddr,
			Authority:               p.Authority,
			Mint:                    p.Mint,
			Preset:                  p.Preset,
			SupplyCap:               p.SupplyCap,
			Name:                    p.Name,
			Symbol:                  p.Symbol,
			URI:                     p.URI,
			Decimals:                p.Decimals,
			EnablePermanentDelegate: permDelegate,
			EnableTransferHook:      hook,
			DefaultAccountFrozen:    frozen,
			AdminCount:              1,
			CreatedAt:               now,
		}
		if err := s.Configs.Insert(ctx, cfg); err != nil {
			return err
		}

		admin := &domain.RoleRecord{
			Address:   adminAddr,
			Config:    configAddr,
			Holder:    p.Authority,
			Role:      domain.RoleAdmin,
			GrantedBy: p.Authority,
			GrantedAt: now,
		}
		if err := s.Roles.Insert(ctx, admin); err != nil {
			return err
		}

		created = cfg
		return ev.emit(ctx, domain.EventStablecoinInitialized, p.Mint, now, domain.StablecoinInitializedPayload{
			Mint:      p.Mint,
			Authority: p.Authority,
			Preset:    p.Preset,
			SupplyCap: p.SupplyCap,
			Name:      p.Name,
			Symbol:    p.Symbol,
			Decimals:  p.Decimals,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
