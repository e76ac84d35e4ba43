package engine

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// Pause halts all gated operations on a token. Requires the Pauser
// capability and a currently-unpaused token: pausing twice is an error, not
// a no-op.
func (e *Engine) Pause(ctx context.Context, pauser, mint string) error {
	return e.run(ctx, "pause", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return ErrPaused
		}

		if _, err := requireRole(ctx, s, cfg.Address, pauser, domain.RolePauser); err != nil {
			return err
		}

		cfg.Paused = true
		if err := s.Configs.Update(ctx, cfg); err != nil {
			return err
		}

		if e.metrics != nil {
			e.metrics.SetPaused(mint, true)
		}
		return ev.emit(ctx, domain.EventOperationsPaused, mint, e.now(), domain.OperationsPausedPayload{
			Mint:   mint,
			Pauser: pauser,
		})
	})
}

// Unpause resumes operations. Requires the Pauser capability and a
// currently-paused token.
func (e *Engine) Unpause(ctx context.Context, pauser, mint string) error {
	return e.run(ctx, "unpause", func(ctx context.Context, s storage.Stores, ev *emitter) error {
		cfg, err := e.loadConfig(ctx, s, mint)
		if err != nil {
			return err
		}
		if !cfg.Paused {
			return ErrNotPaused
		}

		if _, err := requireRole(ctx, s, cfg.Address, pauser, domain.RolePauser); err != nil {
			return err
		}

		cfg.Paused = false
		if err := s.Configs.Update(ctx, cfg); err != nil {
			return err
		}

		if e.metrics != nil {
			e.metrics.SetPaused(mint, false)
		}
		return ev.emit(ctx, domain.EventOperationsUnpaused, mint, e.now(), domain.OperationsPausedPayload{
			Mint:   mint,
			Pauser: pauser,
		})
	})
}
