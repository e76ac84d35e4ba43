// Package gate implements the deny-list check the token ledger runs before
// every transfer. The gate re-derives the expected deny-list address for
// each side of the transfer from first principles; it never trusts a
// caller-supplied record reference.
package gate

import (
	"context"
	"errors"
	"fmt"

	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/observability"
	"stablecoin-core/internal/storage"
)

// Gate errors.
var (
	// ErrSenderBlacklisted is returned when the transfer's source side is
	// denied for the mint.
	ErrSenderBlacklisted = errors.New("sender is blacklisted")

	// ErrReceiverBlacklisted is returned when the transfer's destination
	// side is denied for the mint.
	ErrReceiverBlacklisted = errors.New("receiver is blacklisted")
)

// Gate checks transfer participants against the deny-list store.
type Gate struct {
	blacklist storage.BlacklistStore
	metrics   *observability.Metrics
}

// Option configures a Gate.
type Option func(*Gate)

// WithMetrics records denied transfers.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// New creates a Gate reading from the given deny-list store.
func New(blacklist storage.BlacklistStore, opts ...Option) *Gate {
	g := &Gate{blacklist: blacklist}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckTransfer rejects the transfer if either side has a deny-list entry
// at its derived address. A record that happens to occupy the address but
// records a different mint is a forged look-alike and means "not denied."
func (g *Gate) CheckTransfer(ctx context.Context, mint, sender, receiver string) error {
	denied, err := g.isDenied(ctx, mint, sender)
	if err != nil {
		return err
	}
	if denied {
		if g.metrics != nil {
			g.metrics.RecordDeniedTransfer("sender")
		}
		return ErrSenderBlacklisted
	}

	denied, err = g.isDenied(ctx, mint, receiver)
	if err != nil {
		return err
	}
	if denied {
		if g.metrics != nil {
			g.metrics.RecordDeniedTransfer("receiver")
		}
		return ErrReceiverBlacklisted
	}
	return nil
}

func (g *Gate) isDenied(ctx context.Context, mint, target string) (bool, error) {
	address, _, err := keys.BlacklistAddress(mint, target)
	if err != nil {
		return false, fmt.Errorf("derive blacklist address: %w", err)
	}

	entry, err := g.blacklist.Get(ctx, address)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read blacklist entry: %w", err)
	}
	return entry.Mint == mint && entry.Target == target, nil
}
