// Package engine implements the stablecoin control plane: the role and
// capability model, the supply/pause state machine, per-minter quotas, the
// oracle-adjusted supply cap, and the deny-list mutations. Every operation
// runs as one atomic transaction; authorization is always proven by
// re-deriving the caller's capability record address and finding the record
// there.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/ledger"
	"stablecoin-core/internal/observability"
	"stablecoin-core/internal/oracle"
	"stablecoin-core/internal/storage"
)

// EventPublisher receives committed events, e.g. for a live stream. It is
// observability-only; the engine never reads events back.
type EventPublisher interface {
	Publish(e *domain.Event)
}

// Engine executes the control-plane operations.
type Engine struct {
	tx        storage.TxManager
	ledger    ledger.Ledger
	prices    oracle.Source
	converter *oracle.Converter
	metrics   *observability.Metrics
	publisher EventPublisher
	now       func() int64
}

// Options configures an Engine.
type Options struct {
	Tx     storage.TxManager
	Ledger ledger.Ledger

	// Prices is consulted only when a mint supplies a price feed
	// reference. May be nil if no token uses a USD-denominated cap.
	Prices    oracle.Source
	Converter *oracle.Converter

	// Optional.
	Metrics   *observability.Metrics
	Publisher EventPublisher
	Now       func() int64
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		tx:        opts.Tx,
		ledger:    opts.Ledger,
		prices:    opts.Prices,
		converter: opts.Converter,
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
		now:       opts.Now,
	}
	if e.converter == nil {
		e.converter = oracle.NewConverter()
	}
	if e.now == nil {
		e.now = func() int64 { return time.Now().Unix() }
	}
	return e
}

// run executes fn in one transaction, observes the outcome, and publishes
// the events fn emitted once the transaction has committed.
func (e *Engine) run(ctx context.Context, op string, fn func(ctx context.Context, s storage.Stores, ev *emitter) error) error {
	start := time.Now()
	ev := &emitter{}
	err := e.tx.InTx(ctx, func(ctx context.Context, s storage.Stores) error {
		ev.reset(s)
		return fn(ctx, s, ev)
	})
	if e.metrics != nil {
		e.metrics.ObserveOperation(op, err, time.Since(start))
	}
	if err != nil {
		return err
	}
	if e.publisher != nil {
		for _, event := range ev.events {
			e.publisher.Publish(event)
		}
	}
	return nil
}

// emitter appends events to the transaction's event store and collects them
// for post-commit publication.
type emitter struct {
	stores storage.Stores
	events []*domain.Event
}

func (ev *emitter) reset(s storage.Stores) {
	ev.stores = s
	ev.events = nil
}

func (ev *emitter) emit(ctx context.Context, typ domain.EventType, mint string, at int64, payload any) error {
	event, err := domain.NewEvent(typ, mint, at, payload)
	if err != nil {
		return err
	}
	if err := ev.stores.Events.Append(ctx, event); err != nil {
		return fmt.Errorf("append %s event: %w", typ, err)
	}
	ev.events = append(ev.events, event)
	return nil
}

// loadConfig derives the config address for a mint and loads the config
// with the transaction's row lock, serializing all mutations of the token.
func (e *Engine) loadConfig(ctx context.Context, s storage.Stores, mint string) (*domain.TokenConfig, error) {
	address, _, err := keys.ConfigAddress(mint)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Configs.GetForUpdate(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("load config for mint %s: %w", mint, err)
	}
	if cfg.Mint != mint {
		return nil, ErrMintMismatch
	}
	return cfg, nil
}

// requireRole proves the caller holds a capability by re-deriving the
// expected record address from (config, holder, role) and requiring a
// matching record there. Caller-supplied record references are never
// trusted.
func requireRole(ctx context.Context, s storage.Stores, config, holder string, role domain.Role) (*domain.RoleRecord, error) {
	address, _, err := keys.RoleAddress(config, holder, role)
	if err != nil {
		return nil, err
	}
	record, err := s.Roles.Get(ctx, address)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load role record: %w", err)
	}
	if record.Config != config || record.Holder != holder || record.Role != role {
		return nil, ErrUnauthorized
	}
	return record, nil
}

// checkedAdd64 adds with overflow detection.
func checkedAdd64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// checkedAdd32 adds with overflow detection.
func checkedAdd32(a, b uint32) (uint32, error) {
	sum := a + b
	if sum < a {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}
