package ledger

import (
	"context"
	"sync"
)

// accountKey identifies a token account as (mint, owner).
type accountKey struct {
	mint  string
	owner string
}

type account struct {
	balance uint64
	frozen  bool
}

// InMemory is a reference ledger implementation used by tests and the dev
// server. It keeps balances and frozen flags per (mint, owner) and invokes
// the transfer gate on every Transfer.
type InMemory struct {
	mu       sync.Mutex
	accounts map[accountKey]*account
	gate     TransferGate

	// defaultFrozen marks newly created accounts frozen, mirroring the
	// default-frozen feature flag of a compliant token.
	defaultFrozen map[string]bool
}

// NewInMemory creates an empty in-memory ledger. gate may be nil, in which
// case transfers are not gated.
func NewInMemory(gate TransferGate) *InMemory {
	return &InMemory{
		accounts:      make(map[accountKey]*account),
		gate:          gate,
		defaultFrozen: make(map[string]bool),
	}
}

// Compile-time interface check.
var _ Ledger = (*InMemory)(nil)

// SetDefaultFrozen configures whether new accounts of a mint start frozen.
func (l *InMemory) SetDefaultFrozen(mint string, frozen bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defaultFrozen[mint] = frozen
}

// get returns the account, creating it if create is set.
func (l *InMemory) get(mint, owner string, create bool) *account {
	key := accountKey{mint: mint, owner: owner}
	a, ok := l.accounts[key]
	if !ok && create {
		a = &account{frozen: l.defaultFrozen[mint]}
		l.accounts[key] = a
	}
	return a
}

// MintTo credits newly issued tokens to an account.
func (l *InMemory) MintTo(_ context.Context, _, mint, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.get(mint, to, true)
	if a.frozen {
		return ErrAccountFrozen
	}
	a.balance += amount
	return nil
}

// BurnFrom debits and destroys tokens, validating the balance.
func (l *InMemory) BurnFrom(_ context.Context, _, mint, from string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.get(mint, from, false)
	if a == nil {
		return ErrAccountNotFound
	}
	if a.balance < amount {
		return ErrInsufficientBalance
	}
	a.balance -= amount
	return nil
}

// Transfer moves tokens between accounts under a delegated authority. The
// deny-list gate runs before any balance changes; frozen flags do not stop
// a delegated transfer (seizure must work on frozen accounts).
func (l *InMemory) Transfer(ctx context.Context, _, mint, from, to string, amount uint64) error {
	if l.gate != nil {
		if err := l.gate.CheckTransfer(ctx, mint, from, to); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	src := l.get(mint, from, false)
	if src == nil {
		return ErrAccountNotFound
	}
	if src.balance < amount {
		return ErrInsufficientBalance
	}
	dst := l.get(mint, to, true)
	src.balance -= amount
	dst.balance += amount
	return nil
}

// SetFrozen toggles an account's frozen flag, creating the account if
// needed.
func (l *InMemory) SetFrozen(_ context.Context, _, mint, account string, frozen bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.get(mint, account, true)
	a.frozen = frozen
	return nil
}

// Balance reports the current balance of (mint, owner). Zero for unknown
// accounts.
func (l *InMemory) Balance(mint, owner string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.get(mint, owner, false)
	if a == nil {
		return 0
	}
	return a.balance
}

// Frozen reports whether (mint, owner) is frozen.
func (l *InMemory) Frozen(mint, owner string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.get(mint, owner, false)
	if a == nil {
		return l.defaultFrozen[mint]
	}
	return a.frozen
}
