// Package ledger defines the interface boundary to the external token
// ledger that holds balances and performs the literal debit/credit of every
// movement of value. The engine only authorizes and counts; it never stores
// balances itself.
package ledger

import (
	"context"
	"errors"
)

// Ledger errors.
var (
	// ErrInsufficientBalance is returned when a debit exceeds the source
	// account balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountFrozen is returned when a frozen account is debited or
	// credited by a non-delegated authority.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrAccountNotFound is returned when the account does not exist.
	ErrAccountNotFound = errors.New("account not found")
)

// Ledger is the external token ledger. Every call acts under a delegated
// authority: the engine passes its derived config address, which the ledger
// recognizes as the mint's delegate.
type Ledger interface {
	// MintTo credits newly issued tokens to an account.
	MintTo(ctx context.Context, authority, mint, to string, amount uint64) error

	// BurnFrom debits and destroys tokens. The ledger validates that the
	// source balance is sufficient.
	BurnFrom(ctx context.Context, authority, mint, from string, amount uint64) error

	// Transfer moves tokens under the given authority rather than the
	// account owner's. The ledger's transfer path consults the deny-list
	// gate before value moves.
	Transfer(ctx context.Context, authority, mint, from, to string, amount uint64) error

	// SetFrozen toggles an account's frozen flag.
	SetFrozen(ctx context.Context, authority, mint, account string, frozen bool) error
}

// TransferGate is consulted by the ledger's transfer path before every
// movement of value between accounts.
type TransferGate interface {
	// CheckTransfer returns a denial error if either side of the transfer
	// is denied for the mint.
	CheckTransfer(ctx context.Context, mint, sender, receiver string) error
}
