package ledger

import (
	"context"
	"errors"
	"testing"
)

const (
	testMint      = "Mint11111111111111111111111111111111111111"
	testAuthority = "Config1111111111111111111111111111111111111"
)

func TestMintAndBurn(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()

	if err := l.MintTo(ctx, testAuthority, testMint, "alice", 1000); err != nil {
		t.Fatalf("MintTo failed: %v", err)
	}
	if got := l.Balance(testMint, "alice"); got != 1000 {
		t.Errorf("balance = %d, want 1000", got)
	}

	if err := l.BurnFrom(ctx, testAuthority, testMint, "alice", 400); err != nil {
		t.Fatalf("BurnFrom failed: %v", err)
	}
	if got := l.Balance(testMint, "alice"); got != 600 {
		t.Errorf("balance = %d, want 600", got)
	}

	if err := l.BurnFrom(ctx, testAuthority, testMint, "alice", 601); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("overdrawn burn: got %v, want ErrInsufficientBalance", err)
	}
	if err := l.BurnFrom(ctx, testAuthority, testMint, "nobody", 1); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("burn from unknown account: got %v, want ErrAccountNotFound", err)
	}
}

func TestFreezeBlocksMint(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()

	if err := l.SetFrozen(ctx, testAuthority, testMint, "alice", true); err != nil {
		t.Fatalf("SetFrozen failed: %v", err)
	}
	if err := l.MintTo(ctx, testAuthority, testMint, "alice", 100); !errors.Is(err, ErrAccountFrozen) {
		t.Errorf("mint to frozen account: got %v, want ErrAccountFrozen", err)
	}

	if err := l.SetFrozen(ctx, testAuthority, testMint, "alice", false); err != nil {
		t.Fatalf("thaw failed: %v", err)
	}
	if err := l.MintTo(ctx, testAuthority, testMint, "alice", 100); err != nil {
		t.Fatalf("mint after thaw failed: %v", err)
	}
}

func TestTransferIgnoresFrozen(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()

	if err := l.MintTo(ctx, testAuthority, testMint, "alice", 500); err != nil {
		t.Fatalf("MintTo failed: %v", err)
	}
	// Freeze after funding; a delegated transfer must still move funds.
	if err := l.SetFrozen(ctx, testAuthority, testMint, "alice", true); err != nil {
		t.Fatalf("SetFrozen failed: %v", err)
	}

	if err := l.Transfer(ctx, testAuthority, testMint, "alice", "treasury", 500); err != nil {
		t.Fatalf("delegated transfer from frozen account failed: %v", err)
	}
	if got := l.Balance(testMint, "treasury"); got != 500 {
		t.Errorf("treasury balance = %d, want 500", got)
	}
	if got := l.Balance(testMint, "alice"); got != 0 {
		t.Errorf("alice balance = %d, want 0", got)
	}
}

func TestTransferInsufficient(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()

	if err := l.MintTo(ctx, testAuthority, testMint, "alice", 100); err != nil {
		t.Fatalf("MintTo failed: %v", err)
	}
	if err := l.Transfer(ctx, testAuthority, testMint, "alice", "bob", 101); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("got %v, want ErrInsufficientBalance", err)
	}
	if err := l.Transfer(ctx, testAuthority, testMint, "nobody", "bob", 1); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("got %v, want ErrAccountNotFound", err)
	}
}

// denyAll rejects every transfer.
type denyAll struct{ err error }

func (d denyAll) CheckTransfer(context.Context, string, string, string) error { return d.err }

func TestTransferGateRunsFirst(t *testing.T) {
	gateErr := errors.New("denied")
	l := NewInMemory(denyAll{err: gateErr})
	ctx := context.Background()

	if err := l.MintTo(ctx, testAuthority, testMint, "alice", 100); err != nil {
		t.Fatalf("MintTo failed: %v", err)
	}
	if err := l.Transfer(ctx, testAuthority, testMint, "alice", "bob", 50); !errors.Is(err, gateErr) {
		t.Errorf("got %v, want gate error", err)
	}
	// No partial movement.
	if got := l.Balance(testMint, "alice"); got != 100 {
		t.Errorf("alice balance = %d, want 100", got)
	}
	if got := l.Balance(testMint, "bob"); got != 0 {
		t.Errorf("bob balance = %d, want 0", got)
	}
}

func TestDefaultFrozen(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()

	l.SetDefaultFrozen(testMint, true)
	if err := l.MintTo(ctx, testAuthority, testMint, "newcomer", 100); !errors.Is(err, ErrAccountFrozen) {
		t.Errorf("mint to default-frozen account: got %v, want ErrAccountFrozen", err)
	}
	if !l.Frozen(testMint, "newcomer") {
		t.Error("new account should start frozen")
	}
}
