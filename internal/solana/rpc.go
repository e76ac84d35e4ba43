// Package solana provides a minimal JSON-RPC 2.0 HTTP client for reading
// accounts from a Solana RPC node. The engine uses it for exactly one
// thing: fetching the raw oracle price feed account.
package solana

import "context"

// AccountReader reads raw account state.
type AccountReader interface {
	// GetAccountInfo retrieves account info by public key. Returns nil if
	// the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)
}

// AccountInfo represents Solana account information.
type AccountInfo struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Data       string `json:"data"` // base64 encoded
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rentEpoch"`
}
