package oracle

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"stablecoin-core/internal/solana"
)

// Pyth v2 price account layout offsets. The engine reads only the fields it
// validates; everything else in the account is opaque.
const (
	pythExponentOffset  = 20  // i32 LE
	pythTimestampOffset = 96  // i64 LE, aggregate publish time
	pythPriceOffset     = 208 // i64 LE, aggregate price
	pythMinAccountLen   = 216
)

// ParsePythAccount extracts a Quote from raw Pyth v2 price account bytes.
// owner is the program that owns the account; trust in the owner is decided
// by the Converter, not here.
func ParsePythAccount(data []byte, owner string) (*Quote, error) {
	if len(data) < pythMinAccountLen {
		return nil, fmt.Errorf("%w: account data too short (%d bytes)", ErrInvalidOracleData, len(data))
	}

	expo := int32(binary.LittleEndian.Uint32(data[pythExponentOffset : pythExponentOffset+4]))
	publishedAt := int64(binary.LittleEndian.Uint64(data[pythTimestampOffset : pythTimestampOffset+8]))
	price := int64(binary.LittleEndian.Uint64(data[pythPriceOffset : pythPriceOffset+8]))

	return &Quote{
		Price:       price,
		Exponent:    expo,
		PublishedAt: publishedAt,
		Owner:       owner,
	}, nil
}

// RPCSource reads Pyth price feed accounts through a Solana RPC node.
type RPCSource struct {
	rpc solana.AccountReader
}

// NewRPCSource creates an RPC-backed quote source.
func NewRPCSource(rpc solana.AccountReader) *RPCSource {
	return &RPCSource{rpc: rpc}
}

// Compile-time interface check.
var _ Source = (*RPCSource)(nil)

// GetQuote fetches and parses the price feed account.
func (s *RPCSource) GetQuote(ctx context.Context, account string) (*Quote, error) {
	info, err := s.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("fetch price feed %s: %w", account, err)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: price feed account %s does not exist", ErrInvalidOracleData, account)
	}

	raw, err := base64.StdEncoding.DecodeString(info.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode account data: %v", ErrInvalidOracleData, err)
	}

	return ParsePythAccount(raw, info.Owner)
}
