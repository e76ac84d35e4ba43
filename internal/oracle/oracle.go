// Package oracle reads and validates external price quotes and converts
// USD-denominated supply caps into token base units.
package oracle

import (
	"context"
	"errors"
)

// Known Pyth v2 oracle program IDs. A quote is only trusted if its account
// is owned by one of these programs; otherwise a forged account with crafted
// bytes at the expected offsets could manipulate the supply cap.
const (
	PythV2Mainnet = "FsJ3A3u2vn5cTVofAjvy6y5kwABJAqYWpe4975bi2epH"
	PythV2Devnet  = "gSbePebfvPy7tRqimPoVecS2UsBvYv46ynrzWocc92s"
)

// MaxQuoteAge is the staleness bound on a price quote, in seconds.
const MaxQuoteAge = 120

// Oracle errors.
var (
	// ErrInvalidOracleData is returned for untrusted or malformed price
	// feed data.
	ErrInvalidOracleData = errors.New("invalid oracle price feed data")

	// ErrInvalidOraclePrice is returned when the aggregate price is zero or
	// negative.
	ErrInvalidOraclePrice = errors.New("oracle price is non-positive")

	// ErrStaleOraclePrice is returned when the quote is older than
	// MaxQuoteAge.
	ErrStaleOraclePrice = errors.New("oracle price is stale")

	// ErrArithmeticOverflow is returned when the cap conversion overflows
	// its 128-bit intermediate arithmetic.
	ErrArithmeticOverflow = errors.New("overflow in cap conversion")
)

// Quote is one observation of an external price feed.
type Quote struct {
	Price       int64  // aggregate price
	Exponent    int32  // decimal exponent, typically negative (e.g. -8)
	PublishedAt int64  // Unix timestamp (seconds)
	Owner       string // program that owns the feed account
}

// Source reads a price quote for a feed account. The engine only reads,
// never writes.
type Source interface {
	GetQuote(ctx context.Context, account string) (*Quote, error)
}
