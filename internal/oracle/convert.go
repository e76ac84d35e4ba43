package oracle

import (
	"math"
	"math/big"
	"time"
)

// OverflowPolicy selects how a converted cap wider than uint64 is handled.
type OverflowPolicy int

const (
	// OverflowClamp clamps the converted cap to math.MaxUint64, treating it
	// as effectively unlimited. This matches the observed legacy behavior:
	// an extreme price makes the cap infinite instead of failing the mint.
	OverflowClamp OverflowPolicy = iota

	// OverflowReject fails the conversion with ErrArithmeticOverflow. The
	// fail-closed choice for deployments that consider a forged or extreme
	// price a reason to halt minting.
	OverflowReject
)

// Converter validates price quotes and converts USD-denominated supply caps
// to token base units.
type Converter struct {
	trustedOwners map[string]bool
	maxAge        int64
	policy        OverflowPolicy
	now           func() int64
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithTrustedOwners replaces the set of oracle programs whose feed accounts
// are accepted.
func WithTrustedOwners(owners ...string) ConverterOption {
	return func(c *Converter) {
		c.trustedOwners = make(map[string]bool, len(owners))
		for _, o := range owners {
			c.trustedOwners[o] = true
		}
	}
}

// WithMaxAge sets the staleness bound in seconds.
func WithMaxAge(seconds int64) ConverterOption {
	return func(c *Converter) { c.maxAge = seconds }
}

// WithOverflowPolicy sets the overflow policy.
func WithOverflowPolicy(p OverflowPolicy) ConverterOption {
	return func(c *Converter) { c.policy = p }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() int64) ConverterOption {
	return func(c *Converter) { c.now = now }
}

// NewConverter creates a Converter trusting the Pyth v2 programs, with the
// default 120-second staleness bound and the clamp policy.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		trustedOwners: map[string]bool{
			PythV2Mainnet: true,
			PythV2Devnet:  true,
		},
		maxAge: MaxQuoteAge,
		policy: OverflowClamp,
		now:    func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks that a quote is attributable to a trusted oracle program,
// fresh, and positive.
func (c *Converter) Validate(q *Quote) error {
	if q == nil || !c.trustedOwners[q.Owner] {
		return ErrInvalidOracleData
	}
	if q.Price <= 0 {
		return ErrInvalidOraclePrice
	}
	if age := c.now() - q.PublishedAt; age > c.maxAge {
		return ErrStaleOraclePrice
	}
	return nil
}

// maxUint128 bounds the intermediate arithmetic width.
var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// EffectiveCap converts a USD-denominated cap to token base units:
//
//	expo <  0: cap * 10^decimals * 10^|expo| / price
//	expo >= 0: cap * 10^decimals / (price * 10^expo)
//
// A nil cap means unlimited; the quote is not consulted and nil is
// returned. Intermediate values wider than 128 bits are an overflow. A
// result wider than uint64 is clamped or rejected per the overflow policy.
func (c *Converter) EffectiveCap(usdCap *uint64, q *Quote, decimals uint8) (*uint64, error) {
	if usdCap == nil {
		return nil, nil
	}
	if err := c.Validate(q); err != nil {
		return nil, err
	}

	numerator := new(big.Int).SetUint64(*usdCap)
	numerator.Mul(numerator, pow10(uint32(decimals)))
	denominator := big.NewInt(q.Price)

	if q.Exponent < 0 {
		absExpo := uint32(-int64(q.Exponent))
		numerator.Mul(numerator, pow10(absExpo))
	} else {
		denominator = new(big.Int).Mul(denominator, pow10(uint32(q.Exponent)))
	}
	if numerator.Cmp(maxUint128) > 0 || denominator.Cmp(maxUint128) > 0 {
		return nil, ErrArithmeticOverflow
	}

	tokenCap := new(big.Int).Quo(numerator, denominator)
	if !tokenCap.IsUint64() {
		if c.policy == OverflowReject {
			return nil, ErrArithmeticOverflow
		}
		clamped := uint64(math.MaxUint64)
		return &clamped, nil
	}

	result := tokenCap.Uint64()
	return &result, nil
}

func pow10(n uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
