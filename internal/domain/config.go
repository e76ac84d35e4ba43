package domain

// Metadata length limits, enforced at initialization.
const (
	MaxNameLen   = 32
	MaxSymbolLen = 10
	MaxURILen    = 200
)

// Preset identifies a stablecoin configuration preset.
// Presets pick the feature-flag defaults applied at initialization.
type Preset uint8

const (
	// PresetMinimal is a plain stablecoin: permanent delegate only.
	PresetMinimal Preset = 1
	// PresetCompliant adds the transfer hook and freezes new accounts by default.
	PresetCompliant Preset = 2
	// PresetPrivate targets confidential transfers; no transfer hook.
	PresetPrivate Preset = 3
)

// Valid reports whether p is one of the defined presets.
func (p Preset) Valid() bool {
	return p >= PresetMinimal && p <= PresetPrivate
}

// FeatureDefaults returns the preset's default feature flags:
// (permanent delegate, transfer hook, default-frozen accounts).
func (p Preset) FeatureDefaults() (permanentDelegate, transferHook, defaultFrozen bool) {
	switch p {
	case PresetCompliant:
		return true, true, true
	default:
		return true, false, false
	}
}

// TokenConfig is the per-token aggregate root: supply counters, pause flag,
// supply cap, feature flags, and metadata. One exists per issued token,
// stored at an address derived from the mint. It is created once and never
// deleted.
type TokenConfig struct {
	Address   string  // derived config address (base58)
	Authority string  // current authority identity (informational; roles govern)
	Mint      string  // token mint identity (base58)
	Preset    Preset  // 1..3
	Paused    bool    // global halt switch
	SupplyCap *uint64 // optional cap in token base units; nil = unlimited

	TotalMinted uint64
	TotalBurned uint64

	Name     string
	Symbol   string
	URI      string
	Decimals uint8

	EnablePermanentDelegate bool
	EnableTransferHook      bool
	DefaultAccountFrozen    bool

	// AdminCount tracks active admin role records. Used to refuse revoking
	// the last admin.
	AdminCount uint32

	CreatedAt int64 // Unix timestamp (seconds)
}

// CurrentSupply returns the circulating supply (minted minus burned).
// Subtraction saturates at zero so an accounting inconsistency cannot
// underflow.
func (c *TokenConfig) CurrentSupply() uint64 {
	if c.TotalBurned > c.TotalMinted {
		return 0
	}
	return c.TotalMinted - c.TotalBurned
}

// CanMint reports whether amount tokens can be minted without exceeding the
// supply cap or overflowing the total-minted counter.
func (c *TokenConfig) CanMint(amount uint64) bool {
	newTotal := c.TotalMinted + amount
	if newTotal < c.TotalMinted {
		return false // overflow
	}
	if c.SupplyCap == nil {
		return true
	}
	newSupply := newTotal
	if c.TotalBurned > newTotal {
		newSupply = 0
	} else {
		newSupply = newTotal - c.TotalBurned
	}
	return newSupply <= *c.SupplyCap
}
