// Package keys derives deterministic, unforgeable record addresses from
// domain-separated seed tuples. A record's address is a pure function of
// (purpose seed, parent identities, discriminant); components locate and
// verify capability records by re-deriving the expected address instead of
// trusting caller-supplied references.
package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"stablecoin-core/internal/domain"
)

// Purpose seeds. These are part of every derived address and must not change.
const (
	configSeed    = "sss-config"
	roleSeed      = "sss-role"
	blacklistSeed = "blacklist"

	// derivationMarker domain-separates engine addresses from any other
	// SHA-256 use of the same inputs.
	derivationMarker = "StablecoinDerivedAddress"
)

// EngineID is the engine's own identity, mixed into every derivation so
// addresses cannot collide with records of another program.
const EngineID = "SSSCoreEngine11111111111111111111111111111"

// ErrNoBump is returned when no bump seed in 255..1 yields an off-curve
// address. The probability of this is negligible (~2^-128).
var ErrNoBump = errors.New("no valid bump seed found")

// Derive computes a deterministic 32-byte address from the seed tuple.
// For bump 255 down to 1 it hashes seeds||bump||engineID||marker with
// SHA-256 and returns the first digest that is not a valid edwards25519
// point, so the address provably has no private key. Returns the base58
// address and the bump that produced it.
func Derive(seeds ...[]byte) (string, uint8, error) {
	engineID, err := base58.Decode(EngineID)
	if err != nil {
		return "", 0, fmt.Errorf("decode engine id: %w", err)
	}

	for bump := uint8(255); bump > 0; bump-- {
		data := make([]byte, 0, 128)
		for _, seed := range seeds {
			data = append(data, seed...)
		}
		data = append(data, bump)
		data = append(data, engineID...)
		data = append(data, []byte(derivationMarker)...)

		hash := sha256.Sum256(data)
		if !isOnCurve(hash[:]) {
			return base58.Encode(hash[:]), bump, nil
		}
	}

	return "", 0, ErrNoBump
}

// isOnCurve reports whether point is a valid edwards25519 curve point.
func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}

// DecodeIdentity decodes a base58 identity and rejects anything that is not
// exactly 32 bytes.
func DecodeIdentity(s string) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode identity %q: %w", s, err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("identity %q: expected 32 bytes, got %d", s, len(raw))
	}
	return raw, nil
}

// ConfigAddress derives the token config address for a mint.
func ConfigAddress(mint string) (string, uint8, error) {
	mintRaw, err := DecodeIdentity(mint)
	if err != nil {
		return "", 0, err
	}
	return Derive([]byte(configSeed), mintRaw)
}

// RoleAddress derives the capability record address for
// (config, holder, role).
func RoleAddress(config, holder string, role domain.Role) (string, uint8, error) {
	configRaw, err := DecodeIdentity(config)
	if err != nil {
		return "", 0, err
	}
	holderRaw, err := DecodeIdentity(holder)
	if err != nil {
		return "", 0, err
	}
	return Derive([]byte(roleSeed), configRaw, holderRaw, []byte{byte(role)})
}

// BlacklistAddress derives the deny-list entry address for (mint, target).
func BlacklistAddress(mint, target string) (string, uint8, error) {
	mintRaw, err := DecodeIdentity(mint)
	if err != nil {
		return "", 0, err
	}
	targetRaw, err := DecodeIdentity(target)
	if err != nil {
		return "", 0, err
	}
	return Derive([]byte(blacklistSeed), mintRaw, targetRaw)
}

// VerifyRoleAddress re-derives the expected role address from first
// principles and compares it to a claimed address. Every trust boundary uses
// this; a claimed record address is never accepted at face value.
func VerifyRoleAddress(claimed, config, holder string, role domain.Role) (bool, error) {
	expected, _, err := RoleAddress(config, holder, role)
	if err != nil {
		return false, err
	}
	return claimed == expected, nil
}
