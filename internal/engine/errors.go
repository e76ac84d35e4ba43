package engine

import "errors"

// Engine errors. Each is a hard precondition: any violation aborts the
// whole request atomically and is surfaced verbatim. Nothing is retried
// internally.
var (
	// ErrPaused is returned when a gated operation runs on a paused token,
	// or pause is requested while already paused.
	ErrPaused = errors.New("operations are paused")

	// ErrNotPaused is returned when unpause is requested while not paused.
	ErrNotPaused = errors.New("operations are not paused")

	// ErrUnauthorized is returned when the caller's capability record for
	// the required role does not exist or is misattributed.
	ErrUnauthorized = errors.New("unauthorized: missing required role")

	// ErrInvalidRole is returned for a role discriminant outside the closed
	// set, or when an operation targets a record of the wrong role.
	ErrInvalidRole = errors.New("invalid role value")

	// ErrInvalidPreset is returned for a preset outside 1..3.
	ErrInvalidPreset = errors.New("invalid preset value")

	// ErrLastAdmin is returned when a revocation would remove the only
	// admin capability of a token.
	ErrLastAdmin = errors.New("cannot remove the last admin")

	// ErrArithmeticOverflow is returned when a checked add/sub/mul/div
	// step fails.
	ErrArithmeticOverflow = errors.New("overflow in arithmetic operation")

	// ErrSupplyCapExceeded is returned when a mint would push circulating
	// supply above the effective cap.
	ErrSupplyCapExceeded = errors.New("supply cap exceeded")

	// ErrQuotaExceeded is returned when a mint would push the minter's
	// cumulative amount above its quota.
	ErrQuotaExceeded = errors.New("minter quota exceeded")

	// ErrInvalidSupplyCap is returned when a new cap is below the current
	// circulating supply.
	ErrInvalidSupplyCap = errors.New("invalid supply cap: must be >= current supply")

	// ErrZeroAmount is returned where a positive amount is required.
	ErrZeroAmount = errors.New("amount must be greater than zero")

	// ErrMintMismatch is returned on a token identity mismatch between
	// records.
	ErrMintMismatch = errors.New("mint mismatch")

	// Metadata length violations.
	ErrNameTooLong   = errors.New("name exceeds maximum length of 32 characters")
	ErrSymbolTooLong = errors.New("symbol exceeds maximum length of 10 characters")
	ErrURITooLong    = errors.New("uri exceeds maximum length of 200 characters")

	// ErrReasonTooLong is returned when a blacklist reason exceeds 512
	// characters.
	ErrReasonTooLong = errors.New("reason exceeds maximum length of 512 characters")
)
