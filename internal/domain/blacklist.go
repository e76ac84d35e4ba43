package domain

// MaxReasonLen bounds the free-text compliance reason on a blacklist entry.
const MaxReasonLen = 512

// BlacklistEntry denies an address from participating in transfers of a
// token. The existence of the record at its derived address is the denial
// flag; removing the record un-denies.
type BlacklistEntry struct {
	Address string // derived entry address (base58)
	Mint    string // token mint this entry applies to
	Target  string // denied identity
	AddedBy string
	AddedAt int64 // Unix timestamp (seconds)
	Reason  string
}
