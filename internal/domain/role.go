package domain

// Role is a closed set of capability tags. The byte values are part of the
// role record address derivation and must not change.
type Role uint8

const (
	RoleAdmin       Role = 0
	RoleMinter      Role = 1
	RoleFreezer     Role = 2
	RolePauser      Role = 3
	RoleBurner      Role = 4
	RoleBlacklister Role = 5
	RoleSeizer      Role = 6
)

// Valid reports whether r is within the closed role set.
func (r Role) Valid() bool {
	return r <= RoleSeizer
}

// String returns the role name for logging and events.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleMinter:
		return "minter"
	case RoleFreezer:
		return "freezer"
	case RolePauser:
		return "pauser"
	case RoleBurner:
		return "burner"
	case RoleBlacklister:
		return "blacklister"
	case RoleSeizer:
		return "seizer"
	default:
		return "unknown"
	}
}

// RoleRecord is a capability record: its existence at the derived address is
// the proof that Holder has Role for the token governed by Config. There is
// no separate permission bitmask anywhere in the system.
type RoleRecord struct {
	Address   string // derived role address (base58)
	Config    string // owning token config address
	Holder    string // identity holding the capability
	Role      Role
	GrantedBy string
	GrantedAt int64 // Unix timestamp (seconds)

	// MintQuota caps the cumulative amount this holder may mint.
	// nil = unlimited. Only meaningful for RoleMinter.
	MintQuota *uint64
	// AmountMinted is the cumulative amount attributed to this record.
	AmountMinted uint64
}
