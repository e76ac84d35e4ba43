package domain

import (
	"encoding/json"
	"fmt"
)

// EventType identifies an engine event.
type EventType string

// Engine event types. Events are append-only observability records; they are
// never read back for authorization decisions.
const (
	EventStablecoinInitialized EventType = "StablecoinInitialized"
	EventTokensMinted          EventType = "TokensMinted"
	EventTokensBurned          EventType = "TokensBurned"
	EventAccountFrozen         EventType = "AccountFrozen"
	EventAccountThawed         EventType = "AccountThawed"
	EventOperationsPaused      EventType = "OperationsPaused"
	EventOperationsUnpaused    EventType = "OperationsUnpaused"
	EventTokensSeized          EventType = "TokensSeized"
	EventRoleGranted           EventType = "RoleGranted"
	EventRoleRevoked           EventType = "RoleRevoked"
	EventAuthorityTransferred  EventType = "AuthorityTransferred"
	EventConfigUpdated         EventType = "ConfigUpdated"
	EventMinterQuotaUpdated    EventType = "MinterQuotaUpdated"
	EventAddressBlacklisted    EventType = "AddressBlacklisted"
	EventAddressUnblacklisted  EventType = "AddressUnblacklisted"
)

// Event is one append-only engine event with a JSON-encoded payload.
type Event struct {
	Type    EventType
	Mint    string
	At      int64 // Unix timestamp (seconds)
	Payload []byte
}

// NewEvent marshals payload and builds an Event.
func NewEvent(typ EventType, mint string, at int64, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return &Event{Type: typ, Mint: mint, At: at, Payload: data}, nil
}

// Event payloads. Field names are stable: they are the wire format of the
// event log.

type StablecoinInitializedPayload struct {
	Mint      string  `json:"mint"`
	Authority string  `json:"authority"`
	Preset    Preset  `json:"preset"`
	SupplyCap *uint64 `json:"supply_cap,omitempty"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Decimals  uint8   `json:"decimals"`
}

type TokensMintedPayload struct {
	Mint      string `json:"mint"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	Minter    string `json:"minter"`
	NewSupply uint64 `json:"new_supply"`
}

type TokensBurnedPayload struct {
	Mint      string `json:"mint"`
	From      string `json:"from"`
	Amount    uint64 `json:"amount"`
	Burner    string `json:"burner"`
	NewSupply uint64 `json:"new_supply"`
}

type AccountFrozenPayload struct {
	Mint    string `json:"mint"`
	Account string `json:"account"`
	Freezer string `json:"freezer"`
}

type OperationsPausedPayload struct {
	Mint   string `json:"mint"`
	Pauser string `json:"pauser"`
}

type TokensSeizedPayload struct {
	Mint   string `json:"mint"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Seizer string `json:"seizer"`
}

type RoleGrantedPayload struct {
	Config    string `json:"config"`
	Holder    string `json:"holder"`
	Role      Role   `json:"role"`
	GrantedBy string `json:"granted_by"`
}

type RoleRevokedPayload struct {
	Config    string `json:"config"`
	Holder    string `json:"holder"`
	Role      Role   `json:"role"`
	RevokedBy string `json:"revoked_by"`
}

type AuthorityTransferredPayload struct {
	Config string `json:"config"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type ConfigUpdatedPayload struct {
	Config    string  `json:"config"`
	SupplyCap *uint64 `json:"supply_cap,omitempty"`
	UpdatedBy string  `json:"updated_by"`
}

type MinterQuotaUpdatedPayload struct {
	Config    string  `json:"config"`
	Minter    string  `json:"minter"`
	Quota     *uint64 `json:"quota,omitempty"`
	UpdatedBy string  `json:"updated_by"`
}

type BlacklistPayload struct {
	Mint   string `json:"mint"`
	Target string `json:"target"`
	Actor  string `json:"actor"`
	Reason string `json:"reason,omitempty"`
}
