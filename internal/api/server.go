// Package api exposes the control plane over HTTP: JSON handlers for every
// engine operation, read endpoints for configs and the event log, and a
// WebSocket stream of committed events.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/engine"
	"stablecoin-core/internal/gate"
	"stablecoin-core/internal/keys"
	"stablecoin-core/internal/ledger"
	"stablecoin-core/internal/observability"
	"stablecoin-core/internal/oracle"
	"stablecoin-core/internal/storage"
)

const defaultEventLimit = 100

// Server routes control-plane requests to the engine.
type Server struct {
	engine *engine.Engine
	stores storage.Stores // direct read access, outside transactions
	hub    *Hub
	logger *log.Logger
}

// NewServer creates a Server. hub may be nil when the event stream is
// disabled.
func NewServer(eng *engine.Engine, stores storage.Stores, hub *Hub, logger *log.Logger) *Server {
	return &Server{
		engine: eng,
		stores: stores,
		hub:    hub,
		logger: logger,
	}
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", observability.Handler())

	mux.HandleFunc("POST /v1/tokens", s.handleInitialize)
	mux.HandleFunc("GET /v1/tokens/{mint}", s.handleGetToken)
	mux.HandleFunc("GET /v1/tokens/{mint}/events", s.handleListEvents)

	mux.HandleFunc("POST /v1/tokens/{mint}/mint", s.handleMint)
	mux.HandleFunc("POST /v1/tokens/{mint}/burn", s.handleBurn)
	mux.HandleFunc("POST /v1/tokens/{mint}/pause", s.handlePause)
	mux.HandleFunc("POST /v1/tokens/{mint}/unpause", s.handleUnpause)
	mux.HandleFunc("POST /v1/tokens/{mint}/freeze", s.handleFreeze)
	mux.HandleFunc("POST /v1/tokens/{mint}/thaw", s.handleThaw)
	mux.HandleFunc("POST /v1/tokens/{mint}/seize", s.handleSeize)

	mux.HandleFunc("POST /v1/tokens/{mint}/roles", s.handleGrantRole)
	mux.HandleFunc("POST /v1/tokens/{mint}/roles/revoke", s.handleRevokeRole)
	mux.HandleFunc("POST /v1/tokens/{mint}/authority", s.handleTransferAuthority)
	mux.HandleFunc("PUT /v1/tokens/{mint}/supply-cap", s.handleUpdateSupplyCap)
	mux.HandleFunc("PUT /v1/tokens/{mint}/minters/{holder}/quota", s.handleUpdateMinterQuota)

	mux.HandleFunc("POST /v1/tokens/{mint}/blacklist", s.handleBlacklistAdd)
	mux.HandleFunc("POST /v1/tokens/{mint}/blacklist/remove", s.handleBlacklistRemove)

	if s.hub != nil {
		mux.Handle("GET /v1/events", s.hub)
	}

	return mux
}

// tokenResponse is the read model of one token config.
type tokenResponse struct {
	Address                 string  `json:"address"`
	Authority               string  `json:"authority"`
	Mint                    string  `json:"mint"`
	Preset                  uint8   `json:"preset"`
	Paused                  bool    `json:"paused"`
	SupplyCap               *uint64 `json:"supply_cap,omitempty"`
	TotalMinted             uint64  `json:"total_minted"`
	TotalBurned             uint64  `json:"total_burned"`
	CurrentSupply           uint64  `json:"current_supply"`
	Name                    string  `json:"name"`
	Symbol                  string  `json:"symbol"`
	URI                     string  `json:"uri"`
	Decimals                uint8   `json:"decimals"`
	EnablePermanentDelegate bool    `json:"enable_permanent_delegate"`
	EnableTransferHook      bool    `json:"enable_transfer_hook"`
	DefaultAccountFrozen    bool    `json:"default_account_frozen"`
	AdminCount              uint32  `json:"admin_count"`
	CreatedAt               int64   `json:"created_at"`
}

func toTokenResponse(c *domain.TokenConfig) tokenResponse {
	return tokenResponse{
		Address:                 c.Address,
		Authority:               c.Authority,
		Mint:                    c.Mint,
		Preset:                  uint8(c.Preset),
		Paused:                  c.Paused,
		SupplyCap:               c.SupplyCap,
		TotalMinted:             c.TotalMinted,
		TotalBurned:             c.TotalBurned,
		CurrentSupply:           c.CurrentSupply(),
		Name:                    c.Name,
		Symbol:                  c.Symbol,
		URI:                     c.URI,
		Decimals:                c.Decimals,
		EnablePermanentDelegate: c.EnablePermanentDelegate,
		EnableTransferHook:      c.EnableTransferHook,
		DefaultAccountFrozen:    c.DefaultAccountFrozen,
		AdminCount:              c.AdminCount,
		CreatedAt:               c.CreatedAt,
	}
}

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	mint := r.PathValue("mint")
	address, _, err := keys.ConfigAddress(mint)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg, err := s.stores.Configs.Get(r.Context(), address)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toTokenResponse(cfg))
}

type eventResponse struct {
	Type    string          `json:"type"`
	Mint    string          `json:"mint"`
	At      int64           `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	mint := r.PathValue("mint")

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := s.stores.Events.ListByMint(r.Context(), mint, limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, eventResponse{
			Type:    string(e.Type),
			Mint:    e.Mint,
			At:      e.At,
			Payload: json.RawMessage(e.Payload),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeEngineError maps engine, storage, ledger, and gate errors to HTTP
// statuses. Unknown errors are logged and reported as 500 without detail.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrZeroAmount),
		errors.Is(err, engine.ErrInvalidRole),
		errors.Is(err, engine.ErrInvalidPreset),
		errors.Is(err, engine.ErrInvalidSupplyCap),
		errors.Is(err, engine.ErrNameTooLong),
		errors.Is(err, engine.ErrSymbolTooLong),
		errors.Is(err, engine.ErrURITooLong),
		errors.Is(err, engine.ErrReasonTooLong),
		errors.Is(err, engine.ErrMintMismatch),
		errors.Is(err, storage.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, engine.ErrUnauthorized):
		s.writeError(w, http.StatusForbidden, err)
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, ledger.ErrAccountNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, engine.ErrPaused),
		errors.Is(err, engine.ErrNotPaused),
		errors.Is(err, engine.ErrLastAdmin),
		errors.Is(err, engine.ErrSupplyCapExceeded),
		errors.Is(err, engine.ErrQuotaExceeded),
		errors.Is(err, engine.ErrArithmeticOverflow),
		errors.Is(err, storage.ErrDuplicateKey),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrAccountFrozen),
		errors.Is(err, gate.ErrSenderBlacklisted),
		errors.Is(err, gate.ErrReceiverBlacklisted):
		s.writeError(w, http.StatusConflict, err)
	case errors.Is(err, oracle.ErrInvalidOracleData),
		errors.Is(err, oracle.ErrInvalidOraclePrice),
		errors.Is(err, oracle.ErrStaleOraclePrice),
		errors.Is(err, oracle.ErrArithmeticOverflow):
		s.writeError(w, http.StatusUnprocessableEntity, err)
	default:
		s.logger.Printf("internal error: %v", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}
