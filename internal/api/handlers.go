package api

import (
	"net/http"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/engine"
)

type initializeRequest struct {
	Authority string  `json:"authority"`
	Mint      string  `json:"mint"`
	Preset    uint8   `json:"preset"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	URI       string  `json:"uri"`
	Decimals  uint8   `json:"decimals"`
	SupplyCap *uint64 `json:"supply_cap,omitempty"`

	EnablePermanentDelegate *bool `json:"enable_permanent_delegate,omitempty"`
	EnableTransferHook      *bool `json:"enable_transfer_hook,omitempty"`
	DefaultAccountFrozen    *bool `json:"default_account_frozen,omitempty"`
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if !s.decode(w, r, &req) {
		return
	}

	cfg, err := s.engine.Initialize(r.Context(), engine.InitializeParams{
		Authority:               req.Authority,
		Mint:                    req.Mint,
		Preset:                  domain.Preset(req.Preset),
		Name:                    req.Name,
		Symbol:                  req.Symbol,
		URI:                     req.URI,
		Decimals:                req.Decimals,
		SupplyCap:               req.SupplyCap,
		EnablePermanentDelegate: req.EnablePermanentDelegate,
		EnableTransferHook:      req.EnableTransferHook,
		DefaultAccountFrozen:    req.DefaultAccountFrozen,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toTokenResponse(cfg))
}

type mintRequest struct {
	Minter    string `json:"minter"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	PriceFeed string `json:"price_feed,omitempty"`
}

type supplyResponse struct {
	NewSupply uint64 `json:"new_supply"`
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.engine.Mint(r.Context(), engine.MintParams{
		Minter:    req.Minter,
		Mint:      r.PathValue("mint"),
		To:        req.To,
		Amount:    req.Amount,
		PriceFeed: req.PriceFeed,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, supplyResponse{NewSupply: result.NewSupply})
}

type burnRequest struct {
	Burner string `json:"burner"`
	From   string `json:"from"`
	Amount uint64 `json:"amount"`
}

func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	var req burnRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.engine.Burn(r.Context(), engine.BurnParams{
		Burner: req.Burner,
		Mint:   r.PathValue("mint"),
		From:   req.From,
		Amount: req.Amount,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, supplyResponse{NewSupply: result.NewSupply})
}

type pauseRequest struct {
	Pauser string `json:"pauser"`
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	var req pauseRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.Pause(r.Context(), req.Pauser, r.PathValue("mint")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	var req pauseRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.Unpause(r.Context(), req.Pauser, r.PathValue("mint")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type freezeRequest struct {
	Freezer string `json:"freezer"`
	Account string `json:"account"`
}

func (s *Server) handleFreeze(w http.ResponseWriter, r *http.Request) {
	var req freezeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.FreezeAccount(r.Context(), req.Freezer, r.PathValue("mint"), req.Account); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleThaw(w http.ResponseWriter, r *http.Request) {
	var req freezeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.ThawAccount(r.Context(), req.Freezer, r.PathValue("mint"), req.Account); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type seizeRequest struct {
	Seizer string `json:"seizer"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

func (s *Server) handleSeize(w http.ResponseWriter, r *http.Request) {
	var req seizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.Seize(r.Context(), engine.SeizeParams{
		Seizer: req.Seizer,
		Mint:   r.PathValue("mint"),
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type grantRoleRequest struct {
	Admin   string `json:"admin"`
	Grantee string `json:"grantee"`
	Role    uint8  `json:"role"`
}

func (s *Server) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	var req grantRoleRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.GrantRole(r.Context(), req.Admin, r.PathValue("mint"), req.Grantee, domain.Role(req.Role))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type revokeRoleRequest struct {
	Admin         string `json:"admin"`
	RecordAddress string `json:"record_address"`
}

func (s *Server) handleRevokeRole(w http.ResponseWriter, r *http.Request) {
	var req revokeRoleRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.RevokeRole(r.Context(), req.Admin, r.PathValue("mint"), req.RecordAddress)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferAuthorityRequest struct {
	Admin        string `json:"admin"`
	NewAuthority string `json:"new_authority"`
}

func (s *Server) handleTransferAuthority(w http.ResponseWriter, r *http.Request) {
	var req transferAuthorityRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.TransferAuthority(r.Context(), req.Admin, r.PathValue("mint"), req.NewAuthority)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateSupplyCapRequest struct {
	Admin     string  `json:"admin"`
	SupplyCap *uint64 `json:"supply_cap"` // null removes the cap
}

func (s *Server) handleUpdateSupplyCap(w http.ResponseWriter, r *http.Request) {
	var req updateSupplyCapRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.UpdateSupplyCap(r.Context(), req.Admin, r.PathValue("mint"), req.SupplyCap)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateQuotaRequest struct {
	Admin string  `json:"admin"`
	Quota *uint64 `json:"quota"` // null removes the quota
}

func (s *Server) handleUpdateMinterQuota(w http.ResponseWriter, r *http.Request) {
	var req updateQuotaRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.UpdateMinterQuota(r.Context(), req.Admin, r.PathValue("mint"), r.PathValue("holder"), req.Quota)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type blacklistRequest struct {
	Blacklister string `json:"blacklister"`
	Target      string `json:"target"`
	Reason      string `json:"reason,omitempty"`
}

func (s *Server) handleBlacklistAdd(w http.ResponseWriter, r *http.Request) {
	var req blacklistRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.AddToBlacklist(r.Context(), engine.BlacklistParams{
		Blacklister: req.Blacklister,
		Mint:        r.PathValue("mint"),
		Target:      req.Target,
		Reason:      req.Reason,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBlacklistRemove(w http.ResponseWriter, r *http.Request) {
	var req blacklistRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.engine.RemoveFromBlacklist(r.Context(), req.Blacklister, r.PathValue("mint"), req.Target)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
