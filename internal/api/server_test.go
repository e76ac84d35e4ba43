package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablecoin-core/internal/engine"
	"stablecoin-core/internal/gate"
	"stablecoin-core/internal/ledger"
	"stablecoin-core/internal/oracle"
	"stablecoin-core/internal/storage/memory"
)

const testNow = int64(1_700_000_000)

// ident builds a valid base58 identity from a repeated byte.
func ident(b byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = b
	}
	return base58.Encode(raw)
}

var (
	testMint      = ident(0x01)
	testAuthority = ident(0x02)
	testMinter    = ident(0x03)
	testHolder    = ident(0x04)
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	l := ledger.NewInMemory(gate.New(store.Stores().Blacklist))
	eng := engine.New(engine.Options{
		Tx:        store,
		Ledger:    l,
		Converter: oracle.NewConverter(oracle.WithNow(func() int64 { return testNow })),
		Now:       func() int64 { return testNow },
	})

	logger := log.New(&bytes.Buffer{}, "[api-test] ", 0)
	return NewServer(eng, store.Stores(), nil, logger).Router()
}

// doJSON performs a request with a JSON body and returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func initializeToken(t *testing.T, router http.Handler) tokenResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/tokens", map[string]any{
		"authority": testAuthority,
		"mint":      testMint,
		"preset":    2,
		"name":      "Test Dollar",
		"symbol":    "TUSD",
		"decimals":  6,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func grantRole(t *testing.T, router http.Handler, grantee string, role uint8) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/roles", map[string]any{
		"admin":   testAuthority,
		"grantee": grantee,
		"role":    role,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestInitializeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp := initializeToken(t, router)
	assert.Equal(t, testMint, resp.Mint)
	assert.Equal(t, testAuthority, resp.Authority)
	assert.Equal(t, uint8(2), resp.Preset)
	assert.True(t, resp.EnableTransferHook)
	assert.Equal(t, uint32(1), resp.AdminCount)
	assert.NotEmpty(t, resp.Address)

	// Same mint again collides.
	rec := doJSON(t, router, http.MethodPost, "/v1/tokens", map[string]any{
		"authority": testAuthority,
		"mint":      testMint,
		"preset":    2,
		"name":      "Test Dollar",
		"symbol":    "TUSD",
		"decimals":  6,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInitializeRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/tokens", map[string]any{
		"authority": testAuthority,
		"mint":      testMint,
		"preset":    2,
		"name":      "Test Dollar",
		"symbol":    "TUSD",
		"decimals":  6,
		"bogus":     true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetToken(t *testing.T) {
	router := newTestRouter(t)
	created := initializeToken(t, router)

	rec := doJSON(t, router, http.MethodGet, "/v1/tokens/"+testMint, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created, resp)

	rec = doJSON(t, router, http.MethodGet, "/v1/tokens/"+ident(0x7F), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMintEndpoint(t *testing.T) {
	router := newTestRouter(t)
	initializeToken(t, router)
	grantRole(t, router, testMinter, 1)

	rec := doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/mint", map[string]any{
		"minter": testMinter,
		"to":     testHolder,
		"amount": 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp supplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1000), resp.NewSupply)
}

func TestMintErrorMapping(t *testing.T) {
	router := newTestRouter(t)
	initializeToken(t, router)
	grantRole(t, router, testMinter, 1)

	// Caller without the Minter role.
	rec := doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/mint", map[string]any{
		"minter": testAuthority,
		"to":     testHolder,
		"amount": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Zero amount.
	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/mint", map[string]any{
		"minter": testMinter,
		"to":     testHolder,
		"amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown token.
	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+ident(0x7F)+"/mint", map[string]any{
		"minter": testMinter,
		"to":     testHolder,
		"amount": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPauseEndpoint(t *testing.T) {
	router := newTestRouter(t)
	initializeToken(t, router)
	grantRole(t, router, testMinter, 1)
	pauser := ident(0x05)
	grantRole(t, router, pauser, 3)

	// Unpausing a running token is a state conflict.
	rec := doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/unpause", map[string]any{
		"pauser": pauser,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/pause", map[string]any{
		"pauser": pauser,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/mint", map[string]any{
		"minter": testMinter,
		"to":     testHolder,
		"amount": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSupplyCapEndpoint(t *testing.T) {
	router := newTestRouter(t)
	initializeToken(t, router)
	grantRole(t, router, testMinter, 1)

	rec := doJSON(t, router, http.MethodPut, "/v1/tokens/"+testMint+"/supply-cap", map[string]any{
		"admin":      testAuthority,
		"supply_cap": 500,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/mint", map[string]any{
		"minter": testMinter,
		"to":     testHolder,
		"amount": 501,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBlacklistEndpoint(t *testing.T) {
	router := newTestRouter(t)
	initializeToken(t, router)
	blacklister := ident(0x08)
	grantRole(t, router, blacklister, 5)

	rec := doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/blacklist", map[string]any{
		"blacklister": blacklister,
		"target":      testHolder,
		"reason":      "sanctions match",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/blacklist/remove", map[string]any{
		"blacklister": blacklister,
		"target":      testHolder,
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Removing again: the entry is gone.
	rec = doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/blacklist/remove", map[string]any{
		"blacklister": blacklister,
		"target":      testHolder,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEventsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	initializeToken(t, router)
	grantRole(t, router, testMinter, 1)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/v1/tokens/"+testMint+"/mint", map[string]any{
			"minter": testMinter,
			"to":     testHolder,
			"amount": 100,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/v1/tokens/"+testMint+"/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Newest first: the latest mint leads, the initialization is last.
	var events []eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 5)
	assert.Equal(t, "TokensMinted", events[0].Type)
	assert.Equal(t, "StablecoinInitialized", events[4].Type)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/tokens/%s/events?limit=%d", testMint, 2), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Len(t, events, 2)

	rec = doJSON(t, router, http.MethodGet, "/v1/tokens/"+testMint+"/events?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
