package engine

import (
	"context"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"stablecoin-core/internal/domain"
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

// Test identities.
var (
	testMint       = ident(0x01)
	testAuthority  = ident(0x02)
	testMinter     = ident(0x03)
	testBurner     = ident(0x04)
	testPauser     = ident(0x05)
	testFreezer    = ident(0x06)
	testSeizer     = ident(0x07)
	testCompliance = ident(0x08)
	testHolder     = ident(0x09)
	testOutsider   = ident(0x0A)
)

// stubSource serves a canned oracle quote.
type stubSource struct {
	quote *oracle.Quote
	err   error
}

func (s *stubSource) GetQuote(context.Context, string) (*oracle.Quote, error) {
	return s.quote, s.err
}

// capture collects post-commit published events.
type capture struct {
	events []*domain.Event
}

func (c *capture) Publish(e *domain.Event) { c.events = append(c.events, e) }

// testEnv wires an Engine over the in-memory store and ledger.
type testEnv struct {
	store     *memory.Store
	ledger    *ledger.InMemory
	source    *stubSource
	published *capture
	engine    *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	l := ledger.NewInMemory(gate.New(store.Stores().Blacklist))
	source := &stubSource{}
	published := &capture{}

	eng := New(Options{
		Tx:     store,
		Ledger: l,
		Prices: source,
		Converter: oracle.NewConverter(
			oracle.WithNow(func() int64 { return testNow }),
		),
		Publisher: published,
		Now:       func() int64 { return testNow },
	})

	return &testEnv{
		store:     store,
		ledger:    l,
		source:    source,
		published: published,
		engine:    eng,
	}
}

// initToken initializes testMint with testAuthority as first admin.
func (env *testEnv) initToken(t *testing.T, supplyCap *uint64) *domain.TokenConfig {
	t.Helper()

	cfg, err := env.engine.Initialize(context.Background(), InitializeParams{
		Authority: testAuthority,
		Mint:      testMint,
		Preset:    domain.PresetCompliant,
		Name:      "Test Dollar",
		Symbol:    "TUSD",
		URI:       "https://example.com/tusd.json",
		Decimals:  6,
		SupplyCap: supplyCap,
	})
	require.NoError(t, err)
	return cfg
}

// grant gives holder a role on testMint, acting as testAuthority.
func (env *testEnv) grant(t *testing.T, holder string, role domain.Role) {
	t.Helper()
	require.NoError(t, env.engine.GrantRole(context.Background(), testAuthority, testMint, holder, role))
}

// lastEvent returns the most recently published event.
func (env *testEnv) lastEvent(t *testing.T) *domain.Event {
	t.Helper()
	require.NotEmpty(t, env.published.events)
	return env.published.events[len(env.published.events)-1]
}

func uint64Ptr(v uint64) *uint64 { return &v }
