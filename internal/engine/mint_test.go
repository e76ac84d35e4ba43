package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/oracle"
)

func TestMint(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, uint64Ptr(1_000_000))
	env.grant(t, testMinter, domain.RoleMinter)

	result, err := env.engine.Mint(context.Background(), MintParams{
		Minter: testMinter,
		Mint:   testMint,
		To:     testHolder,
		Amount: 250_000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(250_000), result.NewSupply)
	assert.Equal(t, uint64(250_000), env.ledger.Balance(testMint, testHolder))

	event := env.lastEvent(t)
	assert.Equal(t, domain.EventTokensMinted, event.Type)
}

func TestMintZeroAmount(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)

	_, err := env.engine.Mint(context.Background(), MintParams{
		Minter: testMinter,
		Mint:   testMint,
		To:     testHolder,
	})
	assert.ErrorIs(t, err, ErrZeroAmount)
}

func TestMintUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	// testAuthority is Admin but not Minter: roles do not imply each other.
	_, err := env.engine.Mint(context.Background(), MintParams{
		Minter: testAuthority,
		Mint:   testMint,
		To:     testHolder,
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMintSupplyCap(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, uint64Ptr(1000))
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testBurner, domain.RoleBurner)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)

	// At the cap: one more unit is refused.
	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1})
	assert.ErrorIs(t, err, ErrSupplyCapExceeded)

	// The cap bounds circulating supply, not cumulative mints: burning
	// makes room again.
	_, err = env.engine.Burn(ctx, BurnParams{Burner: testBurner, Mint: testMint, From: testHolder, Amount: 400})
	require.NoError(t, err)

	result, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 400})
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), result.NewSupply)
}

func TestMintQuota(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	ctx := context.Background()

	require.NoError(t, env.engine.UpdateMinterQuota(ctx, testAuthority, testMint, testMinter, uint64Ptr(500)))

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 300})
	require.NoError(t, err)

	// The quota is cumulative across mints, not per call.
	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 201})
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 200})
	require.NoError(t, err)

	// Raising the quota admits more; the minted counter is preserved.
	require.NoError(t, env.engine.UpdateMinterQuota(ctx, testAuthority, testMint, testMinter, uint64Ptr(600)))
	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 101})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 100})
	require.NoError(t, err)
}

func TestMintOverflow(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: math.MaxUint64})
	require.NoError(t, err)

	// TotalMinted is saturated; any further mint must fail the checked add,
	// not wrap around.
	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1})
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestMintOracleCap(t *testing.T) {
	env := newTestEnv(t)
	// Cap is 1,000,000 USD when a price feed is supplied.
	env.initToken(t, uint64Ptr(1_000_000))
	env.grant(t, testMinter, domain.RoleMinter)
	ctx := context.Background()

	// $1.00 with exponent -8 and 6 decimals: cap converts to 10^12 units.
	env.source.quote = &oracle.Quote{
		Price:       100_000_000,
		Exponent:    -8,
		PublishedAt: testNow,
		Owner:       oracle.PythV2Mainnet,
	}

	result, err := env.engine.Mint(ctx, MintParams{
		Minter:    testMinter,
		Mint:      testMint,
		To:        testHolder,
		Amount:    1_000_000_000_000,
		PriceFeed: ident(0x30),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000_000), result.NewSupply)

	_, err = env.engine.Mint(ctx, MintParams{
		Minter:    testMinter,
		Mint:      testMint,
		To:        testHolder,
		Amount:    1,
		PriceFeed: ident(0x30),
	})
	assert.ErrorIs(t, err, ErrSupplyCapExceeded)
}

func TestMintStaleOracle(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, uint64Ptr(1_000_000))
	env.grant(t, testMinter, domain.RoleMinter)

	env.source.quote = &oracle.Quote{
		Price:       100_000_000,
		Exponent:    -8,
		PublishedAt: testNow - oracle.MaxQuoteAge - 1,
		Owner:       oracle.PythV2Mainnet,
	}

	_, err := env.engine.Mint(context.Background(), MintParams{
		Minter:    testMinter,
		Mint:      testMint,
		To:        testHolder,
		Amount:    1,
		PriceFeed: ident(0x30),
	})
	assert.ErrorIs(t, err, oracle.ErrStaleOraclePrice)
}

func TestMintNoCapSkipsOracle(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)

	// No cap: the price feed reference is irrelevant and the (broken)
	// oracle must not be consulted.
	env.source.err = assert.AnError

	_, err := env.engine.Mint(context.Background(), MintParams{
		Minter:    testMinter,
		Mint:      testMint,
		To:        testHolder,
		Amount:    100,
		PriceFeed: ident(0x30),
	})
	require.NoError(t, err)
}

func TestBurn(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testBurner, domain.RoleBurner)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)

	result, err := env.engine.Burn(ctx, BurnParams{Burner: testBurner, Mint: testMint, From: testHolder, Amount: 400})
	require.NoError(t, err)
	assert.Equal(t, uint64(600), result.NewSupply)
	assert.Equal(t, uint64(600), env.ledger.Balance(testMint, testHolder))

	event := env.lastEvent(t)
	assert.Equal(t, domain.EventTokensBurned, event.Type)
}

func TestBurnRollsBackOnLedgerFailure(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testBurner, domain.RoleBurner)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 100})
	require.NoError(t, err)

	// Ledger refuses the overdraft after the counters were updated in the
	// transaction; the rollback must discard the counter change.
	_, err = env.engine.Burn(ctx, BurnParams{Burner: testBurner, Mint: testMint, From: testHolder, Amount: 200})
	require.Error(t, err)

	reloaded, err := env.store.Stores().Configs.Get(ctx, cfg.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reloaded.TotalBurned)
	assert.Equal(t, uint64(100), reloaded.CurrentSupply())
}
