package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablecoin-core/internal/domain"
)

func TestPauseHaltsOperations(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testBurner, domain.RoleBurner)
	env.grant(t, testPauser, domain.RolePauser)
	env.grant(t, testFreezer, domain.RoleFreezer)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)

	require.NoError(t, env.engine.Pause(ctx, testPauser, testMint))

	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1})
	assert.ErrorIs(t, err, ErrPaused)
	_, err = env.engine.Burn(ctx, BurnParams{Burner: testBurner, Mint: testMint, From: testHolder, Amount: 1})
	assert.ErrorIs(t, err, ErrPaused)
	err = env.engine.FreezeAccount(ctx, testFreezer, testMint, testHolder)
	assert.ErrorIs(t, err, ErrPaused)

	// Unpause restores everything.
	require.NoError(t, env.engine.Unpause(ctx, testPauser, testMint))
	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1})
	require.NoError(t, err)
}

func TestPauseNotIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testPauser, domain.RolePauser)
	ctx := context.Background()

	assert.ErrorIs(t, env.engine.Unpause(ctx, testPauser, testMint), ErrNotPaused)

	require.NoError(t, env.engine.Pause(ctx, testPauser, testMint))
	assert.ErrorIs(t, env.engine.Pause(ctx, testPauser, testMint), ErrPaused)
}

func TestPauseUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)

	// Admin alone does not carry the Pauser capability.
	assert.ErrorIs(t, env.engine.Pause(context.Background(), testAuthority, testMint), ErrUnauthorized)
}

func TestFreezeAndThaw(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testFreezer, domain.RoleFreezer)
	ctx := context.Background()

	require.NoError(t, env.engine.FreezeAccount(ctx, testFreezer, testMint, testHolder))
	assert.True(t, env.ledger.Frozen(testMint, testHolder))

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 100})
	require.Error(t, err)

	require.NoError(t, env.engine.ThawAccount(ctx, testFreezer, testMint, testHolder))
	assert.False(t, env.ledger.Frozen(testMint, testHolder))

	_, err = env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 100})
	require.NoError(t, err)

	event := env.lastEvent(t)
	assert.Equal(t, domain.EventTokensMinted, event.Type)
}

func TestSeize(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testSeizer, domain.RoleSeizer)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)

	require.NoError(t, env.engine.Seize(ctx, SeizeParams{
		Seizer: testSeizer,
		Mint:   testMint,
		From:   testHolder,
		To:     testOutsider,
		Amount: 600,
	}))
	assert.Equal(t, uint64(400), env.ledger.Balance(testMint, testHolder))
	assert.Equal(t, uint64(600), env.ledger.Balance(testMint, testOutsider))

	event := env.lastEvent(t)
	assert.Equal(t, domain.EventTokensSeized, event.Type)
}

func TestSeizeWorksWhilePaused(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testPauser, domain.RolePauser)
	env.grant(t, testSeizer, domain.RoleSeizer)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)
	require.NoError(t, env.engine.Pause(ctx, testPauser, testMint))

	// Seizure is the one supply operation that survives an emergency halt.
	require.NoError(t, env.engine.Seize(ctx, SeizeParams{
		Seizer: testSeizer,
		Mint:   testMint,
		From:   testHolder,
		To:     testOutsider,
		Amount: 1000,
	}))
	assert.Equal(t, uint64(1000), env.ledger.Balance(testMint, testOutsider))
}

func TestSeizeWorksOnFrozenAccount(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	env.grant(t, testFreezer, domain.RoleFreezer)
	env.grant(t, testSeizer, domain.RoleSeizer)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)
	require.NoError(t, env.engine.FreezeAccount(ctx, testFreezer, testMint, testHolder))

	require.NoError(t, env.engine.Seize(ctx, SeizeParams{
		Seizer: testSeizer,
		Mint:   testMint,
		From:   testHolder,
		To:     testOutsider,
		Amount: 1000,
	}))
	assert.Equal(t, uint64(0), env.ledger.Balance(testMint, testHolder))
}

func TestSeizeUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.initToken(t, nil)
	env.grant(t, testMinter, domain.RoleMinter)
	ctx := context.Background()

	_, err := env.engine.Mint(ctx, MintParams{Minter: testMinter, Mint: testMint, To: testHolder, Amount: 1000})
	require.NoError(t, err)

	err = env.engine.Seize(ctx, SeizeParams{
		Seizer: testMinter, // Minter, not Seizer
		Mint:   testMint,
		From:   testHolder,
		To:     testOutsider,
		Amount: 1,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
