package coop_meme

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/coop-meme-go/cp_amm"
)

func TestPlanListing(t *testing.T) {
	cfg := newTestConfig(t)
	coin := newTestCoin(t, cfg)
	buy, err := QuoteBuy(cfg, coin, 1_000_000_000, 0)
	require.NoError(t, err)
	coin, err = ApplySwap(coin, buy)
	require.NoError(t, err)

	_, err = PlanListing(cfg, coin, solana.NewWallet().PublicKey(), coin.TokenMarketEndTime)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = PlanListing(cfg, coin, cfg.Admin, coin.TokenMarketEndTime-1)
	assert.ErrorIs(t, err, ErrNotEligible)

	plan, err := PlanListing(cfg, coin, cfg.Admin, coin.TokenMarketEndTime)
	require.NoError(t, err)
	assert.Equal(t, coin.RealSolReserves*5/100, plan.ListingFee)
	assert.Equal(t, coin.RealSolReserves-plan.ListingFee, plan.SolToList)
	assert.Equal(t, coin.RealTokenReserves, plan.TokenToList)
	assert.Negative(t, bytes.Compare(plan.Token0Mint.Bytes(), plan.Token1Mint.Bytes()))
	if plan.Token0Mint.Equals(solana.WrappedSol) {
		assert.Equal(t, plan.SolToList, plan.InitAmount0)
	} else {
		assert.Equal(t, plan.TokenToList, plan.InitAmount0)
	}

	assert.False(t, plan.WithoutPool)

	nextCfg, listed := ApplyListing(cfg, coin, &cp_amm.PoolHandle{
		PoolAccounts: cp_amm.PoolAccounts{
			Pool:   solana.NewWallet().PublicKey(),
			LpMint: solana.NewWallet().PublicKey(),
		},
		LpAmount: 42,
	})
	assert.Equal(t, cfg.TotalCoopListed+1, nextCfg.TotalCoopListed)
	assert.True(t, listed.IsTokenListed())
	assert.False(t, listed.IsBondingCurveActive())
	assert.False(t, listed.IsTradingActive(coin.TokenMarketEndTime))
	assert.Equal(t, uint64(0), listed.RealSolReserves)
	assert.Equal(t, PhaseListed, listed.Phase(0))

	_, err = PlanListing(cfg, listed, cfg.Admin, coin.TokenMarketEndTime+100)
	assert.ErrorIs(t, err, ErrAlreadyListed)

	assert.ErrorIs(t, CheckBurnLP(cfg, coin, cfg.Admin), ErrNotEligible)
	assert.NoError(t, CheckBurnLP(cfg, listed, cfg.Admin))
	listed.LpBurned = true
	assert.ErrorIs(t, CheckBurnLP(cfg, listed, cfg.Admin), ErrNotEligible)
}

func TestPlanListingWithoutTrades(t *testing.T) {
	cfg := newTestConfig(t)
	coin := newTestCoin(t, cfg)

	plan, err := PlanListing(cfg, coin, cfg.Admin, coin.TokenMarketEndTime)
	require.NoError(t, err)
	assert.True(t, plan.WithoutPool)
	assert.Equal(t, uint64(0), plan.ListingFee)
	assert.Equal(t, uint64(0), plan.SolToList)
	assert.Equal(t, coin.RealTokenReserves, plan.TokenToList)

	nextCfg, listed := ApplyListing(cfg, coin, nil)
	assert.Equal(t, cfg.TotalCoopListed+1, nextCfg.TotalCoopListed)
	assert.Equal(t, PhaseListed, listed.Phase(coin.TokenMarketEndTime))
	assert.True(t, listed.Pool.IsZero())
	assert.Equal(t, uint64(0), listed.RealTokenReserves)
	assert.ErrorIs(t, CheckBurnLP(cfg, listed, cfg.Admin), ErrNotEligible)
}

func TestPlanListingDustReserves(t *testing.T) {
	cfg := newTestConfig(t)
	coin := newTestCoin(t, cfg)
	coin.RealSolReserves = 1
	coin.VirtualSolReserves++

	// sqrt(1 * supply) clears the locked lp, so a single lamport still seeds a pool
	plan, err := PlanListing(cfg, coin, cfg.Admin, coin.TokenMarketEndTime)
	require.NoError(t, err)
	assert.False(t, plan.WithoutPool)

	coin.RealTokenReserves = 100
	plan, err = PlanListing(cfg, coin, cfg.Admin, coin.TokenMarketEndTime)
	require.NoError(t, err)
	assert.True(t, plan.WithoutPool)
	assert.Equal(t, uint64(1), plan.ListingFee)
	assert.Equal(t, uint64(0), plan.SolToList)
}

func TestPlanListingCounterExhausted(t *testing.T) {
	cfg := newTestConfig(t)
	coin := newTestCoin(t, cfg)
	cfg.TotalCoopListed = ^uint32(0)

	_, err := PlanListing(cfg, coin, cfg.Admin, coin.TokenMarketEndTime)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}
