package market

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/krazyTry/coop-meme-go/coop_meme"
)

const tokensFor100M = uint64(62_953_995_157_384_988)

func TestBuyTokens(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coin := env.createToken(t)
	trader := env.funded(t, 1_000_000_000)
	affiliate := solana.NewWallet().PublicKey()

	quote, err := env.market.QuoteBuy(coin.TokenMint, 100_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, tokensFor100M, quote.AmountOut)

	_, err = env.market.BuyTokens(ctx, trader, coin.TokenMint, 100_000_000, tokensFor100M+1, affiliate)
	assert.ErrorIs(t, err, coop_meme.ErrSlippageExceeded)

	res, err := env.market.BuyTokens(ctx, trader, coin.TokenMint, 100_000_000, tokensFor100M, affiliate)
	require.NoError(t, err)
	assert.Equal(t, tokensFor100M, res.Quote.AmountOut)
	assert.Equal(t, coop_meme.MarketStateActive, res.Coin.State)
	assert.Equal(t, uint64(65_000_000), res.Coin.RealSolReserves)

	vault := env.market.GlobalVault()
	assert.Equal(t, uint64(900_000_000), env.sol(trader))
	assert.Equal(t, tokensFor100M, env.bank.Balance(coin.TokenMint, trader))
	assert.Equal(t, uint64(65_000_000), env.sol(vault))
	assert.Equal(t, uint64(15_000_000), env.sol(env.team))
	assert.Equal(t, uint64(10_000_000), env.sol(env.creator))
	assert.Equal(t, uint64(10_000_000), env.sol(affiliate))
	assert.Equal(t, res.Coin.RealTokenReserves, env.bank.Balance(coin.TokenMint, vault))

	assert.Equal(t, []string{"Created", "Trade", "BondingCurveStarted"}, env.events.Names())
	trade := env.events.Events()[1].(coop_meme.TradeEvent)
	assert.Equal(t, uint64(35_000_000), trade.Fee)
	assert.Equal(t, coop_meme.TradeDirectionBuy, trade.Direction)

	phase, err := env.market.Phase(coin.TokenMint)
	require.NoError(t, err)
	assert.Equal(t, coop_meme.PhaseBondingCurveActive, phase)

	// only the first buy starts the curve
	_, err = env.market.BuyTokens(ctx, trader, coin.TokenMint, 1_000_000, 0, affiliate)
	require.NoError(t, err)
	assert.Equal(t, []string{"Created", "Trade", "BondingCurveStarted", "Trade"}, env.events.Names())
}

func TestBuyWithoutAffiliatePaysTeam(t *testing.T) {
	env := newTestEnv(t)
	coin := env.createToken(t)
	trader := env.funded(t, 100_000_000)

	_, err := env.market.BuyTokens(context.Background(), trader, coin.TokenMint, 100_000_000, 0, solana.PublicKey{})
	require.NoError(t, err)
	assert.Equal(t, uint64(25_000_000), env.sol(env.team))
	assert.Equal(t, uint64(0), env.sol(trader))
}

func TestBuyFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coin := env.createToken(t)
	trader := env.funded(t, 50_000_000)

	_, err := env.market.BuyTokens(ctx, trader, coin.TokenMint, 100_000_000, 0, solana.PublicKey{})
	require.ErrorIs(t, err, coop_meme.ErrInsufficientBalance)

	after, err := env.market.Token(coin.TokenMint)
	require.NoError(t, err)
	assert.Equal(t, coin, after)
	assert.Equal(t, uint64(50_000_000), env.sol(trader))
	assert.Equal(t, uint64(0), env.sol(env.market.GlobalVault()))
	assert.Equal(t, uint64(0), env.bank.Balance(coin.TokenMint, trader))
	assert.Equal(t, []string{"Created"}, env.events.Names())
}

func TestTradingWindow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coin := env.createToken(t)
	trader := env.funded(t, 1_000_000_000)

	env.clock.Set(coin.TokenMarketEndTime)
	_, err := env.market.BuyTokens(ctx, trader, coin.TokenMint, 1_000_000, 0, solana.PublicKey{})
	require.NoError(t, err)

	env.clock.Set(coin.TokenMarketEndTime + 1)
	_, err = env.market.BuyTokens(ctx, trader, coin.TokenMint, 1_000_000, 0, solana.PublicKey{})
	assert.ErrorIs(t, err, coop_meme.ErrTradingInactive)
	_, err = env.market.SellTokens(ctx, trader, coin.TokenMint, 1, 0, solana.PublicKey{})
	assert.ErrorIs(t, err, coop_meme.ErrTradingInactive)
	_, err = env.market.QuoteBuy(coin.TokenMint, 1_000_000, 0)
	assert.ErrorIs(t, err, coop_meme.ErrTradingInactive)

	phase, err := env.market.Phase(coin.TokenMint)
	require.NoError(t, err)
	assert.Equal(t, coop_meme.PhaseFairlaunchExpired, phase)

	_, err = env.market.BuyTokens(ctx, trader, solana.NewWallet().PublicKey(), 1_000_000, 0, solana.PublicKey{})
	assert.ErrorIs(t, err, coop_meme.ErrTokenNotFound)
}

func TestSellTokens(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coin := env.createToken(t)
	trader := env.funded(t, 100_000_000)

	_, err := env.market.BuyTokens(ctx, trader, coin.TokenMint, 100_000_000, 0, solana.PublicKey{})
	require.NoError(t, err)

	_, err = env.market.SellTokens(ctx, trader, coin.TokenMint, tokensFor100M+1, 0, solana.PublicKey{})
	assert.ErrorIs(t, err, coop_meme.ErrInsufficientBalance)

	// the whole holding would pay out one lamport more than the curve holds
	_, err = env.market.SellTokens(ctx, trader, coin.TokenMint, tokensFor100M, 0, solana.PublicKey{})
	assert.ErrorIs(t, err, coop_meme.ErrInsufficientBalance)
	assert.Equal(t, tokensFor100M, env.bank.Balance(coin.TokenMint, trader))

	quote, err := env.market.QuoteSell(coin.TokenMint, tokensFor100M-1, 0)
	require.NoError(t, err)
	res, err := env.market.SellTokens(ctx, trader, coin.TokenMint, tokensFor100M-1, quote.AmountOut, solana.PublicKey{})
	require.NoError(t, err)

	// 65_000_000 gross back, 35% of it in fees
	fee := uint64(6_500_000 + 6_500_000 + 6_500_000 + 3_250_000)
	assert.Equal(t, 65_000_000-fee, res.Quote.AmountOut)
	assert.Equal(t, 65_000_000-fee, env.sol(trader))
	assert.Equal(t, uint64(0), res.Coin.RealSolReserves)
	assert.Equal(t, coop_meme.DefaultTotalSupply-1, res.Coin.RealTokenReserves)
	assert.Equal(t, uint64(1), env.bank.Balance(coin.TokenMint, trader))
	assert.Equal(t, uint64(0), env.sol(env.market.GlobalVault()))
	assert.Equal(t, coop_meme.DefaultTotalSupply-1, env.bank.Balance(coin.TokenMint, env.market.GlobalVault()))

	sell := env.events.Events()[len(env.events.Events())-1].(coop_meme.TradeEvent)
	assert.Equal(t, coop_meme.TradeDirectionSell, sell.Direction)
	assert.Equal(t, fee, sell.Fee)
}

func TestConcurrentBuys(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coin := env.createToken(t)

	const traders = 16
	wallets := make([]solana.PublicKey, traders)
	for i := range wallets {
		wallets[i] = env.funded(t, 10_000_000)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range wallets {
		g.Go(func() error {
			_, err := env.market.BuyTokens(gctx, w, coin.TokenMint, 10_000_000, 0, solana.PublicKey{})
			return err
		})
	}
	require.NoError(t, g.Wait())

	after, err := env.market.Token(coin.TokenMint)
	require.NoError(t, err)
	vault := env.market.GlobalVault()
	assert.Equal(t, after.RealSolReserves, env.sol(vault))
	assert.Equal(t, after.RealTokenReserves, env.bank.Balance(coin.TokenMint, vault))
	assert.Equal(t, uint64(traders*6_500_000), after.RealSolReserves)

	var sold uint64
	for _, w := range wallets {
		assert.Equal(t, uint64(0), env.sol(w))
		sold += env.bank.Balance(coin.TokenMint, w)
	}
	assert.Equal(t, after.SoldTokens(), sold)
	assert.Equal(t, 1, countEvents(env.events, "BondingCurveStarted"))
	assert.Equal(t, traders, countEvents(env.events, "Trade"))
}

func countEvents(r *Recorder, name string) int {
	n := 0
	for _, got := range r.Names() {
		if got == name {
			n++
		}
	}
	return n
}
