package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// TradeResult is a committed trade and the ledger after it
type TradeResult struct {
	Coin  *coop_meme.MemeCoinData
	Quote *coop_meme.SwapResult
}

// QuoteBuy prices a buy without executing it.
func (m *Market) QuoteBuy(mint solana.PublicKey, solIn, minTokensOut uint64) (*coop_meme.SwapResult, error) {
	coin, err := m.Token(mint)
	if err != nil {
		return nil, err
	}
	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	if err := coop_meme.CheckTradable(coin, m.clock.Now()); err != nil {
		return nil, err
	}
	return coop_meme.QuoteBuy(cfg, coin, solIn, minTokensOut)
}

// QuoteSell prices a sell without executing it.
func (m *Market) QuoteSell(mint solana.PublicKey, tokensIn, minSolOut uint64) (*coop_meme.SwapResult, error) {
	coin, err := m.Token(mint)
	if err != nil {
		return nil, err
	}
	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	if err := coop_meme.CheckTradable(coin, m.clock.Now()); err != nil {
		return nil, err
	}
	return coop_meme.QuoteSell(cfg, coin, tokensIn, minSolOut)
}

func feeRecipient(cfg *coop_meme.ConfigData, affiliate solana.PublicKey) solana.PublicKey {
	if affiliate.IsZero() {
		return cfg.TeamWallet
	}
	return affiliate
}

// BuyTokens spends solIn lamports of trader on the curve. A zero affiliate
// sends the affiliate share to the team wallet.
func (m *Market) BuyTokens(ctx context.Context, trader, mint solana.PublicKey, solIn, minTokensOut uint64, affiliate solana.PublicKey) (*TradeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	coin := rec.coin
	if err := coop_meme.CheckTradable(coin, m.clock.Now()); err != nil {
		return nil, fmt.Errorf("buy: %w", err)
	}
	quote, err := coop_meme.QuoteBuy(cfg, coin, solIn, minTokensOut)
	if err != nil {
		return nil, fmt.Errorf("buy: %w", err)
	}
	next, err := coop_meme.ApplySwap(coin, quote)
	if err != nil {
		return nil, fmt.Errorf("buy: %w", err)
	}

	sol := solana.WrappedSol
	transfers := []solanago.Transfer{
		{Mint: sol, From: trader, To: m.globalVault, Amount: quote.SolDelta},
		{Mint: sol, From: trader, To: cfg.TeamWallet, Amount: quote.Fee.Team + quote.Fee.Listing},
		{Mint: sol, From: trader, To: coin.Creator, Amount: quote.Fee.Owner},
		{Mint: sol, From: trader, To: feeRecipient(cfg, affiliate), Amount: quote.Fee.Affiliate},
		{Mint: mint, From: m.globalVault, To: trader, Amount: quote.AmountOut},
	}
	if err := m.bank.Execute(ctx, transfers...); err != nil {
		return nil, bankError("buy", err)
	}
	rec.coin = next

	m.logger.Info("buy",
		zap.Stringer("mint", mint),
		zap.Stringer("trader", trader),
		zap.Uint64("solIn", solIn),
		zap.Uint64("tokensOut", quote.AmountOut),
		zap.Uint64("fee", quote.Fee.Total()),
		zap.String("price", quote.Price.String()),
	)
	m.events.Emit(coop_meme.TradeEvent{
		Trader:               trader,
		CoopToken:            mint,
		Memecoin:             rec.memecoin,
		Direction:            coop_meme.TradeDirectionBuy,
		AmountIn:             solIn,
		MinimumReceiveAmount: minTokensOut,
		AmountOut:            quote.AmountOut,
		Fee:                  quote.Fee.Total(),
	})
	if coin.State == coop_meme.MarketStateCreated && next.State == coop_meme.MarketStateActive {
		m.events.Emit(coop_meme.BondingCurveStartedEvent{CoopToken: mint, Memecoin: rec.memecoin})
	}
	return &TradeResult{Coin: next.Clone(), Quote: quote}, nil
}

// SellTokens sells tokensIn of trader back to the curve.
func (m *Market) SellTokens(ctx context.Context, trader, mint solana.PublicKey, tokensIn, minSolOut uint64, affiliate solana.PublicKey) (*TradeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	coin := rec.coin
	if err := coop_meme.CheckTradable(coin, m.clock.Now()); err != nil {
		return nil, fmt.Errorf("sell: %w", err)
	}
	if balance := m.bank.Balance(mint, trader); balance < tokensIn {
		return nil, fmt.Errorf("sell: %w: %s holds %d, selling %d", coop_meme.ErrInsufficientBalance, trader, balance, tokensIn)
	}
	quote, err := coop_meme.QuoteSell(cfg, coin, tokensIn, minSolOut)
	if err != nil {
		return nil, fmt.Errorf("sell: %w", err)
	}
	next, err := coop_meme.ApplySwap(coin, quote)
	if err != nil {
		return nil, fmt.Errorf("sell: %w", err)
	}

	sol := solana.WrappedSol
	transfers := []solanago.Transfer{
		{Mint: mint, From: trader, To: m.globalVault, Amount: tokensIn},
		{Mint: sol, From: m.globalVault, To: trader, Amount: quote.AmountOut},
		{Mint: sol, From: m.globalVault, To: cfg.TeamWallet, Amount: quote.Fee.Team + quote.Fee.Listing},
		{Mint: sol, From: m.globalVault, To: coin.Creator, Amount: quote.Fee.Owner},
		{Mint: sol, From: m.globalVault, To: feeRecipient(cfg, affiliate), Amount: quote.Fee.Affiliate},
	}
	if err := m.bank.Execute(ctx, transfers...); err != nil {
		return nil, bankError("sell", err)
	}
	rec.coin = next

	m.logger.Info("sell",
		zap.Stringer("mint", mint),
		zap.Stringer("trader", trader),
		zap.Uint64("tokensIn", tokensIn),
		zap.Uint64("solOut", quote.AmountOut),
		zap.Uint64("fee", quote.Fee.Total()),
	)
	m.events.Emit(coop_meme.TradeEvent{
		Trader:               trader,
		CoopToken:            mint,
		Memecoin:             rec.memecoin,
		Direction:            coop_meme.TradeDirectionSell,
		AmountIn:             tokensIn,
		MinimumReceiveAmount: minSolOut,
		AmountOut:            quote.AmountOut,
		Fee:                  quote.Fee.Total(),
	})
	return &TradeResult{Coin: next.Clone(), Quote: quote}, nil
}
