package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	"github.com/krazyTry/coop-meme-go/cp_amm"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// ListToken migrates the real reserves of mint into a new pool. The admin
// seeds the pool and receives its LP.
func (m *Market) ListToken(ctx context.Context, caller, mint solana.PublicKey) (*coop_meme.MemeCoinData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	m.configMu.Lock()
	defer m.configMu.Unlock()

	if m.config == nil {
		return nil, coop_meme.ErrNotInitialized
	}
	cfg := m.config
	now := m.clock.Now()
	plan, err := coop_meme.PlanListing(cfg, rec.coin, caller, now)
	if err != nil {
		return nil, fmt.Errorf("list token: %w", err)
	}
	if plan.WithoutPool {
		return m.listWithoutPool(ctx, rec, cfg, plan)
	}

	sol := solana.WrappedSol
	withdraw := []solanago.Transfer{
		{Mint: sol, From: m.globalVault, To: cfg.TeamWallet, Amount: plan.ListingFee},
		{Mint: sol, From: m.globalVault, To: cfg.Admin, Amount: plan.SolToList},
		{Mint: mint, From: m.globalVault, To: cfg.Admin, Amount: plan.TokenToList},
	}
	if err := m.bank.Execute(ctx, withdraw...); err != nil {
		return nil, bankError("list token", err)
	}

	handle, err := m.pool.CreatePool(ctx, cp_amm.InitializeParams{
		Creator:     cfg.Admin,
		AmmConfig:   m.ammConfig,
		Token0Mint:  plan.Token0Mint,
		Token1Mint:  plan.Token1Mint,
		InitAmount0: plan.InitAmount0,
		InitAmount1: plan.InitAmount1,
		OpenTime:    uint64(now),
	})
	if err != nil {
		m.revertWithdrawal(ctx, mint, withdraw)
		return nil, fmt.Errorf("list token: create pool: %w", err)
	}

	nextCfg, coin := coop_meme.ApplyListing(cfg, rec.coin, handle)
	m.config = nextCfg
	rec.coin = coin

	m.logger.Info("token listed",
		zap.Stringer("mint", mint),
		zap.Stringer("pool", handle.Pool),
		zap.Uint64("solIn", plan.SolToList),
		zap.Uint64("tokenIn", plan.TokenToList),
		zap.Uint64("listingFee", plan.ListingFee),
		zap.Uint64("lpAmount", handle.LpAmount),
	)
	m.events.Emit(coop_meme.TradingOverEvent{CoopToken: mint, Memecoin: rec.memecoin})
	m.events.Emit(coop_meme.ListEvent{
		CoopToken:  mint,
		Memecoin:   rec.memecoin,
		TokenIn:    plan.TokenToList,
		SolIn:      plan.SolToList,
		ListingFee: plan.ListingFee,
		Pool:       handle.Pool,
		LpMint:     handle.LpMint,
	})
	return coin.Clone(), nil
}

// listWithoutPool closes a curve whose reserves cannot seed a pool. The sol
// goes to the team wallet and the unsold supply is burned from the vault.
func (m *Market) listWithoutPool(ctx context.Context, rec *tokenRecord, cfg *coop_meme.ConfigData, plan *coop_meme.ListingPlan) (*coop_meme.MemeCoinData, error) {
	mint := rec.coin.TokenMint
	withdraw := []solanago.Transfer{
		{Mint: solana.WrappedSol, From: m.globalVault, To: cfg.TeamWallet, Amount: plan.ListingFee},
	}
	if err := m.bank.Execute(ctx, withdraw...); err != nil {
		return nil, bankError("list token", err)
	}
	if err := m.bank.Burn(ctx, mint, m.globalVault, plan.TokenToList); err != nil {
		m.revertWithdrawal(ctx, mint, withdraw)
		return nil, bankError("list token", err)
	}

	nextCfg, coin := coop_meme.ApplyListing(cfg, rec.coin, nil)
	m.config = nextCfg
	rec.coin = coin

	m.logger.Info("token listed without pool",
		zap.Stringer("mint", mint),
		zap.Uint64("burned", plan.TokenToList),
		zap.Uint64("listingFee", plan.ListingFee),
	)
	m.events.Emit(coop_meme.TradingOverEvent{CoopToken: mint, Memecoin: rec.memecoin})
	m.events.Emit(coop_meme.ListEvent{
		CoopToken:  mint,
		Memecoin:   rec.memecoin,
		ListingFee: plan.ListingFee,
	})
	return coin.Clone(), nil
}

func (m *Market) revertWithdrawal(ctx context.Context, mint solana.PublicKey, withdraw []solanago.Transfer) {
	revert := make([]solanago.Transfer, 0, len(withdraw))
	for _, t := range withdraw {
		revert = append(revert, solanago.Transfer{Mint: t.Mint, From: t.To, To: t.From, Amount: t.Amount})
	}
	if err := m.bank.Execute(context.WithoutCancel(ctx), revert...); err != nil {
		m.logger.Error("revert listing withdrawal", zap.Stringer("mint", mint), zap.Error(err))
	}
}

// BurnLP burns the LP the admin received at listing.
func (m *Market) BurnLP(ctx context.Context, caller, mint solana.PublicKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return err
	}
	if err := coop_meme.CheckBurnLP(cfg, rec.coin, caller); err != nil {
		return fmt.Errorf("burn lp: %w", err)
	}
	amount := rec.coin.LpAmount
	if err := m.bank.Burn(ctx, rec.coin.LpMint, caller, amount); err != nil {
		return bankError("burn lp", err)
	}
	coin := rec.coin.Clone()
	coin.LpBurned = true
	rec.coin = coin

	m.logger.Info("lp burned", zap.Stringer("mint", mint), zap.Uint64("amount", amount))
	m.events.Emit(coop_meme.BurnEvent{CoopToken: mint, LpMint: coin.LpMint, Amount: amount})
	return nil
}

// pairOf checks a post-listing swap and returns its output mint.
func (m *Market) pairOf(mint, inputMint solana.PublicKey) (solana.PublicKey, error) {
	coin, err := m.Token(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !coin.IsTokenListed() {
		return solana.PublicKey{}, fmt.Errorf("%w: %s is not listed", coop_meme.ErrNotEligible, mint)
	}
	if coin.Pool.IsZero() {
		return solana.PublicKey{}, fmt.Errorf("%w: %s was listed without a pool", coop_meme.ErrNotEligible, mint)
	}
	switch {
	case inputMint.Equals(mint):
		return solana.WrappedSol, nil
	case inputMint.Equals(solana.WrappedSol):
		return mint, nil
	default:
		return solana.PublicKey{}, fmt.Errorf("%w: %s is not a side of the %s pool", coop_meme.ErrInvalidConfig, inputMint, mint)
	}
}

// SwapBaseInput swaps an exact input through the pool of a listed token.
func (m *Market) SwapBaseInput(ctx context.Context, payer, mint, inputMint solana.PublicKey, amountIn, minimumAmountOut uint64) error {
	outputMint, err := m.pairOf(mint, inputMint)
	if err != nil {
		return fmt.Errorf("swap base input: %w", err)
	}
	return m.pool.SwapBaseInput(ctx, cp_amm.SwapBaseInputParams{
		Payer:            payer,
		AmmConfig:        m.ammConfig,
		InputMint:        inputMint,
		OutputMint:       outputMint,
		AmountIn:         amountIn,
		MinimumAmountOut: minimumAmountOut,
	})
}

// SwapBaseOutput swaps for an exact output through the pool of a listed token.
func (m *Market) SwapBaseOutput(ctx context.Context, payer, mint, inputMint solana.PublicKey, maxAmountIn, amountOut uint64) error {
	outputMint, err := m.pairOf(mint, inputMint)
	if err != nil {
		return fmt.Errorf("swap base output: %w", err)
	}
	return m.pool.SwapBaseOutput(ctx, cp_amm.SwapBaseOutputParams{
		Payer:       payer,
		AmmConfig:   m.ammConfig,
		InputMint:   inputMint,
		OutputMint:  outputMint,
		MaxAmountIn: maxAmountIn,
		AmountOut:   amountOut,
	})
}
