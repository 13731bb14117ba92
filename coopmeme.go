package coopmeme

import (
	"context"

	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/config"
	"github.com/krazyTry/coop-meme-go/cp_amm"
	"github.com/krazyTry/coop-meme-go/logger"
	"github.com/krazyTry/coop-meme-go/market"
)

// NewMarket creates a new in-memory coop-meme market.
//
// Example:
//
// m, _ := NewMarket(market.WithLogger(log))
//
// m.Initialize(ctx, admin, teamWallet)
//
// coin, _ := m.CreateToken(ctx, creator, &coop_meme.CreateTokenParams{Name: name, Symbol: symbol, URI: uri, TotalSupply: supply})
//
// m.BuyTokens(ctx, trader, coin.TokenMint, solIn, minTokensOut, affiliate)
var NewMarket = market.New

// Bootstrap loads the config at path, builds the logger and returns an
// initialized market with the configured parameters applied.
func Bootstrap(ctx context.Context, path string, opts ...market.Option) (*market.Market, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, err
	}
	admin, err := cfg.AdminKey()
	if err != nil {
		return nil, err
	}
	team, err := cfg.TeamWalletKey()
	if err != nil {
		return nil, err
	}
	ammConfig, err := cp_amm.DeriveAmmConfigAddress(cfg.AmmConfigIndex)
	if err != nil {
		return nil, err
	}

	m, err := NewMarket(append([]market.Option{
		market.WithLogger(log),
		market.WithAmmConfig(ammConfig),
	}, opts...)...)
	if err != nil {
		return nil, err
	}
	if _, err := m.Initialize(ctx, admin, team); err != nil {
		return nil, err
	}
	if _, err := m.UpdateConfig(ctx, admin, cfg.UpdateParams()); err != nil {
		return nil, err
	}
	log.Info("market ready", zap.Stringer("admin", admin), zap.Uint16("ammConfigIndex", cfg.AmmConfigIndex))
	return m, nil
}
