package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
)

// CreateToken mints a new token against a fresh bonding curve.
func (m *Market) CreateToken(ctx context.Context, creator solana.PublicKey, params *coop_meme.CreateTokenParams) (*coop_meme.MemeCoinData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.configMu.Lock()
	defer m.configMu.Unlock()

	if m.config == nil {
		return nil, coop_meme.ErrNotInitialized
	}
	now := m.clock.Now()
	if last, ok := m.lastCreation[creator]; ok && now < last+int64(m.config.CoopInterval) {
		return nil, fmt.Errorf("create token: %w: next creation of %s allowed at %d", coop_meme.ErrNotEligible, creator, last+int64(m.config.CoopInterval))
	}

	coin, nextCfg, err := coop_meme.CreateMemeCoin(m.config, creator, params, now)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	metadataAddress, err := coop_meme.DeriveMetadataPDA(coin.TokenMint)
	if err != nil {
		return nil, err
	}

	// 1. mint the whole supply into the global vault
	if err := m.bank.MintTo(ctx, coin.TokenMint, m.globalVault, coin.TokenTotalSupply); err != nil {
		return nil, bankError("create token", err)
	}
	// 2. metadata, the supply is burned again if it fails
	md := Metadata{Name: coin.Name, Symbol: coin.Symbol, URI: coin.URI, UpdateAuthority: m.globalVault}
	if err := m.metadata.Create(ctx, coin.TokenMint, md); err != nil {
		if berr := m.bank.Burn(context.WithoutCancel(ctx), coin.TokenMint, m.globalVault, coin.TokenTotalSupply); berr != nil {
			m.logger.Error("burn supply after failed metadata", zap.Stringer("mint", coin.TokenMint), zap.Error(berr))
		}
		return nil, fmt.Errorf("create token metadata: %w", err)
	}

	// 3. commit
	rec, err := m.registry.add(coin)
	if err != nil {
		return nil, err
	}
	m.config = nextCfg
	m.lastCreation[creator] = now

	m.logger.Info("token created",
		zap.Uint32("tokenId", coin.TokenID),
		zap.Stringer("mint", coin.TokenMint),
		zap.Stringer("creator", creator),
		zap.Int64("marketEndTime", coin.TokenMarketEndTime),
	)
	m.events.Emit(coop_meme.CreatedEvent{
		TokenID:            coin.TokenID,
		Creator:            creator,
		CoopToken:          coin.TokenMint,
		Memecoin:           rec.memecoin,
		Metadata:           metadataAddress,
		Decimals:           coop_meme.TokenDecimals,
		TokenSupply:        coin.TokenTotalSupply,
		TokenCreationTime:  coin.TokenCreationTime,
		TokenMarketEndTime: coin.TokenMarketEndTime,
	})
	return coin.Clone(), nil
}

// Token returns a snapshot of the ledger of mint.
func (m *Market) Token(mint solana.PublicKey) (*coop_meme.MemeCoinData, error) {
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.coin.Clone(), nil
}

func (m *Market) TokenByID(id uint32) (*coop_meme.MemeCoinData, error) {
	rec, err := m.registry.byID(id)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.coin.Clone(), nil
}

// TokenCount is the number of created tokens.
func (m *Market) TokenCount() int {
	return m.registry.count()
}

// Phase reports the lifecycle phase of mint at the current clock.
func (m *Market) Phase(mint solana.PublicKey) (coop_meme.Phase, error) {
	coin, err := m.Token(mint)
	if err != nil {
		return 0, err
	}
	return coin.Phase(m.clock.Now()), nil
}
