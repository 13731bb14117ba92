package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
)

// Initialize creates the config with its defaults.
func (m *Market) Initialize(ctx context.Context, admin, teamWallet solana.PublicKey) (*coop_meme.ConfigData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.configMu.Lock()
	defer m.configMu.Unlock()

	if m.config != nil {
		return nil, coop_meme.ErrAlreadyInitialized
	}
	cfg, err := coop_meme.NewConfig(admin, teamWallet)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m.config = cfg
	m.logger.Info("config initialized", zap.Stringer("admin", admin), zap.Stringer("teamWallet", teamWallet))

	snapshot := *cfg
	return &snapshot, nil
}

// UpdateConfig applies the set fields of params. Only the admin may call it.
func (m *Market) UpdateConfig(ctx context.Context, caller solana.PublicKey, params *coop_meme.UpdateConfigParams) (*coop_meme.ConfigData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.configMu.Lock()
	defer m.configMu.Unlock()

	if m.config == nil {
		return nil, coop_meme.ErrNotInitialized
	}
	next, err := coop_meme.UpdateConfig(m.config, caller, params)
	if err != nil {
		return nil, fmt.Errorf("update config: %w", err)
	}
	m.config = next
	m.logger.Info("config updated", zap.Any("config", next))

	snapshot := *next
	return &snapshot, nil
}

// Config returns a copy of the current config.
func (m *Market) Config() (*coop_meme.ConfigData, error) {
	m.configMu.RLock()
	defer m.configMu.RUnlock()
	if m.config == nil {
		return nil, coop_meme.ErrNotInitialized
	}
	snapshot := *m.config
	return &snapshot, nil
}
