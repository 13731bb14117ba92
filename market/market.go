package market

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	"github.com/krazyTry/coop-meme-go/cp_amm"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// Market is the coop-meme market core. State of one token is guarded by
// its record mutex; the config has its own lock, always taken after a
// token lock.
type Market struct {
	logger    *zap.Logger
	clock     Clock
	bank      TokenBank
	metadata  MetadataStore
	pool      PoolProgram
	events    EventSink
	ammConfig solana.PublicKey

	configAddress solana.PublicKey
	globalVault   solana.PublicKey

	configMu sync.RWMutex
	config   *coop_meme.ConfigData
	// creator -> unix time of the last creation
	lastCreation map[solana.PublicKey]int64

	registry *registry
}

type Option func(*Market)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Market) { m.logger = logger }
}

func WithClock(clock Clock) Option {
	return func(m *Market) { m.clock = clock }
}

func WithBank(bank TokenBank) Option {
	return func(m *Market) { m.bank = bank }
}

func WithMetadataStore(store MetadataStore) Option {
	return func(m *Market) { m.metadata = store }
}

func WithPoolProgram(pool PoolProgram) Option {
	return func(m *Market) { m.pool = pool }
}

func WithEventSink(sink EventSink) Option {
	return func(m *Market) { m.events = sink }
}

func WithAmmConfig(ammConfig solana.PublicKey) Option {
	return func(m *Market) { m.ammConfig = ammConfig }
}

// New creates a market. Collaborators default to in-memory implementations.
func New(opts ...Option) (*Market, error) {
	m := &Market{
		lastCreation: make(map[solana.PublicKey]int64),
		registry:     newRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.clock == nil {
		m.clock = SystemClock
	}
	if m.bank == nil {
		m.bank = solanago.NewBank(m.logger)
	}
	if m.metadata == nil {
		m.metadata = NewMetadataRegistry()
	}
	if m.pool == nil {
		client := cp_amm.NewClient(LogSender(m.logger.Named("cp_amm")))
		if bank, ok := m.bank.(*solanago.Bank); ok {
			m.pool = NewBankPool(client, bank)
		} else {
			m.pool = client
		}
	}
	if m.events == nil {
		m.events = NewLogSink(m.logger.Named("events"))
	}

	var err error
	if m.ammConfig.IsZero() {
		if m.ammConfig, err = cp_amm.DeriveAmmConfigAddress(0); err != nil {
			return nil, err
		}
	}
	if m.configAddress, _, err = coop_meme.DeriveConfigPDA(); err != nil {
		return nil, err
	}
	if m.globalVault, _, err = coop_meme.DeriveGlobalVaultPDA(); err != nil {
		return nil, err
	}
	return m, nil
}

// GlobalVault is the owner of the curve's SOL and unsold tokens.
func (m *Market) GlobalVault() solana.PublicKey {
	return m.globalVault
}

func (m *Market) Bank() TokenBank {
	return m.bank
}

// bankError maps a failed batch onto the market error taxonomy.
func bankError(op string, err error) error {
	if errors.Is(err, solanago.ErrInsufficientFunds) {
		return fmt.Errorf("%s: %w: %v", op, coop_meme.ErrInsufficientBalance, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
