package market

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	"github.com/krazyTry/coop-meme-go/cp_amm"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

const startTime = 1_000

type testClock struct {
	now atomic.Int64
}

func (c *testClock) Now() int64 { return c.now.Load() }

func (c *testClock) Set(now int64) { c.now.Store(now) }

func (c *testClock) Add(secs int64) { c.now.Add(secs) }

type testEnv struct {
	market   *Market
	bank     *solanago.Bank
	clock    *testClock
	events   *Recorder
	metadata *MetadataRegistry
	sent     *atomic.Int32

	admin   solana.PublicKey
	team    solana.PublicKey
	creator solana.PublicKey
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		bank:     solanago.NewBank(zap.NewNop()),
		clock:    &testClock{},
		events:   &Recorder{},
		metadata: NewMetadataRegistry(),
		sent:     &atomic.Int32{},
		admin:    solana.NewWallet().PublicKey(),
		team:     solana.NewWallet().PublicKey(),
		creator:  solana.NewWallet().PublicKey(),
	}
	env.clock.Set(startTime)
	sender := cp_amm.SenderFunc(func(ctx context.Context, instructions ...solana.Instruction) error {
		env.sent.Add(int32(len(instructions)))
		return nil
	})
	base := []Option{
		WithLogger(zap.NewNop()),
		WithBank(env.bank),
		WithClock(env.clock),
		WithEventSink(env.events),
		WithMetadataStore(env.metadata),
		WithPoolProgram(NewBankPool(cp_amm.NewClient(sender), env.bank)),
	}
	m, err := New(append(base, opts...)...)
	require.NoError(t, err)
	env.market = m

	_, err = m.Initialize(context.Background(), env.admin, env.team)
	require.NoError(t, err)
	return env
}

func (env *testEnv) createToken(t *testing.T) *coop_meme.MemeCoinData {
	t.Helper()
	coin, err := env.market.CreateToken(context.Background(), env.creator, &coop_meme.CreateTokenParams{
		Name:        "Coop Meme",
		Symbol:      "COOP",
		URI:         "https://example.com/coop.json",
		TotalSupply: coop_meme.DefaultTotalSupply,
	})
	require.NoError(t, err)
	return coin
}

// funded returns a new wallet holding lamports.
func (env *testEnv) funded(t *testing.T, lamports uint64) solana.PublicKey {
	t.Helper()
	wallet := solana.NewWallet().PublicKey()
	require.NoError(t, env.bank.Airdrop(context.Background(), wallet, lamports))
	return wallet
}

func (env *testEnv) sol(owner solana.PublicKey) uint64 {
	return env.bank.Balance(solana.WrappedSol, owner)
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	m, err := New()
	require.NoError(t, err)

	_, err = m.Config()
	assert.ErrorIs(t, err, coop_meme.ErrNotInitialized)
	_, err = m.CreateToken(ctx, solana.NewWallet().PublicKey(), &coop_meme.CreateTokenParams{Name: "a", Symbol: "b", URI: "c", TotalSupply: 1})
	assert.ErrorIs(t, err, coop_meme.ErrNotInitialized)

	admin, team := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	cfg, err := m.Initialize(ctx, admin, team)
	require.NoError(t, err)
	assert.Equal(t, admin, cfg.Admin)
	assert.Equal(t, coop_meme.DefaultListingFee, cfg.ListingFee)

	_, err = m.Initialize(ctx, admin, team)
	assert.ErrorIs(t, err, coop_meme.ErrAlreadyInitialized)
}

func TestUpdateConfig(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	period := uint32(60)
	_, err := env.market.UpdateConfig(ctx, env.creator, &coop_meme.UpdateConfigParams{FairlaunchPeriod: &period})
	assert.ErrorIs(t, err, coop_meme.ErrUnauthorized)

	cfg, err := env.market.UpdateConfig(ctx, env.admin, &coop_meme.UpdateConfigParams{FairlaunchPeriod: &period})
	require.NoError(t, err)
	assert.Equal(t, period, cfg.FairlaunchPeriod)

	coin := env.createToken(t)
	assert.Equal(t, int64(startTime+60), coin.TokenMarketEndTime)

	// a returned snapshot does not alias the live config
	cfg.TeamFee = 9_999
	live, err := env.market.Config()
	require.NoError(t, err)
	assert.Equal(t, coop_meme.DefaultTeamFee, live.TeamFee)
}

func TestCreateToken(t *testing.T) {
	env := newTestEnv(t)
	coin := env.createToken(t)

	assert.Equal(t, uint32(1), coin.TokenID)
	assert.Equal(t, coop_meme.MarketStateCreated, coin.State)
	assert.Equal(t, int64(startTime+int64(coop_meme.DefaultFairlaunchPeriod)), coin.TokenMarketEndTime)
	assert.Equal(t, coop_meme.DefaultTotalSupply, env.bank.Balance(coin.TokenMint, env.market.GlobalVault()))
	assert.Equal(t, coop_meme.DefaultTotalSupply, env.bank.Supply(coin.TokenMint))

	md, ok := env.metadata.Get(coin.TokenMint)
	require.True(t, ok)
	assert.Equal(t, "Coop Meme", md.Name)
	assert.Equal(t, env.market.GlobalVault(), md.UpdateAuthority)

	cfg, err := env.market.Config()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), cfg.TotalCoopCreated)
	assert.Equal(t, 1, env.market.TokenCount())

	byID, err := env.market.TokenByID(1)
	require.NoError(t, err)
	assert.Equal(t, coin, byID)
	_, err = env.market.TokenByID(2)
	assert.ErrorIs(t, err, coop_meme.ErrTokenNotFound)

	phase, err := env.market.Phase(coin.TokenMint)
	require.NoError(t, err)
	assert.Equal(t, coop_meme.PhaseCreated, phase)
	assert.Equal(t, []string{"Created"}, env.events.Names())
}

func TestCreateTokenCoopInterval(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.createToken(t)

	params := &coop_meme.CreateTokenParams{Name: "Second", Symbol: "TWO", URI: "https://example.com/2.json", TotalSupply: 1_000}
	_, err := env.market.CreateToken(ctx, env.creator, params)
	assert.ErrorIs(t, err, coop_meme.ErrNotEligible)

	// other creators are not throttled
	other, err := env.market.CreateToken(ctx, solana.NewWallet().PublicKey(), params)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), other.TokenID)

	env.clock.Add(int64(coop_meme.DefaultCoopInterval))
	again, err := env.market.CreateToken(ctx, env.creator, params)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), again.TokenID)
}

type failingMetadata struct{ MetadataStore }

func (failingMetadata) Create(ctx context.Context, mint solana.PublicKey, md Metadata) error {
	return ErrMetadataExists
}

func TestCreateTokenMetadataFailureBurnsSupply(t *testing.T) {
	env := newTestEnv(t, WithMetadataStore(failingMetadata{}))
	_, err := env.market.CreateToken(context.Background(), env.creator, &coop_meme.CreateTokenParams{
		Name: "Coop", Symbol: "COOP", URI: "https://example.com/coop.json", TotalSupply: 1_000,
	})
	require.ErrorIs(t, err, ErrMetadataExists)

	mint, _, derr := coop_meme.DeriveMintPDA(env.creator, 1)
	require.NoError(t, derr)
	assert.Equal(t, uint64(0), env.bank.Supply(mint))
	assert.Equal(t, 0, env.market.TokenCount())

	cfg, err := env.market.Config()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), cfg.TotalCoopCreated)
}

func TestAccountData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coin := env.createToken(t)

	configAddress, _, err := coop_meme.DeriveConfigPDA()
	require.NoError(t, err)
	data, err := env.market.AccountData(configAddress)
	require.NoError(t, err)
	parsed, err := coop_meme.ParseAnyAccount(data)
	require.NoError(t, err)
	require.IsType(t, &coop_meme.ConfigData{}, parsed)
	assert.Equal(t, env.admin, parsed.(*coop_meme.ConfigData).Admin)

	memecoin, _, err := coop_meme.DeriveMemecoinPDA(coin.TokenMint)
	require.NoError(t, err)
	data, err = env.market.AccountData(memecoin)
	require.NoError(t, err)
	parsed, err = coop_meme.ParseAnyAccount(data)
	require.NoError(t, err)
	require.IsType(t, &coop_meme.MemeCoinData{}, parsed)
	assert.Equal(t, coin.TokenMint, parsed.(*coop_meme.MemeCoinData).TokenMint)
	assert.Equal(t, coin.RealTokenReserves, parsed.(*coop_meme.MemeCoinData).RealTokenReserves)

	// no votes yet
	votes, _, err := coop_meme.DeriveTokenVotesPDA(coin.TokenMint)
	require.NoError(t, err)
	_, err = env.market.AccountData(votes)
	assert.ErrorIs(t, err, solanago.ErrAccountNotFound)

	trader := env.funded(t, 1_000_000_000)
	_, err = env.market.BuyTokens(ctx, trader, coin.TokenMint, 100_000_000, 0, solana.PublicKey{})
	require.NoError(t, err)
	_, err = env.market.Vote(ctx, trader, coin.TokenMint, []coop_meme.VoteEntry{{Field: coop_meme.FieldName, Amount: coop_meme.MinimumVoteBalance}})
	require.NoError(t, err)

	userVotes, _, err := coop_meme.DeriveUserTokenVotesPDA(trader, coin.TokenMint)
	require.NoError(t, err)
	data, err = env.market.AccountData(userVotes)
	require.NoError(t, err)
	parsed, err = coop_meme.ParseAnyAccount(data)
	require.NoError(t, err)
	require.IsType(t, &coop_meme.UserTokenVotes{}, parsed)
	assert.Equal(t, coop_meme.MinimumVoteBalance, parsed.(*coop_meme.UserTokenVotes).TotalStaked())

	// token accounts fall through to the bank
	ata, _, err := solana.FindAssociatedTokenAddress(trader, coin.TokenMint)
	require.NoError(t, err)
	data, err = env.market.AccountData(ata)
	require.NoError(t, err)
	account, err := new(solanago.AccountLayout).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, env.bank.Balance(coin.TokenMint, trader), account.Amount)

	_, err = env.market.AccountData(solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, solanago.ErrAccountNotFound)
}
