package coop_meme

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemeCoin(t *testing.T) {
	cfg := newTestConfig(t)
	creator := solana.NewWallet().PublicKey()

	coin, next, err := CreateMemeCoin(cfg, creator, &CreateTokenParams{
		Name: "Coop", Symbol: "COOP", URI: "ipfs://coop", TotalSupply: DefaultTotalSupply,
	}, 500)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), coin.TokenID)
	assert.Equal(t, uint32(1), next.TotalCoopCreated)
	assert.Equal(t, uint32(0), cfg.TotalCoopCreated)
	assert.Equal(t, cfg.InitVirtualSol, coin.VirtualSolReserves)
	assert.Equal(t, cfg.InitVirtualToken, coin.VirtualTokenReserves)
	assert.Equal(t, DefaultTotalSupply, coin.RealTokenReserves)
	assert.Equal(t, int64(800), coin.TokenMarketEndTime)
	assert.Equal(t, PhaseCreated, coin.Phase(500))
	assert.Equal(t, PhaseFairlaunchExpired, coin.Phase(801))
	assert.True(t, coin.IsTradingActive(800))

	mint, _, err := DeriveMintPDA(creator, 1)
	require.NoError(t, err)
	assert.Equal(t, mint, coin.TokenMint)

	second, _, err := CreateMemeCoin(next, creator, &CreateTokenParams{
		Name: "Coop", Symbol: "COOP", URI: "ipfs://coop", TotalSupply: 1,
	}, 500)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), second.TokenID)
	assert.NotEqual(t, coin.TokenMint, second.TokenMint)
}

func TestCreateTokenParamsValidate(t *testing.T) {
	valid := CreateTokenParams{Name: "n", Symbol: "s", URI: "u", TotalSupply: 1}
	require.NoError(t, valid.Validate())

	cases := map[string]func(p *CreateTokenParams){
		"empty name":      func(p *CreateTokenParams) { p.Name = "" },
		"long name":       func(p *CreateTokenParams) { p.Name = strings.Repeat("n", MaxNameLength+1) },
		"long symbol":     func(p *CreateTokenParams) { p.Symbol = strings.Repeat("s", MaxSymbolLength+1) },
		"long uri":        func(p *CreateTokenParams) { p.URI = strings.Repeat("u", MaxURILength+1) },
		"bad ballot":      func(p *CreateTokenParams) { p.Ballot = []BallotEntry{{Field: 1}} },
		"bad ballot text": func(p *CreateTokenParams) { p.Ballot = []BallotEntry{{Field: FieldName, Values: []string{""}}} },
	}
	for name, mutate := range cases {
		p := valid
		mutate(&p)
		assert.Error(t, p.Validate(), name)
	}

	p := valid
	p.TotalSupply = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidConfig)
}

func TestCheckTradable(t *testing.T) {
	cfg := newTestConfig(t)
	coin := newTestCoin(t, cfg)

	assert.NoError(t, CheckTradable(coin, coin.TokenMarketEndTime))
	assert.ErrorIs(t, CheckTradable(coin, coin.TokenMarketEndTime+1), ErrTradingInactive)
}
