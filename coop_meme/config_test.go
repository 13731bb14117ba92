package coop_meme

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u16(v uint16) *uint16 { return &v }
func u32(v uint32) *uint32 { return &v }

func TestNewConfigDefaults(t *testing.T) {
	cfg := newTestConfig(t)
	assert.Equal(t, uint16(1000), cfg.TeamFee)
	assert.Equal(t, uint16(1000), cfg.OwnerFee)
	assert.Equal(t, uint16(1000), cfg.AffiliatedFee)
	assert.Equal(t, uint16(500), cfg.ListingFee)
	assert.Equal(t, uint32(300), cfg.FairlaunchPeriod)
	assert.Equal(t, uint32(100), cfg.MinPricePerToken)
	assert.Equal(t, uint32(10_000_000), cfg.MaxPricePerToken)
	assert.Equal(t, uint64(2_000_000_000), cfg.InitVirtualSol)
	assert.Equal(t, uint64(2_000_000_000_000_000_000), cfg.InitVirtualToken)
	assert.NoError(t, cfg.Validate())
}

func TestUpdateConfig(t *testing.T) {
	cfg := newTestConfig(t)

	_, err := UpdateConfig(cfg, solana.NewWallet().PublicKey(), &UpdateConfigParams{TeamFee: u16(10)})
	assert.ErrorIs(t, err, ErrUnauthorized)

	next, err := UpdateConfig(cfg, cfg.Admin, &UpdateConfigParams{TeamFee: u16(200), FairlaunchPeriod: u32(60)})
	require.NoError(t, err)
	assert.Equal(t, uint16(200), next.TeamFee)
	assert.Equal(t, uint32(60), next.FairlaunchPeriod)
	// unset fields are unchanged
	assert.Equal(t, cfg.OwnerFee, next.OwnerFee)
	assert.Equal(t, uint16(1000), cfg.TeamFee)

	cases := []*UpdateConfigParams{
		{TeamFee: u16(10_001)},
		{TeamFee: u16(5000), OwnerFee: u16(5000)},
		{MinPricePerToken: u32(10_000_000)},
		{MaxPricePerToken: u32(50)},
	}
	for _, params := range cases {
		_, err := UpdateConfig(cfg, cfg.Admin, params)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, 0, ErrorCode(nil))
	assert.Equal(t, 6000, ErrorCode(ErrUnauthorized))
	assert.Equal(t, 6008, ErrorCode(ErrAlreadyListed))
	assert.Equal(t, -1, ErrorCode(assert.AnError))
}
