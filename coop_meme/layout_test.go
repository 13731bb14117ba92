package coop_meme

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAccountDiscriminator(t *testing.T) {
	cfg := newTestConfig(t)
	coin := newTestCoin(t, cfg)

	data, err := EncodeAccount(coin)
	require.NoError(t, err)
	assert.Equal(t, discriminator(AccountKeyMemeCoinData), data[:8])

	obj, err := ParseAnyAccount(data)
	require.NoError(t, err)
	decoded, ok := obj.(*MemeCoinData)
	require.True(t, ok)
	assert.Equal(t, coin.TokenMint, decoded.TokenMint)
	assert.Equal(t, coin.VirtualTokenReserves, decoded.VirtualTokenReserves)
	assert.Equal(t, coin.Name, decoded.Name)

	_, err = ParseAnyAccount([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrUnknownAccount)

	_, err = EncodeAccount(&solana.PublicKey{})
	assert.Error(t, err)
}
