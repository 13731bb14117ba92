package solana

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBankExecuteIsAtomic(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(zap.NewNop())
	alice, bob, carol := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	require.NoError(t, bank.Airdrop(ctx, alice, 100))

	err := bank.Execute(ctx,
		Transfer{Mint: solana.WrappedSol, From: alice, To: bob, Amount: 60},
		Transfer{Mint: solana.WrappedSol, From: alice, To: carol, Amount: 60},
	)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, uint64(100), bank.Balance(solana.WrappedSol, alice))
	assert.Equal(t, uint64(0), bank.Balance(solana.WrappedSol, bob))

	// later transfers may spend funds received earlier in the batch
	require.NoError(t, bank.Execute(ctx,
		Transfer{Mint: solana.WrappedSol, From: alice, To: bob, Amount: 60},
		Transfer{Mint: solana.WrappedSol, From: bob, To: carol, Amount: 50},
	))
	assert.Equal(t, uint64(40), bank.Balance(solana.WrappedSol, alice))
	assert.Equal(t, uint64(10), bank.Balance(solana.WrappedSol, bob))
	assert.Equal(t, uint64(50), bank.Balance(solana.WrappedSol, carol))
	assert.Equal(t, uint64(100), bank.Supply(solana.WrappedSol))
}

func TestBankMintBurn(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(nil)
	mint, owner := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()

	require.NoError(t, bank.MintTo(ctx, mint, owner, 1_000))
	assert.ErrorIs(t, bank.Burn(ctx, mint, owner, 1_001), ErrInsufficientFunds)
	require.NoError(t, bank.Burn(ctx, mint, owner, 400))
	assert.Equal(t, uint64(600), bank.Balance(mint, owner))
	assert.Equal(t, uint64(600), bank.Supply(mint))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, bank.MintTo(canceled, mint, owner, 1), context.Canceled)
}

func TestBankAccountData(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(nil)
	mint, owner := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	require.NoError(t, bank.MintTo(ctx, mint, owner, 77))

	account, err := bank.TokenAccount(mint, owner)
	require.NoError(t, err)

	data, err := bank.AccountData(account.Address)
	require.NoError(t, err)
	assert.Len(t, data, TokenAccountSize)

	decoded, err := new(AccountLayout).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, mint, decoded.Mint)
	assert.Equal(t, owner, decoded.Owner)
	assert.Equal(t, uint64(77), decoded.Amount)
	assert.True(t, decoded.IsInitialized)
	assert.False(t, decoded.IsNative)

	data, err = bank.AccountData(mint)
	require.NoError(t, err)
	token, err := new(TokenLayout).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), token.Supply)
	assert.Equal(t, uint8(MintDecimals), token.Decimals)
	assert.True(t, token.IsInitialized)

	_, err = bank.AccountData(solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestBankSelfTransferIsNoop(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(nil)
	alice := solana.NewWallet().PublicKey()
	require.NoError(t, bank.Airdrop(ctx, alice, 10))

	require.NoError(t, bank.Execute(ctx,
		Transfer{Mint: solana.WrappedSol, From: alice, To: alice, Amount: 1_000},
		Transfer{Mint: solana.WrappedSol, From: alice, To: alice, Amount: 0},
	))
	assert.Equal(t, uint64(10), bank.Balance(solana.WrappedSol, alice))
}
