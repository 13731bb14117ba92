package cp_amm

import "github.com/gagliardetto/solana-go"

// PoolAccounts are the derived accounts of one pool
type PoolAccounts struct {
	AmmConfig   solana.PublicKey
	Pool        solana.PublicKey
	Authority   solana.PublicKey
	Token0Mint  solana.PublicKey
	Token1Mint  solana.PublicKey
	LpMint      solana.PublicKey
	Token0Vault solana.PublicKey
	Token1Vault solana.PublicKey
	Observation solana.PublicKey
}

// InitializeParams seeds a new pool. Token0Mint must sort before Token1Mint.
type InitializeParams struct {
	Creator     solana.PublicKey
	AmmConfig   solana.PublicKey
	Token0Mint  solana.PublicKey
	Token1Mint  solana.PublicKey
	InitAmount0 uint64
	InitAmount1 uint64
	OpenTime    uint64
}

// PoolHandle identifies a created pool and the LP minted to its creator
type PoolHandle struct {
	PoolAccounts
	LpAmount uint64
}

type SwapBaseInputParams struct {
	Payer            solana.PublicKey
	AmmConfig        solana.PublicKey
	InputMint        solana.PublicKey
	OutputMint       solana.PublicKey
	AmountIn         uint64
	MinimumAmountOut uint64
}

type SwapBaseOutputParams struct {
	Payer       solana.PublicKey
	AmmConfig   solana.PublicKey
	InputMint   solana.PublicKey
	OutputMint  solana.PublicKey
	MaxAmountIn uint64
	AmountOut   uint64
}

type initializeArgs struct {
	InitAmount0 uint64
	InitAmount1 uint64
	OpenTime    uint64
}

type swapBaseInputArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

type swapBaseOutputArgs struct {
	MaxAmountIn uint64
	AmountOut   uint64
}
