package cp_amm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	dmath "github.com/krazyTry/coop-meme-go/decimal_math"
)

// SortMints returns the pair in canonical order, the lower key is token0.
func SortMints(a, b solana.PublicKey) (token0, token1 solana.PublicKey) {
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return a, b
	}
	return b, a
}

func DeriveAmmConfigAddress(index uint16) (solana.PublicKey, error) {
	indexBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(indexBytes, index)

	pda, _, err := solana.FindProgramAddress([][]byte{SeedAmmConfig, indexBytes}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DerivePoolAddress derives the pool of a mint pair, the pair order does not matter.
func DerivePoolAddress(ammConfig, mintA, mintB solana.PublicKey) (solana.PublicKey, error) {
	token0, token1 := SortMints(mintA, mintB)
	seeds := [][]byte{SeedPool, ammConfig.Bytes(), token0.Bytes(), token1.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

func DeriveAuthorityPDA() (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{SeedAuthority}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

func DeriveLpMintAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{SeedPoolLpMint, pool.Bytes()}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

func DeriveTokenVaultAddress(pool, mint solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{SeedPoolVault, pool.Bytes(), mint.Bytes()}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

func DeriveObservationAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{SeedObservation, pool.Bytes()}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// GetInitialLiquidity returns sqrt(amount0*amount1) minus the locked amount.
func GetInitialLiquidity(amount0, amount1 uint64) (uint64, error) {
	liquidity := dmath.Sqrt(dmath.U64(amount0).Mul(dmath.U64(amount1)))
	if liquidity.Cmp(decimal.NewFromUint64(LockedLpAmount)) <= 0 {
		return 0, fmt.Errorf("initial liquidity %s too small", liquidity)
	}
	return dmath.ToUint64(liquidity.Sub(decimal.NewFromUint64(LockedLpAmount)))
}

// DerivePoolAccounts fills every address of the pool of a mint pair.
func DerivePoolAccounts(ammConfig, mintA, mintB solana.PublicKey) (*PoolAccounts, error) {
	token0, token1 := SortMints(mintA, mintB)
	pool, err := DerivePoolAddress(ammConfig, token0, token1)
	if err != nil {
		return nil, err
	}
	authority, err := DeriveAuthorityPDA()
	if err != nil {
		return nil, err
	}
	lpMint, err := DeriveLpMintAddress(pool)
	if err != nil {
		return nil, err
	}
	vault0, err := DeriveTokenVaultAddress(pool, token0)
	if err != nil {
		return nil, err
	}
	vault1, err := DeriveTokenVaultAddress(pool, token1)
	if err != nil {
		return nil, err
	}
	observation, err := DeriveObservationAddress(pool)
	if err != nil {
		return nil, err
	}
	return &PoolAccounts{
		AmmConfig:   ammConfig,
		Pool:        pool,
		Authority:   authority,
		Token0Mint:  token0,
		Token1Mint:  token1,
		LpMint:      lpMint,
		Token0Vault: vault0,
		Token1Vault: vault1,
		Observation: observation,
	}, nil
}
