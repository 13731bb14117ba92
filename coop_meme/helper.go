package coop_meme

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Derives the config PDA
func DeriveConfigPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedConfig}, ProgramID)
}

// Derives the global vault PDA that custodies SOL and unsold tokens
func DeriveGlobalVaultPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedGlobal}, ProgramID)
}

// Derives the token mint of the creator's tokenID-th coin
func DeriveMintPDA(creator solana.PublicKey, tokenID uint32) (solana.PublicKey, uint8, error) {
	id := make([]byte, 4)
	binary.LittleEndian.PutUint32(id, tokenID)
	seeds := [][]byte{
		SeedMint,
		creator.Bytes(),
		id,
	}
	return solana.FindProgramAddress(seeds, ProgramID)
}

func DeriveMemecoinPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedMemecoin, mint.Bytes()}, ProgramID)
}

// Derives the token votes PDA, it also owns the vote escrow
func DeriveTokenVotesPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{SeedVotes, mint.Bytes()}, ProgramID)
}

func DeriveUserTokenVotesPDA(user, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		SeedUserVotes,
		mint.Bytes(),
		user.Bytes(),
	}
	return solana.FindProgramAddress(seeds, ProgramID)
}

// Derives the metaplex metadata account of a mint
func DeriveMetadataPDA(mint solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{
		SeedMetadata,
		solana.TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
	}
	pda, _, err := solana.FindProgramAddress(seeds, solana.TokenMetadataProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
