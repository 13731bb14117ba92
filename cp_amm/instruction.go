package cp_amm

import (
	"bytes"
	"crypto/sha256"
	"errors"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var ErrMintOrder = errors.New("token0 mint must sort before token1 mint")

func instructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:8]
}

func encodeInstructionData(name string, args any) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(instructionDiscriminator(name))
	if err := binary.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewInitializeInstruction builds the pool initialize instruction and returns
// the accounts of the pool it creates.
func NewInitializeInstruction(params InitializeParams) (solana.Instruction, *PoolAccounts, error) {
	if bytes.Compare(params.Token0Mint.Bytes(), params.Token1Mint.Bytes()) >= 0 {
		return nil, nil, ErrMintOrder
	}
	accounts, err := DerivePoolAccounts(params.AmmConfig, params.Token0Mint, params.Token1Mint)
	if err != nil {
		return nil, nil, err
	}

	creatorToken0, _, err := solana.FindAssociatedTokenAddress(params.Creator, params.Token0Mint)
	if err != nil {
		return nil, nil, err
	}
	creatorToken1, _, err := solana.FindAssociatedTokenAddress(params.Creator, params.Token1Mint)
	if err != nil {
		return nil, nil, err
	}
	creatorLp, _, err := solana.FindAssociatedTokenAddress(params.Creator, accounts.LpMint)
	if err != nil {
		return nil, nil, err
	}

	data, err := encodeInstructionData(InstructionInitialize, initializeArgs{
		InitAmount0: params.InitAmount0,
		InitAmount1: params.InitAmount1,
		OpenTime:    params.OpenTime,
	})
	if err != nil {
		return nil, nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(params.Creator, true, true),
		solana.NewAccountMeta(params.AmmConfig, false, false),
		solana.NewAccountMeta(accounts.Authority, false, false),
		solana.NewAccountMeta(accounts.Pool, true, false),
		solana.NewAccountMeta(params.Token0Mint, false, false),
		solana.NewAccountMeta(params.Token1Mint, false, false),
		solana.NewAccountMeta(accounts.LpMint, true, false),
		solana.NewAccountMeta(creatorToken0, true, false),
		solana.NewAccountMeta(creatorToken1, true, false),
		solana.NewAccountMeta(creatorLp, true, false),
		solana.NewAccountMeta(accounts.Token0Vault, true, false),
		solana.NewAccountMeta(accounts.Token1Vault, true, false),
		solana.NewAccountMeta(CreatePoolFeeReceiver, true, false),
		solana.NewAccountMeta(accounts.Observation, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}
	return solana.NewInstruction(ProgramID, metas, data), accounts, nil
}

func swapAccounts(payer, ammConfig, inputMint, outputMint solana.PublicKey) (solana.AccountMetaSlice, error) {
	accounts, err := DerivePoolAccounts(ammConfig, inputMint, outputMint)
	if err != nil {
		return nil, err
	}
	inputVault, outputVault := accounts.Token0Vault, accounts.Token1Vault
	if !inputMint.Equals(accounts.Token0Mint) {
		inputVault, outputVault = outputVault, inputVault
	}
	inputAccount, _, err := solana.FindAssociatedTokenAddress(payer, inputMint)
	if err != nil {
		return nil, err
	}
	outputAccount, _, err := solana.FindAssociatedTokenAddress(payer, outputMint)
	if err != nil {
		return nil, err
	}
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, false, true),
		solana.NewAccountMeta(accounts.Authority, false, false),
		solana.NewAccountMeta(ammConfig, false, false),
		solana.NewAccountMeta(accounts.Pool, true, false),
		solana.NewAccountMeta(inputAccount, true, false),
		solana.NewAccountMeta(outputAccount, true, false),
		solana.NewAccountMeta(inputVault, true, false),
		solana.NewAccountMeta(outputVault, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(inputMint, false, false),
		solana.NewAccountMeta(outputMint, false, false),
		solana.NewAccountMeta(accounts.Observation, true, false),
	}, nil
}

func NewSwapBaseInputInstruction(params SwapBaseInputParams) (solana.Instruction, error) {
	metas, err := swapAccounts(params.Payer, params.AmmConfig, params.InputMint, params.OutputMint)
	if err != nil {
		return nil, err
	}
	data, err := encodeInstructionData(InstructionSwapBaseInput, swapBaseInputArgs{
		AmountIn:         params.AmountIn,
		MinimumAmountOut: params.MinimumAmountOut,
	})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

func NewSwapBaseOutputInstruction(params SwapBaseOutputParams) (solana.Instruction, error) {
	metas, err := swapAccounts(params.Payer, params.AmmConfig, params.InputMint, params.OutputMint)
	if err != nil {
		return nil, err
	}
	data, err := encodeInstructionData(InstructionSwapBaseOutput, swapBaseOutputArgs{
		MaxAmountIn: params.MaxAmountIn,
		AmountOut:   params.AmountOut,
	})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}
