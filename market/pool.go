package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/cp_amm"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// BankPool drives a cp_amm client and settles pool creation on an
// in-memory bank: the seed liquidity leaves the creator for the pool
// vaults and the LP is minted to the creator.
type BankPool struct {
	client *cp_amm.Client
	bank   *solanago.Bank
}

func NewBankPool(client *cp_amm.Client, bank *solanago.Bank) *BankPool {
	return &BankPool{client: client, bank: bank}
}

func (p *BankPool) CreatePool(ctx context.Context, params cp_amm.InitializeParams) (*cp_amm.PoolHandle, error) {
	accounts, err := cp_amm.DerivePoolAccounts(params.AmmConfig, params.Token0Mint, params.Token1Mint)
	if err != nil {
		return nil, err
	}
	deposit := []solanago.Transfer{
		{Mint: params.Token0Mint, From: params.Creator, To: accounts.Token0Vault, Amount: params.InitAmount0},
		{Mint: params.Token1Mint, From: params.Creator, To: accounts.Token1Vault, Amount: params.InitAmount1},
	}
	if err := p.bank.Execute(ctx, deposit...); err != nil {
		return nil, fmt.Errorf("deposit pool liquidity: %w", err)
	}
	handle, err := p.client.CreatePool(ctx, params)
	if err == nil {
		err = p.bank.MintTo(ctx, handle.LpMint, params.Creator, handle.LpAmount)
	}
	if err != nil {
		refund := []solanago.Transfer{
			{Mint: params.Token0Mint, From: accounts.Token0Vault, To: params.Creator, Amount: params.InitAmount0},
			{Mint: params.Token1Mint, From: accounts.Token1Vault, To: params.Creator, Amount: params.InitAmount1},
		}
		if rerr := p.bank.Execute(context.WithoutCancel(ctx), refund...); rerr != nil {
			return nil, fmt.Errorf("%w (refund failed: %v)", err, rerr)
		}
		return nil, err
	}
	return handle, nil
}

func (p *BankPool) SwapBaseInput(ctx context.Context, params cp_amm.SwapBaseInputParams) error {
	return p.client.SwapBaseInput(ctx, params)
}

func (p *BankPool) SwapBaseOutput(ctx context.Context, params cp_amm.SwapBaseOutputParams) error {
	return p.client.SwapBaseOutput(ctx, params)
}

// LogSender logs instructions instead of submitting them.
func LogSender(logger *zap.Logger) cp_amm.Sender {
	return cp_amm.SenderFunc(func(ctx context.Context, instructions ...solana.Instruction) error {
		for _, ix := range instructions {
			data, err := ix.Data()
			if err != nil {
				return err
			}
			logger.Info("pool instruction",
				zap.Stringer("program", ix.ProgramID()),
				zap.Int("accounts", len(ix.Accounts())),
				zap.Binary("data", data),
			)
		}
		return nil
	})
}
