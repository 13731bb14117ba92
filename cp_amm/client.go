package cp_amm

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Sender delivers built instructions to the pool program
type Sender interface {
	Send(ctx context.Context, instructions ...solana.Instruction) error
}

type SenderFunc func(ctx context.Context, instructions ...solana.Instruction) error

func (f SenderFunc) Send(ctx context.Context, instructions ...solana.Instruction) error {
	return f(ctx, instructions...)
}

// Client invokes the pool program through a Sender.
//
// Example:
//
// client := cp_amm.NewClient(senderFunc)
//
// handle, _ := client.CreatePool(ctx, cp_amm.InitializeParams{...})
type Client struct {
	sender Sender
}

func NewClient(sender Sender) *Client {
	return &Client{sender: sender}
}

func (c *Client) CreatePool(ctx context.Context, params InitializeParams) (*PoolHandle, error) {
	ix, accounts, err := NewInitializeInstruction(params)
	if err != nil {
		return nil, err
	}
	lpAmount, err := GetInitialLiquidity(params.InitAmount0, params.InitAmount1)
	if err != nil {
		return nil, err
	}
	if err := c.sender.Send(ctx, ix); err != nil {
		return nil, err
	}
	return &PoolHandle{PoolAccounts: *accounts, LpAmount: lpAmount}, nil
}

func (c *Client) SwapBaseInput(ctx context.Context, params SwapBaseInputParams) error {
	ix, err := NewSwapBaseInputInstruction(params)
	if err != nil {
		return err
	}
	return c.sender.Send(ctx, ix)
}

func (c *Client) SwapBaseOutput(ctx context.Context, params SwapBaseOutputParams) error {
	ix, err := NewSwapBaseOutputInstruction(params)
	if err != nil {
		return err
	}
	return c.sender.Send(ctx, ix)
}
