package solana

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTransfer   = errors.New("invalid transfer")
	ErrAccountNotFound   = errors.New("account not found")
)

// Transfer moves Amount of Mint between two owners. solana.WrappedSol
// stands for native lamports.
type Transfer struct {
	Mint   solana.PublicKey
	From   solana.PublicKey
	To     solana.PublicKey
	Amount uint64
}

type holding struct {
	mint  solana.PublicKey
	owner solana.PublicKey
}

// Bank is an in-memory token ledger. Every call is atomic.
type Bank struct {
	mu       sync.RWMutex
	balances map[holding]uint64
	supply   map[solana.PublicKey]uint64
	// associated token address -> holding
	accounts map[solana.PublicKey]holding
	logger   *zap.Logger
}

func NewBank(logger *zap.Logger) *Bank {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bank{
		balances: make(map[holding]uint64),
		supply:   make(map[solana.PublicKey]uint64),
		accounts: make(map[solana.PublicKey]holding),
		logger:   logger.Named("bank"),
	}
}

func (b *Bank) Balance(mint, owner solana.PublicKey) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances[holding{mint, owner}]
}

func (b *Bank) Supply(mint solana.PublicKey) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.supply[mint]
}

func (b *Bank) track(h holding) {
	if ata, _, err := solana.FindAssociatedTokenAddress(h.owner, h.mint); err == nil {
		b.accounts[ata] = h
	}
}

// Execute applies every transfer or none of them.
func (b *Bank) Execute(ctx context.Context, transfers ...Transfer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	staged := make(map[holding]uint64)
	get := func(h holding) uint64 {
		if v, ok := staged[h]; ok {
			return v
		}
		return b.balances[h]
	}
	for _, t := range transfers {
		// self transfers are no-ops
		if t.Amount == 0 || t.From.Equals(t.To) {
			continue
		}
		from, to := holding{t.Mint, t.From}, holding{t.Mint, t.To}
		fromBalance := get(from)
		if fromBalance < t.Amount {
			return fmt.Errorf("%w: %s holds %d of %s, needs %d", ErrInsufficientFunds, t.From, fromBalance, t.Mint, t.Amount)
		}
		toBalance := get(to)
		if toBalance+t.Amount < toBalance {
			return fmt.Errorf("%w: balance of %s overflows", ErrInvalidTransfer, t.To)
		}
		staged[from] = fromBalance - t.Amount
		staged[to] = toBalance + t.Amount
	}
	for h, v := range staged {
		b.balances[h] = v
		b.track(h)
	}
	b.logger.Debug("executed transfers", zap.Int("count", len(transfers)))
	return nil
}

// MintTo creates new supply of mint in owner's account.
func (b *Bank) MintTo(ctx context.Context, mint, owner solana.PublicKey, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	h := holding{mint, owner}
	if b.supply[mint]+amount < b.supply[mint] {
		return fmt.Errorf("%w: supply of %s overflows", ErrInvalidTransfer, mint)
	}
	b.supply[mint] += amount
	b.balances[h] += amount
	b.track(h)
	b.logger.Debug("minted", zap.Stringer("mint", mint), zap.Stringer("owner", owner), zap.Uint64("amount", amount))
	return nil
}

func (b *Bank) Burn(ctx context.Context, mint, owner solana.PublicKey, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	h := holding{mint, owner}
	if b.balances[h] < amount {
		return fmt.Errorf("%w: %s holds %d of %s, burning %d", ErrInsufficientFunds, owner, b.balances[h], mint, amount)
	}
	b.balances[h] -= amount
	b.supply[mint] -= amount
	b.logger.Debug("burned", zap.Stringer("mint", mint), zap.Stringer("owner", owner), zap.Uint64("amount", amount))
	return nil
}

// Airdrop credits native lamports to owner.
func (b *Bank) Airdrop(ctx context.Context, owner solana.PublicKey, lamports uint64) error {
	return b.MintTo(ctx, solana.WrappedSol, owner, lamports)
}

// TokenAccount returns the associated token account snapshot of owner for mint.
func (b *Bank) TokenAccount(mint, owner solana.PublicKey) (*Account, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Account{
		Address:       ata,
		Mint:          mint,
		Owner:         owner,
		Amount:        b.balances[holding{mint, owner}],
		IsInitialized: true,
		IsNative:      mint.Equals(solana.WrappedSol),
	}, nil
}

// Mint returns the mint snapshot of a mint the bank has issued.
func (b *Bank) Mint(mint solana.PublicKey) (*Token, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	supply, ok := b.supply[mint]
	if !ok {
		return nil, fmt.Errorf("%w: mint %s", ErrAccountNotFound, mint)
	}
	return &Token{
		Mint: token.Mint{
			Supply:        supply,
			Decimals:      MintDecimals,
			IsInitialized: true,
		},
		Address: mint,
	}, nil
}

// AccountData returns the spl layout of a known mint or associated token
// account.
func (b *Bank) AccountData(address solana.PublicKey) ([]byte, error) {
	b.mu.RLock()
	h, ok := b.accounts[address]
	_, isMint := b.supply[address]
	b.mu.RUnlock()
	if isMint {
		mint, err := b.Mint(address)
		if err != nil {
			return nil, err
		}
		return new(TokenLayout).Encode(mint)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	account, err := b.TokenAccount(h.mint, h.owner)
	if err != nil {
		return nil, err
	}
	return new(AccountLayout).Encode(account)
}
