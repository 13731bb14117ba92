package market

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	"github.com/krazyTry/coop-meme-go/cp_amm"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// TokenBank moves and mints fungible units. Execute must apply all
// transfers or none.
type TokenBank interface {
	Execute(ctx context.Context, transfers ...solanago.Transfer) error
	MintTo(ctx context.Context, mint, owner solana.PublicKey, amount uint64) error
	Burn(ctx context.Context, mint, owner solana.PublicKey, amount uint64) error
	Balance(mint, owner solana.PublicKey) uint64
}

// Metadata is the mutable token metadata
type Metadata struct {
	Name            string           `json:"name"`
	Symbol          string           `json:"symbol"`
	URI             string           `json:"uri"`
	UpdateAuthority solana.PublicKey `json:"updateAuthority"`
}

// MetadataStore keeps token metadata keyed by mint
type MetadataStore interface {
	Create(ctx context.Context, mint solana.PublicKey, md Metadata) error
	Update(ctx context.Context, mint solana.PublicKey, md Metadata) error
}

// PoolProgram is the external constant-product pool
type PoolProgram interface {
	CreatePool(ctx context.Context, params cp_amm.InitializeParams) (*cp_amm.PoolHandle, error)
	SwapBaseInput(ctx context.Context, params cp_amm.SwapBaseInputParams) error
	SwapBaseOutput(ctx context.Context, params cp_amm.SwapBaseOutputParams) error
}

// Clock returns wall-clock unix seconds
type Clock interface {
	Now() int64
}

type ClockFunc func() int64

func (f ClockFunc) Now() int64 { return f() }

// SystemClock reads time.Now
var SystemClock = ClockFunc(func() int64 { return time.Now().Unix() })

// EventSink receives every event of a committed transition
type EventSink interface {
	Emit(event coop_meme.Event)
}

type accountDataSource interface {
	AccountData(address solana.PublicKey) ([]byte, error)
}
