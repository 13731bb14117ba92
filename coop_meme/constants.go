package coop_meme

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

var ProgramID = solana.MustPublicKeyFromBase58("DU8dTxb7qED4fNHmZkDD5Nz6eM6K335x5dczK7FqJRv5")

// Account keys used for anchor discriminators
var (
	AccountKeyConfigData     = "ConfigData"
	AccountKeyMemeCoinData   = "MemeCoinData"
	AccountKeyTokenVotes     = "TokenVotes"
	AccountKeyUserTokenVotes = "UserTokenVotes"
)

// PDA seeds
var (
	SeedConfig    = []byte("config")
	SeedGlobal    = []byte("global")
	SeedMint      = []byte("mint")
	SeedMemecoin  = []byte("memecoin")
	SeedVotes     = []byte("votes")
	SeedUserVotes = []byte("user_votes")
	SeedMetadata  = []byte("metadata")
)

// Config defaults applied by Initialize
const (
	DefaultTeamFee          uint16 = 1000 // 10%
	DefaultOwnerFee         uint16 = 1000 // 10%
	DefaultAffiliatedFee    uint16 = 1000 // 10%
	DefaultListingFee       uint16 = 500  // 5%
	DefaultCoopInterval     uint64 = 600  // 10 minutes
	DefaultFairlaunchPeriod uint32 = 300  // 5 minutes
	DefaultMinPricePerToken uint32 = 100
	DefaultMaxPricePerToken uint32 = 10_000_000
	DefaultInitVirtualSol   uint64 = 2_000_000_000
	DefaultInitVirtualToken uint64 = 2_000_000_000_000_000_000
)

const (
	BasisPointMax uint16 = 10_000

	TokenDecimals      uint8  = 9
	DefaultTotalSupply uint64 = 1_000_000_000_000_000_000

	// holders below this balance cannot vote
	MinimumVoteBalance uint64 = 1_000_000_000_000

	MaxNameLength   = 36
	MaxSymbolLength = 14
	MaxURILength    = 199
)

var (
	// price is quoted in micro-lamports per whole token
	PriceScale = decimal.New(1, 15)
)

// MetadataField is a governable metadata field index
type MetadataField uint8

const (
	FieldName   MetadataField = 2
	FieldSymbol MetadataField = 3
	FieldURI    MetadataField = 4
)

var MetadataFields = []MetadataField{FieldName, FieldSymbol, FieldURI}

func (f MetadataField) Valid() bool {
	return f == FieldName || f == FieldSymbol || f == FieldURI
}

func (f MetadataField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldSymbol:
		return "symbol"
	case FieldURI:
		return "uri"
	default:
		return "unknown"
	}
}

// MarketState is the lifecycle state of a memecoin
type MarketState uint8

const (
	MarketStateCreated MarketState = iota
	MarketStateActive
	MarketStateListed
)

func (s MarketState) String() string {
	switch s {
	case MarketStateCreated:
		return "created"
	case MarketStateActive:
		return "active"
	case MarketStateListed:
		return "listed"
	default:
		return "unknown"
	}
}

// Phase is MarketState combined with the clock
type Phase uint8

const (
	PhaseCreated Phase = iota
	PhaseBondingCurveActive
	PhaseFairlaunchExpired
	PhaseListed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseBondingCurveActive:
		return "bonding_curve_active"
	case PhaseFairlaunchExpired:
		return "fairlaunch_expired"
	case PhaseListed:
		return "listed"
	default:
		return "unknown"
	}
}

// TradeDirection matches the trade event encoding
type TradeDirection uint8

const (
	TradeDirectionBuy  TradeDirection = 1
	TradeDirectionSell TradeDirection = 2
)

type VoteDirection uint8

const (
	VoteDirectionVote   VoteDirection = 1
	VoteDirectionUnvote VoteDirection = 2
)
