package coop_meme

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/coop-meme-go/cp_amm"
)

// ListingPlan is the liquidity moved from the curve into the pool
type ListingPlan struct {
	ListingFee  uint64
	SolToList   uint64
	TokenToList uint64
	Token0Mint  solana.PublicKey
	Token1Mint  solana.PublicKey
	InitAmount0 uint64
	InitAmount1 uint64
	// the reserves are too thin to seed a pool: all sol is taken as the
	// listing fee and TokenToList is burned
	WithoutPool bool
}

// PlanListing checks a listing request and splits the real reserves.
func PlanListing(cfg *ConfigData, coin *MemeCoinData, caller solana.PublicKey, now int64) (*ListingPlan, error) {
	if !caller.Equals(cfg.Admin) {
		return nil, fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	if coin.IsTokenListed() {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyListed, coin.TokenMint)
	}
	if now < coin.TokenMarketEndTime {
		return nil, fmt.Errorf("%w: %s is listable from %d", ErrNotEligible, coin.TokenMint, coin.TokenMarketEndTime)
	}
	if cfg.TotalCoopListed == ^uint32(0) {
		return nil, fmt.Errorf("%w: listing counter exhausted", ErrArithmeticOverflow)
	}

	fee, err := GetListingFee(cfg, coin.RealSolReserves)
	if err != nil {
		return nil, err
	}
	plan := &ListingPlan{
		ListingFee:  fee,
		SolToList:   coin.RealSolReserves - fee,
		TokenToList: coin.RealTokenReserves,
	}
	plan.Token0Mint, plan.Token1Mint = cp_amm.SortMints(coin.TokenMint, solana.WrappedSol)
	if plan.Token0Mint.Equals(solana.WrappedSol) {
		plan.InitAmount0, plan.InitAmount1 = plan.SolToList, plan.TokenToList
	} else {
		plan.InitAmount0, plan.InitAmount1 = plan.TokenToList, plan.SolToList
	}
	if _, err := cp_amm.GetInitialLiquidity(plan.InitAmount0, plan.InitAmount1); err != nil {
		plan.WithoutPool = true
		plan.ListingFee, plan.SolToList = coin.RealSolReserves, 0
		plan.InitAmount0, plan.InitAmount1 = 0, 0
	}
	return plan, nil
}

// ApplyListing closes the curve of coin and counts the listing in cfg. pool is
// nil for a plan without pool. cfg must have passed PlanListing.
func ApplyListing(cfg *ConfigData, coin *MemeCoinData, pool *cp_amm.PoolHandle) (*ConfigData, *MemeCoinData) {
	nextCfg := *cfg
	nextCfg.TotalCoopListed++

	next := coin.Clone()
	next.State = MarketStateListed
	next.RealSolReserves = 0
	next.RealTokenReserves = 0
	if pool != nil {
		next.Pool = pool.Pool
		next.LpMint = pool.LpMint
		next.LpAmount = pool.LpAmount
	}
	return &nextCfg, next
}

// CheckBurnLP allows the admin to burn the listing LP once.
func CheckBurnLP(cfg *ConfigData, coin *MemeCoinData, caller solana.PublicKey) error {
	if !caller.Equals(cfg.Admin) {
		return fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	if !coin.IsTokenListed() {
		return fmt.Errorf("%w: %s is not listed", ErrNotEligible, coin.TokenMint)
	}
	if coin.LpMint.IsZero() {
		return fmt.Errorf("%w: %s was listed without a pool", ErrNotEligible, coin.TokenMint)
	}
	if coin.LpBurned {
		return fmt.Errorf("%w: lp of %s already burned", ErrNotEligible, coin.TokenMint)
	}
	return nil
}
