package coop_meme

import (
	"fmt"

	dmath "github.com/krazyTry/coop-meme-go/decimal_math"
)

// FeeBreakdown is the split of a trade fee
type FeeBreakdown struct {
	Team      uint64
	Owner     uint64
	Affiliate uint64
	Listing   uint64
}

func (f FeeBreakdown) Total() uint64 {
	return f.Team + f.Owner + f.Affiliate + f.Listing
}

// bpsOf returns floor(amount * bps / 10000)
func bpsOf(amount uint64, bps uint16) (uint64, error) {
	v, err := dmath.MulDivU64(amount, uint64(bps), uint64(BasisPointMax))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrArithmeticOverflow, err)
	}
	return v, nil
}

// GetTradeFee computes the fee shards taken from a trade amount.
func GetTradeFee(cfg *ConfigData, amount uint64) (FeeBreakdown, error) {
	var (
		fee FeeBreakdown
		err error
	)
	if fee.Team, err = bpsOf(amount, cfg.TeamFee); err != nil {
		return FeeBreakdown{}, err
	}
	if fee.Owner, err = bpsOf(amount, cfg.OwnerFee); err != nil {
		return FeeBreakdown{}, err
	}
	if fee.Affiliate, err = bpsOf(amount, cfg.AffiliatedFee); err != nil {
		return FeeBreakdown{}, err
	}
	if fee.Listing, err = bpsOf(amount, cfg.ListingFee); err != nil {
		return FeeBreakdown{}, err
	}
	if fee.Total() > amount {
		return FeeBreakdown{}, fmt.Errorf("%w: fee exceeds amount", ErrArithmeticOverflow)
	}
	return fee, nil
}

// GetListingFee is the fee taken from the real SOL reserves at listing.
func GetListingFee(cfg *ConfigData, realSol uint64) (uint64, error) {
	return bpsOf(realSol, cfg.ListingFee)
}
