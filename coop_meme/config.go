package coop_meme

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// UpdateConfigParams holds optional overrides, nil leaves a field unchanged.
type UpdateConfigParams struct {
	NewAdmin         *solana.PublicKey `json:"newAdmin,omitempty"`
	TeamWallet       *solana.PublicKey `json:"teamWallet,omitempty"`
	TeamFee          *uint16           `json:"teamFee,omitempty"`
	OwnerFee         *uint16           `json:"ownerFee,omitempty"`
	AffiliatedFee    *uint16           `json:"affiliatedFee,omitempty"`
	ListingFee       *uint16           `json:"listingFee,omitempty"`
	CoopInterval     *uint64           `json:"coopInterval,omitempty"`
	FairlaunchPeriod *uint32           `json:"fairlaunchPeriod,omitempty"`
	MinPricePerToken *uint32           `json:"minPricePerToken,omitempty"`
	MaxPricePerToken *uint32           `json:"maxPricePerToken,omitempty"`
	InitVirtualSol   *uint64           `json:"initVirtualSol,omitempty"`
	InitVirtualToken *uint64           `json:"initVirtualToken,omitempty"`
}

func (p *UpdateConfigParams) IsEmpty() bool {
	return p == nil || *p == UpdateConfigParams{}
}

// NewConfig returns the config created by initialize.
func NewConfig(admin, teamWallet solana.PublicKey) (*ConfigData, error) {
	_, configBump, err := DeriveConfigPDA()
	if err != nil {
		return nil, err
	}
	_, globalBump, err := DeriveGlobalVaultPDA()
	if err != nil {
		return nil, err
	}
	return &ConfigData{
		Admin:            admin,
		TeamWallet:       teamWallet,
		TeamFee:          DefaultTeamFee,
		OwnerFee:         DefaultOwnerFee,
		AffiliatedFee:    DefaultAffiliatedFee,
		ListingFee:       DefaultListingFee,
		CoopInterval:     DefaultCoopInterval,
		FairlaunchPeriod: DefaultFairlaunchPeriod,
		MinPricePerToken: DefaultMinPricePerToken,
		MaxPricePerToken: DefaultMaxPricePerToken,
		InitVirtualSol:   DefaultInitVirtualSol,
		InitVirtualToken: DefaultInitVirtualToken,
		ConfigBump:       configBump,
		GlobalVaultBump:  globalBump,
	}, nil
}

func (c *ConfigData) Validate() error {
	for name, fee := range map[string]uint16{
		"teamFee":       c.TeamFee,
		"ownerFee":      c.OwnerFee,
		"affiliatedFee": c.AffiliatedFee,
		"listingFee":    c.ListingFee,
	} {
		if fee > BasisPointMax {
			return fmt.Errorf("%w: %s %d > %d", ErrInvalidConfig, name, fee, BasisPointMax)
		}
	}
	total := uint32(c.TeamFee) + uint32(c.OwnerFee) + uint32(c.AffiliatedFee) + uint32(c.ListingFee)
	if total >= uint32(BasisPointMax) {
		return fmt.Errorf("%w: trade fees sum to %d bps", ErrInvalidConfig, total)
	}
	if c.MinPricePerToken >= c.MaxPricePerToken {
		return fmt.Errorf("%w: min price %d >= max price %d", ErrInvalidConfig, c.MinPricePerToken, c.MaxPricePerToken)
	}
	if c.InitVirtualSol == 0 || c.InitVirtualToken == 0 {
		return fmt.Errorf("%w: virtual reserves must be positive", ErrInvalidConfig)
	}
	if c.Admin.IsZero() || c.TeamWallet.IsZero() {
		return fmt.Errorf("%w: admin and team wallet are required", ErrInvalidConfig)
	}
	return nil
}

// UpdateConfig returns a validated copy of cfg with params applied.
func UpdateConfig(cfg *ConfigData, caller solana.PublicKey, params *UpdateConfigParams) (*ConfigData, error) {
	if !caller.Equals(cfg.Admin) {
		return nil, fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	next := *cfg
	if params == nil {
		return &next, nil
	}
	if params.NewAdmin != nil {
		next.Admin = *params.NewAdmin
	}
	if params.TeamWallet != nil {
		next.TeamWallet = *params.TeamWallet
	}
	if params.TeamFee != nil {
		next.TeamFee = *params.TeamFee
	}
	if params.OwnerFee != nil {
		next.OwnerFee = *params.OwnerFee
	}
	if params.AffiliatedFee != nil {
		next.AffiliatedFee = *params.AffiliatedFee
	}
	if params.ListingFee != nil {
		next.ListingFee = *params.ListingFee
	}
	if params.CoopInterval != nil {
		next.CoopInterval = *params.CoopInterval
	}
	if params.FairlaunchPeriod != nil {
		next.FairlaunchPeriod = *params.FairlaunchPeriod
	}
	if params.MinPricePerToken != nil {
		next.MinPricePerToken = *params.MinPricePerToken
	}
	if params.MaxPricePerToken != nil {
		next.MaxPricePerToken = *params.MaxPricePerToken
	}
	if params.InitVirtualSol != nil {
		next.InitVirtualSol = *params.InitVirtualSol
	}
	if params.InitVirtualToken != nil {
		next.InitVirtualToken = *params.InitVirtualToken
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return &next, nil
}
