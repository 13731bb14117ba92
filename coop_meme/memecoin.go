package coop_meme

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// CreateTokenParams are the creator supplied arguments of createToken
type CreateTokenParams struct {
	Name        string
	Symbol      string
	URI         string
	TotalSupply uint64
	// optional allow-list of candidate values per field
	Ballot []BallotEntry
}

func validateText(field, s string, max int) error {
	if s == "" || len(s) > max {
		return fmt.Errorf("%w: %s must be 1..%d bytes", ErrInvalidMetadata, field, max)
	}
	return nil
}

// ValidateFieldValue checks a metadata value against the length limits of its field.
func ValidateFieldValue(field MetadataField, value string) error {
	switch field {
	case FieldName:
		return validateText("name", value, MaxNameLength)
	case FieldSymbol:
		return validateText("symbol", value, MaxSymbolLength)
	case FieldURI:
		return validateText("uri", value, MaxURILength)
	}
	return fmt.Errorf("%w: field %d is not governable", ErrInvalidVote, field)
}

func (p *CreateTokenParams) Validate() error {
	if err := ValidateFieldValue(FieldName, p.Name); err != nil {
		return err
	}
	if err := ValidateFieldValue(FieldSymbol, p.Symbol); err != nil {
		return err
	}
	if err := ValidateFieldValue(FieldURI, p.URI); err != nil {
		return err
	}
	if p.TotalSupply == 0 {
		return fmt.Errorf("%w: total supply must be positive", ErrInvalidConfig)
	}
	seen := map[MetadataField]bool{}
	for _, b := range p.Ballot {
		if !b.Field.Valid() {
			return fmt.Errorf("%w: ballot field %d", ErrInvalidVote, b.Field)
		}
		if seen[b.Field] {
			return fmt.Errorf("%w: duplicate ballot for %s", ErrInvalidVote, b.Field)
		}
		seen[b.Field] = true
		for _, v := range b.Values {
			if err := ValidateFieldValue(b.Field, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateMemeCoin builds the ledger of a new token and the config with the
// creation counter advanced. Neither input is modified.
func CreateMemeCoin(cfg *ConfigData, creator solana.PublicKey, params *CreateTokenParams, now int64) (*MemeCoinData, *ConfigData, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.TotalCoopCreated == ^uint32(0) {
		return nil, nil, fmt.Errorf("%w: token counter exhausted", ErrArithmeticOverflow)
	}

	tokenID := cfg.TotalCoopCreated + 1
	mint, tokenBump, err := DeriveMintPDA(creator, tokenID)
	if err != nil {
		return nil, nil, err
	}
	_, memecoinBump, err := DeriveMemecoinPDA(mint)
	if err != nil {
		return nil, nil, err
	}

	coin := &MemeCoinData{
		TokenID:              tokenID,
		TokenMint:            mint,
		Creator:              creator,
		Name:                 params.Name,
		Symbol:               params.Symbol,
		URI:                  params.URI,
		VirtualSolReserves:   cfg.InitVirtualSol,
		VirtualTokenReserves: cfg.InitVirtualToken,
		RealSolReserves:      0,
		RealTokenReserves:    params.TotalSupply,
		TokenTotalSupply:     params.TotalSupply,
		State:                MarketStateCreated,
		TokenCreationTime:    now,
		TokenMarketEndTime:   now + int64(cfg.FairlaunchPeriod),
		TokenBump:            tokenBump,
		MemecoinBump:         memecoinBump,
	}
	coin.Ballot = cloneBallot(params.Ballot)

	next := *cfg
	next.TotalCoopCreated = tokenID
	return coin, &next, nil
}

// CheckTradable rejects curve trades and votes outside the fairlaunch window.
func CheckTradable(coin *MemeCoinData, now int64) error {
	if coin.IsTokenListed() {
		return fmt.Errorf("%w: token %s is listed", ErrTradingInactive, coin.TokenMint)
	}
	if !coin.IsTradingActive(now) {
		return fmt.Errorf("%w: fairlaunch of %s ended at %d", ErrTradingInactive, coin.TokenMint, coin.TokenMarketEndTime)
	}
	return nil
}
