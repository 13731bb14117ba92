package coop_meme

import (
	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/coop-meme-go/u128"
)

// ConfigData is the singleton program configuration
type ConfigData struct {
	Admin            solana.PublicKey
	TeamWallet       solana.PublicKey
	TeamFee          uint16 // bps
	OwnerFee         uint16 // bps
	AffiliatedFee    uint16 // bps
	ListingFee       uint16 // bps
	CoopInterval     uint64 // seconds between two creations of one creator
	FairlaunchPeriod uint32 // seconds
	MinPricePerToken uint32
	MaxPricePerToken uint32
	InitVirtualSol   uint64
	InitVirtualToken uint64
	TotalCoopCreated uint32
	TotalCoopListed  uint32
	ConfigBump       uint8
	GlobalVaultBump  uint8
}

// BallotEntry restricts the candidate values of one field
type BallotEntry struct {
	Field  MetadataField
	Values []string
}

// MemeCoinData is the per-token market ledger
type MemeCoinData struct {
	TokenID   uint32
	TokenMint solana.PublicKey
	Creator   solana.PublicKey
	Name      string
	Symbol    string
	URI       string

	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64
	TokenTotalSupply     uint64

	State              MarketState
	TokenCreationTime  int64
	TokenMarketEndTime int64

	// set at listing
	Pool     solana.PublicKey
	LpMint   solana.PublicKey
	LpAmount uint64
	LpBurned bool

	Ballot []BallotEntry

	TokenBump    uint8
	MemecoinBump uint8
}

func (m *MemeCoinData) IsTokenListed() bool {
	return m.State == MarketStateListed
}

func (m *MemeCoinData) IsBondingCurveActive() bool {
	return m.State == MarketStateActive
}

// IsTradingActive reports whether curve trades and votes are accepted at now.
func (m *MemeCoinData) IsTradingActive(now int64) bool {
	return m.State != MarketStateListed && now <= m.TokenMarketEndTime
}

func (m *MemeCoinData) Phase(now int64) Phase {
	switch {
	case m.State == MarketStateListed:
		return PhaseListed
	case now > m.TokenMarketEndTime:
		return PhaseFairlaunchExpired
	case m.State == MarketStateActive:
		return PhaseBondingCurveActive
	default:
		return PhaseCreated
	}
}

// ConstantProduct returns virtualSol * virtualToken.
func (m *MemeCoinData) ConstantProduct() binary.Uint128 {
	return u128.Mul(m.VirtualSolReserves, m.VirtualTokenReserves)
}

// SoldTokens is the amount the curve has released to traders.
func (m *MemeCoinData) SoldTokens() uint64 {
	return m.TokenTotalSupply - m.RealTokenReserves
}

func (m *MemeCoinData) FieldValue(field MetadataField) string {
	switch field {
	case FieldName:
		return m.Name
	case FieldSymbol:
		return m.Symbol
	case FieldURI:
		return m.URI
	}
	return ""
}

func (m *MemeCoinData) setFieldValue(field MetadataField, value string) {
	switch field {
	case FieldName:
		m.Name = value
	case FieldSymbol:
		m.Symbol = value
	case FieldURI:
		m.URI = value
	}
}

func (m *MemeCoinData) ballot(field MetadataField) []string {
	for _, b := range m.Ballot {
		if b.Field == field {
			return b.Values
		}
	}
	return nil
}

func (m *MemeCoinData) Clone() *MemeCoinData {
	c := *m
	c.Ballot = cloneBallot(m.Ballot)
	return &c
}

func cloneBallot(in []BallotEntry) []BallotEntry {
	if in == nil {
		return nil
	}
	out := make([]BallotEntry, len(in))
	for i, b := range in {
		out[i] = BallotEntry{Field: b.Field, Values: append([]string(nil), b.Values...)}
	}
	return out
}

// Candidate is one proposed value of a field and the stake behind it
type Candidate struct {
	Value string
	Stake uint64
}

// FieldTally aggregates the stake on one governable field
type FieldTally struct {
	Field       MetadataField
	TotalStaked uint64
	Leader      string
	LeaderStake uint64
	// registration order, first registered wins ties
	Candidates []Candidate
}

// TokenVotes aggregates every vote on one token
type TokenVotes struct {
	TokenID   uint32
	TokenMint solana.PublicKey
	Fields    []FieldTally
	Finalized bool
	Bump      uint8
}

func NewTokenVotes(tokenID uint32, mint solana.PublicKey) *TokenVotes {
	tv := &TokenVotes{TokenID: tokenID, TokenMint: mint}
	for _, f := range MetadataFields {
		tv.Fields = append(tv.Fields, FieldTally{Field: f})
	}
	return tv
}

func (t *TokenVotes) Tally(field MetadataField) *FieldTally {
	for i := range t.Fields {
		if t.Fields[i].Field == field {
			return &t.Fields[i]
		}
	}
	return nil
}

func (t *TokenVotes) TotalVotes() uint64 {
	var total uint64
	for _, f := range t.Fields {
		total += f.TotalStaked
	}
	return total
}

func (t *TokenVotes) Clone() *TokenVotes {
	c := *t
	c.Fields = make([]FieldTally, len(t.Fields))
	for i, f := range t.Fields {
		f.Candidates = append([]Candidate(nil), f.Candidates...)
		c.Fields[i] = f
	}
	return &c
}

// UserVoteInfo is a user's stake on one field
type UserVoteInfo struct {
	Field  MetadataField
	Value  string
	Amount uint64
}

// UserTokenVotes is a user's escrowed stake on one token
type UserTokenVotes struct {
	User      solana.PublicKey
	TokenMint solana.PublicKey
	Votes     []UserVoteInfo
	Bump      uint8
}

func NewUserTokenVotes(user, mint solana.PublicKey) *UserTokenVotes {
	uv := &UserTokenVotes{User: user, TokenMint: mint}
	for _, f := range MetadataFields {
		uv.Votes = append(uv.Votes, UserVoteInfo{Field: f})
	}
	return uv
}

func (u *UserTokenVotes) Vote(field MetadataField) *UserVoteInfo {
	for i := range u.Votes {
		if u.Votes[i].Field == field {
			return &u.Votes[i]
		}
	}
	return nil
}

func (u *UserTokenVotes) TotalStaked() uint64 {
	var total uint64
	for _, v := range u.Votes {
		total += v.Amount
	}
	return total
}

func (u *UserTokenVotes) Clone() *UserTokenVotes {
	c := *u
	c.Votes = append([]UserVoteInfo(nil), u.Votes...)
	return &c
}
