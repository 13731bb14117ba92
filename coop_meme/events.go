package coop_meme

import "github.com/gagliardetto/solana-go"

// Event is emitted by every successful state transition
type Event interface {
	EventName() string
}

type CreatedEvent struct {
	TokenID            uint32           `json:"tokenId"`
	Creator            solana.PublicKey `json:"creator"`
	CoopToken          solana.PublicKey `json:"coopToken"`
	Memecoin           solana.PublicKey `json:"memecoin"`
	Metadata           solana.PublicKey `json:"metadata"`
	Decimals           uint8            `json:"decimals"`
	TokenSupply        uint64           `json:"tokenSupply"`
	TokenCreationTime  int64            `json:"tokenCreationTime"`
	TokenMarketEndTime int64            `json:"tokenMarketEndTime"`
}

type TradeEvent struct {
	Trader               solana.PublicKey `json:"trader"`
	CoopToken            solana.PublicKey `json:"coopToken"`
	Memecoin             solana.PublicKey `json:"memecoin"`
	Direction            TradeDirection   `json:"direction"`
	AmountIn             uint64           `json:"amountIn"`
	MinimumReceiveAmount uint64           `json:"minimumReceiveAmount"`
	AmountOut            uint64           `json:"amountOut"`
	Fee                  uint64           `json:"fee"`
}

type BondingCurveStartedEvent struct {
	CoopToken solana.PublicKey `json:"coopToken"`
	Memecoin  solana.PublicKey `json:"memecoin"`
}

type TradingOverEvent struct {
	CoopToken solana.PublicKey `json:"coopToken"`
	Memecoin  solana.PublicKey `json:"memecoin"`
}

type VoteEvent struct {
	User       solana.PublicKey `json:"user"`
	CoopToken  solana.PublicKey `json:"coopToken"`
	Memecoin   solana.PublicKey `json:"memecoin"`
	Direction  VoteDirection    `json:"direction"`
	Votes      []UserVoteInfo   `json:"votes"`
	TotalVotes uint64           `json:"totalVotes"`
}

type VoteFinalizedEvent struct {
	CoopToken   solana.PublicKey `json:"coopToken"`
	Memecoin    solana.PublicKey `json:"memecoin"`
	FinalName   string           `json:"finalName"`
	FinalSymbol string           `json:"finalSymbol"`
	FinalURI    string           `json:"finalUri"`
	TotalVotes  uint64           `json:"totalVotes"`
}

type ListEvent struct {
	CoopToken  solana.PublicKey `json:"coopToken"`
	Memecoin   solana.PublicKey `json:"memecoin"`
	TokenIn    uint64           `json:"tokenIn"`
	SolIn      uint64           `json:"solIn"`
	ListingFee uint64           `json:"listingFee"`
	Pool       solana.PublicKey `json:"pool"`
	LpMint     solana.PublicKey `json:"lpMint"`
}

type BurnEvent struct {
	CoopToken solana.PublicKey `json:"coopToken"`
	LpMint    solana.PublicKey `json:"lpMint"`
	Amount    uint64           `json:"amount"`
}

func (CreatedEvent) EventName() string             { return "Created" }
func (TradeEvent) EventName() string               { return "Trade" }
func (BondingCurveStartedEvent) EventName() string { return "BondingCurveStarted" }
func (TradingOverEvent) EventName() string         { return "TradingOver" }
func (VoteEvent) EventName() string                { return "Vote" }
func (VoteFinalizedEvent) EventName() string       { return "VoteFinalized" }
func (ListEvent) EventName() string                { return "List" }
func (BurnEvent) EventName() string                { return "Burn" }
