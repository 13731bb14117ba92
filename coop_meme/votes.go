package coop_meme

import (
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"
)

// VoteEntry stakes Amount on one field. A nil Value means the user's current
// candidate, else the current leader, else the token's current value.
type VoteEntry struct {
	Field  MetadataField
	Amount uint64
	Value  *string
}

type UnvoteEntry struct {
	Field  MetadataField
	Amount uint64
}

// VoteResult is the outcome of a vote or unvote on copies of the records
type VoteResult struct {
	TokenVotes     *TokenVotes
	UserTokenVotes *UserTokenVotes
	// tokens moved into (vote) or out of (unvote) the escrow
	Amount uint64
}

// RefreshLeader re-evaluates the leader of a field. A challenger takes the
// lead only with a strictly higher stake, so ties keep the incumbent. When
// the incumbent has no stake left the field is rescanned from scratch and the
// earliest registered candidate wins a tie.
func (f *FieldTally) RefreshLeader() {
	if i := f.candidate(f.Leader); f.Leader != "" && i >= 0 {
		f.LeaderStake = f.Candidates[i].Stake
	} else {
		f.Leader, f.LeaderStake = "", 0
	}
	for _, c := range f.Candidates {
		if c.Stake > f.LeaderStake {
			f.Leader, f.LeaderStake = c.Value, c.Stake
		}
	}
}

func (f *FieldTally) candidate(value string) int {
	return slices.IndexFunc(f.Candidates, func(c Candidate) bool { return c.Value == value })
}

func (f *FieldTally) addStake(value string, amount uint64) error {
	total, err := checkedAdd(f.TotalStaked, amount)
	if err != nil {
		return err
	}
	if i := f.candidate(value); i >= 0 {
		if f.Candidates[i].Stake, err = checkedAdd(f.Candidates[i].Stake, amount); err != nil {
			return err
		}
	} else {
		f.Candidates = append(f.Candidates, Candidate{Value: value, Stake: amount})
	}
	f.TotalStaked = total
	return nil
}

func (f *FieldTally) removeStake(value string, amount uint64) error {
	i := f.candidate(value)
	if i < 0 || f.Candidates[i].Stake < amount || f.TotalStaked < amount {
		return fmt.Errorf("%w: tally of %s is inconsistent", ErrArithmeticOverflow, f.Field)
	}
	f.Candidates[i].Stake -= amount
	f.TotalStaked -= amount
	if f.Candidates[i].Stake == 0 {
		f.Candidates = slices.Delete(f.Candidates, i, i+1)
		if len(f.Candidates) == 0 {
			f.Candidates = nil
		}
	}
	return nil
}

func resolveVoteValue(coin *MemeCoinData, tally *FieldTally, current *UserVoteInfo, e VoteEntry) (string, error) {
	if e.Value == nil {
		switch {
		case current.Amount > 0:
			return current.Value, nil
		case tally.Leader != "":
			return tally.Leader, nil
		default:
			return coin.FieldValue(e.Field), nil
		}
	}
	value := *e.Value
	if err := ValidateFieldValue(e.Field, value); err != nil {
		return "", err
	}
	if allowed := coin.ballot(e.Field); allowed != nil && !slices.Contains(allowed, value) {
		return "", fmt.Errorf("%w: %q is not on the %s ballot", ErrInvalidVote, value, e.Field)
	}
	return value, nil
}

// ApplyVote stakes the entries of one user. tv and uv may be nil on the first
// vote, they are never modified.
func ApplyVote(coin *MemeCoinData, tv *TokenVotes, uv *UserTokenVotes, user solana.PublicKey, entries []VoteEntry, balance uint64, now int64) (*VoteResult, error) {
	if err := CheckTradable(coin, now); err != nil {
		return nil, err
	}
	if tv != nil && tv.Finalized {
		return nil, fmt.Errorf("%w: token %s", ErrAlreadyFinalized, coin.TokenMint)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no vote entries", ErrInvalidVote)
	}

	var total uint64
	for _, e := range entries {
		if !e.Field.Valid() {
			return nil, fmt.Errorf("%w: field %d is not governable", ErrInvalidVote, e.Field)
		}
		if e.Amount == 0 {
			return nil, fmt.Errorf("%w: zero amount for %s", ErrInvalidVote, e.Field)
		}
		var err error
		if total, err = checkedAdd(total, e.Amount); err != nil {
			return nil, err
		}
	}
	if balance < MinimumVoteBalance {
		return nil, fmt.Errorf("%w: balance %d below voting minimum %d", ErrInsufficientBalance, balance, MinimumVoteBalance)
	}
	if balance < total {
		return nil, fmt.Errorf("%w: balance %d < staked amount %d", ErrInsufficientBalance, balance, total)
	}

	if tv == nil {
		tv = NewTokenVotes(coin.TokenID, coin.TokenMint)
	} else {
		tv = tv.Clone()
	}
	if uv == nil {
		uv = NewUserTokenVotes(user, coin.TokenMint)
	} else {
		uv = uv.Clone()
	}

	for _, e := range entries {
		tally := tv.Tally(e.Field)
		current := uv.Vote(e.Field)
		value, err := resolveVoteValue(coin, tally, current, e)
		if err != nil {
			return nil, err
		}
		if current.Amount > 0 && current.Value != value {
			return nil, fmt.Errorf("%w: stake on %s already backs %q", ErrInvalidVote, e.Field, current.Value)
		}
		if err := tally.addStake(value, e.Amount); err != nil {
			return nil, err
		}
		current.Value = value
		current.Amount += e.Amount
		tally.RefreshLeader()
	}

	return &VoteResult{TokenVotes: tv, UserTokenVotes: uv, Amount: total}, nil
}

// ApplyUnvote releases stake of one user. It is accepted in every market
// state, leaders stay frozen once voting is finalized.
func ApplyUnvote(tv *TokenVotes, uv *UserTokenVotes, entries []UnvoteEntry) (*VoteResult, error) {
	if tv == nil || uv == nil {
		return nil, fmt.Errorf("%w: no stake recorded", ErrInsufficientStake)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no unvote entries", ErrInvalidVote)
	}
	tv = tv.Clone()
	uv = uv.Clone()

	var total uint64
	for _, e := range entries {
		if !e.Field.Valid() {
			return nil, fmt.Errorf("%w: field %d is not governable", ErrInvalidVote, e.Field)
		}
		if e.Amount == 0 {
			return nil, fmt.Errorf("%w: zero amount for %s", ErrInvalidVote, e.Field)
		}
		current := uv.Vote(e.Field)
		if e.Amount > current.Amount {
			return nil, fmt.Errorf("%w: unvote %d > staked %d on %s", ErrInsufficientStake, e.Amount, current.Amount, e.Field)
		}
		tally := tv.Tally(e.Field)
		if err := tally.removeStake(current.Value, e.Amount); err != nil {
			return nil, err
		}
		current.Amount -= e.Amount
		if current.Amount == 0 {
			current.Value = ""
		}
		if !tv.Finalized {
			tally.RefreshLeader()
		}
		total += e.Amount
	}

	return &VoteResult{TokenVotes: tv, UserTokenVotes: uv, Amount: total}, nil
}

// FinalizeVotes commits every field leader into the token metadata and
// freezes voting. Fields without candidates keep their value.
func FinalizeVotes(coin *MemeCoinData, tv *TokenVotes, now int64) (*MemeCoinData, *TokenVotes, error) {
	if now < coin.TokenMarketEndTime {
		return nil, nil, fmt.Errorf("%w: voting of %s ends at %d", ErrTooEarly, coin.TokenMint, coin.TokenMarketEndTime)
	}
	if tv != nil && tv.Finalized {
		return nil, nil, fmt.Errorf("%w: token %s", ErrAlreadyFinalized, coin.TokenMint)
	}
	if tv == nil {
		tv = NewTokenVotes(coin.TokenID, coin.TokenMint)
	} else {
		tv = tv.Clone()
	}

	next := coin.Clone()
	for _, f := range tv.Fields {
		if f.Leader != "" {
			next.setFieldValue(f.Field, f.Leader)
		}
	}
	tv.Finalized = true
	return next, tv, nil
}

// CheckCloseUserVotes allows reclaiming a user record after finalization once its stake is released.
func CheckCloseUserVotes(tv *TokenVotes, uv *UserTokenVotes) error {
	if tv == nil || !tv.Finalized {
		return fmt.Errorf("%w: voting is not finalized", ErrTooEarly)
	}
	if uv.TotalStaked() > 0 {
		return fmt.Errorf("%w: %d tokens still staked", ErrNotEligible, uv.TotalStaked())
	}
	return nil
}

func CheckCloseTokenVotes(tv *TokenVotes) error {
	if !tv.Finalized {
		return fmt.Errorf("%w: voting is not finalized", ErrTooEarly)
	}
	if tv.TotalVotes() > 0 {
		return fmt.Errorf("%w: %d tokens still staked", ErrNotEligible, tv.TotalVotes())
	}
	return nil
}
