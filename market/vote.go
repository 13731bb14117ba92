package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// Vote stakes tokens of user on metadata candidates. The stake moves into
// the token votes escrow until it is unvoted.
func (m *Market) Vote(ctx context.Context, user, mint solana.PublicKey, entries []coop_meme.VoteEntry) (*coop_meme.VoteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.votesClosed {
		return nil, fmt.Errorf("vote: %w: votes of %s are closed", coop_meme.ErrAlreadyFinalized, mint)
	}
	balance := m.bank.Balance(mint, user)
	res, err := coop_meme.ApplyVote(rec.coin, rec.votes, rec.userVotes[user], user, entries, balance, m.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	escrow := solanago.Transfer{Mint: mint, From: user, To: rec.escrow, Amount: res.Amount}
	if err := m.bank.Execute(ctx, escrow); err != nil {
		return nil, bankError("vote", err)
	}
	_, known := rec.userVotes[user]
	rec.votes = res.TokenVotes
	rec.userVotes[user] = res.UserTokenVotes
	if !known {
		m.registry.trackUserVotes(rec, user)
	}

	m.logger.Info("vote",
		zap.Stringer("mint", mint),
		zap.Stringer("user", user),
		zap.Uint64("amount", res.Amount),
	)
	m.events.Emit(coop_meme.VoteEvent{
		User:       user,
		CoopToken:  mint,
		Memecoin:   rec.memecoin,
		Direction:  coop_meme.VoteDirectionVote,
		Votes:      append([]coop_meme.UserVoteInfo(nil), res.UserTokenVotes.Votes...),
		TotalVotes: res.TokenVotes.TotalVotes(),
	})
	return cloneResult(res), nil
}

// Unvote releases stake of user back from the escrow.
func (m *Market) Unvote(ctx context.Context, user, mint solana.PublicKey, entries []coop_meme.UnvoteEntry) (*coop_meme.VoteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	res, err := coop_meme.ApplyUnvote(rec.votes, rec.userVotes[user], entries)
	if err != nil {
		return nil, fmt.Errorf("unvote: %w", err)
	}
	release := solanago.Transfer{Mint: mint, From: rec.escrow, To: user, Amount: res.Amount}
	if err := m.bank.Execute(ctx, release); err != nil {
		return nil, bankError("unvote", err)
	}
	rec.votes = res.TokenVotes
	rec.userVotes[user] = res.UserTokenVotes

	m.logger.Info("unvote",
		zap.Stringer("mint", mint),
		zap.Stringer("user", user),
		zap.Uint64("amount", res.Amount),
	)
	m.events.Emit(coop_meme.VoteEvent{
		User:       user,
		CoopToken:  mint,
		Memecoin:   rec.memecoin,
		Direction:  coop_meme.VoteDirectionUnvote,
		Votes:      append([]coop_meme.UserVoteInfo(nil), res.UserTokenVotes.Votes...),
		TotalVotes: res.TokenVotes.TotalVotes(),
	})
	return cloneResult(res), nil
}

// CloseUserVotes drops the vote record of user once voting is finalized
// and the stake is released.
func (m *Market) CloseUserVotes(ctx context.Context, user, mint solana.PublicKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	uv, ok := rec.userVotes[user]
	if !ok {
		return fmt.Errorf("close user votes: %w: %s has no vote record", coop_meme.ErrNotEligible, user)
	}
	if err := coop_meme.CheckCloseUserVotes(rec.votes, uv); err != nil {
		return fmt.Errorf("close user votes: %w", err)
	}
	delete(rec.userVotes, user)
	m.registry.untrackUserVotes(rec, user)
	m.logger.Info("user votes closed", zap.Stringer("mint", mint), zap.Stringer("user", user))
	return nil
}

// CloseTokenVotes drops the token tally once it holds no stake.
func (m *Market) CloseTokenVotes(ctx context.Context, mint solana.PublicKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := m.registry.get(mint)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.votesClosed {
		return fmt.Errorf("close token votes: %w: already closed", coop_meme.ErrNotEligible)
	}
	if rec.votes == nil {
		return fmt.Errorf("close token votes: %w: voting is not finalized", coop_meme.ErrTooEarly)
	}
	if err := coop_meme.CheckCloseTokenVotes(rec.votes); err != nil {
		return fmt.Errorf("close token votes: %w", err)
	}
	rec.votesClosed = true
	m.logger.Info("token votes closed", zap.Stringer("mint", mint))
	return nil
}

// TokenVotes returns a snapshot of the tally of mint, nil before the first vote.
func (m *Market) TokenVotes(mint solana.PublicKey) (*coop_meme.TokenVotes, error) {
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.votes == nil {
		return nil, nil
	}
	return rec.votes.Clone(), nil
}

func (m *Market) UserTokenVotes(user, mint solana.PublicKey) (*coop_meme.UserTokenVotes, error) {
	rec, err := m.registry.get(mint)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	uv, ok := rec.userVotes[user]
	if !ok {
		return nil, nil
	}
	return uv.Clone(), nil
}

func cloneResult(res *coop_meme.VoteResult) *coop_meme.VoteResult {
	return &coop_meme.VoteResult{
		TokenVotes:     res.TokenVotes.Clone(),
		UserTokenVotes: res.UserTokenVotes.Clone(),
		Amount:         res.Amount,
	}
}
