package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/coop-meme-go/coop_meme"
)

// FinalizeVote writes the leading candidates into the token metadata once the
// fairlaunch window is over. Anyone may call it, once.
func (m *Market) FinalizeVote(ctx context.Context, mint solana.PublicKey) (*coop_meme.MemeCoinData, error) {
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
		return nil, fmt.Errorf("finalize vote: %w: %s", coop_meme.ErrAlreadyFinalized, mint)
	}
	coin, votes, err := coop_meme.FinalizeVotes(rec.coin, rec.votes, m.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("finalize vote: %w", err)
	}
	md := Metadata{Name: coin.Name, Symbol: coin.Symbol, URI: coin.URI, UpdateAuthority: m.globalVault}
	if err := m.metadata.Update(ctx, mint, md); err != nil {
		return nil, fmt.Errorf("finalize vote metadata: %w", err)
	}
	rec.coin = coin
	rec.votes = votes

	m.logger.Info("vote finalized",
		zap.Stringer("mint", mint),
		zap.String("name", coin.Name),
		zap.String("symbol", coin.Symbol),
		zap.String("uri", coin.URI),
		zap.Uint64("totalVotes", votes.TotalVotes()),
	)
	m.events.Emit(coop_meme.VoteFinalizedEvent{
		CoopToken:   mint,
		Memecoin:    rec.memecoin,
		FinalName:   coin.Name,
		FinalSymbol: coin.Symbol,
		FinalURI:    coin.URI,
		TotalVotes:  votes.TotalVotes(),
	})
	return coin.Clone(), nil
}
