package market

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	solanago "github.com/krazyTry/coop-meme-go/solana"
)

// AccountData returns the on-chain layout of a program or token account,
// the counterpart of GetAccountInfo for the in-memory market.
func (m *Market) AccountData(address solana.PublicKey) ([]byte, error) {
	if address.Equals(m.configAddress) {
		cfg, err := m.Config()
		if err != nil {
			return nil, err
		}
		return coop_meme.EncodeAccount(cfg)
	}

	if ref, ok := m.registry.lookup(address); ok {
		rec, err := m.registry.byID(ref.tokenID)
		if err != nil {
			return nil, err
		}
		rec.mu.Lock()
		defer rec.mu.Unlock()
		switch ref.kind {
		case accountMemecoin:
			return coop_meme.EncodeAccount(rec.coin)
		case accountTokenVotes:
			if rec.votes != nil && !rec.votesClosed {
				return coop_meme.EncodeAccount(rec.votes)
			}
		case accountUserVotes:
			if uv, ok := rec.userVotes[ref.user]; ok {
				return coop_meme.EncodeAccount(uv)
			}
		}
		return nil, fmt.Errorf("%w: %s", solanago.ErrAccountNotFound, address)
	}

	if source, ok := m.bank.(accountDataSource); ok {
		return source.AccountData(address)
	}
	return nil, fmt.Errorf("%w: %s", solanago.ErrAccountNotFound, address)
}
