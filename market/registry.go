package market

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/coop-meme-go/coop_meme"
)

type accountKind uint8

const (
	accountMemecoin accountKind = iota + 1
	accountTokenVotes
	accountUserVotes
)

type accountRef struct {
	kind    accountKind
	tokenID uint32
	user    solana.PublicKey
}

// tokenRecord holds everything keyed by one token
type tokenRecord struct {
	mu sync.Mutex

	id       uint32
	memecoin solana.PublicKey
	// votes PDA, it owns the stake escrow
	escrow solana.PublicKey

	coin        *coop_meme.MemeCoinData
	votes       *coop_meme.TokenVotes
	votesClosed bool
	userVotes   map[solana.PublicKey]*coop_meme.UserTokenVotes
}

// registry is an arena of token records indexed by token id
type registry struct {
	mu       sync.RWMutex
	tokens   []*tokenRecord
	byMint   map[solana.PublicKey]uint32
	accounts map[solana.PublicKey]accountRef
}

func newRegistry() *registry {
	return &registry{
		byMint:   make(map[solana.PublicKey]uint32),
		accounts: make(map[solana.PublicKey]accountRef),
	}
}

func (r *registry) add(coin *coop_meme.MemeCoinData) (*tokenRecord, error) {
	memecoin, _, err := coop_meme.DeriveMemecoinPDA(coin.TokenMint)
	if err != nil {
		return nil, err
	}
	escrow, _, err := coop_meme.DeriveTokenVotesPDA(coin.TokenMint)
	if err != nil {
		return nil, err
	}
	rec := &tokenRecord{
		id:        coin.TokenID,
		memecoin:  memecoin,
		escrow:    escrow,
		coin:      coin,
		userVotes: make(map[solana.PublicKey]*coop_meme.UserTokenVotes),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if int(coin.TokenID) != len(r.tokens)+1 {
		return nil, fmt.Errorf("token id %d out of sequence", coin.TokenID)
	}
	r.tokens = append(r.tokens, rec)
	r.byMint[coin.TokenMint] = coin.TokenID
	r.accounts[memecoin] = accountRef{kind: accountMemecoin, tokenID: coin.TokenID}
	r.accounts[escrow] = accountRef{kind: accountTokenVotes, tokenID: coin.TokenID}
	return rec, nil
}

func (r *registry) byID(id uint32) (*tokenRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == 0 || int(id) > len(r.tokens) {
		return nil, fmt.Errorf("%w: id %d", coop_meme.ErrTokenNotFound, id)
	}
	return r.tokens[id-1], nil
}

func (r *registry) get(mint solana.PublicKey) (*tokenRecord, error) {
	r.mu.RLock()
	id, ok := r.byMint[mint]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", coop_meme.ErrTokenNotFound, mint)
	}
	return r.byID(id)
}

func (r *registry) trackUserVotes(rec *tokenRecord, user solana.PublicKey) {
	address, _, err := coop_meme.DeriveUserTokenVotesPDA(user, rec.coin.TokenMint)
	if err != nil {
		return
	}
	r.mu.Lock()
	r.accounts[address] = accountRef{kind: accountUserVotes, tokenID: rec.id, user: user}
	r.mu.Unlock()
}

func (r *registry) untrackUserVotes(rec *tokenRecord, user solana.PublicKey) {
	address, _, err := coop_meme.DeriveUserTokenVotesPDA(user, rec.coin.TokenMint)
	if err != nil {
		return
	}
	r.mu.Lock()
	delete(r.accounts, address)
	r.mu.Unlock()
}

func (r *registry) lookup(address solana.PublicKey) (accountRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.accounts[address]
	return ref, ok
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
