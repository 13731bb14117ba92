package solana

import (
	"bytes"
	bin "encoding/binary"
	"errors"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// TokenAccountSize is the length of an spl token account
const TokenAccountSize = 165

var ErrAccountSize = errors.New("invalid token account size")

type Account struct {
	Address solana.PublicKey
	// Mint associated with the account
	Mint solana.PublicKey

	// Owner of the account
	Owner solana.PublicKey

	// Number of tokens the account holds
	Amount uint64

	IsInitialized bool
	IsFrozen      bool

	// True for wrapped SOL accounts
	IsNative bool
}

// AccountLayout encodes and decodes the spl token account layout
// https://github.com/solana-labs/solana-program-library/blob/d72289c79a04411c69a8bf1054f7156b6196f9b3/token/js/src/state/account.ts#L69
type AccountLayout struct {
}

func (l *AccountLayout) Encode(account *Account) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := binary.NewBinEncoder(buf)

	state := AccountStateUninitialized
	switch {
	case account.IsFrozen:
		state = AccountStateFrozen
	case account.IsInitialized:
		state = AccountStateInitialized
	}
	var isNativeOption uint32
	if account.IsNative {
		isNativeOption = 1
	}

	for _, step := range []func() error{
		func() error { return enc.WriteBytes(account.Mint.Bytes(), false) },
		func() error { return enc.WriteBytes(account.Owner.Bytes(), false) },
		func() error { return enc.WriteUint64(account.Amount, bin.LittleEndian) },
		// no delegate
		func() error { return enc.WriteUint32(0, bin.LittleEndian) },
		func() error { return enc.WriteBytes(make([]byte, 32), false) },
		func() error { return enc.WriteUint8(uint8(state)) },
		func() error { return enc.WriteUint32(isNativeOption, bin.LittleEndian) },
		func() error { return enc.WriteUint64(0, bin.LittleEndian) },
		// delegated amount
		func() error { return enc.WriteUint64(0, bin.LittleEndian) },
		// no close authority
		func() error { return enc.WriteUint32(0, bin.LittleEndian) },
		func() error { return enc.WriteBytes(make([]byte, 32), false) },
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	if len(data) < TokenAccountSize {
		return nil, ErrAccountSize
	}
	dec := binary.NewBinDecoder(data)

	mint, err := dec.ReadNBytes(32)
	if err != nil {
		return nil, err
	}
	owner, err := dec.ReadNBytes(32)
	if err != nil {
		return nil, err
	}
	amount, err := dec.ReadUint64(bin.LittleEndian)
	if err != nil {
		return nil, err
	}
	// delegate option and key
	if _, err := dec.ReadNBytes(36); err != nil {
		return nil, err
	}
	state, err := dec.ReadUint8()
	if err != nil {
		return nil, err
	}
	isNativeOption, err := dec.ReadUint32(bin.LittleEndian)
	if err != nil {
		return nil, err
	}

	return &Account{
		Mint:          solana.PublicKeyFromBytes(mint),
		Owner:         solana.PublicKeyFromBytes(owner),
		Amount:        amount,
		IsInitialized: AccountState(state) != AccountStateUninitialized,
		IsFrozen:      AccountState(state) == AccountStateFrozen,
		IsNative:      isNativeOption > 0,
	}, nil
}
