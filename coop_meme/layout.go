package coop_meme

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
)

var ErrUnknownAccount = errors.New("unknown account discriminator")

func discriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

func accountKey(obj any) (string, error) {
	switch obj.(type) {
	case *ConfigData:
		return AccountKeyConfigData, nil
	case *MemeCoinData:
		return AccountKeyMemeCoinData, nil
	case *TokenVotes:
		return AccountKeyTokenVotes, nil
	case *UserTokenVotes:
		return AccountKeyUserTokenVotes, nil
	}
	return "", fmt.Errorf("unsupported account type %T", obj)
}

// EncodeAccount serializes a program account as discriminator + borsh body.
func EncodeAccount(obj any) ([]byte, error) {
	key, err := accountKey(obj)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	buf.Write(discriminator(key))
	if err := binary.NewBorshEncoder(buf).Encode(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseAnyAccount decodes account data by its discriminator.
func ParseAnyAccount(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, ErrUnknownAccount
	}
	var obj any
	switch {
	case bytes.Equal(data[:8], discriminator(AccountKeyConfigData)):
		obj = new(ConfigData)
	case bytes.Equal(data[:8], discriminator(AccountKeyMemeCoinData)):
		obj = new(MemeCoinData)
	case bytes.Equal(data[:8], discriminator(AccountKeyTokenVotes)):
		obj = new(TokenVotes)
	case bytes.Equal(data[:8], discriminator(AccountKeyUserTokenVotes)):
		obj = new(UserTokenVotes)
	default:
		return nil, ErrUnknownAccount
	}
	if err := binary.NewBorshDecoder(data[8:]).Decode(obj); err != nil {
		return nil, err
	}
	return obj, nil
}
