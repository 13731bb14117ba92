package solana

import (
	"bytes"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// MintDecimals is the precision of every mint held by the bank
const MintDecimals = 9

// Token represents a mint with its supply
type Token struct {
	token.Mint
	Address solana.PublicKey
}

// TokenLayout encodes and decodes the spl mint layout
type TokenLayout struct {
}

func (l *TokenLayout) Encode(t *Token) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.NewBinEncoder(buf).Encode(t.Mint); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	mint := token.Mint{}

	if err := binary.NewBinDecoder(data).Decode(&mint); err != nil {
		return nil, err
	}
	return &Token{Mint: mint}, nil
}
