package u128

import (
	"errors"
	"math/big"

	binary "github.com/gagliardetto/binary"
)

var ErrOverflow = errors.New("value overflows Uint128")

func FromBigInt(i *big.Int) (binary.Uint128, error) {
	if i.Sign() < 0 {
		return binary.Uint128{}, errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return binary.Uint128{}, ErrOverflow
	}
	out := binary.NewUint128LittleEndian()
	v := new(big.Int).Set(i)
	out.Lo = v.Uint64()
	out.Hi = v.Rsh(v, 64).Uint64()
	return *out, nil
}

// Mul returns a*b as a Uint128, the product of two u64 always fits.
func Mul(a, b uint64) binary.Uint128 {
	p := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	out, _ := FromBigInt(p)
	return out
}

// Cmp compares x and y and returns -1, 0 or +1.
func Cmp(x, y binary.Uint128) int {
	return x.BigInt().Cmp(y.BigInt())
}
