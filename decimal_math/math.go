package decimal_math

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	ErrDivideByZero = errors.New("divide by zero")
	ErrOverflowU64  = errors.New("value overflows u64")
	ErrNegative     = errors.New("value is negative")

	maxU64 = decimal.NewFromUint64(math.MaxUint64)
)

func U64(v uint64) decimal.Decimal {
	return decimal.NewFromUint64(v)
}

// Quo is integer division truncated toward zero.
func Quo(x, y decimal.Decimal) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Quo(x.BigInt(), y.BigInt()), 0)
}

// QuoCeil is integer division rounded up, for non-negative operands.
func QuoCeil(x, y decimal.Decimal) decimal.Decimal {
	q, r := new(big.Int).QuoRem(x.BigInt(), y.BigInt(), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return decimal.NewFromBigInt(q, 0)
}

// MulDiv computes floor(x*y/d) without intermediate overflow.
func MulDiv(x, y, d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	return Quo(x.Mul(y), d), nil
}

// ToUint64 narrows an integral decimal to u64.
func ToUint64(x decimal.Decimal) (uint64, error) {
	if x.Sign() < 0 {
		return 0, ErrNegative
	}
	if x.Cmp(maxU64) > 0 {
		return 0, ErrOverflowU64
	}
	return x.BigInt().Uint64(), nil
}

// MulDivU64 is MulDiv over u64 operands with a checked u64 result.
func MulDivU64(x, y, d uint64) (uint64, error) {
	out, err := MulDiv(U64(x), U64(y), U64(d))
	if err != nil {
		return 0, err
	}
	return ToUint64(out)
}
