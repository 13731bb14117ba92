package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Sqrt returns floor(sqrt(x)) for a non-negative integral decimal.
func Sqrt(x decimal.Decimal) decimal.Decimal {
	if x.Sign() < 0 {
		panic("sqrt on negative decimal")
	}
	return decimal.NewFromBigInt(new(big.Int).Sqrt(x.BigInt()), 0)
}
