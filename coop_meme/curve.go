package coop_meme

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"

	dmath "github.com/krazyTry/coop-meme-go/decimal_math"
)

// SwapResult is a priced trade against the bonding curve
type SwapResult struct {
	Direction TradeDirection
	// sol for buys, tokens for sells
	AmountIn uint64
	// tokens for buys, net sol for sells
	AmountOut        uint64
	MinimumAmountOut uint64
	// sol that enters (buy) or leaves (sell) the reserves
	SolDelta   uint64
	TokenDelta uint64
	Fee        FeeBreakdown
	// micro-lamports per whole token
	Price decimal.Decimal

	ConstantProductBefore binary.Uint128
	ConstantProductAfter  binary.Uint128
}

func overflow(err error) error {
	return fmt.Errorf("%w: %v", ErrArithmeticOverflow, err)
}

// EffectivePrice is sol*10^15/tokens, i.e. micro-lamports per whole token.
func EffectivePrice(sol, tokens uint64) (decimal.Decimal, error) {
	if tokens == 0 {
		return decimal.Zero, fmt.Errorf("%w: zero token amount", ErrArithmeticOverflow)
	}
	return dmath.Quo(dmath.U64(sol).Mul(PriceScale), dmath.U64(tokens)), nil
}

// GetTokensOut returns virtualToken - floor(virtualSol*virtualToken/(virtualSol+solIn)),
// computed as ceil(virtualToken*solIn/(virtualSol+solIn)).
func GetTokensOut(virtualSol, virtualToken, solIn uint64) (uint64, error) {
	if virtualSol == 0 || virtualToken == 0 {
		return 0, fmt.Errorf("%w: zero reserve", ErrArithmeticOverflow)
	}
	return ceilMulDiv(virtualToken, solIn, virtualSol)
}

// GetSolOut returns virtualSol - floor(virtualSol*virtualToken/(virtualToken+tokensIn)).
func GetSolOut(virtualSol, virtualToken, tokensIn uint64) (uint64, error) {
	if virtualSol == 0 || virtualToken == 0 {
		return 0, fmt.Errorf("%w: zero reserve", ErrArithmeticOverflow)
	}
	return ceilMulDiv(virtualSol, tokensIn, virtualToken)
}

// ceilMulDiv returns ceil(reserve*in/(base+in)).
func ceilMulDiv(reserve, in, base uint64) (uint64, error) {
	out := dmath.QuoCeil(dmath.U64(reserve).Mul(dmath.U64(in)), dmath.U64(base).Add(dmath.U64(in)))
	v, err := dmath.ToUint64(out)
	if err != nil {
		return 0, overflow(err)
	}
	return v, nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	if a+b < a {
		return 0, fmt.Errorf("%w: %d + %d", ErrArithmeticOverflow, a, b)
	}
	return a + b, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrArithmeticOverflow, a, b)
	}
	return a - b, nil
}

// QuoteBuy prices spending solIn on the curve.
func QuoteBuy(cfg *ConfigData, coin *MemeCoinData, solIn, minTokensOut uint64) (*SwapResult, error) {
	fee, err := GetTradeFee(cfg, solIn)
	if err != nil {
		return nil, err
	}
	solNet := solIn - fee.Total()

	// the reserves must still fit after the trade
	if _, err := checkedAdd(coin.VirtualSolReserves, solNet); err != nil {
		return nil, err
	}
	if _, err := checkedAdd(coin.RealSolReserves, solNet); err != nil {
		return nil, err
	}

	tokensOut, err := GetTokensOut(coin.VirtualSolReserves, coin.VirtualTokenReserves, solNet)
	if err != nil {
		return nil, err
	}
	if tokensOut == 0 {
		return nil, fmt.Errorf("%w: zero tokens out", ErrSlippageExceeded)
	}
	if tokensOut < minTokensOut {
		return nil, fmt.Errorf("%w: tokens out %d < minimum %d", ErrSlippageExceeded, tokensOut, minTokensOut)
	}
	if tokensOut > coin.RealTokenReserves {
		return nil, fmt.Errorf("%w: tokens out %d > real token reserves %d", ErrInsufficientBalance, tokensOut, coin.RealTokenReserves)
	}

	price, err := EffectivePrice(solNet, tokensOut)
	if err != nil {
		return nil, err
	}
	if price.LessThan(decimal.NewFromInt(int64(cfg.MinPricePerToken))) ||
		price.GreaterThan(decimal.NewFromInt(int64(cfg.MaxPricePerToken))) {
		return nil, fmt.Errorf("%w: price %s outside [%d, %d]", ErrSlippageExceeded, price, cfg.MinPricePerToken, cfg.MaxPricePerToken)
	}

	result := &SwapResult{
		Direction:             TradeDirectionBuy,
		AmountIn:              solIn,
		AmountOut:             tokensOut,
		MinimumAmountOut:      minTokensOut,
		SolDelta:              solNet,
		TokenDelta:            tokensOut,
		Fee:                   fee,
		Price:                 price,
		ConstantProductBefore: coin.ConstantProduct(),
	}
	after, err := ApplySwap(coin, result)
	if err != nil {
		return nil, err
	}
	result.ConstantProductAfter = after.ConstantProduct()
	return result, nil
}

// QuoteSell prices selling tokensIn to the curve, fees come out of the sol.
func QuoteSell(cfg *ConfigData, coin *MemeCoinData, tokensIn, minSolOut uint64) (*SwapResult, error) {
	if tokensIn == 0 {
		return nil, fmt.Errorf("%w: zero tokens in", ErrSlippageExceeded)
	}
	if tokensIn > coin.SoldTokens() {
		return nil, fmt.Errorf("%w: tokens in %d > tokens sold by curve %d", ErrInsufficientBalance, tokensIn, coin.SoldTokens())
	}
	if _, err := checkedAdd(coin.VirtualTokenReserves, tokensIn); err != nil {
		return nil, err
	}

	solOut, err := GetSolOut(coin.VirtualSolReserves, coin.VirtualTokenReserves, tokensIn)
	if err != nil {
		return nil, err
	}
	if solOut > coin.RealSolReserves {
		return nil, fmt.Errorf("%w: sol out %d > real sol reserves %d", ErrInsufficientBalance, solOut, coin.RealSolReserves)
	}

	fee, err := GetTradeFee(cfg, solOut)
	if err != nil {
		return nil, err
	}
	net := solOut - fee.Total()
	if net < minSolOut {
		return nil, fmt.Errorf("%w: sol out %d < minimum %d", ErrSlippageExceeded, net, minSolOut)
	}

	price, err := EffectivePrice(solOut, tokensIn)
	if err != nil {
		return nil, err
	}

	result := &SwapResult{
		Direction:             TradeDirectionSell,
		AmountIn:              tokensIn,
		AmountOut:             net,
		MinimumAmountOut:      minSolOut,
		SolDelta:              solOut,
		TokenDelta:            tokensIn,
		Fee:                   fee,
		Price:                 price,
		ConstantProductBefore: coin.ConstantProduct(),
	}
	after, err := ApplySwap(coin, result)
	if err != nil {
		return nil, err
	}
	result.ConstantProductAfter = after.ConstantProduct()
	return result, nil
}

// ApplySwap returns a copy of coin with the trade applied. Virtual and real
// reserves move by the same delta. The first buy starts the bonding curve.
func ApplySwap(coin *MemeCoinData, r *SwapResult) (*MemeCoinData, error) {
	next := coin.Clone()
	var err error
	switch r.Direction {
	case TradeDirectionBuy:
		if next.VirtualSolReserves, err = checkedAdd(next.VirtualSolReserves, r.SolDelta); err != nil {
			return nil, err
		}
		if next.RealSolReserves, err = checkedAdd(next.RealSolReserves, r.SolDelta); err != nil {
			return nil, err
		}
		if next.VirtualTokenReserves, err = checkedSub(next.VirtualTokenReserves, r.TokenDelta); err != nil {
			return nil, err
		}
		if next.RealTokenReserves, err = checkedSub(next.RealTokenReserves, r.TokenDelta); err != nil {
			return nil, err
		}
		if next.State == MarketStateCreated {
			next.State = MarketStateActive
		}
	case TradeDirectionSell:
		if next.VirtualSolReserves, err = checkedSub(next.VirtualSolReserves, r.SolDelta); err != nil {
			return nil, err
		}
		if next.RealSolReserves, err = checkedSub(next.RealSolReserves, r.SolDelta); err != nil {
			return nil, err
		}
		if next.VirtualTokenReserves, err = checkedAdd(next.VirtualTokenReserves, r.TokenDelta); err != nil {
			return nil, err
		}
		if next.RealTokenReserves, err = checkedAdd(next.RealTokenReserves, r.TokenDelta); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown trade direction %d", r.Direction)
	}
	return next, nil
}
