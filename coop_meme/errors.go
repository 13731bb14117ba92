package coop_meme

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrTradingInactive     = errors.New("trading is not active")
	ErrSlippageExceeded    = errors.New("slippage exceeded")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientStake   = errors.New("insufficient stake")
	ErrNotEligible         = errors.New("not eligible")
	ErrTooEarly            = errors.New("too early")
	ErrAlreadyListed       = errors.New("token already listed")
	ErrAlreadyFinalized    = errors.New("voting already finalized")
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")

	ErrInvalidMetadata    = errors.New("invalid token metadata")
	ErrInvalidVote        = errors.New("invalid vote")
	ErrAlreadyInitialized = errors.New("config already initialized")
	ErrNotInitialized     = errors.New("config not initialized")
	ErrTokenNotFound      = errors.New("token not found")
)

var errorCodes = []error{
	ErrUnauthorized,
	ErrInvalidConfig,
	ErrTradingInactive,
	ErrSlippageExceeded,
	ErrInsufficientBalance,
	ErrInsufficientStake,
	ErrNotEligible,
	ErrTooEarly,
	ErrAlreadyListed,
	ErrAlreadyFinalized,
	ErrArithmeticOverflow,
	ErrInvalidMetadata,
	ErrInvalidVote,
	ErrAlreadyInitialized,
	ErrNotInitialized,
	ErrTokenNotFound,
}

// ErrorCode maps err to its anchor custom error code (6000 + index).
// It returns 0 for nil and -1 for errors outside the program taxonomy.
func ErrorCode(err error) int {
	if err == nil {
		return 0
	}
	for i, e := range errorCodes {
		if errors.Is(err, e) {
			return 6000 + i
		}
	}
	return -1
}
