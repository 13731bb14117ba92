package cp_amm

import "github.com/gagliardetto/solana-go"

var (
	ProgramID = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")

	// CreatePoolFeeReceiver collects the pool creation fee
	CreatePoolFeeReceiver = solana.MustPublicKeyFromBase58("DNXgeM9EiiaAbaWvwjHj9fQQLAX5ZsfHyvmYUNRAdNC8")
)

// PDA seeds
var (
	SeedAmmConfig   = []byte("amm_config")
	SeedPool        = []byte("pool")
	SeedPoolLpMint  = []byte("pool_lp_mint")
	SeedPoolVault   = []byte("pool_vault")
	SeedObservation = []byte("observation")
	SeedAuthority   = []byte("vault_and_lp_mint_auth_seed")
)

// LockedLpAmount is kept by the pool out of the initial liquidity
const LockedLpAmount uint64 = 100

// Instruction names used for anchor discriminators
const (
	InstructionInitialize     = "initialize"
	InstructionSwapBaseInput  = "swap_base_input"
	InstructionSwapBaseOutput = "swap_base_output"
)
