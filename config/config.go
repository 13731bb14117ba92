package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"github.com/krazyTry/coop-meme-go/coop_meme"
	"github.com/krazyTry/coop-meme-go/logger"
)

// EnvPrefix prefixes every environment override, e.g. COOPMEME_MARKET_TEAM_FEE.
const EnvPrefix = "COOPMEME"

type Config struct {
	Admin          string        `mapstructure:"admin"`
	TeamWallet     string        `mapstructure:"team_wallet"`
	AmmConfigIndex uint16        `mapstructure:"amm_config_index"`
	Market         MarketConfig  `mapstructure:"market"`
	Log            logger.Config `mapstructure:"log"`
}

// MarketConfig mirrors the admin-mutable fields of the on-chain config
type MarketConfig struct {
	TeamFee          uint16 `mapstructure:"team_fee"`
	OwnerFee         uint16 `mapstructure:"owner_fee"`
	AffiliatedFee    uint16 `mapstructure:"affiliated_fee"`
	ListingFee       uint16 `mapstructure:"listing_fee"`
	CoopInterval     uint64 `mapstructure:"coop_interval"`
	FairlaunchPeriod uint32 `mapstructure:"fairlaunch_period"`
	MinPricePerToken uint32 `mapstructure:"min_price_per_token"`
	MaxPricePerToken uint32 `mapstructure:"max_price_per_token"`
	InitVirtualSol   uint64 `mapstructure:"init_virtual_sol"`
	InitVirtualToken uint64 `mapstructure:"init_virtual_token"`
}

func defaults() map[string]any {
	return map[string]any{
		"admin":                      "",
		"team_wallet":                "",
		"amm_config_index":           0,
		"market.team_fee":            coop_meme.DefaultTeamFee,
		"market.owner_fee":           coop_meme.DefaultOwnerFee,
		"market.affiliated_fee":      coop_meme.DefaultAffiliatedFee,
		"market.listing_fee":         coop_meme.DefaultListingFee,
		"market.coop_interval":       coop_meme.DefaultCoopInterval,
		"market.fairlaunch_period":   coop_meme.DefaultFairlaunchPeriod,
		"market.min_price_per_token": coop_meme.DefaultMinPricePerToken,
		"market.max_price_per_token": coop_meme.DefaultMaxPricePerToken,
		"market.init_virtual_sol":    coop_meme.DefaultInitVirtualSol,
		"market.init_virtual_token":  coop_meme.DefaultInitVirtualToken,
		"log.level":                  logger.DefaultLevel,
		"log.file":                   "",
		"log.max_size":               logger.DefaultMaxSize,
		"log.max_backups":            logger.DefaultMaxBackups,
		"log.max_age":                logger.DefaultMaxAge,
		"log.compress":               false,
		"log.development":            false,
	}
}

// Load reads path, if given, and applies environment overrides on top.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

// Validate checks the wallets and the market parameters as the
// registry would on initialize.
func (c *Config) Validate() error {
	admin, err := c.AdminKey()
	if err != nil {
		return err
	}
	team, err := c.TeamWalletKey()
	if err != nil {
		return err
	}
	cfg, err := coop_meme.NewConfig(admin, team)
	if err != nil {
		return err
	}
	cfg, err = coop_meme.UpdateConfig(cfg, admin, c.UpdateParams())
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) AdminKey() (solana.PublicKey, error) {
	return parseKey("admin", c.Admin)
}

func (c *Config) TeamWalletKey() (solana.PublicKey, error) {
	return parseKey("team_wallet", c.TeamWallet)
}

// UpdateParams sets every market field of the registry.
func (c *Config) UpdateParams() *coop_meme.UpdateConfigParams {
	m := c.Market
	return &coop_meme.UpdateConfigParams{
		TeamFee:          &m.TeamFee,
		OwnerFee:         &m.OwnerFee,
		AffiliatedFee:    &m.AffiliatedFee,
		ListingFee:       &m.ListingFee,
		CoopInterval:     &m.CoopInterval,
		FairlaunchPeriod: &m.FairlaunchPeriod,
		MinPricePerToken: &m.MinPricePerToken,
		MaxPricePerToken: &m.MaxPricePerToken,
		InitVirtualSol:   &m.InitVirtualSol,
		InitVirtualToken: &m.InitVirtualToken,
	}
}

func parseKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, errors.New("missing " + name + " in configuration")
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return key, nil
}
