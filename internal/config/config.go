// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the dice binary reads
type Config struct {
	// Redis connection
	RedisAddr     string `env:"DICE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"DICE_REDIS_PASSWORD"`
	RedisDB       int    `env:"DICE_REDIS_DB" envDefault:"0"`

	// Table namespaces the round state so several games can share one Redis
	Table string `env:"DICE_TABLE" envDefault:"default"`

	// Accounts
	Operator     string `env:"DICE_OPERATOR"`
	FeeCollector string `env:"DICE_FEE_COLLECTOR" envDefault:"fees"`
	PoolAccount  string `env:"DICE_POOL_ACCOUNT" envDefault:"pool"`

	// Access gating
	AccessAsset string `env:"DICE_ACCESS_ASSET" envDefault:"pass"`
	AccessFee   uint64 `env:"DICE_ACCESS_FEE" envDefault:"0"`

	MaxEntries int `env:"DICE_MAX_ENTRIES" envDefault:"250"`

	// Block clock used as the height source
	Genesis       time.Time     `env:"DICE_GENESIS" envDefault:"2025-01-01T00:00:00Z"`
	BlockInterval time.Duration `env:"DICE_BLOCK_INTERVAL" envDefault:"15s"`

	// HistoryDB is a SQLite path for the settlement archive, empty keeps it in Redis
	HistoryDB string `env:"DICE_HISTORY_DB"`

	// Logging
	LogFile  string `env:"DICE_LOG_FILE"`
	LogLevel string `env:"DICE_LOG_LEVEL" envDefault:"info"`

	// Decimals is how many fractional digits amounts are displayed with
	Decimals int32 `env:"DICE_DECIMALS" envDefault:"0"`
}

// Load reads the given .env files (".env" when none are named), then parses
// DICE_* variables. Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BlockInterval <= 0 {
		return errors.New("DICE_BLOCK_INTERVAL must be positive")
	}
	if c.MaxEntries <= 0 || c.MaxEntries > 250 {
		return errors.New("DICE_MAX_ENTRIES must be between 1 and 250")
	}
	if c.Decimals < 0 || c.Decimals > 18 {
		return errors.New("DICE_DECIMALS must be between 0 and 18")
	}
	if c.FeeCollector == c.PoolAccount {
		return errors.New("DICE_FEE_COLLECTOR and DICE_POOL_ACCOUNT must differ")
	}
	return nil
}
