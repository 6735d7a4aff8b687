package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/flashtrade/game"
	"github.com/rustyeddy/flashtrade/market"
	"github.com/rustyeddy/flashtrade/sim"
	"gopkg.in/yaml.v3"
)

// Config represents the complete game configuration
type Config struct {
	Round   RoundConfig   `json:"round" yaml:"round"`
	Game    GameConfig    `json:"game" yaml:"game"`
	Market  MarketConfig  `json:"market" yaml:"market"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// RoundConfig contains the round mechanics
type RoundConfig struct {
	TickInterval      string `json:"tick_interval" yaml:"tick_interval"` // e.g. "200ms"
	HorizonSimSeconds int    `json:"horizon_sim_seconds" yaml:"horizon_sim_seconds"`
	SimSecondsPerTick int    `json:"sim_seconds_per_tick" yaml:"sim_seconds_per_tick"`
	HistoryPoints     int    `json:"history_points" yaml:"history_points"`
	HistoryCap        int    `json:"history_cap" yaml:"history_cap"`
}

// ParseTickInterval converts the tick interval string to time.Duration
func (r RoundConfig) ParseTickInterval() (time.Duration, error) {
	if r.TickInterval == "" {
		return sim.DefaultTickInterval, nil
	}
	return time.ParseDuration(r.TickInterval)
}

// Params converts the round section into engine parameters
func (r RoundConfig) Params() sim.Params {
	return sim.Params{
		HorizonSimSeconds: r.HorizonSimSeconds,
		SimSecondsPerTick: r.SimSecondsPerTick,
		HistoryPoints:     r.HistoryPoints,
		HistoryCap:        r.HistoryCap,
	}
}

// GameConfig contains mode, volatility and wallet parameters
type GameConfig struct {
	Mode           string      `json:"mode" yaml:"mode"` // "FUN" or "REAL"
	FunVolatility  float64     `json:"fun_volatility" yaml:"fun_volatility"`
	RealVolatility float64     `json:"real_volatility" yaml:"real_volatility"`
	InitialBalance float64     `json:"initial_balance" yaml:"initial_balance"`
	BonusAmount    float64     `json:"bonus_amount" yaml:"bonus_amount"`
	Seed           int64       `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 picks a random seed
	Limits         game.Limits `json:"limits" yaml:"limits"`
}

// Volatility returns the configured per-tick volatility for mode
func (g GameConfig) Volatility(mode game.Mode) float64 {
	if mode == game.ModeFun {
		return g.FunVolatility
	}
	return g.RealVolatility
}

// MarketConfig overrides or extends the built-in base prices
type MarketConfig struct {
	BasePrices map[string]float64 `json:"base_prices,omitempty" yaml:"base_prices,omitempty"`
}

// Lookup returns the base price lookup honoring overrides
func (m MarketConfig) Lookup() market.BasePriceLookup {
	return market.LookupWithOverrides(m.BasePrices)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	RoundsFile  string `json:"rounds_file,omitempty" yaml:"rounds_file,omitempty"`
	TicksFile   string `json:"ticks_file,omitempty" yaml:"ticks_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	RecordTicks bool   `json:"record_ticks,omitempty" yaml:"record_ticks,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing fields keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Round.ParseTickInterval(); err != nil {
		return fmt.Errorf("round.tick_interval: %w", err)
	}
	if d, _ := c.Round.ParseTickInterval(); d <= 0 {
		return fmt.Errorf("round.tick_interval must be positive")
	}
	if err := c.Round.Params().Validate(); err != nil {
		return fmt.Errorf("round.%w", err)
	}
	if _, err := game.ParseMode(c.Game.Mode); err != nil {
		return fmt.Errorf("game.%w", err)
	}
	if c.Game.FunVolatility <= 0 || c.Game.RealVolatility <= 0 {
		return fmt.Errorf("game volatilities must be positive")
	}
	if c.Game.FunVolatility >= 2 || c.Game.RealVolatility >= 2 {
		return fmt.Errorf("game volatilities must be below 2")
	}
	if c.Game.InitialBalance < 0 || c.Game.BonusAmount < 0 {
		return fmt.Errorf("game balances must not be negative")
	}
	if err := c.Game.Limits.Validate(); err != nil {
		return fmt.Errorf("game.limits: %w", err)
	}
	for sym, p := range c.Market.BasePrices {
		if p <= 0 {
			return fmt.Errorf("market.base_prices[%s] must be positive", sym)
		}
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RoundsFile == "" {
			return fmt.Errorf("journal rounds_file required for CSV type")
		}
		if c.Journal.RecordTicks && c.Journal.TicksFile == "" {
			return fmt.Errorf("journal ticks_file required when record_ticks is set")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	p := sim.DefaultParams()
	return &Config{
		Round: RoundConfig{
			TickInterval:      sim.DefaultTickInterval.String(),
			HorizonSimSeconds: p.HorizonSimSeconds,
			SimSecondsPerTick: p.SimSecondsPerTick,
			HistoryPoints:     p.HistoryPoints,
			HistoryCap:        p.HistoryCap,
		},
		Game: GameConfig{
			Mode:           string(game.ModeFun),
			FunVolatility:  game.FunVolatility,
			RealVolatility: game.RealVolatility,
			InitialBalance: 10000,
			BonusAmount:    5,
			Limits:         game.DefaultLimits(),
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
