package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/flashtrade/game"
	"github.com/rustyeddy/flashtrade/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "FUN", cfg.Game.Mode)
	assert.Equal(t, 10000.0, cfg.Game.InitialBalance)
	assert.Equal(t, sim.DefaultParams(), cfg.Round.Params())
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.Round.ParseTickInterval()
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, d)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "bad tick interval",
			mutate:  func(c *Config) { c.Round.TickInterval = "soon" },
			wantErr: true,
			errMsg:  "round.tick_interval",
		},
		{
			name:    "negative tick interval",
			mutate:  func(c *Config) { c.Round.TickInterval = "-1s" },
			wantErr: true,
			errMsg:  "round.tick_interval must be positive",
		},
		{
			name:    "zero horizon",
			mutate:  func(c *Config) { c.Round.HorizonSimSeconds = 0 },
			wantErr: true,
			errMsg:  "round.horizon_sim_seconds must be positive",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Game.Mode = "DEMO" },
			wantErr: true,
			errMsg:  "game.mode",
		},
		{
			name:    "zero volatility",
			mutate:  func(c *Config) { c.Game.RealVolatility = 0 },
			wantErr: true,
			errMsg:  "game volatilities must be positive",
		},
		{
			name:    "huge volatility",
			mutate:  func(c *Config) { c.Game.FunVolatility = 3 },
			wantErr: true,
			errMsg:  "game volatilities must be below 2",
		},
		{
			name:    "bad limits",
			mutate:  func(c *Config) { c.Game.Limits.MaxLeverage = 0 },
			wantErr: true,
			errMsg:  "game.limits",
		},
		{
			name:    "non-positive base price",
			mutate:  func(c *Config) { c.Market.BasePrices = map[string]float64{"BTCUSDT": 0} },
			wantErr: true,
			errMsg:  "market.base_prices[BTCUSDT] must be positive",
		},
		{
			name:    "csv without rounds file",
			mutate:  func(c *Config) { c.Journal.Type = "csv" },
			wantErr: true,
			errMsg:  "journal rounds_file required",
		},
		{
			name: "csv ticks without ticks file",
			mutate: func(c *Config) {
				c.Journal = JournalConfig{Type: "csv", RoundsFile: "rounds.csv", RecordTicks: true}
			},
			wantErr: true,
			errMsg:  "journal ticks_file required",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Journal.Type = "sqlite" },
			wantErr: true,
			errMsg:  "journal db_path required",
		},
		{
			name:    "unknown journal",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: true,
			errMsg:  "journal.type must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Game.Mode = "REAL"
			cfg.Market.BasePrices = map[string]float64{"BTCUSDT": 70000}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Round, loaded.Round)
			assert.Equal(t, cfg.Game, loaded.Game)
			assert.Equal(t, cfg.Market.BasePrices, loaded.Market.BasePrices)
			assert.Equal(t, cfg.Journal, loaded.Journal)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  mode: REAL\nround:\n  tick_interval: 50ms\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "REAL", cfg.Game.Mode)
	assert.Equal(t, "50ms", cfg.Round.TickInterval)
	assert.Equal(t, 3600, cfg.Round.HorizonSimSeconds)
	assert.Equal(t, game.DefaultLimits(), cfg.Game.Limits)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("round: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestVolatilityAndLookup(t *testing.T) {
	cfg := Default()
	assert.Equal(t, game.FunVolatility, cfg.Game.Volatility(game.ModeFun))
	assert.Equal(t, game.RealVolatility, cfg.Game.Volatility(game.ModeReal))

	cfg.Market.BasePrices = map[string]float64{"ETHUSDT": 4000}
	p, ok := cfg.Market.Lookup()("ETHUSDT")
	assert.True(t, ok)
	assert.Equal(t, 4000.0, p)
}
