package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rustyeddy/flashtrade/market"
	"github.com/rustyeddy/flashtrade/sim"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("fun")
	require.NoError(t, err)
	assert.Equal(t, ModeFun, m)
	assert.Equal(t, FunVolatility, m.Volatility())

	m, err = ParseMode("REAL")
	require.NoError(t, err)
	assert.Equal(t, RealVolatility, m.Volatility())

	_, err = ParseMode("demo")
	assert.Error(t, err)
}

func TestRandomConfigWithinLimits(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(99))
	limits := DefaultLimits()
	seenLong, seenShort := false, false

	for i := 0; i < 2000; i++ {
		cfg := RandomConfig(rng, nil)
		require.NoError(t, CheckLimits(cfg, limits), "%+v", cfg)
		assert.True(t, market.IsKnown(cfg.Symbol))
		assert.Zero(t, int(cfg.Stake)%100)
		assert.GreaterOrEqual(t, cfg.Stake, 100.0)
		assert.LessOrEqual(t, cfg.Stake, 1000.0)
		if cfg.Direction == sim.Long {
			seenLong = true
		} else {
			seenShort = true
		}
	}
	assert.True(t, seenLong)
	assert.True(t, seenShort)
}

func TestRandomConfigCustomSymbols(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		assert.Equal(t, "ZECUSDT", RandomConfig(rng, []string{"ZECUSDT"}).Symbol)
	}
}

func TestCheckLimits(t *testing.T) {
	t.Parallel()

	good := sim.TradeConfig{Symbol: "BTCUSDT", Stake: 1000, Direction: sim.Long, Leverage: 2, TakeProfit: 0.2, StopLoss: 0.1}
	require.NoError(t, CheckLimits(good, DefaultLimits()))

	tests := []struct {
		name   string
		mutate func(*sim.TradeConfig)
		errMsg string
	}{
		{"leverage too high", func(c *sim.TradeConfig) { c.Leverage = 5 }, "leverage 5 outside 1-3"},
		{"take profit too low", func(c *sim.TradeConfig) { c.TakeProfit = 0.05 }, "take_profit"},
		{"stop loss too high", func(c *sim.TradeConfig) { c.StopLoss = 0.5 }, "stop_loss"},
		{"stake too high", func(c *sim.TradeConfig) { c.Stake = 20000 }, "stake"},
		{"unknown symbol", func(c *sim.TradeConfig) { c.Symbol = "EUR_USD" }, "unknown symbol"},
		{"engine rule", func(c *sim.TradeConfig) { c.Stake = 0 }, "stake must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := good
			tt.mutate(&cfg)
			err := CheckLimits(cfg, DefaultLimits())
			require.Error(t, err)
			assert.True(t, errors.Is(err, sim.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLimitsValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultLimits().Validate())

	l := DefaultLimits()
	l.MaxLeverage = 0
	assert.Error(t, l.Validate())

	l = DefaultLimits()
	l.MaxTakeProfit = 2
	assert.Error(t, l.Validate())

	l = DefaultLimits()
	l.MinStopLoss = 0
	assert.Error(t, l.Validate())

	l = DefaultLimits()
	l.MinStake = 50
	l.MaxStake = 10
	assert.Error(t, l.Validate())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fraction float64
		amount   float64
		want     Grade
	}{
		{"loss", -0.1, -100, GradeLoss},
		{"break even", 0, 0, GradeSmallWin},
		{"small win", 0.2, 200, GradeSmallWin},
		{"exactly half", 0.5, 500, GradeSmallWin},
		{"big win", 0.6, 600, GradeBigWin},
	}

	for _, tt := range tests {
		s := sim.RoundState{PnLFraction: tt.fraction, PnLAmount: tt.amount}
		assert.Equal(t, tt.want, Classify(s), tt.name)
		assert.Equal(t, tt.amount >= 0, Profitable(s), tt.name)
	}
}

func TestWallet(t *testing.T) {
	t.Parallel()

	w := NewWallet(DefaultFunBalance)
	assert.Equal(t, "10000.00 U", w.String())
	assert.True(t, w.MaxStake().Equal(decimal.NewFromInt(10000)))
	assert.True(t, w.CanStake(10000))
	assert.False(t, w.CanStake(10000.01))
	assert.False(t, w.CanStake(0))

	w.ClaimBonus(DefaultBonus)
	assert.True(t, w.Bonus())
	assert.True(t, w.Balance().Equal(decimal.NewFromInt(5)))
	assert.True(t, w.MaxStake().Equal(decimal.NewFromInt(5)))
	assert.False(t, w.CanStake(10))

	require.NoError(t, w.DepositString("100.10"))
	assert.False(t, w.Bonus())
	assert.Equal(t, "105.10 U", w.String())

	err := w.Deposit(decimal.Zero)
	assert.True(t, errors.Is(err, ErrNonPositiveDeposit))
	err = w.DepositString("-3")
	assert.True(t, errors.Is(err, ErrNonPositiveDeposit))
	assert.Error(t, w.DepositString("lots"))
	assert.Equal(t, "105.10 U", w.String())
}
