package game

import (
	"fmt"

	"github.com/rustyeddy/flashtrade/market"
	"github.com/rustyeddy/flashtrade/sim"
)

// Limits bound what a player may pick in REAL mode. The engine itself only
// enforces TradeConfig.Validate.
type Limits struct {
	MinLeverage   int     `json:"min_leverage" yaml:"min_leverage"`
	MaxLeverage   int     `json:"max_leverage" yaml:"max_leverage"`
	MinTakeProfit float64 `json:"min_take_profit" yaml:"min_take_profit"`
	MaxTakeProfit float64 `json:"max_take_profit" yaml:"max_take_profit"`
	MinStopLoss   float64 `json:"min_stop_loss" yaml:"min_stop_loss"`
	MaxStopLoss   float64 `json:"max_stop_loss" yaml:"max_stop_loss"`
	MinStake      float64 `json:"min_stake" yaml:"min_stake"`
	MaxStake      float64 `json:"max_stake" yaml:"max_stake"`
}

// DefaultLimits are 1-3x leverage, 10-30% take-profit, 5-20% stop-loss and
// a stake of 1 to 10000.
func DefaultLimits() Limits {
	return Limits{
		MinLeverage:   1,
		MaxLeverage:   3,
		MinTakeProfit: 0.10,
		MaxTakeProfit: 0.30,
		MinStopLoss:   0.05,
		MaxStopLoss:   0.20,
		MinStake:      1,
		MaxStake:      10000,
	}
}

// Validate checks that the limits are internally consistent.
func (l Limits) Validate() error {
	if l.MinLeverage < 1 || l.MaxLeverage < l.MinLeverage {
		return fmt.Errorf("leverage limits must satisfy 1 <= min <= max")
	}
	if l.MinTakeProfit <= 0 || l.MaxTakeProfit > 1 || l.MaxTakeProfit < l.MinTakeProfit {
		return fmt.Errorf("take_profit limits must satisfy 0 < min <= max <= 1")
	}
	if l.MinStopLoss <= 0 || l.MaxStopLoss > 1 || l.MaxStopLoss < l.MinStopLoss {
		return fmt.Errorf("stop_loss limits must satisfy 0 < min <= max <= 1")
	}
	if l.MinStake <= 0 || l.MaxStake < l.MinStake {
		return fmt.Errorf("stake limits must satisfy 0 < min <= max")
	}
	return nil
}

// CheckLimits rejects a configuration outside l or on an unlisted symbol.
// Errors wrap sim.ErrInvalidConfig.
func CheckLimits(cfg sim.TradeConfig, l Limits) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !market.IsKnown(cfg.Symbol) {
		return fmt.Errorf("%w: %w", sim.ErrInvalidConfig, market.ErrUnknownSymbol)
	}
	if cfg.Leverage < l.MinLeverage || cfg.Leverage > l.MaxLeverage {
		return fmt.Errorf("%w: leverage %d outside %d-%d", sim.ErrInvalidConfig, cfg.Leverage, l.MinLeverage, l.MaxLeverage)
	}
	if cfg.TakeProfit < l.MinTakeProfit || cfg.TakeProfit > l.MaxTakeProfit {
		return fmt.Errorf("%w: take_profit %.2f outside %.2f-%.2f", sim.ErrInvalidConfig, cfg.TakeProfit, l.MinTakeProfit, l.MaxTakeProfit)
	}
	if cfg.StopLoss < l.MinStopLoss || cfg.StopLoss > l.MaxStopLoss {
		return fmt.Errorf("%w: stop_loss %.2f outside %.2f-%.2f", sim.ErrInvalidConfig, cfg.StopLoss, l.MinStopLoss, l.MaxStopLoss)
	}
	if cfg.Stake < l.MinStake || cfg.Stake > l.MaxStake {
		return fmt.Errorf("%w: stake %.2f outside %.2f-%.2f", sim.ErrInvalidConfig, cfg.Stake, l.MinStake, l.MaxStake)
	}
	return nil
}
