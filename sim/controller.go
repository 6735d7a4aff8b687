package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/flashtrade/internal/id"
	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/market"
)

// Params are the fixed round mechanics.
type Params struct {
	HorizonSimSeconds int `json:"horizon_sim_seconds" yaml:"horizon_sim_seconds"`
	SimSecondsPerTick int `json:"sim_seconds_per_tick" yaml:"sim_seconds_per_tick"`
	HistoryPoints     int `json:"history_points" yaml:"history_points"`
	HistoryCap        int `json:"history_cap" yaml:"history_cap"`
}

// DefaultParams is a one hour simulated round that burns 5 simulated seconds
// per tick, seeded with 20 points and charting the latest 50.
func DefaultParams() Params {
	return Params{
		HorizonSimSeconds: 3600,
		SimSecondsPerTick: 5,
		HistoryPoints:     20,
		HistoryCap:        50,
	}
}

// Validate rejects mechanics that could never end a round or seed a price.
func (p Params) Validate() error {
	if p.HorizonSimSeconds <= 0 {
		return fmt.Errorf("horizon_sim_seconds must be positive")
	}
	if p.SimSecondsPerTick <= 0 {
		return fmt.Errorf("sim_seconds_per_tick must be positive")
	}
	if p.HistoryPoints <= 0 {
		return fmt.Errorf("history_points must be positive")
	}
	if p.HistoryCap < 0 {
		return fmt.Errorf("history_cap must not be negative")
	}
	return nil
}

// MaxTicks is the number of ticks after which a round always times out.
func (p Params) MaxTicks() int {
	return (p.HorizonSimSeconds + p.SimSecondsPerTick - 1) / p.SimSecondsPerTick
}

// Controller performs round transitions. It holds no per-round state, so one
// controller may serve any number of rounds as long as its RandomSource is
// used from a single goroutine.
type Controller struct {
	Params  Params
	Process *PriceProcess
	Stepper Stepper                // in-round price steps; nil uses Process
	Lookup  market.BasePriceLookup // nil uses market.DefaultLookup
	Logger  *slog.Logger
}

// NewController builds a controller whose prices are driven by rng.
func NewController(params Params, rng RandomSource) *Controller {
	return &Controller{
		Params:  params,
		Process: NewPriceProcess(rng),
	}
}

func (c *Controller) stepper() Stepper {
	if c.Stepper != nil {
		return c.Stepper
	}
	return c.Process
}

func (c *Controller) log() *slog.Logger {
	return logger.Or(c.Logger)
}

// Start validates cfg, seeds the price history and opens a round at the last
// seeded price.
func (c *Controller) Start(cfg TradeConfig, nowMs int64) (RoundState, error) {
	if err := cfg.Validate(); err != nil {
		return RoundState{}, err
	}
	if err := c.Params.Validate(); err != nil {
		return RoundState{}, fmt.Errorf("round params: %w", err)
	}

	roundID, err := id.NewAt(time.UnixMilli(nowMs))
	if err != nil {
		return RoundState{}, fmt.Errorf("round id: %w", err)
	}

	history := c.Process.SeedHistory(cfg.Symbol, c.Params.HistoryPoints, c.Lookup, nowMs)
	if c.Params.HistoryCap > 0 && len(history) > c.Params.HistoryCap {
		history = history[len(history)-c.Params.HistoryCap:]
	}
	entry, _ := market.Last(history)

	s := RoundState{
		ID:                  roundID,
		Config:              cfg,
		EntryPrice:          entry.Price,
		CurrentPrice:        entry.Price,
		RemainingSimSeconds: c.Params.HorizonSimSeconds,
		Running:             true,
		Outcome:             OutcomeNone,
		History:             history,
		StartedAtMs:         nowMs,
	}

	c.log().Info("round started",
		"round", s.ID,
		"symbol", cfg.Symbol,
		"direction", cfg.Direction,
		"leverage", cfg.Leverage,
		"stake", cfg.Stake,
		"entry", s.EntryPrice,
	)
	return s, nil
}

// Tick advances a running round by one step and returns the new state:
//  1. burn SimSecondsPerTick of simulated time, timing out at zero
//  2. step the price and append it to the bounded history
//  3. recompute pnl against the entry price
//  4. take-profit / stop-loss, which take precedence over a same-tick timeout
//
// Terminal states are returned unchanged with ErrRoundAlreadyClosed.
func (c *Controller) Tick(s RoundState, nowMs int64, volatility float64) (RoundState, error) {
	if err := s.acceptsTransition(); err != nil {
		return s, err
	}
	cfg := s.Config

	next := s
	next.Ticks++

	next.RemainingSimSeconds -= c.Params.SimSecondsPerTick
	if next.RemainingSimSeconds <= 0 {
		next.RemainingSimSeconds = 0
		next.Outcome = OutcomeTimeout
		next.Running = false
	}

	next.CurrentPrice = c.stepper().NextPrice(s.CurrentPrice, volatility, 0)
	next.History = market.AppendBounded(s.History, market.PricePoint{
		TimestampMs: nowMs,
		Price:       next.CurrentPrice,
	}, c.Params.HistoryCap)

	next.PnLFraction = PnLFraction(cfg.Direction, cfg.Leverage, s.EntryPrice, next.CurrentPrice)
	next.PnLAmount = PnLAmount(cfg.Stake, next.PnLFraction)

	if o := exitOutcome(next.PnLFraction, cfg); o != OutcomeNone {
		next.Outcome = o
		next.Running = false
	}

	if !next.Running {
		next.ClosedAtMs = nowMs
		c.logClosed(next)
	}
	return next, nil
}

// Close ends a running round at its current price and pnl.
func (c *Controller) Close(s RoundState, nowMs int64) (RoundState, error) {
	if err := s.acceptsTransition(); err != nil {
		return s, err
	}

	next := s
	next.Running = false
	next.Outcome = OutcomeManualClose
	next.ClosedAtMs = nowMs
	c.logClosed(next)
	return next, nil
}

func (c *Controller) logClosed(s RoundState) {
	c.log().Info("round closed",
		"round", s.ID,
		"outcome", s.Outcome,
		"ticks", s.Ticks,
		"exit", s.CurrentPrice,
		"pnl_fraction", s.PnLFraction,
		"pnl_amount", s.PnLAmount,
	)
}
