package sim

import (
	"bytes"
	"log/slog"

	"github.com/rustyeddy/flashtrade/internal/logger"
)

// fixedSource replays vals in a loop.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

// flat makes NextPrice return its input unchanged.
func flat() *fixedSource { return &fixedSource{vals: []float64{0.5}} }

// scripted returns prices in order and then repeats the last one.
type scripted struct {
	prices []float64
	i      int
}

func (s *scripted) NextPrice(current, volatility, trend float64) float64 {
	if len(s.prices) == 0 {
		return current
	}
	if s.i >= len(s.prices) {
		return s.prices[len(s.prices)-1]
	}
	p := s.prices[s.i]
	s.i++
	return p
}

func quietLogger() *slog.Logger {
	return logger.New(&bytes.Buffer{}, "error")
}

func lookup100(string) (float64, bool) { return 100, true }

// newTestController opens rounds at exactly 100 and steps prices from script.
func newTestController(script ...float64) *Controller {
	c := NewController(DefaultParams(), flat())
	c.Lookup = lookup100
	c.Logger = quietLogger()
	c.Process.Logger = c.Logger
	if len(script) > 0 {
		c.Stepper = &scripted{prices: script}
	}
	return c
}

func longCfg(leverage int, tp, sl float64) TradeConfig {
	return TradeConfig{
		Symbol:     "BTCUSDT",
		Stake:      1000,
		Direction:  Long,
		Leverage:   leverage,
		TakeProfit: tp,
		StopLoss:   sl,
	}
}
