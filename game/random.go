package game

import (
	"github.com/rustyeddy/flashtrade/market"
	"github.com/rustyeddy/flashtrade/sim"
)

// Picker is the randomness RandomConfig needs. *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
	Float64() float64
}

// RandomConfig draws a FUN-mode configuration:
//   - symbol uniformly from symbols (market.Symbols when empty)
//   - LONG when a uniform draw exceeds 0.5, SHORT otherwise
//   - leverage 1..3
//   - stake 100..1000 in steps of 100
//   - take-profit 10%..30% and stop-loss 5%..20% in whole percents
func RandomConfig(p Picker, symbols []string) sim.TradeConfig {
	if len(symbols) == 0 {
		symbols = market.Symbols
	}

	dir := sim.Short
	if p.Float64() > 0.5 {
		dir = sim.Long
	}

	return sim.TradeConfig{
		Symbol:     symbols[p.Intn(len(symbols))],
		Direction:  dir,
		Leverage:   p.Intn(3) + 1,
		Stake:      float64(p.Intn(10)*100 + 100),
		TakeProfit: float64(p.Intn(21)+10) / 100,
		StopLoss:   float64(p.Intn(16)+5) / 100,
	}
}
