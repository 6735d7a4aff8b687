package sim

import (
	"log/slog"

	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/market"
)

// HistoricalVolatility is the step volatility used to build warm-up history.
// It is a little wilder than the in-round default.
const HistoricalVolatility = 0.003

// Stepper moves a price forward by one tick.
type Stepper interface {
	NextPrice(current, volatility, trend float64) float64
}

// PriceProcess is a random-walk price generator.
type PriceProcess struct {
	rng    RandomSource
	Logger *slog.Logger
}

// NewPriceProcess builds a process drawing from rng.
func NewPriceProcess(rng RandomSource) *PriceProcess {
	return &PriceProcess{rng: rng}
}

// NextPrice applies one random-walk step:
//
//	change = (u - 0.5 + trend) * volatility
//	next   = current * (1 + change)
//
// With volatility < 2 and trend 0 the result stays positive. Larger
// volatilities can drive the price to zero or below; that is accepted.
func (p *PriceProcess) NextPrice(current, volatility, trend float64) float64 {
	change := (p.rng.Float64() - 0.5 + trend) * volatility
	return current * (1 + change)
}

// SeedHistory builds n warm-up points for symbol, oldest first. Each point is
// one simulated second older than the next, ending one second before nowMs.
// Unknown symbols start from market.DefaultBasePrice.
func (p *PriceProcess) SeedHistory(symbol string, n int, lookup market.BasePriceLookup, nowMs int64) []market.PricePoint {
	if lookup == nil {
		lookup = market.DefaultLookup
	}

	price, ok := lookup(symbol)
	if !ok || price <= 0 {
		logger.Or(p.Logger).Warn("unknown symbol, using default base price",
			"symbol", symbol, "base_price", market.DefaultBasePrice)
		price = market.DefaultBasePrice
	}

	points := make([]market.PricePoint, 0, n)
	for i := n; i > 0; i-- {
		price = p.NextPrice(price, HistoricalVolatility, 0)
		points = append(points, market.PricePoint{
			TimestampMs: nowMs - int64(i)*1000,
			Price:       price,
		})
	}
	return points
}
