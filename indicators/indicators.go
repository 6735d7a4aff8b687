// Package indicators provides streaming moving averages over round prices.
package indicators

import "github.com/rustyeddy/flashtrade/market"

// Indicator computes a single streaming value from prices.
// It is deterministic and safe to use in live rounds, replays and batches.
type Indicator interface {
	// Name returns a stable identifier like "EMA(10)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next price.
	Update(price float64)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current value, or 0 before Ready().
	Value() float64
}

// Series runs ind over points and returns one value per point. Points before
// warmup completes get ok=false.
func Series(ind Indicator, points []market.PricePoint) (values []float64, ok []bool) {
	ind.Reset()
	values = make([]float64, len(points))
	ok = make([]bool, len(points))
	for i, p := range points {
		ind.Update(p.Price)
		if ind.Ready() {
			values[i] = ind.Value()
			ok[i] = true
		}
	}
	return values, ok
}
