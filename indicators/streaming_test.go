package indicators

import (
	"testing"

	"github.com/rustyeddy/flashtrade/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prices = []float64{102, 105, 106, 108, 110}

func TestSimpleMAStreaming(t *testing.T) {
	t.Run("basic functionality", func(t *testing.T) {
		ma := NewMA(3)
		assert.Equal(t, "MA(3)", ma.Name())
		assert.Equal(t, 3, ma.Warmup())
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())

		ma.Update(prices[0])
		ma.Update(prices[1])
		assert.False(t, ma.Ready())

		ma.Update(prices[2])
		assert.True(t, ma.Ready())
		assert.InDelta(t, (102.0+105.0+106.0)/3.0, ma.Value(), 0.001)

		// should use last 3
		ma.Update(prices[3])
		assert.InDelta(t, (105.0+106.0+108.0)/3.0, ma.Value(), 0.001)
	})

	t.Run("reset functionality", func(t *testing.T) {
		ma := NewMA(2)
		ma.Update(prices[0])
		ma.Update(prices[1])
		assert.True(t, ma.Ready())

		ma.Reset()
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())
	})

	t.Run("non-positive period", func(t *testing.T) {
		ma := NewMA(0)
		ma.Update(7)
		assert.True(t, ma.Ready())
		assert.Equal(t, 7.0, ma.Value())
	})
}

func TestExponentialMAStreaming(t *testing.T) {
	ema := NewEMA(3)
	assert.Equal(t, "EMA(3)", ema.Name())

	ema.Update(prices[0])
	ema.Update(prices[1])
	assert.False(t, ema.Ready())
	assert.Equal(t, 0.0, ema.Value())

	ema.Update(prices[2])
	require.True(t, ema.Ready())
	seed := (102.0 + 105.0 + 106.0) / 3.0
	assert.InDelta(t, seed, ema.Value(), 1e-9)

	ema.Update(prices[3])
	want := (108.0-seed)*0.5 + seed
	assert.InDelta(t, want, ema.Value(), 1e-9)

	ema.Reset()
	assert.False(t, ema.Ready())
}

func TestSeries(t *testing.T) {
	points := make([]market.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = market.PricePoint{TimestampMs: int64(i), Price: p}
	}

	values, ok := Series(NewMA(2), points)
	require.Len(t, values, 5)
	assert.Equal(t, []bool{false, true, true, true, true}, ok)
	assert.InDelta(t, 103.5, values[1], 1e-9)
	assert.InDelta(t, 109.0, values[4], 1e-9)

	// Series resets first, so reuse is safe.
	ind := NewEMA(2)
	a, _ := Series(ind, points)
	b, _ := Series(ind, points)
	assert.Equal(t, a, b)
}
