package market

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasePriceKnownAndUnknown(t *testing.T) {
	t.Parallel()

	p, err := BasePrice("ETHUSDT")
	require.NoError(t, err)
	assert.Equal(t, 3400.0, p)

	p, err = BasePrice("UNKNOWN")
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
	assert.Equal(t, DefaultBasePrice, p)
}

func TestEverySymbolHasBasePrice(t *testing.T) {
	t.Parallel()

	for _, s := range Symbols {
		p, ok := DefaultLookup(s)
		assert.True(t, ok, s)
		assert.Greater(t, p, 0.0, s)
		assert.True(t, IsKnown(s))
	}
	assert.False(t, IsKnown("EUR_USD"))
}

func TestLookupWithOverrides(t *testing.T) {
	t.Parallel()

	lookup := LookupWithOverrides(map[string]float64{
		"BTCUSDT": 70000,
		"NEWUSDT": 2,
		"ZECUSDT": -1,
	})

	p, ok := lookup("BTCUSDT")
	assert.True(t, ok)
	assert.Equal(t, 70000.0, p)

	p, ok = lookup("NEWUSDT")
	assert.True(t, ok)
	assert.Equal(t, 2.0, p)

	p, ok = lookup("ZECUSDT")
	assert.True(t, ok)
	assert.Equal(t, 25.0, p)

	_, ok = lookup("NOPE")
	assert.False(t, ok)
}

func TestAppendBounded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    int
		limit int
		want  int
		first int64
	}{
		{"empty", 0, 50, 1, 999},
		{"under cap", 10, 50, 11, 0},
		{"at cap drops oldest", 50, 50, 50, 1},
		{"over cap trims to cap", 60, 50, 50, 11},
		{"no cap", 60, 0, 61, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pts := make([]PricePoint, tt.in)
			for i := range pts {
				pts[i] = PricePoint{TimestampMs: int64(i), Price: 1}
			}
			out := AppendBounded(pts, PricePoint{TimestampMs: 999, Price: 2}, tt.limit)

			require.Len(t, out, tt.want)
			assert.Equal(t, tt.first, out[0].TimestampMs)
			last, ok := Last(out)
			assert.True(t, ok)
			assert.Equal(t, int64(999), last.TimestampMs)
			assert.Len(t, pts, tt.in, "input must not change")
		})
	}
}

func TestAppendBoundedDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := make([]PricePoint, 2, 10)
	a := AppendBounded(base, PricePoint{TimestampMs: 1}, 50)
	b := AppendBounded(base, PricePoint{TimestampMs: 2}, 50)

	assert.Equal(t, int64(1), a[2].TimestampMs)
	assert.Equal(t, int64(2), b[2].TimestampMs)
}

func TestLastEmpty(t *testing.T) {
	t.Parallel()

	_, ok := Last(nil)
	assert.False(t, ok)
}
