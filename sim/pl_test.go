package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPnLFraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dir      Direction
		leverage int
		entry    float64
		current  float64
		expected float64
	}{
		{"long_profit", Long, 1, 100, 105, 0.05},
		{"long_loss", Long, 2, 100, 95, -0.10},
		{"short_profit", Short, 3, 100, 90, 0.30},
		{"short_loss", Short, 3, 100, 105, -0.15},
		{"flat", Long, 3, 100, 100, 0},
		{"small_price", Long, 2, 0.12, 0.126, 0.10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PnLFraction(tt.dir, tt.leverage, tt.entry, tt.current)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestPnLAmount(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 200.0, PnLAmount(1000, 0.2), 1e-9)
	assert.InDelta(t, -150.0, PnLAmount(1000, -0.15), 1e-9)
	assert.Equal(t, 0.0, PnLAmount(500, 0))
}

func TestExitOutcome(t *testing.T) {
	t.Parallel()

	cfg := longCfg(1, 0.2, 0.1)

	assert.Equal(t, OutcomeTakeProfit, exitOutcome(0.2, cfg), "take profit is inclusive")
	assert.Equal(t, OutcomeTakeProfit, exitOutcome(0.5, cfg))
	assert.Equal(t, OutcomeStopLoss, exitOutcome(-0.1, cfg), "stop loss is inclusive")
	assert.Equal(t, OutcomeStopLoss, exitOutcome(-0.9, cfg))
	assert.Equal(t, OutcomeNone, exitOutcome(0.19, cfg))
	assert.Equal(t, OutcomeNone, exitOutcome(-0.09, cfg))
}
