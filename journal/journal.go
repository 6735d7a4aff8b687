// journal/journal.go
package journal

import (
	"log/slog"
	"time"

	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/sim"
)

// RoundRecord is one finished round.
type RoundRecord struct {
	RoundID     string
	Symbol      string
	Direction   string
	Leverage    int
	Stake       float64
	TakeProfit  float64
	StopLoss    float64
	EntryPrice  float64
	ExitPrice   float64
	PnLFraction float64
	PnLAmount   float64
	Outcome     string
	Ticks       int
	OpenTime    time.Time
	CloseTime   time.Time
}

// TickSnapshot is the state of a round after one tick.
type TickSnapshot struct {
	RoundID          string
	Time             time.Time
	Price            float64
	PnLFraction      float64
	PnLAmount        float64
	RemainingSeconds int
}

type Journal interface {
	RecordRound(RoundRecord) error
	RecordTick(TickSnapshot) error
	Close() error
}

// FromRound converts a terminal round into a record.
func FromRound(s sim.RoundState) RoundRecord {
	return RoundRecord{
		RoundID:     s.ID,
		Symbol:      s.Config.Symbol,
		Direction:   string(s.Config.Direction),
		Leverage:    s.Config.Leverage,
		Stake:       s.Config.Stake,
		TakeProfit:  s.Config.TakeProfit,
		StopLoss:    s.Config.StopLoss,
		EntryPrice:  s.EntryPrice,
		ExitPrice:   s.CurrentPrice,
		PnLFraction: s.PnLFraction,
		PnLAmount:   s.PnLAmount,
		Outcome:     string(s.Outcome),
		Ticks:       s.Ticks,
		OpenTime:    time.UnixMilli(s.StartedAtMs).UTC(),
		CloseTime:   time.UnixMilli(s.ClosedAtMs).UTC(),
	}
}

// SnapshotOf converts any round state into a tick snapshot.
func SnapshotOf(s sim.RoundState, at int64) TickSnapshot {
	return TickSnapshot{
		RoundID:          s.ID,
		Time:             time.UnixMilli(at).UTC(),
		Price:            s.CurrentPrice,
		PnLFraction:      s.PnLFraction,
		PnLAmount:        s.PnLAmount,
		RemainingSeconds: s.RemainingSimSeconds,
	}
}

// Observer returns a callback for sim.Runner.OnUpdate / sim.Simulate that
// writes every tick (when ticks is true) and the final round to j. Write
// failures are logged, never returned, so a broken journal cannot stall a
// round.
func Observer(j Journal, ticks bool, l *slog.Logger) func(sim.RoundState) {
	log := logger.Or(l)
	return func(s sim.RoundState) {
		if ticks {
			at := s.ClosedAtMs
			if n := len(s.History); n > 0 {
				at = s.History[n-1].TimestampMs
			}
			if err := j.RecordTick(SnapshotOf(s, at)); err != nil {
				log.Error("journal tick", "round", s.ID, "err", err)
			}
		}
		if s.Terminal() {
			if err := j.RecordRound(FromRound(s)); err != nil {
				log.Error("journal round", "round", s.ID, "err", err)
			}
		}
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRound(RoundRecord) error { return nil }
func (Nop) RecordTick(TickSnapshot) error { return nil }
func (Nop) Close() error                  { return nil }
