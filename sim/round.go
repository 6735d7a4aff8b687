package sim

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/flashtrade/market"
)

var (
	// ErrInvalidConfig wraps every TradeConfig validation failure.
	ErrInvalidConfig = errors.New("invalid trade config")
	// ErrRoundAlreadyClosed is returned by Tick and Close on a terminal round.
	ErrRoundAlreadyClosed = errors.New("round already closed")
	// ErrRoundNotStarted is returned by Tick and Close on a zero RoundState.
	ErrRoundNotStarted = errors.New("round not started")
)

// Direction is the side of the position.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// ParseDirection accepts long/short in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Long:
		return Long, nil
	case Short:
		return Short, nil
	}
	return "", fmt.Errorf("%w: direction %q must be LONG or SHORT", ErrInvalidConfig, s)
}

// Sign is +1 for Long and -1 for Short.
func (d Direction) Sign() float64 {
	if d == Short {
		return -1
	}
	return 1
}

func (d Direction) valid() bool { return d == Long || d == Short }

// Outcome is how a round ended.
type Outcome string

const (
	OutcomeNone        Outcome = "NONE"
	OutcomeTakeProfit  Outcome = "TAKE_PROFIT"
	OutcomeStopLoss    Outcome = "STOP_LOSS"
	OutcomeTimeout     Outcome = "TIMEOUT"
	OutcomeManualClose Outcome = "MANUAL_CLOSE"
)

// Outcomes lists every terminal outcome.
var Outcomes = []Outcome{OutcomeTakeProfit, OutcomeStopLoss, OutcomeTimeout, OutcomeManualClose}

// Terminal reports whether o ends a round.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone && o != ""
}

// TradeConfig is what the player commits to for one round.
type TradeConfig struct {
	Symbol     string    `json:"symbol" yaml:"symbol"`
	Stake      float64   `json:"stake" yaml:"stake"`
	Direction  Direction `json:"direction" yaml:"direction"`
	Leverage   int       `json:"leverage" yaml:"leverage"`
	TakeProfit float64   `json:"take_profit" yaml:"take_profit"` // pnl fraction, 0.20 = 20%
	StopLoss   float64   `json:"stop_loss" yaml:"stop_loss"`     // pnl fraction, 0.10 = 10%
}

// Validate checks the constraints Start relies on.
func (c TradeConfig) Validate() error {
	if !(c.Stake > 0) || math.IsInf(c.Stake, 0) {
		return fmt.Errorf("%w: stake must be positive", ErrInvalidConfig)
	}
	if !c.Direction.valid() {
		return fmt.Errorf("%w: direction %q must be LONG or SHORT", ErrInvalidConfig, c.Direction)
	}
	if c.Leverage < 1 {
		return fmt.Errorf("%w: leverage must be at least 1", ErrInvalidConfig)
	}
	if !(c.TakeProfit > 0 && c.TakeProfit <= 1) {
		return fmt.Errorf("%w: take_profit must be in (0, 1]", ErrInvalidConfig)
	}
	if !(c.StopLoss > 0 && c.StopLoss <= 1) {
		return fmt.Errorf("%w: stop_loss must be in (0, 1]", ErrInvalidConfig)
	}
	return nil
}

// RoundState is one immutable snapshot of a round. Controller methods return
// a new value on every transition; History is never shared between snapshots
// that differ, so callers may keep old snapshots around.
type RoundState struct {
	ID     string      `json:"id"`
	Config TradeConfig `json:"config"`

	EntryPrice   float64 `json:"entry_price"`
	CurrentPrice float64 `json:"current_price"`
	PnLFraction  float64 `json:"pnl_fraction"`
	PnLAmount    float64 `json:"pnl_amount"`

	RemainingSimSeconds int     `json:"remaining_sim_seconds"`
	Running             bool    `json:"running"`
	Outcome             Outcome `json:"outcome"`
	Ticks               int     `json:"ticks"`

	History []market.PricePoint `json:"history"`

	StartedAtMs int64 `json:"started_at_ms"`
	ClosedAtMs  int64 `json:"closed_at_ms,omitempty"`
}

// Started reports whether Start produced this state.
func (s RoundState) Started() bool {
	return s.Running || s.Outcome.Terminal()
}

// Terminal reports whether the round has ended.
func (s RoundState) Terminal() bool {
	return s.Outcome.Terminal()
}

// RemainingDuration is the simulated time left.
func (s RoundState) RemainingDuration() time.Duration {
	return time.Duration(s.RemainingSimSeconds) * time.Second
}

// FormatRemaining renders the simulated time left as m:ss.
func (s RoundState) FormatRemaining() string {
	secs := s.RemainingSimSeconds
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Snapshot returns a copy whose History does not share memory with s.
func (s RoundState) Snapshot() RoundState {
	out := s
	out.History = append([]market.PricePoint(nil), s.History...)
	return out
}

func (s RoundState) acceptsTransition() error {
	if s.Terminal() {
		return fmt.Errorf("%w: round %s ended with %s", ErrRoundAlreadyClosed, s.ID, s.Outcome)
	}
	if !s.Running {
		return ErrRoundNotStarted
	}
	return nil
}
