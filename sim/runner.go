package sim

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTickInterval is the real-time cadence of a live round.
const DefaultTickInterval = 200 * time.Millisecond

// Runner drives one live round from a ticker. Run is the only goroutine that
// touches the state, so ticks and manual closes are serialized.
type Runner struct {
	Controller *Controller
	Interval   time.Duration
	Volatility float64

	// OnUpdate, if set, receives every state Run produces, including the
	// terminal one. It runs on the Run goroutine.
	OnUpdate func(RoundState)

	closeReq chan struct{}
}

// NewRunner returns a runner ticking every interval at the given volatility.
func NewRunner(c *Controller, interval time.Duration, volatility float64) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		Controller: c,
		Interval:   interval,
		Volatility: volatility,
		closeReq:   make(chan struct{}, 1),
	}
}

// RequestClose asks Run to close the round manually before the next tick.
// It never blocks and is safe to call from any goroutine.
func (r *Runner) RequestClose() {
	select {
	case r.closeReq <- struct{}{}:
	default:
	}
}

// Run ticks s until it ends, a close is requested or ctx is done. The ticker
// is stopped on every exit path. On cancellation the last state is returned
// along with ctx.Err() and should be discarded.
func (r *Runner) Run(ctx context.Context, s RoundState) (RoundState, error) {
	if r.Controller == nil {
		return s, fmt.Errorf("runner: Controller is required")
	}
	if err := s.acceptsTransition(); err != nil {
		return s, err
	}

	interval := r.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for s.Running {
		select {
		case <-ctx.Done():
			return s, ctx.Err()

		case <-r.closeReq:
			next, err := r.Controller.Close(s, time.Now().UnixMilli())
			if err != nil {
				return s, err
			}
			s = next
			r.notify(s)

		case t := <-ticker.C:
			next, err := r.Controller.Tick(s, t.UnixMilli(), r.Volatility)
			if err != nil {
				return s, err
			}
			s = next
			r.notify(s)
		}
	}
	return s, nil
}

func (r *Runner) notify(s RoundState) {
	if r.OnUpdate != nil {
		r.OnUpdate(s)
	}
}

// Simulate plays s to completion in virtual time: tick i is stamped
// s.StartedAtMs + i*stepMs and nothing sleeps. onTick, if set, sees every
// intermediate state. A round always ends within Params.MaxTicks ticks.
func Simulate(ctx context.Context, c *Controller, s RoundState, volatility float64, stepMs int64, onTick func(RoundState)) (RoundState, error) {
	if err := s.acceptsTransition(); err != nil {
		return s, err
	}

	nowMs := s.StartedAtMs
	for s.Running {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		nowMs += stepMs

		next, err := c.Tick(s, nowMs, volatility)
		if err != nil {
			if errors.Is(err, ErrRoundAlreadyClosed) {
				return s, nil
			}
			return s, err
		}
		s = next
		if onTick != nil {
			onTick(s)
		}
	}
	return s, nil
}
