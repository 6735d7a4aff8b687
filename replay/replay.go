// Package replay drives a round from a recorded price path instead of the
// random walk.
//
// CSV format:
//
//	time_ms,price[,event]
//
// time_ms is unix milliseconds (RFC3339 is also accepted). The first row is
// the reference point: a round opened at any entry price moves by the same
// relative steps as the recording. The only event is CLOSE, which requests a
// manual close after that row's tick.
package replay

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/flashtrade/market"
	"github.com/rustyeddy/flashtrade/sim"
)

// ErrEmptyPath is returned when a recording has fewer than two rows.
var ErrEmptyPath = errors.New("replay: need at least two price rows")

// Row is one recorded price with an optional event.
type Row struct {
	market.PricePoint
	Close bool
}

// Path is a recorded price path. It implements sim.Stepper and is not safe
// for concurrent use.
type Path struct {
	Rows []Row
	next int
}

// LoadFile reads a recording from csvPath.
func LoadFile(csvPath string) (*Path, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load reads a recording. A header row ("time_ms,...") is allowed and empty
// rows are skipped.
func Load(r io.Reader) (*Path, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	p := &Path{}
	sawFirst := false
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(rec[0])), "time") {
				continue
			}
		}

		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := len(p.Rows); n > 0 && row.TimestampMs < p.Rows[n-1].TimestampMs {
			return nil, fmt.Errorf("line %d: time goes backwards", line)
		}
		p.Rows = append(p.Rows, row)
	}

	if len(p.Rows) < 2 {
		return nil, ErrEmptyPath
	}
	return p, nil
}

func parseRow(rec []string) (Row, error) {
	if len(rec) < 2 {
		return Row{}, fmt.Errorf("bad row (need time_ms,price): %v", rec)
	}

	ts, err := parseTime(strings.TrimSpace(rec[0]))
	if err != nil {
		return Row{}, err
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("bad price %q: %w", rec[1], err)
	}
	if price <= 0 {
		return Row{}, fmt.Errorf("price must be positive, got %v", price)
	}

	row := Row{PricePoint: market.PricePoint{TimestampMs: ts, Price: price}}
	if len(rec) >= 3 {
		switch ev := strings.ToUpper(strings.TrimSpace(rec[2])); ev {
		case "":
		case "CLOSE":
			row.Close = true
		default:
			return Row{}, fmt.Errorf("unknown event %q", rec[2])
		}
	}
	return row, nil
}

func parseTime(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("bad time %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// Steps is the number of price moves in the recording.
func (p *Path) Steps() int { return len(p.Rows) - 1 }

// Remaining is the number of moves not yet replayed.
func (p *Path) Remaining() int { return p.Steps() - p.next }

// Rewind starts the recording over.
func (p *Path) Rewind() { p.next = 0 }

// NextPrice applies the next recorded relative move to current. volatility
// and trend are ignored. Once the recording is used up the price stays flat.
func (p *Path) NextPrice(current, _, _ float64) float64 {
	if p.next >= p.Steps() {
		return current
	}
	prev, cur := p.Rows[p.next].Price, p.Rows[p.next+1].Price
	p.next++
	return current * (cur / prev)
}

// Play opens a round with cfg on c and replays the whole recording into it.
// Tick i is stamped with row i's time shifted so the round starts at
// startMs. If the recording ends while the round is still running, the round
// is closed manually at the last price.
//
// c.Stepper is replaced by p for the duration of the call.
func Play(ctx context.Context, c *sim.Controller, cfg sim.TradeConfig, p *Path, startMs int64, onTick func(sim.RoundState)) (sim.RoundState, error) {
	prev := c.Stepper
	c.Stepper = p
	defer func() { c.Stepper = prev }()
	p.Rewind()

	s, err := c.Start(cfg, startMs)
	if err != nil {
		return s, err
	}

	offset := startMs - p.Rows[0].TimestampMs
	for i := 1; i < len(p.Rows) && s.Running; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		row := p.Rows[i]
		now := row.TimestampMs + offset

		s, err = c.Tick(s, now, 0)
		if err != nil {
			return s, err
		}
		if onTick != nil {
			onTick(s)
		}
		if row.Close && s.Running {
			return c.Close(s, now)
		}
	}

	if s.Running {
		return c.Close(s, p.Rows[len(p.Rows)-1].TimestampMs+offset)
	}
	return s, nil
}
