package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const roundColumns = `round_id, symbol, direction, leverage, stake, take_profit, stop_loss,
	entry_price, exit_price, pnl_fraction, pnl_amount, outcome, ticks, open_time, close_time`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (RoundRecord, error) {
	var rec RoundRecord
	err := row.Scan(
		&rec.RoundID,
		&rec.Symbol,
		&rec.Direction,
		&rec.Leverage,
		&rec.Stake,
		&rec.TakeProfit,
		&rec.StopLoss,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.PnLFraction,
		&rec.PnLAmount,
		&rec.Outcome,
		&rec.Ticks,
		&rec.OpenTime,
		&rec.CloseTime,
	)
	return rec, err
}

// GetRound returns a single round record by ID.
func (j *SQLite) GetRound(roundID string) (RoundRecord, error) {
	row := j.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE round_id = ?`, roundID)

	rec, err := scanRound(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RoundRecord{}, fmt.Errorf("round %q not found", roundID)
		}
		return RoundRecord{}, err
	}
	return rec, nil
}

// ListRoundsClosedBetween returns rounds whose close_time is within [start, end).
func (j *SQLite) ListRoundsClosedBetween(start, end time.Time) ([]RoundRecord, error) {
	rows, err := j.db.Query(`SELECT `+roundColumns+` FROM rounds
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTicks returns the recorded ticks of a round, oldest first.
func (j *SQLite) ListTicks(roundID string) ([]TickSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT round_id, time, price, pnl_fraction, pnl_amount, remaining_seconds
		FROM ticks
		WHERE round_id = ?
		ORDER BY time ASC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TickSnapshot
	for rows.Next() {
		var t TickSnapshot
		if err := rows.Scan(&t.RoundID, &t.Time, &t.Price, &t.PnLFraction, &t.PnLAmount, &t.RemainingSeconds); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats summarizes recorded rounds.
type Stats struct {
	Rounds    int
	Wins      int
	Losses    int
	NetPnL    float64
	ByOutcome map[string]int
}

// WinRate is Wins/Rounds, or 0 with no rounds.
func (s Stats) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// OutcomeCounts aggregates every recorded round.
func (j *SQLite) OutcomeCounts() (Stats, error) {
	st := Stats{ByOutcome: map[string]int{}}

	rows, err := j.db.Query(`
		SELECT outcome, COUNT(*),
			SUM(CASE WHEN pnl_amount >= 0 THEN 1 ELSE 0 END),
			COALESCE(SUM(pnl_amount), 0)
		FROM rounds
		GROUP BY outcome`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			outcome string
			n, wins int
			pnl     float64
		)
		if err := rows.Scan(&outcome, &n, &wins, &pnl); err != nil {
			return st, err
		}
		st.ByOutcome[outcome] = n
		st.Rounds += n
		st.Wins += wins
		st.Losses += n - wins
		st.NetPnL += pnl
	}
	return st, rows.Err()
}
