package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRound(r RoundRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO rounds
		(round_id, symbol, direction, leverage, stake, take_profit, stop_loss,
		 entry_price, exit_price, pnl_fraction, pnl_amount, outcome, ticks, open_time, close_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RoundID, r.Symbol, r.Direction, r.Leverage, r.Stake, r.TakeProfit, r.StopLoss,
		r.EntryPrice, r.ExitPrice, r.PnLFraction, r.PnLAmount, r.Outcome, r.Ticks, r.OpenTime, r.CloseTime,
	)
	return err
}

func (j *SQLite) RecordTick(t TickSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO ticks
		(round_id, time, price, pnl_fraction, pnl_amount, remaining_seconds)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.RoundID, t.Time, t.Price, t.PnLFraction, t.PnLAmount, t.RemainingSeconds,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
