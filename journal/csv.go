package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var (
	roundsHeader = []string{"round_id", "symbol", "direction", "leverage", "stake", "take_profit", "stop_loss",
		"entry_price", "exit_price", "pnl_fraction", "pnl_amount", "outcome", "ticks", "open_time", "close_time"}
	ticksHeader = []string{"round_id", "time", "price", "pnl_fraction", "pnl_amount", "remaining_seconds"}
)

// CSVJournal writes rounds, and optionally ticks, to CSV files. An empty
// ticks path drops tick snapshots.
type CSVJournal struct {
	rounds *csv.Writer
	ticks  *csv.Writer
	rf, tf *os.File
}

func NewCSV(roundsPath, ticksPath string) (*CSVJournal, error) {
	rf, err := os.Create(roundsPath)
	if err != nil {
		return nil, err
	}
	j := &CSVJournal{rf: rf, rounds: csv.NewWriter(rf)}
	if err := j.writeHeader(j.rounds, roundsHeader); err != nil {
		_ = rf.Close()
		return nil, err
	}

	if ticksPath != "" {
		tf, err := os.Create(ticksPath)
		if err != nil {
			_ = rf.Close()
			return nil, err
		}
		j.tf = tf
		j.ticks = csv.NewWriter(tf)
		if err := j.writeHeader(j.ticks, ticksHeader); err != nil {
			_ = j.Close()
			return nil, err
		}
	}

	return j, nil
}

func (j *CSVJournal) writeHeader(w *csv.Writer, header []string) error {
	if err := w.Write(header); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) RecordRound(r RoundRecord) error {
	err := j.rounds.Write([]string{
		r.RoundID,
		r.Symbol,
		r.Direction,
		strconv.Itoa(r.Leverage),
		f(r.Stake),
		f(r.TakeProfit),
		f(r.StopLoss),
		f(r.EntryPrice),
		f(r.ExitPrice),
		f(r.PnLFraction),
		f(r.PnLAmount),
		r.Outcome,
		strconv.Itoa(r.Ticks),
		r.OpenTime.UTC().Format(time.RFC3339Nano),
		r.CloseTime.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	j.rounds.Flush()
	return j.rounds.Error()
}

func (j *CSVJournal) RecordTick(t TickSnapshot) error {
	if j.ticks == nil {
		return nil
	}
	err := j.ticks.Write([]string{
		t.RoundID,
		t.Time.UTC().Format(time.RFC3339Nano),
		f(t.Price),
		f(t.PnLFraction),
		f(t.PnLAmount),
		strconv.Itoa(t.RemainingSeconds),
	})
	if err != nil {
		return err
	}

	j.ticks.Flush()
	return j.ticks.Error()
}

func (j *CSVJournal) Close() error {
	j.rounds.Flush()
	if err := j.rounds.Error(); err != nil {
		return err
	}
	if err := j.rf.Close(); err != nil {
		return err
	}

	if j.ticks != nil {
		j.ticks.Flush()
		if err := j.ticks.Error(); err != nil {
			return err
		}
		if err := j.tf.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}
