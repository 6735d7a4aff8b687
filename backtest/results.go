package backtest

import (
	"fmt"
	"io"

	"github.com/rustyeddy/flashtrade/game"
	"github.com/rustyeddy/flashtrade/sim"
)

// Result is a lightweight summary of a batch.
type Result struct {
	Rounds int
	Wins   int
	Losses int

	ByOutcome map[sim.Outcome]int
	ByGrade   map[game.Grade]int

	TotalPnLAmount float64
	AvgPnLFraction float64
	AvgTicks       float64
}

// WinRate is Wins/Rounds, or 0 with no rounds.
func (r Result) WinRate() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Rounds)
}

// Summarize folds finished rounds into a Result. A round that did not lose
// money counts as a win.
func Summarize(rounds []sim.RoundState) Result {
	res := Result{
		ByOutcome: map[sim.Outcome]int{},
		ByGrade:   map[game.Grade]int{},
	}

	var fracSum float64
	var ticks int
	for _, s := range rounds {
		res.Rounds++
		res.ByOutcome[s.Outcome]++
		res.ByGrade[game.Classify(s)]++
		if game.Profitable(s) {
			res.Wins++
		} else {
			res.Losses++
		}
		res.TotalPnLAmount += s.PnLAmount
		fracSum += s.PnLFraction
		ticks += s.Ticks
	}
	if res.Rounds > 0 {
		res.AvgPnLFraction = fracSum / float64(res.Rounds)
		res.AvgTicks = float64(ticks) / float64(res.Rounds)
	}
	return res
}

func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Batch Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Rounds:        %d\n", r.Rounds)
	fmt.Fprintf(w, "Wins:          %d\n", r.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.WinRate()*100)
	fmt.Fprintf(w, "Avg PnL:       %.2f%%\n", r.AvgPnLFraction*100)
	fmt.Fprintf(w, "Total PnL:     %.2f\n", r.TotalPnLAmount)
	fmt.Fprintf(w, "Avg Ticks:     %.1f\n", r.AvgTicks)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outcomes")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, o := range sim.Outcomes {
		fmt.Fprintf(w, "%-14s %d\n", o+":", r.ByOutcome[o])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Grades")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, g := range []game.Grade{game.GradeBigWin, game.GradeSmallWin, game.GradeLoss} {
		fmt.Fprintf(w, "%-14s %d\n", g+":", r.ByGrade[g])
	}
}
