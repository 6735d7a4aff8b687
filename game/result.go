package game

import "github.com/rustyeddy/flashtrade/sim"

// Grade is how the result screen should treat a finished round.
type Grade string

const (
	GradeLoss     Grade = "LOSS"
	GradeSmallWin Grade = "SMALL_WIN"
	GradeBigWin   Grade = "BIG_WIN"
)

// BigWinFraction is the pnl fraction above which a win counts as big.
const BigWinFraction = 0.5

// Classify grades a round by its pnl. Break-even counts as a small win.
func Classify(s sim.RoundState) Grade {
	switch {
	case s.PnLAmount < 0:
		return GradeLoss
	case s.PnLFraction > BigWinFraction:
		return GradeBigWin
	default:
		return GradeSmallWin
	}
}

// Profitable reports whether the round did not lose money.
func Profitable(s sim.RoundState) bool {
	return s.PnLAmount >= 0
}
