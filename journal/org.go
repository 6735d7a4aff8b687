package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatRoundOrg renders a RoundRecord as an Org-mode block. Structured facts
// go in a PROPERTIES drawer so they stay searchable.
func FormatRoundOrg(r RoundRecord) string {
	heading := fmt.Sprintf("** Round: %s %s %dx (%s)", r.Symbol, r.Direction, r.Leverage, shortID(r.RoundID))
	open := r.OpenTime.UTC().Format(time.RFC3339)
	close := r.CloseTime.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ROUND_ID: %s\n", r.RoundID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", r.Symbol))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", r.Direction))
	b.WriteString(fmt.Sprintf(":LEVERAGE: %d\n", r.Leverage))
	b.WriteString(fmt.Sprintf(":STAKE: %.2f\n", r.Stake))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.0f%%\n", r.TakeProfit*100))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.0f%%\n", r.StopLoss*100))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", r.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", r.ExitPrice))
	b.WriteString(fmt.Sprintf(":PNL: %.2f%%\n", r.PnLFraction*100))
	b.WriteString(fmt.Sprintf(":PNL_AMOUNT: %.2f\n", r.PnLAmount))
	b.WriteString(fmt.Sprintf(":OUTCOME: %s\n", r.Outcome))
	b.WriteString(fmt.Sprintf(":TICKS: %d\n", r.Ticks))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", open))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", close))
	b.WriteString(":END:\n")

	return b.String()
}

// FormatRoundsOrg renders multiple rounds separated by blank lines.
func FormatRoundsOrg(rounds []RoundRecord) string {
	var b strings.Builder
	for i, r := range rounds {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatRoundOrg(r))
	}
	return b.String()
}

// FormatStatsOrg renders aggregate stats as an Org table.
func FormatStatsOrg(s Stats) string {
	var b strings.Builder
	b.WriteString("| rounds | wins | losses | win rate | net pnl |\n")
	b.WriteString("|--------+------+--------+----------+---------|\n")
	b.WriteString(fmt.Sprintf("| %d | %d | %d | %.1f%% | %.2f |\n", s.Rounds, s.Wins, s.Losses, s.WinRate()*100, s.NetPnL))
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
