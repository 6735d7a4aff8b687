package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRoundOrg(t *testing.T) {
	t.Parallel()

	closeAt := time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC)
	rec := sampleRound("01HQ3K9Z8X7W6V5T4S3R2Q1P0N", closeAt, "TAKE_PROFIT", 200)

	result := FormatRoundOrg(rec)

	assert.Contains(t, result, "** Round: BTCUSDT LONG 2x (3R2Q1P0N)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ROUND_ID: 01HQ3K9Z8X7W6V5T4S3R2Q1P0N")
	assert.Contains(t, result, ":TAKE_PROFIT: 20%")
	assert.Contains(t, result, ":STOP_LOSS: 10%")
	assert.Contains(t, result, ":ENTRY_PRICE: 65012.50000")
	assert.Contains(t, result, ":PNL: 20.00%")
	assert.Contains(t, result, ":PNL_AMOUNT: 200.00")
	assert.Contains(t, result, ":OUTCOME: TAKE_PROFIT")
	assert.Contains(t, result, ":OPEN_TIME: 2024-03-15T14:19:30Z")
	assert.Contains(t, result, ":CLOSE_TIME: 2024-03-15T14:20:30Z")
	assert.True(t, strings.HasSuffix(result, ":END:\n"))
}

func TestFormatRoundOrgShortID(t *testing.T) {
	t.Parallel()

	rec := sampleRound("short", time.Now(), "TIMEOUT", 0)
	assert.Contains(t, FormatRoundOrg(rec), "(short)")
}

func TestFormatRoundsOrg(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FormatRoundsOrg([]RoundRecord{
		sampleRound("A", at, "TIMEOUT", 0),
		sampleRound("B", at, "STOP_LOSS", -100),
	})

	assert.Equal(t, 2, strings.Count(out, "** Round:"))
	assert.Contains(t, out, ":END:\n\n** Round:")
	assert.Empty(t, FormatRoundsOrg(nil))
}

func TestFormatStatsOrg(t *testing.T) {
	t.Parallel()

	out := FormatStatsOrg(Stats{Rounds: 4, Wins: 3, Losses: 1, NetPnL: 120.5})
	assert.Contains(t, out, "| 4 | 3 | 1 | 75.0% | 120.50 |")
}
