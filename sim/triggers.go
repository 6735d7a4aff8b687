package sim

func hitTakeProfit(pnlFraction, takeProfit float64) bool {
	return pnlFraction >= takeProfit
}

func hitStopLoss(pnlFraction, stopLoss float64) bool {
	return pnlFraction <= -stopLoss
}

// exitOutcome checks take-profit first, then stop-loss.
func exitOutcome(pnlFraction float64, cfg TradeConfig) Outcome {
	if hitTakeProfit(pnlFraction, cfg.TakeProfit) {
		return OutcomeTakeProfit
	}
	if hitStopLoss(pnlFraction, cfg.StopLoss) {
		return OutcomeStopLoss
	}
	return OutcomeNone
}
