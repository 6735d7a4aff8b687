package sim

// PnLFraction is the leveraged, direction-adjusted fractional move from entry
// to current. A Long gains when price rises, a Short when it falls.
func PnLFraction(dir Direction, leverage int, entry, current float64) float64 {
	change := (current - entry) / entry
	if dir == Short {
		change = -change
	}
	return change * float64(leverage)
}

// PnLAmount converts a pnl fraction into stake currency.
func PnLAmount(stake, fraction float64) float64 {
	return stake * fraction
}
