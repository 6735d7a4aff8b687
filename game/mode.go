// Package game holds the rules around a round that are not part of the
// engine itself: modes, random configuration, limits, result grading and
// the cosmetic wallet.
package game

import (
	"fmt"
	"strings"
)

// Mode selects how a round is configured and how wild prices move.
type Mode string

const (
	// ModeFun assigns a random configuration and uses fun money.
	ModeFun Mode = "FUN"
	// ModeReal lets the player pick the configuration.
	ModeReal Mode = "REAL"
)

// Default in-round volatilities per mode.
const (
	FunVolatility  = 0.0015
	RealVolatility = 0.001
)

// ParseMode accepts fun/real in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeFun:
		return ModeFun, nil
	case ModeReal:
		return ModeReal, nil
	}
	return "", fmt.Errorf("mode %q must be FUN or REAL", s)
}

// Volatility is the default per-tick volatility for m.
func (m Mode) Volatility() float64 {
	if m == ModeFun {
		return FunVolatility
	}
	return RealVolatility
}
