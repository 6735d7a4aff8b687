// market/instruments.go
package market

import (
	"errors"
	"fmt"
)

// ErrUnknownSymbol is returned by BasePrice for symbols that are not listed.
// It is soft: price seeding falls back to DefaultBasePrice.
var ErrUnknownSymbol = errors.New("unknown symbol")

// DefaultBasePrice is used to seed symbols that have no known base price.
const DefaultBasePrice = 1000.0

// Symbols is the fixed set of tradable contracts, in display order.
var Symbols = []string{
	"BTCUSDT", "ETHUSDT", "SOLUSDT", "BNBUSDT", "DOGEUSDT", "XRPUSDT", "ZECUSDT",
}

// BasePrices is the starting price for each symbol before warm-up.
var BasePrices = map[string]float64{
	"BTCUSDT":  65000,
	"ETHUSDT":  3400,
	"SOLUSDT":  145,
	"BNBUSDT":  590,
	"DOGEUSDT": 0.12,
	"XRPUSDT":  0.60,
	"ZECUSDT":  25,
}

// BasePriceLookup resolves a symbol to its starting price.
type BasePriceLookup func(symbol string) (float64, bool)

// IsKnown reports whether symbol is in Symbols.
func IsKnown(symbol string) bool {
	for _, s := range Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// BasePrice returns the built-in base price for symbol.
func BasePrice(symbol string) (float64, error) {
	p, ok := BasePrices[symbol]
	if !ok || p <= 0 {
		return DefaultBasePrice, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return p, nil
}

// DefaultLookup is a BasePriceLookup over BasePrices.
func DefaultLookup(symbol string) (float64, bool) {
	p, err := BasePrice(symbol)
	return p, err == nil
}

// LookupWithOverrides returns a BasePriceLookup that consults overrides first
// and then BasePrices. Non-positive overrides are ignored.
func LookupWithOverrides(overrides map[string]float64) BasePriceLookup {
	return func(symbol string) (float64, bool) {
		if p, ok := overrides[symbol]; ok && p > 0 {
			return p, true
		}
		return DefaultLookup(symbol)
	}
}
