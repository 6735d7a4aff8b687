package game

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveDeposit is returned for deposits of zero or less.
var ErrNonPositiveDeposit = errors.New("deposit must be positive")

// Wallet defaults.
var (
	DefaultFunBalance = decimal.NewFromInt(10000)
	DefaultBonus      = decimal.NewFromInt(5)
	DefaultStakeCap   = decimal.NewFromInt(10000)
)

// Wallet is the player's display balance. It is cosmetic: rounds never debit
// or credit it, and nothing is persisted.
type Wallet struct {
	balance decimal.Decimal
	bonus   bool
	cap     decimal.Decimal
}

// NewWallet starts a wallet at balance with the default stake cap.
func NewWallet(balance decimal.Decimal) *Wallet {
	return &Wallet{balance: balance, cap: DefaultStakeCap}
}

// Balance is the current display balance.
func (w *Wallet) Balance() decimal.Decimal { return w.balance }

// Bonus reports whether the balance is the sign-up bonus.
func (w *Wallet) Bonus() bool { return w.bonus }

// ClaimBonus replaces the balance with amount and marks it as bonus money.
func (w *Wallet) ClaimBonus(amount decimal.Decimal) {
	w.balance = amount
	w.bonus = true
}

// Deposit adds amount and clears the bonus flag.
func (w *Wallet) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveDeposit, amount.String())
	}
	w.balance = w.balance.Add(amount)
	w.bonus = false
	return nil
}

// DepositString parses and deposits a user-entered amount.
func (w *Wallet) DepositString(s string) error {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parse deposit %q: %w", s, err)
	}
	return w.Deposit(amount)
}

// MaxStake is the largest stake the setup screen offers.
func (w *Wallet) MaxStake() decimal.Decimal {
	return decimal.Min(w.cap, w.balance)
}

// CanStake reports whether stake fits within MaxStake.
func (w *Wallet) CanStake(stake float64) bool {
	s := decimal.NewFromFloat(stake)
	return s.IsPositive() && s.LessThanOrEqual(w.MaxStake())
}

// String renders the balance with two decimals, e.g. "10000.00 U".
func (w *Wallet) String() string {
	return w.balance.StringFixed(2) + " U"
}
