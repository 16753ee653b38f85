package kernel

import (
	"errors"
	"fmt"

	"freightline/internal/pkg/errs"
	"freightline/internal/pkg/guard"
)

// DefaultCurrency is the currency assumed when callers do not specify one.
const DefaultCurrency = "ETB"

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using NewMoney or ZeroMoney to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or ZeroMoney constructors")

// ErrCurrencyMismatch is returned when arithmetic is attempted on Money values
// denominated in different currencies.
var ErrCurrencyMismatch = errors.New("money operands have different currencies")

// Money represents a monetary amount in a single currency.
// Money is an immutable value object; the amount is stored as a whole number of
// the currency's base units and must not be negative. The zero value of Money is
// invalid and will fail validation - use constructors to create instances.
//
// Example:
//
//	price, err := kernel.NewMoney(1000, kernel.DefaultCurrency)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(price) // Output: 1000 ETB
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value with the given amount and currency.
// The amount must not be negative and the currency must be a three-letter code.
// An empty currency defaults to DefaultCurrency.
func NewMoney(amount int64, currency string) (Money, error) {
	if currency == "" {
		currency = DefaultCurrency
	}

	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// ZeroMoney creates a zero amount in the given currency.
// An empty currency defaults to DefaultCurrency.
func ZeroMoney(currency string) Money {
	m, _ := NewMoney(0, currency)
	return m
}

// Validate checks if the Money was properly constructed using a constructor.
// Returns ErrMoneyIsNotConstructed for zero-value instances.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in the currency's base units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the three-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsEqual compares two Money values. Both the amount and the currency must match.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// LessThan reports whether m is strictly smaller than other.
// Returns an error if the currencies differ or either value is not constructed.
func (m Money) LessThan(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.amount < other.amount, nil
}

// Add returns the sum of two Money values in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoney(m.amount+other.amount, m.currency)
}

// Percent returns the given percentage of the amount, truncated toward zero.
// Used for fee computation, e.g. a 40% commitment fee on the base price.
func (m Money) Percent(pct int64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if pct < 0 || pct > 100 {
		return Money{}, errs.NewValueIsOutOfRangeError("percent", pct, 0, 100)
	}
	return NewMoney(m.amount*pct/100, m.currency)
}

// String returns the amount followed by the currency code, e.g. "1000 ETB".
// Implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter currency code", currency))
	}
	m.currency = currency
	return nil
}
