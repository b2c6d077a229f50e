package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	XOF Currency = "XOF" // West African CFA franc (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GHS Currency = "GHS" // Ghanaian Cedi
	NGN Currency = "NGN" // Nigerian Naira
)

// DefaultCurrency is the platform default for new shops
const DefaultCurrency = XOF

// Decimals returns the number of minor-unit digits for the currency.
// XOF has no minor unit; everything else the platform supports uses 2.
func (c Currency) Decimals() int32 {
	if c == XOF {
		return 0
	}
	return 2
}

// IsValid reports whether the currency is one the platform supports
func (c Currency) IsValid() bool {
	switch c {
	case XOF, USD, EUR, GHS, NGN:
		return true
	}
	return false
}

// Money is an immutable value object representing a monetary amount.
// All operations return new Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("unsupported currency %q", currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustMoney creates Money and panics on invalid currency. For constants and tests.
func MustMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromString creates Money from a string representation of the amount
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns the sum of both amounts; currencies must match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Mul returns the amount multiplied by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// ApplyDiscountPercent returns the amount after deducting the given
// percentage, rounded per the currency rule. Percent must be in [0,100].
func (m Money) ApplyDiscountPercent(percent decimal.Decimal) (Money, error) {
	hundred := decimal.NewFromInt(100)
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return Money{}, fmt.Errorf("discount percent out of range: %s", percent)
	}
	factor := hundred.Sub(percent).Div(hundred)
	return m.Mul(factor).Round(), nil
}

// Round rounds the amount half-up to the currency's minor unit
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(m.currency.Decimals()), currency: m.currency}
}

// Equal reports whether both amount and currency are equal
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns a human-readable representation, e.g. "26.99 USD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(m.currency.Decimals()), m.currency)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(m.currency.Decimals()),
		Currency: string(m.currency),
	})
}
