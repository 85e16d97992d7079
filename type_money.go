package plbook

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of record of SBI securities accounts.
const DefaultCurrency = "JPY"

// Money represents a monetary value in the single, implicit currency of the
// account. The currency only matters when formatting.
type Money struct {
	value decimal.Decimal // as major unit value
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses an amount using the broker export conventions.
func ParseMoney(s string) (Money, error) {
	d, err := parseDecimal(s)
	return Money{value: d}, err
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value)} }

// Div divides by a quantity. Dividing by zero returns zero.
func (m Money) Div(n Quantity) Money {
	if n.IsZero() {
		return Money{}
	}
	return Money{value: m.value.Div(n.value)}
}

// Ratio returns m/n, ok is false when n is zero.
func (m Money) Ratio(n Money) (r decimal.Decimal, ok bool) {
	if n.IsZero() {
		return decimal.Zero, false
	}
	return m.value.Div(n.value), true
}

// Decimal returns the exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// AsFloat returns the nearest float64, for display only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// String returns the plain decimal representation, without currency.
func (m Money) String() string { return m.value.String() }

// Format returns the value formatted in the given currency, e.g. "¥12,000".
// The value is rounded to the currency's fraction digits.
func (m Money) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the formatted value with an explicit sign, "-" for zero.
func (m Money) SignedString(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

// MarshalJSON marshals the exact value as a json number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}

// Sum adds up all values.
func Sum(values ...Money) Money {
	var total Money
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
