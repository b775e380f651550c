package stats

import "github.com/shopspring/decimal"

// Money is a fixed-point amount that serializes as a JSON number with two
// decimals. Rounding happens on output, half away from zero, which is
// half-up for the non-negative values handled here.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
