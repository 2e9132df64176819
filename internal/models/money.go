package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount stored with two decimal places.
type Money struct {
	decimal.Decimal
}

// ZeroMoney is the zero amount.
var ZeroMoney = Money{decimal.Zero}

// NewMoney rounds d to two places.
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// ParseMoney parses a decimal string such as "5.00" or "12".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewMoney(d), nil
}

// MustMoney is ParseMoney for literals; it panics on bad input.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String always renders two decimals.
func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both 5.5 and "5.50".
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("invalid amount %s", data)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Matches reports whether raw denotes the same amount.
func (m Money) Matches(raw string) (bool, error) {
	other, err := ParseMoney(raw)
	if err != nil {
		return false, err
	}
	return m.Equal(other.Decimal), nil
}

func (m Money) Less(other any) bool {
	o, ok := other.(Money)
	return ok && m.LessThan(o.Decimal)
}
