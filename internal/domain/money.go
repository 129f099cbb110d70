package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ShopCurrency is the currency every backend service prices in.
var ShopCurrency = currency.INR

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// MoneyFromFloat converts a wire-format price (JSON number) into Money
// in the shop currency.
func MoneyFromFloat(amount float64) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: ShopCurrency}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Mul(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Float64 returns the amount as a float64 for wire payloads, which the
// services expect as JSON numbers.
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}

// Display rounds to 2 decimals. Internal arithmetic stays exact; rounding
// happens only here, at presentation time.
func (m Money) Display() string {
	return fmt.Sprintf("%v%s", currency.Symbol(m.Currency), m.Amount.StringFixed(2))
}
