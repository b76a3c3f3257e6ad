package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in major units with its ISO currency code.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// MoneyFromCents converts minor units to Money. 1999 USD -> $19.99
func MoneyFromCents(cents int64, currency string) Money {
	return Money{
		Amount:       decimal.New(cents, -2),
		CurrencyCode: strings.ToUpper(strings.TrimSpace(currency)),
	}
}

// Times multiplies the amount by a quantity.
func (m Money) Times(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), CurrencyCode: m.CurrencyCode}
}

func (m Money) Add(o Money) Money {
	code := m.CurrencyCode
	if code == "" {
		code = o.CurrencyCode
	}
	return Money{Amount: m.Amount.Add(o.Amount), CurrencyCode: code}
}

func (m Money) IsZero() bool { return m.Amount.IsZero() }

func (m Money) String() string {
	sym, suffix := currencySymbol(m.CurrencyCode)
	if suffix {
		return m.Amount.StringFixed(2) + " " + sym
	}
	return sym + m.Amount.StringFixed(2)
}

func currencySymbol(code string) (string, bool) {
	switch code {
	case "EUR":
		return "€", false
	case "USD", "CAD", "AUD":
		return "$", false
	case "GBP":
		return "£", false
	case "JPY":
		return "¥", false
	case "":
		return "", false
	default:
		return code, true
	}
}
