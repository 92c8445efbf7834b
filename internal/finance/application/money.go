package application

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func roundMoney(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

func money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

func cents(amount decimal.Decimal) float64 {
	return amount.Round(2).InexactFloat64()
}

// percentOf returns part/total*100 rounded to one decimal, 0 when total is not positive.
func percentOf(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	return part.Div(total).Mul(hundred).Round(1).InexactFloat64()
}

// growth compares current with previous as a percentage change, 0 without a previous total.
func growth(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1).InexactFloat64()
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
