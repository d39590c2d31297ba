package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats a decimal amount in the given ISO currency for display,
// using the currency's symbol and fraction rules ("$1,234.56"). The engine
// never sees this form; it is presentation only.
func Money(value decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		// to get a never nil currency go through the constructor
		cur = money.New(0, currency).Currency()
	}
	minor := value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is Money with an explicit leading + on gains, so profit and
// loss columns read unambiguously.
func SignedMoney(value decimal.Decimal, currency string) string {
	if value.IsPositive() {
		return "+" + Money(value, currency)
	}
	return Money(value, currency)
}

// Percent formats a percentage with two decimals and a sign.
func Percent(value decimal.Decimal) string {
	s := value.StringFixed(2) + "%"
	if value.IsPositive() {
		return "+" + s
	}
	return s
}
