package finboard

import (
	"testing"

	"github.com/shopspring/decimal"
)

// tx builds a transaction for tests. Quantity, price and balance are given
// as floats for brevity; the date is ISO (YYYY-MM-DD).
func tx(t *testing.T, date string, typ AssetType, platform string, action Action, symbol string, qty, price, balance float64) Transaction {
	t.Helper()
	return Transaction{
		Date:     MustParseDate(date),
		Type:     typ,
		Platform: platform,
		Action:   action,
		Symbol:   symbol,
		Quantity: decimal.NewFromFloat(qty),
		Price:    decimal.NewFromFloat(price),
		Balance:  decimal.NewFromFloat(balance),
	}
}

// buy and sell are shorthands for the most common test transactions.
func buy(t *testing.T, date, symbol string, qty, price, balance float64) Transaction {
	t.Helper()
	return tx(t, date, Stock, "TDRP", Buy, symbol, qty, price, balance)
}

func sell(t *testing.T, date, symbol string, qty, price, balance float64) Transaction {
	t.Helper()
	return tx(t, date, Stock, "TDRP", Sell, symbol, qty, price, balance)
}

// wantDecimal fails the test when got is not equal to want within 1e-9.
func wantDecimal(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	tolerance := decimal.New(1, -9)
	if got.Sub(decimal.NewFromFloat(want)).Abs().GreaterThan(tolerance) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}

// findHolding returns the holding for a symbol or fails the test.
func findHolding(t *testing.T, holdings []Holding, symbol string) Holding {
	t.Helper()
	for _, h := range holdings {
		if h.Symbol == symbol {
			return h
		}
	}
	t.Fatalf("holding %q not found in %d holdings", symbol, len(holdings))
	return Holding{}
}
