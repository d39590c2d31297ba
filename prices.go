package finboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a live price observation for a symbol, supplied by an external
// market-data collaborator.
type Quote struct {
	Price     decimal.Decimal `json:"price"`
	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"changePct"`
	Currency  string          `json:"currency"`
	Time      time.Time       `json:"ts"`
}

// PriceMap maps symbols to their latest quote. It may be sparse or entirely
// empty; the engine tolerates both identically.
type PriceMap map[string]Quote

var oneHundred = decimal.NewFromInt(100)

// ApplyPrices overlays live quotes onto holdings, deriving market value and
// unrealized profit/loss for each open position with a known price:
//
//	marketValue   = price * quantity
//	unrealized    = marketValue - totalCost
//	unrealizedPct = unrealized / totalCost * 100 (0 when totalCost is 0)
//
// Holdings with a zero quantity or without a quote are returned unchanged,
// their derived fields left nil: absence means "unknown", never "zero".
// The input slice is not modified.
func ApplyPrices(holdings []Holding, prices PriceMap) []Holding {
	out := make([]Holding, len(holdings))
	for i, h := range holdings {
		out[i] = h

		quote, ok := prices[h.Symbol]
		if !ok || !h.Quantity.IsPositive() {
			continue
		}

		price := quote.Price
		marketValue := price.Mul(h.Quantity)
		unrealized := marketValue.Sub(h.TotalCost)
		var unrealizedPct decimal.Decimal
		if h.TotalCost.IsPositive() {
			unrealizedPct = unrealized.Div(h.TotalCost).Mul(oneHundred)
		}

		out[i].CurrentPrice = &price
		out[i].MarketValue = &marketValue
		out[i].Unrealized = &unrealized
		out[i].UnrealizedPct = &unrealizedPct
	}
	return out
}

// UnpricedPosition identifies an open position that carries no live quote,
// so callers can tell the user which part of the portfolio the market value
// understates.
type UnpricedPosition struct {
	Symbol    string          `json:"symbol"`
	Type      AssetType       `json:"type"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// UnpricedPositions lists the open positions without a market value, sorted
// by symbol.
func UnpricedPositions(holdings []Holding) []UnpricedPosition {
	out := make([]UnpricedPosition, 0)
	for _, h := range holdings {
		if h.Quantity.IsPositive() && h.MarketValue == nil {
			out = append(out, UnpricedPosition{Symbol: h.Symbol, Type: h.Type, TotalCost: h.TotalCost})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
