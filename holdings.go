package finboard

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is the derived position for a single symbol, recomputed from
// scratch on every call. A fully closed position stays in the output with a
// zero quantity: its realized profit or loss remains reportable.
//
// CurrentPrice, MarketValue, Unrealized and UnrealizedPct are nil until the
// price merger overlays a live quote; nil means "unknown", which is distinct
// from a zero gain.
type Holding struct {
	Symbol    string    `json:"symbol"`
	Type      AssetType `json:"type"`
	Platforms []string  `json:"platforms"` // sorted set of platform codes seen

	Quantity  decimal.Decimal `json:"quantity"`
	AvgCost   decimal.Decimal `json:"avgCost"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Realized  decimal.Decimal `json:"realized"`

	Transactions int  `json:"transactions"`
	FirstDate    Date `json:"firstDate"`
	LastDate     Date `json:"lastDate"`

	CurrentPrice  *decimal.Decimal `json:"currentPrice,omitempty"`
	MarketValue   *decimal.Decimal `json:"marketValue,omitempty"`
	Unrealized    *decimal.Decimal `json:"unrealized,omitempty"`
	UnrealizedPct *decimal.Decimal `json:"unrealizedPct,omitempty"`
}

// position is the running per-symbol accumulator used during the fold.
type position struct {
	symbol    string
	assetType AssetType
	platforms map[string]struct{}
	quantity  decimal.Decimal
	totalCost decimal.Decimal
	realized  decimal.Decimal
	count     int
	first     Date
	last      Date
}

// ComputeHoldings folds a chronologically sorted transaction list into one
// Holding per distinct symbol, using the average-cost method:
//
//   - buy:  totalCost += |balance|; quantity += |quantity|
//   - sell: avgCost = totalCost/quantity (0 when flat);
//     realized += |balance| - avgCost*|sold|;
//     totalCost -= avgCost*|sold|; quantity -= |sold|
//
// Selling more than held is not blocked: quantity and totalCost may go
// negative transiently and are clamped to zero in the final Holding to
// absorb rounding drift. Realized is never clamped; a genuine loss is a
// valid value. Input rows are assumed pre-validated upstream; the fold
// performs no validation.
//
// Holdings are returned sorted by symbol so repeated calls over the same
// input yield identical output.
func ComputeHoldings(txs []Transaction) []Holding {
	book := make(map[string]*position, 16)

	for _, tx := range txs {
		p, ok := book[tx.Symbol]
		if !ok {
			p = &position{
				symbol:    tx.Symbol,
				assetType: tx.Type,
				platforms: make(map[string]struct{}, 2),
				first:     tx.Date,
				last:      tx.Date,
			}
			book[tx.Symbol] = p
		}

		p.platforms[tx.Platform] = struct{}{}
		p.count++
		if tx.Date.Before(p.first) {
			p.first = tx.Date
		}
		if tx.Date.After(p.last) {
			p.last = tx.Date
		}

		switch tx.Action {
		case Buy:
			p.totalCost = p.totalCost.Add(tx.Balance.Abs())
			p.quantity = p.quantity.Add(tx.Quantity.Abs())
		case Sell:
			var avgCost decimal.Decimal
			if p.quantity.IsPositive() {
				avgCost = p.totalCost.Div(p.quantity)
			}
			soldQty := tx.Quantity.Abs()
			costOfSold := avgCost.Mul(soldQty)
			proceeds := tx.Balance.Abs()
			p.realized = p.realized.Add(proceeds.Sub(costOfSold))
			p.totalCost = p.totalCost.Sub(costOfSold)
			p.quantity = p.quantity.Sub(soldQty)
		}
	}

	symbols := make([]string, 0, len(book))
	for sym := range book {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	holdings := make([]Holding, 0, len(book))
	for _, sym := range symbols {
		p := book[sym]

		platforms := make([]string, 0, len(p.platforms))
		for code := range p.platforms {
			platforms = append(platforms, code)
		}
		sort.Strings(platforms)

		// Clamp rounding drift; realized stays untouched.
		quantity := p.quantity
		if quantity.IsNegative() {
			quantity = decimal.Zero
		}
		totalCost := p.totalCost
		if totalCost.IsNegative() || quantity.IsZero() {
			totalCost = decimal.Zero
		}
		var avgCost decimal.Decimal
		if quantity.IsPositive() {
			avgCost = totalCost.Div(quantity)
		}

		holdings = append(holdings, Holding{
			Symbol:       p.symbol,
			Type:         p.assetType,
			Platforms:    platforms,
			Quantity:     quantity,
			AvgCost:      avgCost,
			TotalCost:    totalCost,
			Realized:     p.realized,
			Transactions: p.count,
			FirstDate:    p.first,
			LastDate:     p.last,
		})
	}
	return holdings
}

// SymbolHolding computes the Holding of a single symbol, or nil if the
// symbol never appears in the transactions.
func SymbolHolding(txs []Transaction, symbol string) *Holding {
	own := SymbolTransactions(txs, symbol)
	if len(own) == 0 {
		return nil
	}
	holdings := ComputeHoldings(own)
	return &holdings[0]
}
