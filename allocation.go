package finboard

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllocationByType sums market value over priced, open positions grouped by
// asset type. Positions without a quote contribute nothing: the breakdown
// covers only what can actually be valued.
func AllocationByType(holdings []Holding) map[AssetType]decimal.Decimal {
	groups := make(map[AssetType]decimal.Decimal)
	for _, h := range holdings {
		if !h.Quantity.IsPositive() || h.MarketValue == nil {
			continue
		}
		groups[h.Type] = groups[h.Type].Add(*h.MarketValue)
	}
	return groups
}

// AllocationBySymbol maps each priced, open position to its market value.
// The full map is returned; top-N plus "Other" bucketing belongs to the
// presentation layer.
func AllocationBySymbol(holdings []Holding) map[string]decimal.Decimal {
	groups := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		if !h.Quantity.IsPositive() || h.MarketValue == nil {
			continue
		}
		groups[h.Symbol] = *h.MarketValue
	}
	return groups
}

// PlatformSummary aggregates the cash activity of one custodial platform.
// It is computed from raw transactions rather than holdings, so a platform
// whose positions are all closed still reports its historical activity.
type PlatformSummary struct {
	Platform     string          `json:"platform"`
	Invested     decimal.Decimal `json:"invested"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	Net          decimal.Decimal `json:"net"`
	Transactions int             `json:"txCount"`
	Symbols      []string        `json:"symbols"` // sorted distinct symbols traded
}

// AggregateByPlatform groups raw transactions by platform code, splitting
// cash impact into invested (buys) and proceeds (sells). Summaries are
// sorted by platform code.
func AggregateByPlatform(txs []Transaction) []PlatformSummary {
	type acc struct {
		invested decimal.Decimal
		proceeds decimal.Decimal
		count    int
		symbols  map[string]struct{}
	}
	book := make(map[string]*acc)

	for _, tx := range txs {
		a, ok := book[tx.Platform]
		if !ok {
			a = &acc{symbols: make(map[string]struct{})}
			book[tx.Platform] = a
		}
		a.count++
		a.symbols[tx.Symbol] = struct{}{}
		if tx.Action == Buy {
			a.invested = a.invested.Add(tx.Balance.Abs())
		} else {
			a.proceeds = a.proceeds.Add(tx.Balance.Abs())
		}
	}

	platforms := make([]string, 0, len(book))
	for code := range book {
		platforms = append(platforms, code)
	}
	sort.Strings(platforms)

	out := make([]PlatformSummary, 0, len(book))
	for _, code := range platforms {
		a := book[code]
		symbols := make([]string, 0, len(a.symbols))
		for sym := range a.symbols {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		out = append(out, PlatformSummary{
			Platform:     code,
			Invested:     a.invested,
			Proceeds:     a.proceeds,
			Net:          a.invested.Sub(a.proceeds),
			Transactions: a.count,
			Symbols:      symbols,
		})
	}
	return out
}

// ActivityBucket counts and sums the buys and sells of one calendar period.
type ActivityBucket struct {
	Period       string          `json:"period"` // YYYY-MM for months, YYYY for years
	Buys         int             `json:"buys"`
	Sells        int             `json:"sells"`
	BuyAmount    decimal.Decimal `json:"buyAmount"`
	SellAmount   decimal.Decimal `json:"sellAmount"`
	Transactions int             `json:"txCount"`
}

// MonthlyActivity buckets transactions by calendar month, sorted
// chronologically.
func MonthlyActivity(txs []Transaction) []ActivityBucket {
	return bucketActivity(txs, func(tx Transaction) string { return tx.Date.MonthKey() })
}

// YearlyActivity re-aggregates activity to calendar years, sorted
// chronologically.
func YearlyActivity(txs []Transaction) []ActivityBucket {
	return bucketActivity(txs, func(tx Transaction) string { return tx.Date.Format("2006") })
}

func bucketActivity(txs []Transaction, key func(Transaction) string) []ActivityBucket {
	book := make(map[string]*ActivityBucket)
	for _, tx := range txs {
		k := key(tx)
		b, ok := book[k]
		if !ok {
			b = &ActivityBucket{Period: k}
			book[k] = b
		}
		b.Transactions++
		if tx.Action == Buy {
			b.Buys++
			b.BuyAmount = b.BuyAmount.Add(tx.Balance.Abs())
		} else {
			b.Sells++
			b.SellAmount = b.SellAmount.Add(tx.Balance.Abs())
		}
	}

	out := make([]ActivityBucket, 0, len(book))
	for _, b := range book {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
