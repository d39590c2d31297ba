package finboard

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PricePoint is one closing-price observation in a symbol's history.
type PricePoint struct {
	Date  Date            `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// Histories maps a symbol to its chronological price series. Series may be
// sparse and cover different date ranges per symbol.
type Histories map[string][]PricePoint

// CapitalPoint is one point of the cumulative-capital-invested series.
type CapitalPoint struct {
	Date       Date            `json:"date"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// TimelinePoint is one point of the portfolio-value-over-time series.
// Value understates true exposure while some held symbol has not yet had a
// price observation: unknown prices contribute nothing rather than zeroing
// the whole point.
type TimelinePoint struct {
	Date     Date            `json:"date"`
	Value    decimal.Decimal `json:"value"`
	Invested decimal.Decimal `json:"invested"`
}

// CapitalTimeline replays transactions chronologically and returns the
// cumulative capital invested after each distinct transaction date: buys add
// |balance|, sells subtract it. Input order among same-day transactions is
// preserved; the last value of the day wins.
func CapitalTimeline(txs []Transaction) []CapitalPoint {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	SortTransactions(sorted)

	var cumulative decimal.Decimal
	daily := make(map[Date]decimal.Decimal)
	days := make([]Date, 0)

	for _, tx := range sorted {
		if tx.Action == Buy {
			cumulative = cumulative.Add(tx.Balance.Abs())
		} else {
			cumulative = cumulative.Sub(tx.Balance.Abs())
		}
		if _, seen := daily[tx.Date]; !seen {
			days = append(days, tx.Date)
		}
		daily[tx.Date] = cumulative
	}

	points := make([]CapitalPoint, 0, len(days))
	for _, day := range days {
		points = append(points, CapitalPoint{Date: day, Cumulative: daily[day]})
	}
	return points
}

// ValueTimeline reconstructs portfolio value over time by replaying
// transactions against forward-filled price histories.
//
// It walks the sorted union of all price-series dates on or after the first
// transaction. At each date it first applies every transaction dated on or
// before it (a monotonic cursor, never re-scanning), tracking per-symbol
// quantity (clamped at zero) and cumulative invested capital; then it
// refreshes a per-symbol last-known-price table from observations falling
// exactly on that date. Days without an observation simply keep the
// previous price, which is forward-fill by omission, never interpolation.
// The point's value sums quantity times last known price over symbols with
// a positive quantity and at least one observation so far.
func ValueTimeline(txs []Transaction, histories Histories) []TimelinePoint {
	if len(txs) == 0 || len(histories) == 0 {
		return nil
	}

	// Per-symbol date->close lookup plus the sorted union of all dates.
	lookup := make(map[string]map[Date]decimal.Decimal, len(histories))
	union := make(map[Date]struct{})
	for sym, series := range histories {
		m := make(map[Date]decimal.Decimal, len(series))
		for _, p := range series {
			m[p.Date] = p.Close
			union[p.Date] = struct{}{}
		}
		lookup[sym] = m
	}
	symbols := make([]string, 0, len(lookup))
	for sym := range lookup {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	SortTransactions(sorted)
	first := sorted[0].Date

	dates := make([]Date, 0, len(union))
	for day := range union {
		if day.Before(first) {
			continue
		}
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) == 0 {
		return nil
	}

	quantity := make(map[string]decimal.Decimal)
	lastPrice := make(map[string]decimal.Decimal)
	var invested decimal.Decimal
	cursor := 0

	points := make([]TimelinePoint, 0, len(dates))
	for _, day := range dates {
		for cursor < len(sorted) && !sorted[cursor].Date.After(day) {
			tx := sorted[cursor]
			if tx.Action == Buy {
				quantity[tx.Symbol] = quantity[tx.Symbol].Add(tx.Quantity.Abs())
				invested = invested.Add(tx.Balance.Abs())
			} else {
				q := quantity[tx.Symbol].Sub(tx.Quantity.Abs())
				if q.IsNegative() {
					q = decimal.Zero
				}
				quantity[tx.Symbol] = q
				invested = invested.Sub(tx.Balance.Abs())
			}
			cursor++
		}

		for _, sym := range symbols {
			if c, ok := lookup[sym][day]; ok {
				lastPrice[sym] = c
			}
		}

		var value decimal.Decimal
		for _, sym := range symbols {
			q := quantity[sym]
			if q.LessThan(DustThreshold) {
				continue
			}
			price, known := lastPrice[sym]
			if !known {
				continue
			}
			value = value.Add(q.Mul(price))
		}

		points = append(points, TimelinePoint{Date: day, Value: value, Invested: invested})
	}
	return points
}
