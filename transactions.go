package finboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies the instrument a transaction trades.
type AssetType string

// Asset types recognized by the engine.
const (
	Stock    AssetType = "MKT"
	ETF      AssetType = "ETF"
	Crypto   AssetType = "CRP"
	Resource AssetType = "RSC"
	Fund     AssetType = "FUN"
)

// AssetTypes lists all valid asset types, in display order.
var AssetTypes = []AssetType{Stock, ETF, Crypto, Resource, Fund}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case Stock, ETF, Crypto, Resource, Fund:
		return AssetType(s), nil
	default:
		return "", fmt.Errorf("unknown asset type: %q", s)
	}
}

// Label returns a human readable name for the asset type.
func (t AssetType) Label() string {
	switch t {
	case Stock:
		return "Stocks"
	case ETF:
		return "ETFs"
	case Crypto:
		return "Crypto"
	case Resource:
		return "Resources"
	case Fund:
		return "Funds"
	default:
		return string(t)
	}
}

// Action is the direction of a transaction.
type Action string

// Transaction directions.
const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// ParseAction parses a string into an Action. The short form "sel" used by
// some platform exports is accepted as a sell.
func ParseAction(s string) (Action, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell", "sel":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown action: %q", s)
	}
}

// Transaction is a single buy or sell of an instrument on a custodial
// platform. It is immutable: the engine never modifies a transaction, it
// only derives new values from it.
//
// The quantity's magnitude is the traded amount; direction is conveyed by
// Action alone. Balance is the cash impact of the transaction and SHOULD be
// negative for a buy and positive for a sell, but the engine never relies on
// that sign: upstream validation reports violations as warnings only, and
// all accounting uses |Balance| together with Action.
type Transaction struct {
	Date     Date            `json:"date"`
	Time     time.Time       `json:"datetime"`
	Type     AssetType       `json:"type"`
	Platform string          `json:"platform"`
	Action   Action          `json:"action"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Balance  decimal.Decimal `json:"balance"`

	// SplitAdjusted marks a transaction whose quantity and price have
	// already been restated in post-split terms, so that re-running the
	// split adjuster (e.g. after restoring persisted transactions) is a
	// no-op for it.
	SplitAdjusted bool `json:"splitAdjusted,omitempty"`
}

// SortTransactions stably sorts transactions by date, in place. Transactions
// on the same day keep their original relative order, so replay is
// deterministic for any input.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

// Filter selects a subset of transactions. Zero fields match everything:
// an empty platform list matches all platforms, a zero To date means no
// upper bound, and so on.
type Filter struct {
	Platforms []string // platform codes to keep
	Types     []AssetType
	From      Date // inclusive
	To        Date // inclusive
}

func (f Filter) matches(tx Transaction) bool {
	if len(f.Platforms) > 0 {
		found := false
		for _, p := range f.Platforms {
			if tx.Platform == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if tx.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	return true
}

// FilterTransactions returns the transactions matching the filter, in their
// original order. The input slice is not modified.
func FilterTransactions(txs []Transaction, f Filter) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// SymbolTransactions returns all transactions for a single symbol, in their
// original order.
func SymbolTransactions(txs []Transaction, symbol string) []Transaction {
	out := make([]Transaction, 0)
	for _, tx := range txs {
		if tx.Symbol == symbol {
			out = append(out, tx)
		}
	}
	return out
}
