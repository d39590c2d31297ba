package finboard

import "github.com/shopspring/decimal"

// Split describes a corporate action that multiplies the share count of a
// symbol by Ratio on EffectiveDate. A 4-for-1 split has Ratio 4.
type Split struct {
	EffectiveDate Date            `json:"effectiveDate"`
	Ratio         decimal.Decimal `json:"ratio"`
}

// SplitTable maps a symbol to its known splits. It is static or
// configuration-supplied input; the engine never infers splits.
type SplitTable map[string][]Split

// ApplySplits restates every transaction dated strictly before a split's
// effective date in post-split terms: quantity is multiplied by the ratio
// and price divided by it, leaving the cash impact (balance) unchanged.
// Splits for the same symbol compose multiplicatively when a transaction
// precedes more than one.
//
// The operation is idempotent: transactions already carrying the
// SplitAdjusted marker pass through untouched, so re-running the adjuster
// over restored data cannot double-adjust. Symbols absent from the table
// pass through unchanged.
func ApplySplits(txs []Transaction, table SplitTable) []Transaction {
	if len(table) == 0 {
		return txs
	}

	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = tx
		if tx.SplitAdjusted {
			continue
		}
		splits, ok := table[tx.Symbol]
		if !ok {
			continue
		}

		ratio := decimal.NewFromInt(1)
		for _, s := range splits {
			if tx.Date.Before(s.EffectiveDate) {
				ratio = ratio.Mul(s.Ratio)
			}
		}
		if ratio.Equal(decimal.NewFromInt(1)) {
			continue
		}

		out[i].Quantity = tx.Quantity.Mul(ratio)
		out[i].Price = tx.Price.Div(ratio)
		out[i].SplitAdjusted = true
	}
	return out
}
