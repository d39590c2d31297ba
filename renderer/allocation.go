package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/finboard"
	"github.com/shopspring/decimal"
)

// AllocationMarkdown renders the by-type and by-symbol allocation
// breakdowns with each group's share of the priced total.
func AllocationMarkdown(byType map[finboard.AssetType]decimal.Decimal, bySymbol map[string]decimal.Decimal) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Allocation\n\n")

	var total decimal.Decimal
	for _, v := range byType {
		total = total.Add(v)
	}

	fmt.Fprint(&b, "## By Type\n\n")
	fmt.Fprintln(&b, "| Type | Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, typ := range finboard.AssetTypes {
		value, ok := byType[typ]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", typ.Label(), Money(value, Currency), share(value, total))
	}

	symbols := make([]string, 0, len(bySymbol))
	for sym := range bySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	fmt.Fprint(&b, "\n## By Symbol\n\n")
	fmt.Fprintln(&b, "| Symbol | Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, sym := range symbols {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", sym, Money(bySymbol[sym], Currency), share(bySymbol[sym], total))
	}

	return b.String()
}

func share(value, total decimal.Decimal) string {
	if !total.IsPositive() {
		return "-"
	}
	return value.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// PlatformsMarkdown renders the per-platform cash activity table.
func PlatformsMarkdown(summaries []finboard.PlatformSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Platforms\n\n")
	fmt.Fprintln(&b, "| Platform | Invested | Proceeds | Net | Transactions | Symbols |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|:---|")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
			s.Platform,
			Money(s.Invested, Currency),
			Money(s.Proceeds, Currency),
			SignedMoney(s.Net, Currency),
			s.Transactions,
			strings.Join(s.Symbols, ", "),
		)
	}
	return b.String()
}

// ActivityMarkdown renders activity buckets (monthly or yearly).
func ActivityMarkdown(title string, buckets []finboard.ActivityBucket) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintln(&b, "| Period | Buys | Bought | Sells | Sold |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "| %s | %d | %s | %d | %s |\n",
			bucket.Period,
			bucket.Buys,
			Money(bucket.BuyAmount, Currency),
			bucket.Sells,
			Money(bucket.SellAmount, Currency),
		)
	}
	return b.String()
}
