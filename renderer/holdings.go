package renderer

import (
	"bytes"

	"github.com/etnz/finboard"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the holdings table. Unpriced positions show "-"
// in the market columns rather than a misleading zero.
func HoldingsMarkdown(holdings []finboard.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Type", "Quantity", "Avg Cost", "Cost Basis", "Market Value", "Unrealized", "Realized"},
	}
	for _, h := range holdings {
		marketValue, unrealized := "-", "-"
		if h.MarketValue != nil {
			marketValue = Money(*h.MarketValue, Currency)
		}
		if h.Unrealized != nil {
			unrealized = SignedMoney(*h.Unrealized, Currency) + " (" + Percent(*h.UnrealizedPct) + ")"
		}
		table.Rows = append(table.Rows, []string{
			h.Symbol,
			h.Type.Label(),
			h.Quantity.String(),
			Money(h.AvgCost, Currency),
			Money(h.TotalCost, Currency),
			marketValue,
			unrealized,
			SignedMoney(h.Realized, Currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

// UnpricedMarkdown lists positions the market value understates.
func UnpricedMarkdown(positions []finboard.UnpricedPosition) string {
	if len(positions) == 0 {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Unpriced Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Symbol", "Type", "Cost Basis"},
	}
	for _, p := range positions {
		table.Rows = append(table.Rows, []string{p.Symbol, p.Type.Label(), Money(p.TotalCost, Currency)})
	}
	doc.Table(table)

	return doc.String()
}
