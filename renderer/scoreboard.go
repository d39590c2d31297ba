package renderer

import (
	"bytes"

	"github.com/etnz/finboard"
	md "github.com/nao1215/markdown"
)

// ScoreboardMarkdown renders the portfolio-level scoreboard. When no open
// position carries a price, the unrealized and market rows degrade to "-"
// and the bottom line reads as realized-only.
func ScoreboardMarkdown(sb finboard.Scoreboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Scoreboard")

	unrealized := "-"
	if sb.UnrealizedPL != nil {
		unrealized = SignedMoney(*sb.UnrealizedPL, Currency)
	}
	marketValue := "-"
	if sb.HasAnyPrice {
		marketValue = Money(sb.MarketValue, Currency)
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Deployed", Money(sb.TotalDeployed, Currency)},
			{"Total Proceeds", Money(sb.TotalProceeds, Currency)},
			{"Net Invested", Money(sb.NetInvested, Currency)},
			{"Cost Basis (open)", Money(sb.CostBasis, Currency)},
			{"Cost Basis (priced)", Money(sb.CostBasisPriced, Currency)},
			{"Market Value", marketValue},
			{"Unrealized P/L", unrealized},
			{"Realized P/L", SignedMoney(sb.TotalRealized, Currency)},
			{"Total P/L", SignedMoney(sb.TotalPL, Currency)},
			{"Return", Percent(sb.ReturnPct)},
		},
	})

	return doc.String()
}
