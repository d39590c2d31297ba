package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/finboard"
)

// TimelineMarkdown renders the portfolio-value series next to the capital
// invested at each point, with the resulting gap.
func TimelineMarkdown(points []finboard.TimelinePoint) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Portfolio Value Over Time\n\n")
	if len(points) == 0 {
		fmt.Fprint(&b, "No price history available.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Value | Invested | Gap |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			p.Date,
			Money(p.Value, Currency),
			Money(p.Invested, Currency),
			SignedMoney(p.Value.Sub(p.Invested), Currency),
		)
	}
	return b.String()
}

// CapitalMarkdown renders the cumulative-capital series.
func CapitalMarkdown(points []finboard.CapitalPoint) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Invested Over Time\n\n")
	fmt.Fprintln(&b, "| Date | Cumulative |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Date, Money(p.Cumulative, Currency))
	}
	return b.String()
}
