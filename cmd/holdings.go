package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/etnz/finboard/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct {
	filterFlags
	symbol string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display current holdings with P/L" }
func (*holdingsCmd) Usage() string {
	return `fb holdings [-platform <codes>] [-type <types>] [-from <date>] [-to <date>] [-symbol <symbol>]

  Displays every position with quantity, average cost, cost basis and
  realized P/L. Positions with a fresh cached quote also show market value
  and unrealized P/L; run 'fb prices' first to refresh quotes.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.symbol, "symbol", "", "Show a single symbol only")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.loadFiltered()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	prices, err := loadPrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.symbol != "" {
		txs = finboard.SymbolTransactions(txs, c.symbol)
		if len(txs) == 0 {
			fmt.Fprintf(os.Stderr, "No transactions for %q.\n", c.symbol)
			return subcommands.ExitFailure
		}
	}

	holdings := finboard.ApplyPrices(finboard.ComputeHoldings(txs), prices)
	out := renderer.HoldingsMarkdown(holdings)
	if unpriced := finboard.UnpricedPositions(holdings); len(unpriced) > 0 {
		out += "\n" + renderer.UnpricedMarkdown(unpriced)
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}
