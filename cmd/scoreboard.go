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

type scoreboardCmd struct {
	filterFlags
}

func (*scoreboardCmd) Name() string     { return "scoreboard" }
func (*scoreboardCmd) Synopsis() string { return "display the portfolio scoreboard" }
func (*scoreboardCmd) Usage() string {
	return `fb scoreboard [-platform <codes>] [-type <types>] [-from <date>] [-to <date>]

  Displays the portfolio-level scoreboard: deployed and recovered cash,
  cost basis, market value, and realized, unrealized and total P/L.
`
}

func (c *scoreboardCmd) SetFlags(f *flag.FlagSet) { c.filterFlags.SetFlags(f) }

func (c *scoreboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	holdings := finboard.ApplyPrices(finboard.ComputeHoldings(txs), prices)
	sb := finboard.ComputeScoreboard(txs, holdings)
	printMarkdown(renderer.ScoreboardMarkdown(sb))
	return subcommands.ExitSuccess
}
