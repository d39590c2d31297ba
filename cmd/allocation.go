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

type allocationCmd struct {
	filterFlags
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display allocation by asset type and by symbol" }
func (*allocationCmd) Usage() string {
	return `fb allocation [-platform <codes>] [-type <types>] [-from <date>] [-to <date>]

  Breaks the priced portfolio value down by asset type and by symbol.
  Positions without a fresh quote are excluded from the breakdown.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) { c.filterFlags.SetFlags(f) }

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.AllocationMarkdown(
		finboard.AllocationByType(holdings),
		finboard.AllocationBySymbol(holdings),
	))
	return subcommands.ExitSuccess
}
