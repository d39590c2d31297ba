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

type activityCmd struct {
	filterFlags
	yearly bool
}

func (*activityCmd) Name() string     { return "activity" }
func (*activityCmd) Synopsis() string { return "display buy/sell activity per month or year" }
func (*activityCmd) Usage() string {
	return `fb activity [-yearly] [-platform <codes>] [-type <types>] [-from <date>] [-to <date>]

  Buckets transactions by calendar month (or year with -yearly), counting
  buys and sells and summing the cash moved in each direction.
`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.BoolVar(&c.yearly, "yearly", false, "Bucket by calendar year instead of month")
}

func (c *activityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.loadFiltered()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.yearly {
		printMarkdown(renderer.ActivityMarkdown("Yearly Activity", finboard.YearlyActivity(txs)))
	} else {
		printMarkdown(renderer.ActivityMarkdown("Monthly Activity", finboard.MonthlyActivity(txs)))
	}
	return subcommands.ExitSuccess
}
