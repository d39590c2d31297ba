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

type platformsCmd struct {
	filterFlags
}

func (*platformsCmd) Name() string     { return "platforms" }
func (*platformsCmd) Synopsis() string { return "display cash activity per platform" }
func (*platformsCmd) Usage() string {
	return `fb platforms [-type <types>] [-from <date>] [-to <date>]

  Aggregates the raw transactions per custodial platform: invested,
  proceeds, net deployed, transaction count and symbols traded.
`
}

func (c *platformsCmd) SetFlags(f *flag.FlagSet) { c.filterFlags.SetFlags(f) }

func (c *platformsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.loadFiltered()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PlatformsMarkdown(finboard.AggregateByPlatform(txs)))
	return subcommands.ExitSuccess
}
