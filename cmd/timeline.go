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

type timelineCmd struct {
	filterFlags
	capital bool
}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display portfolio value or capital invested over time" }
func (*timelineCmd) Usage() string {
	return `fb timeline [-capital] [-platform <codes>] [-type <types>] [-from <date>] [-to <date>]

  Reconstructs portfolio value over time from the stored price history
  (fetch it with 'fb prices -history'). With -capital it shows the
  cumulative capital invested instead, which needs no price data.
`
}

func (c *timelineCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.BoolVar(&c.capital, "capital", false, "Show cumulative capital invested instead of market value")
}

func (c *timelineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.loadFiltered()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.capital {
		printMarkdown(renderer.CapitalMarkdown(finboard.CapitalTimeline(txs)))
		return subcommands.ExitSuccess
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	histories, err := s.LoadHistories()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading price history: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TimelineMarkdown(finboard.ValueTimeline(txs, histories)))
	return subcommands.ExitSuccess
}
