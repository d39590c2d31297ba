package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export stored transactions as JSONL" }
func (*exportCmd) Usage() string {
	return `fb export

  Writes the stored transactions to stdout as JSONL: one JSON object per
  line, human readable and easy to diff or merge.
`
}

func (*exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := s.ExportTransactions(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
