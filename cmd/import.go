package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finboard"
	"github.com/etnz/finboard/parse"
	"github.com/etnz/finboard/store"
	"github.com/google/subcommands"
)

type importCmd struct {
	keep bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "validate and import transaction CSV files" }
func (*importCmd) Usage() string {
	return `fb import [-keep] <file.csv|file.jsonl> [<file>...]

  Validates and imports pipe-delimited transaction CSV files, replacing the
  stored transactions. Several files (e.g. a stock export and a crypto
  export) are merged by datetime. Validation errors abort the import;
  warnings are printed but do not block. Files ending in .jsonl are read
  back in the 'fb export' format instead.

Usage Examples:
# Import a stock and a crypto export together.
$ fb import stocks.csv crypto.csv

# Restore a previous export.
$ fb import backup.jsonl

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.keep, "keep", false, "Append to the stored transactions instead of replacing them")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no CSV file given")
		return subcommands.ExitUsageError
	}

	var lists [][]finboard.Transaction
	for _, name := range f.Args() {
		var rows []finboard.Transaction
		var ok bool
		if strings.HasSuffix(name, ".jsonl") {
			rows, ok = readExport(name)
		} else {
			rows, ok = validateFile(name)
		}
		if !ok {
			return subcommands.ExitFailure
		}
		lists = append(lists, rows)
	}

	merged := parse.Merge(lists...)

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.keep {
		stored, err := s.LoadTransactions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading stored transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		merged = parse.Merge(stored, merged)
	}

	if err := s.SaveTransactions(merged); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions.\n", len(merged))
	return subcommands.ExitSuccess
}

// validateFile validates one CSV file, printing its issues. It returns the
// parsed rows and whether the import may proceed.
func validateFile(name string) ([]finboard.Transaction, bool) {
	file, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
		return nil, false
	}
	defer file.Close()

	report, err := parse.Validate(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", name, err)
		return nil, false
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", name, w)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", name, e)
	}
	if !report.CanProceed() {
		fmt.Fprintf(os.Stderr, "%s: import blocked by %d error(s)\n", name, len(report.Errors))
		return nil, false
	}
	return report.Rows, true
}

// readExport reads a JSONL file produced by 'fb export'.
func readExport(name string) ([]finboard.Transaction, bool) {
	file, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
		return nil, false
	}
	defer file.Close()

	txs, err := store.ImportTransactions(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", name, err)
		return nil, false
	}
	return txs, true
}
