package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/finboard"
)

// filterFlags are the transaction-filter flags shared by the report
// subcommands.
type filterFlags struct {
	platforms string
	types     string
	from      string
	to        string
}

func (c *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.platforms, "platform", "", "Comma-separated platform codes to include (all by default)")
	f.StringVar(&c.types, "type", "", "Comma-separated asset types to include: MKT, ETF, CRP, RSC, FUN (all by default)")
	f.StringVar(&c.from, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	f.StringVar(&c.to, "to", "", "End date (YYYY-MM-DD, inclusive)")
}

// Filter builds the engine filter from the flag values.
func (c *filterFlags) Filter() (finboard.Filter, error) {
	var filter finboard.Filter
	if c.platforms != "" {
		for _, p := range strings.Split(c.platforms, ",") {
			filter.Platforms = append(filter.Platforms, strings.ToUpper(strings.TrimSpace(p)))
		}
	}
	if c.types != "" {
		for _, t := range strings.Split(c.types, ",") {
			typ, err := finboard.ParseAssetType(strings.ToUpper(strings.TrimSpace(t)))
			if err != nil {
				return filter, err
			}
			filter.Types = append(filter.Types, typ)
		}
	}
	var err error
	if c.from != "" {
		if filter.From, err = finboard.ParseDate(c.from); err != nil {
			return filter, fmt.Errorf("invalid -from: %w", err)
		}
	}
	if c.to != "" {
		if filter.To, err = finboard.ParseDate(c.to); err != nil {
			return filter, fmt.Errorf("invalid -to: %w", err)
		}
	}
	return filter, nil
}

// loadFiltered loads the adjusted transactions and applies the filter.
func (c *filterFlags) loadFiltered() ([]finboard.Transaction, error) {
	filter, err := c.Filter()
	if err != nil {
		return nil, err
	}
	txs, err := LoadTransactions()
	if err != nil {
		return nil, err
	}
	return finboard.FilterTransactions(txs, filter), nil
}
