package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/finboard"
	"github.com/etnz/finboard/store"
	"github.com/etnz/finboard/yahoo"
	"github.com/google/subcommands"
)

type pricesCmd struct {
	clear   bool
	history bool
	rng     string
	ttl     time.Duration
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "refresh live quotes and price history" }
func (*pricesCmd) Usage() string {
	return `fb prices [-clear] [-history] [-range <range>]

  Refreshes live quotes for every held symbol, reusing cached quotes that
  are still fresh. With -history it also fetches and stores the closing
  price series used by the timeline report.

Usage Examples:
# Refresh quotes, then fetch five years of history.
$ fb prices -history -range 5y

`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "clear", false, "Drop the quote cache before refreshing")
	f.BoolVar(&c.history, "history", false, "Also fetch historical closing prices")
	f.StringVar(&c.rng, "range", "1y", "History range: 1mo, 3mo, 6mo, 1y, 2y, 5y")
	f.DurationVar(&c.ttl, "ttl", store.DefaultQuoteTTL, "How long cached quotes stay fresh")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.clear {
		if err := s.ClearQuotes(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing quote cache: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	txs, err := s.LoadTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	symbols := heldSymbols(txs)
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "No open positions, nothing to refresh.")
		return subcommands.ExitSuccess
	}

	now := time.Now()
	cached, err := s.FreshQuotes(c.ttl, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading quote cache: %v\n", err)
		return subcommands.ExitFailure
	}
	var stale []string
	for _, symbol := range symbols {
		if _, ok := cached[symbol]; !ok {
			stale = append(stale, symbol)
		}
	}

	client := yahoo.NewClient()
	client.Tickers = cfg.Tickers

	if len(stale) > 0 {
		fetched, err := client.Quotes(ctx, stale)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching quotes: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := s.SaveQuotes(fetched, now); err != nil {
			fmt.Fprintf(os.Stderr, "Error caching quotes: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Fetched %d quotes (%d from cache).\n", len(fetched), len(cached))
	} else {
		fmt.Printf("All %d quotes fresh in cache.\n", len(cached))
	}

	if c.history {
		histories, err := client.Histories(ctx, symbols, c.rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching histories: %v\n", err)
			return subcommands.ExitFailure
		}
		for symbol, series := range histories {
			if err := s.SaveHistory(symbol, series); err != nil {
				fmt.Fprintf(os.Stderr, "Error storing history for %s: %v\n", symbol, err)
				return subcommands.ExitFailure
			}
		}
		fmt.Printf("Stored history for %d symbols over %s.\n", len(histories), c.rng)
	}

	return subcommands.ExitSuccess
}

// heldSymbols lists the symbols with an open position, the only ones worth
// pricing.
func heldSymbols(txs []finboard.Transaction) []string {
	var symbols []string
	for _, h := range finboard.ComputeHoldings(txs) {
		if h.Quantity.IsPositive() {
			symbols = append(symbols, h.Symbol)
		}
	}
	return symbols
}

// loadPrices returns the cached quotes for report commands. Reports never
// fetch: refreshing is an explicit `fb prices` call.
func loadPrices() (finboard.PriceMap, error) {
	s, err := OpenStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.FreshQuotes(store.DefaultQuoteTTL, time.Now())
}
