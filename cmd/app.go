// Package cmd implements the CLI application to manage a FinBoard portfolio.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/finboard"
	"github.com/etnz/finboard/store"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Register registers every subcommand on the commander. A main package
// calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "data")
	c.Register(&exportCmd{}, "data")
	c.Register(&pricesCmd{}, "data")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&scoreboardCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")
	c.Register(&platformsCmd{}, "reports")
	c.Register(&activityCmd{}, "reports")
	c.Register(&timelineCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dbFile = flag.String("db-file", "finboard.db", "Path to the local database file")
var configFile = flag.String("config-file", "finboard.json", "Path to the configuration file (splits, ticker map)")

// Config is the app-level configuration: the declared stock splits and the
// mapping from local symbols to Yahoo tickers.
type Config struct {
	Splits  map[string][]configSplit `json:"splits"`
	Tickers map[string]string        `json:"tickers"`
}

type configSplit struct {
	Date  finboard.Date   `json:"date"`
	Ratio decimal.Decimal `json:"ratio"`
}

// SplitTable converts the configured splits to the engine's table form.
func (c *Config) SplitTable() finboard.SplitTable {
	table := make(finboard.SplitTable, len(c.Splits))
	for symbol, splits := range c.Splits {
		for _, s := range splits {
			table[symbol] = append(table[symbol], finboard.Split{EffectiveDate: s.Date, Ratio: s.Ratio})
		}
	}
	return table
}

// LoadConfig reads the app config file. A missing file is an empty config,
// not an error.
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", *configFile, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", *configFile, err)
	}
	return &cfg, nil
}

// OpenStore opens the local database.
func OpenStore() (*store.Store, error) {
	return store.Open(*dbFile)
}

// LoadTransactions loads the stored transactions with the configured splits
// applied. Adjustment is idempotent, so loading repeatedly is safe.
func LoadTransactions() ([]finboard.Transaction, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	s, err := OpenStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	txs, err := s.LoadTransactions()
	if err != nil {
		return nil, err
	}
	return finboard.ApplySplits(txs, cfg.SplitTable()), nil
}
