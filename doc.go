// Package finboard is a pure portfolio accounting engine: it turns an
// ordered stream of buy/sell transactions across custodial platforms into a
// consistent portfolio state: per-symbol holdings, realized and unrealized
// profit/loss, allocation breakdowns, and time series of invested capital
// and portfolio value.
//
// The engine uses the average-cost-basis method with stock-split adjustment.
// Every derived value is a pure function of its inputs, recomputed from
// scratch on demand: no operation mutates state, performs I/O, or caches
// internally (the one explicit exception, TimelineCache, is caller-owned).
// Given identical inputs, every function returns identical output across
// calls and process restarts.
//
// Collaborators live in subpackages and contain no accounting logic:
//   - parse reads and validates the pipe-delimited transaction CSV format.
//   - yahoo fetches live quotes and historical price series.
//   - store persists transactions and cached market data in SQLite.
//   - renderer formats engine output as markdown reports.
//
// This package is the foundational logic for the `fb` command-line tool.
package finboard
