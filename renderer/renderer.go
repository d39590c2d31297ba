// Package renderer turns engine output into markdown reports. It holds no
// accounting logic: every number it prints was computed by the engine.
package renderer

// Currency is the display currency for every monetary column. The engine is
// currency-agnostic (a single implicit currency per ledger); only the
// renderer needs to know which symbol to print.
var Currency = "USD"
