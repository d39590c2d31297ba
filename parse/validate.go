package parse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/etnz/finboard"
)

var datetimeRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}-\d{2}-\d{2}$`)

// Issue is one validation finding tied to a 1-based row number. Row 0 means
// the issue concerns the file as a whole.
type Issue struct {
	Row int
	Msg string
}

func (i Issue) String() string {
	if i.Row == 0 {
		return i.Msg
	}
	return fmt.Sprintf("row %d: %s", i.Row, i.Msg)
}

// Summary describes the valid rows of a validated file.
type Summary struct {
	TotalRows int
	Types     []string // sorted distinct asset types
	Platforms []string // sorted distinct platform codes
	Symbols   []string // sorted distinct symbols
	BuyCount  int
	SellCount int
}

// Report is the result of validating a CSV file: the rows that parsed,
// everything that did not, and warnings about rows that parsed but look
// suspicious. Errors block the import; warnings never do.
type Report struct {
	Rows     []finboard.Transaction
	Errors   []Issue
	Warnings []Issue
	Summary  Summary
}

// CanProceed reports whether the file can be imported: no errors and at
// least one data row.
func (r *Report) CanProceed() bool {
	return len(r.Errors) == 0 && len(r.Rows) > 0
}

// Validate reads the whole file and checks every row, reporting per-row
// errors and warnings instead of failing fast. Warnings cover conditions the
// accounting tolerates but the user probably wants to know about: a buy with
// a positive balance, a sell with a negative one, suspiciously short platform
// codes, and duplicate rows (same datetime, symbol and action).
func Validate(r io.Reader) (*Report, error) {
	report := &Report{}

	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transaction CSV: %w", err)
	}

	if len(lines) < 2 {
		report.Errors = append(report.Errors, Issue{Row: 0, Msg: "file is empty or has no data rows"})
		return report, nil
	}

	start := 0
	if isHeader(strings.TrimSpace(lines[0])) {
		start = 1
	} else {
		report.Warnings = append(report.Warnings, Issue{Row: 1, Msg: "no header row detected, treating first line as data"})
	}

	types := make(map[string]struct{})
	platforms := make(map[string]struct{})
	symbols := make(map[string]struct{})
	seen := make(map[string]int) // duplicate detection key -> first row

	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		row := i + 1

		parts := strings.Split(line, "|")
		if len(parts) < columnCount {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: fmt.Sprintf("expected %d columns, found %d", columnCount, len(parts))})
			continue
		}
		if len(parts) > columnCount {
			report.Warnings = append(report.Warnings, Issue{Row: row, Msg: fmt.Sprintf("extra columns detected (%d), ignoring extras", len(parts))})
		}
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		ok := true
		if !datetimeRe.MatchString(parts[colDatetime]) {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: fmt.Sprintf("invalid datetime %q, expected YY-MM-DD-HH-MM", parts[colDatetime])})
			ok = false
		} else {
			ok = checkDatetimeRanges(report, row, parts[colDatetime]) && ok
		}

		if _, err := finboard.ParseAssetType(strings.ToUpper(parts[colType])); err != nil {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: err.Error()})
			ok = false
		} else {
			types[strings.ToUpper(parts[colType])] = struct{}{}
		}

		action, err := finboard.ParseAction(strings.ToLower(parts[colAction]))
		if err != nil {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: err.Error()})
			ok = false
		}

		if len(parts[colPlatform]) < 2 {
			report.Warnings = append(report.Warnings, Issue{Row: row, Msg: fmt.Sprintf("platform %q seems too short", parts[colPlatform])})
		}
		platforms[strings.ToUpper(parts[colPlatform])] = struct{}{}

		if parts[colSymbol] == "" {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: "symbol is empty"})
			ok = false
		} else {
			symbols[strings.ToUpper(parts[colSymbol])] = struct{}{}
		}

		qty, qtyErr := strconv.ParseFloat(strings.TrimPrefix(parts[colQuantity], "+"), 64)
		if qtyErr != nil || qty == 0 {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: fmt.Sprintf("invalid quantity %q, must be a non-zero number", parts[colQuantity])})
			ok = false
		}
		price, priceErr := strconv.ParseFloat(parts[colPrice], 64)
		if priceErr != nil || price < 0 {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: fmt.Sprintf("invalid price %q, must be a non-negative number", parts[colPrice])})
			ok = false
		}
		balance, balErr := strconv.ParseFloat(parts[colBalance], 64)
		if balErr != nil {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: fmt.Sprintf("invalid balance %q, must be a number", parts[colBalance])})
			ok = false
		}

		// Sign consistency: accounting uses |balance|, so these are warnings.
		if err == nil && balErr == nil {
			if action == finboard.Buy && balance > 0 {
				report.Warnings = append(report.Warnings, Issue{Row: row, Msg: "buy transaction has positive balance (expected negative)"})
			}
			if action == finboard.Sell && balance < 0 {
				report.Warnings = append(report.Warnings, Issue{Row: row, Msg: "sell transaction has negative balance (expected positive)"})
			}
		}

		if !ok {
			continue
		}

		key := parts[colDatetime] + "|" + strings.ToUpper(parts[colSymbol]) + "|" + string(action)
		if firstRow, dup := seen[key]; dup {
			report.Warnings = append(report.Warnings, Issue{Row: row, Msg: fmt.Sprintf("possible duplicate of row %d (same datetime, symbol, action)", firstRow)})
		} else {
			seen[key] = row
		}

		tx, parseErr := parseRow(line)
		if parseErr != nil {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: parseErr.Error()})
			continue
		}
		report.Rows = append(report.Rows, tx)
		if action == finboard.Buy {
			report.Summary.BuyCount++
		} else {
			report.Summary.SellCount++
		}
	}

	report.Summary.TotalRows = len(report.Rows)
	report.Summary.Types = sortedKeys(types)
	report.Summary.Platforms = sortedKeys(platforms)
	report.Summary.Symbols = sortedKeys(symbols)
	return report, nil
}

// checkDatetimeRanges validates the component ranges of an already
// well-shaped datetime. Returns false when any component is out of range.
func checkDatetimeRanges(report *Report, row int, datetime string) bool {
	parts := strings.Split(datetime, "-")
	ok := true
	check := func(idx int, min, max int, what string) {
		n, _ := strconv.Atoi(parts[idx])
		if n < min || n > max {
			report.Errors = append(report.Errors, Issue{Row: row, Msg: fmt.Sprintf("%s %d out of range (%d-%d)", what, n, min, max)})
			ok = false
		}
	}
	check(1, 1, 12, "month")
	check(2, 1, 31, "day")
	check(3, 0, 23, "hour")
	check(4, 0, 59, "minute")
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
