// Package parse reads the pipe-delimited transaction CSV format:
//
//	DATETIME|TYPE|PLATFORM|ACTION|SYMBOL|QUANTITY|PRICE|BALANCE
//
// where DATETIME is YY-MM-DD-HH-MM (years 2000-2099). The package only
// parses and validates; it never computes anything about the portfolio.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/etnz/finboard"
	"github.com/shopspring/decimal"
)

// datetimeLayout matches YY-MM-DD-HH-MM, e.g. "23-06-15-14-30".
const datetimeLayout = "06-01-02-15-04"

// columns of one CSV row, in order.
const (
	colDatetime = iota
	colType
	colPlatform
	colAction
	colSymbol
	colQuantity
	colPrice
	colBalance
	columnCount
)

// ParseCSV reads transactions from r, skipping a header line when one is
// detected and silently dropping malformed rows (use Validate to report
// them). Rows are returned sorted by datetime.
func ParseCSV(r io.Reader) ([]finboard.Transaction, error) {
	scanner := bufio.NewScanner(r)
	txs := make([]finboard.Transaction, 0)
	first := true

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if isHeader(line) {
				continue
			}
		}
		if line == "" {
			continue
		}

		tx, err := parseRow(line)
		if err != nil {
			continue
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transaction CSV: %w", err)
	}

	sortByDatetime(txs)
	return txs, nil
}

// Merge combines several transaction lists (e.g. a stock export and a crypto
// export) into one list sorted by datetime. Inputs are not modified.
func Merge(lists ...[]finboard.Transaction) []finboard.Transaction {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	all := make([]finboard.Transaction, 0, n)
	for _, l := range lists {
		all = append(all, l...)
	}
	sortByDatetime(all)
	return all
}

// isHeader reports whether the first line is a header rather than data.
func isHeader(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "datetime") || strings.Contains(l, "symbol")
}

func sortByDatetime(txs []finboard.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Time.Before(txs[j].Time) })
}

// parseRow parses a single data line into a Transaction.
func parseRow(line string) (finboard.Transaction, error) {
	parts := strings.Split(line, "|")
	if len(parts) < columnCount {
		return finboard.Transaction{}, fmt.Errorf("expected %d columns, found %d", columnCount, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	at, err := time.Parse(datetimeLayout, parts[colDatetime])
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("invalid datetime %q want YY-MM-DD-HH-MM: %w", parts[colDatetime], err)
	}

	typ, err := finboard.ParseAssetType(strings.ToUpper(parts[colType]))
	if err != nil {
		return finboard.Transaction{}, err
	}
	action, err := finboard.ParseAction(strings.ToLower(parts[colAction]))
	if err != nil {
		return finboard.Transaction{}, err
	}

	symbol := strings.ToUpper(parts[colSymbol])
	if symbol == "" {
		return finboard.Transaction{}, fmt.Errorf("symbol is empty")
	}

	// Some exports prefix bought quantities with a "+".
	quantity, err := decimal.NewFromString(strings.TrimPrefix(parts[colQuantity], "+"))
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("invalid quantity %q: %w", parts[colQuantity], err)
	}
	price, err := decimal.NewFromString(parts[colPrice])
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("invalid price %q: %w", parts[colPrice], err)
	}
	balance, err := decimal.NewFromString(parts[colBalance])
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("invalid balance %q: %w", parts[colBalance], err)
	}

	return finboard.Transaction{
		Date:     finboard.NewDate(at.Date()),
		Time:     at,
		Type:     typ,
		Platform: strings.ToUpper(parts[colPlatform]),
		Action:   action,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Balance:  balance,
	}, nil
}
