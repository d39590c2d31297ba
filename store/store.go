// Package store persists transactions and cached market data in a local
// SQLite database. It is pure storage: nothing in here computes holdings or
// any other derived value.
package store

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/finboard"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultQuoteTTL is how long a cached quote stays fresh.
const DefaultQuoteTTL = 15 * time.Minute

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	date           TEXT NOT NULL,
	datetime       TEXT NOT NULL,
	type           TEXT NOT NULL,
	platform       TEXT NOT NULL,
	action         TEXT NOT NULL,
	symbol         TEXT NOT NULL,
	quantity       TEXT NOT NULL,
	price          TEXT NOT NULL,
	balance        TEXT NOT NULL,
	split_adjusted INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);

CREATE TABLE IF NOT EXISTS quotes (
	symbol     TEXT PRIMARY KEY,
	price      TEXT NOT NULL,
	change     TEXT NOT NULL,
	change_pct TEXT NOT NULL,
	currency   TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS price_history (
	symbol TEXT NOT NULL,
	date   TEXT NOT NULL,
	close  TEXT NOT NULL,
	PRIMARY KEY (symbol, date)
);
`

// Store wraps the SQLite database holding the local portfolio data.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("cannot enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("cannot bootstrap schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveTransactions replaces the stored transaction list with txs, in one
// transaction so a failure leaves the previous content intact.
func (s *Store) SaveTransactions(txs []finboard.Transaction) error {
	dbtx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin save: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.Exec("DELETE FROM transactions"); err != nil {
		return fmt.Errorf("cannot clear transactions: %w", err)
	}
	stmt, err := dbtx.Prepare(`INSERT INTO transactions
		(date, datetime, type, platform, action, symbol, quantity, price, balance, split_adjusted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		adjusted := 0
		if tx.SplitAdjusted {
			adjusted = 1
		}
		_, err := stmt.Exec(tx.Date.String(), tx.Time.UTC().Format(time.RFC3339),
			string(tx.Type), tx.Platform, string(tx.Action), tx.Symbol,
			tx.Quantity.String(), tx.Price.String(), tx.Balance.String(), adjusted)
		if err != nil {
			return fmt.Errorf("cannot insert transaction %s %s: %w", tx.Date, tx.Symbol, err)
		}
	}
	return dbtx.Commit()
}

// LoadTransactions returns every stored transaction in insertion order,
// which preserves same-day ordering across restarts.
func (s *Store) LoadTransactions() ([]finboard.Transaction, error) {
	rows, err := s.db.Query(`SELECT date, datetime, type, platform, action, symbol,
		quantity, price, balance, split_adjusted FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("cannot load transactions: %w", err)
	}
	defer rows.Close()

	var txs []finboard.Transaction
	for rows.Next() {
		var day, datetime, typ, platform, action, symbol, quantity, price, balance string
		var adjusted int
		if err := rows.Scan(&day, &datetime, &typ, &platform, &action, &symbol,
			&quantity, &price, &balance, &adjusted); err != nil {
			return nil, fmt.Errorf("cannot scan transaction: %w", err)
		}
		tx, err := rowToTransaction(day, datetime, typ, platform, action, symbol, quantity, price, balance, adjusted)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func rowToTransaction(day, datetime, typ, platform, action, symbol, quantity, price, balance string, adjusted int) (finboard.Transaction, error) {
	date, err := finboard.ParseDate(day)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored date %q: %w", day, err)
	}
	at, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored datetime %q: %w", datetime, err)
	}
	assetType, err := finboard.ParseAssetType(typ)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored row: %w", err)
	}
	act, err := finboard.ParseAction(action)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored row: %w", err)
	}
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored quantity %q: %w", quantity, err)
	}
	prc, err := decimal.NewFromString(price)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored price %q: %w", price, err)
	}
	bal, err := decimal.NewFromString(balance)
	if err != nil {
		return finboard.Transaction{}, fmt.Errorf("corrupt stored balance %q: %w", balance, err)
	}
	return finboard.Transaction{
		Date: date, Time: at, Type: assetType, Platform: platform, Action: act,
		Symbol: symbol, Quantity: qty, Price: prc, Balance: bal,
		SplitAdjusted: adjusted != 0,
	}, nil
}

// SaveQuotes upserts quotes into the cache, stamping each with now.
func (s *Store) SaveQuotes(prices finboard.PriceMap, now time.Time) error {
	dbtx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin quote save: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.Prepare(`INSERT INTO quotes (symbol, price, change, change_pct, currency, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET price=excluded.price, change=excluded.change,
		change_pct=excluded.change_pct, currency=excluded.currency, fetched_at=excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("cannot prepare quote upsert: %w", err)
	}
	defer stmt.Close()

	for symbol, q := range prices {
		_, err := stmt.Exec(symbol, q.Price.String(), q.Change.String(), q.ChangePct.String(),
			q.Currency, now.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("cannot upsert quote %s: %w", symbol, err)
		}
	}
	return dbtx.Commit()
}

// FreshQuotes returns the cached quotes still within ttl of now. Stale
// entries are simply left out; the caller refetches those symbols.
func (s *Store) FreshQuotes(ttl time.Duration, now time.Time) (finboard.PriceMap, error) {
	rows, err := s.db.Query("SELECT symbol, price, change, change_pct, currency, fetched_at FROM quotes")
	if err != nil {
		return nil, fmt.Errorf("cannot load quotes: %w", err)
	}
	defer rows.Close()

	prices := make(finboard.PriceMap)
	for rows.Next() {
		var symbol, price, change, changePct, currency, fetchedAt string
		if err := rows.Scan(&symbol, &price, &change, &changePct, &currency, &fetchedAt); err != nil {
			return nil, fmt.Errorf("cannot scan quote: %w", err)
		}
		at, err := time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored quote time %q: %w", fetchedAt, err)
		}
		if now.Sub(at) >= ttl {
			continue
		}
		q := finboard.Quote{Currency: currency, Time: at}
		if q.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("corrupt stored quote price %q: %w", price, err)
		}
		if q.Change, err = decimal.NewFromString(change); err != nil {
			return nil, fmt.Errorf("corrupt stored quote change %q: %w", change, err)
		}
		if q.ChangePct, err = decimal.NewFromString(changePct); err != nil {
			return nil, fmt.Errorf("corrupt stored quote change_pct %q: %w", changePct, err)
		}
		prices[symbol] = q
	}
	return prices, rows.Err()
}

// ClearQuotes drops the whole quote cache.
func (s *Store) ClearQuotes() error {
	_, err := s.db.Exec("DELETE FROM quotes")
	return err
}

// SaveHistory replaces the stored price history of one symbol.
func (s *Store) SaveHistory(symbol string, points []finboard.PricePoint) error {
	dbtx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin history save: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.Exec("DELETE FROM price_history WHERE symbol = ?", symbol); err != nil {
		return fmt.Errorf("cannot clear history of %s: %w", symbol, err)
	}
	stmt, err := dbtx.Prepare("INSERT INTO price_history (symbol, date, close) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("cannot prepare history insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(symbol, p.Date.String(), p.Close.String()); err != nil {
			return fmt.Errorf("cannot insert history point %s %s: %w", symbol, p.Date, err)
		}
	}
	return dbtx.Commit()
}

// LoadHistories returns every stored price series, keyed by symbol and
// sorted by date within each series.
func (s *Store) LoadHistories() (finboard.Histories, error) {
	rows, err := s.db.Query("SELECT symbol, date, close FROM price_history ORDER BY symbol, date")
	if err != nil {
		return nil, fmt.Errorf("cannot load histories: %w", err)
	}
	defer rows.Close()

	histories := make(finboard.Histories)
	for rows.Next() {
		var symbol, day, closePrice string
		if err := rows.Scan(&symbol, &day, &closePrice); err != nil {
			return nil, fmt.Errorf("cannot scan history point: %w", err)
		}
		date, err := finboard.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored history date %q: %w", day, err)
		}
		c, err := decimal.NewFromString(closePrice)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored close %q: %w", closePrice, err)
		}
		histories[symbol] = append(histories[symbol], finboard.PricePoint{Date: date, Close: c})
	}
	return histories, rows.Err()
}

// ExportTransactions writes the stored transactions to w as JSONL: one JSON
// object per line, human readable and easy to diff or merge.
func (s *Store) ExportTransactions(w io.Writer) error {
	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	for _, tx := range txs {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("cannot marshal transaction %s %s: %w", tx.Date, tx.Symbol, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write transaction export: %w", err)
		}
	}
	return nil
}

// ImportTransactions reads JSONL transactions from r, one object per line.
// Blank lines are skipped.
func ImportTransactions(r io.Reader) ([]finboard.Transaction, error) {
	scanner := bufio.NewScanner(r)
	var txs []finboard.Transaction
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var tx finboard.Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("cannot parse transaction line %q: %w", string(line), err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transaction import: %w", err)
	}
	return txs, nil
}
