package store

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/finboard"
	"github.com/shopspring/decimal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "finboard.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTx(t *testing.T, date, symbol string, action finboard.Action, qty, price, balance string) finboard.Transaction {
	t.Helper()
	d := finboard.MustParseDate(date)
	return finboard.Transaction{
		Date:     d,
		Time:     time.Date(d.Year(), d.Month(), d.Day(), 14, 30, 0, 0, time.UTC),
		Type:     finboard.Stock,
		Platform: "TDRP",
		Action:   action,
		Symbol:   symbol,
		Quantity: decimal.RequireFromString(qty),
		Price:    decimal.RequireFromString(price),
		Balance:  decimal.RequireFromString(balance),
	}
}

func TestSaveLoadTransactions(t *testing.T) {
	s := openTestStore(t)

	in := []finboard.Transaction{
		testTx(t, "2023-01-15", "AAPL", finboard.Buy, "10", "150", "-1500"),
		testTx(t, "2023-01-15", "MSFT", finboard.Buy, "5", "200.5", "-1002.5"),
		testTx(t, "2023-06-01", "AAPL", finboard.Sell, "4", "180", "720"),
	}
	in[0].SplitAdjusted = true

	if err := s.SaveTransactions(in); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadTransactions()
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 3 {
		t.Fatalf("got %d transactions, want 3", len(out))
	}
	// Insertion order preserved, including same-day rows.
	if out[0].Symbol != "AAPL" || out[1].Symbol != "MSFT" {
		t.Errorf("order lost: %s, %s", out[0].Symbol, out[1].Symbol)
	}
	if !out[0].SplitAdjusted {
		t.Error("split_adjusted marker lost")
	}
	if out[1].SplitAdjusted {
		t.Error("split_adjusted marker leaked onto another row")
	}
	if !out[1].Quantity.Equal(in[1].Quantity) || !out[1].Balance.Equal(in[1].Balance) {
		t.Errorf("decimal fields lost precision: %+v", out[1])
	}
	if out[2].Date.String() != "2023-06-01" || out[2].Action != finboard.Sell {
		t.Errorf("row 2 = %+v", out[2])
	}
}

func TestSaveTransactions_Replaces(t *testing.T) {
	s := openTestStore(t)

	first := []finboard.Transaction{testTx(t, "2023-01-15", "AAPL", finboard.Buy, "10", "150", "-1500")}
	if err := s.SaveTransactions(first); err != nil {
		t.Fatal(err)
	}
	second := []finboard.Transaction{testTx(t, "2023-02-15", "MSFT", finboard.Buy, "5", "200", "-1000")}
	if err := s.SaveTransactions(second); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadTransactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Symbol != "MSFT" {
		t.Errorf("save must replace, got %d rows", len(out))
	}
}

func TestQuoteCacheTTL(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	prices := finboard.PriceMap{
		"AAPL": {Price: decimal.RequireFromString("200.5"), Currency: "USD"},
	}
	if err := s.SaveQuotes(prices, now); err != nil {
		t.Fatal(err)
	}

	fresh, err := s.FreshQuotes(DefaultQuoteTTL, now.Add(5*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	q, ok := fresh["AAPL"]
	if !ok {
		t.Fatal("quote missing within TTL")
	}
	if q.Price.String() != "200.5" || q.Currency != "USD" {
		t.Errorf("quote = %+v", q)
	}

	stale, err := s.FreshQuotes(DefaultQuoteTTL, now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Errorf("expired quote still returned: %v", stale)
	}
}

func TestSaveQuotes_Upserts(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	if err := s.SaveQuotes(finboard.PriceMap{"AAPL": {Price: decimal.NewFromInt(100)}}, now); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveQuotes(finboard.PriceMap{"AAPL": {Price: decimal.NewFromInt(110)}}, now); err != nil {
		t.Fatal(err)
	}

	fresh, err := s.FreshQuotes(DefaultQuoteTTL, now)
	if err != nil {
		t.Fatal(err)
	}
	if got := fresh["AAPL"].Price.String(); got != "110" {
		t.Errorf("price = %s, want the updated 110", got)
	}
}

func TestClearQuotes(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()
	if err := s.SaveQuotes(finboard.PriceMap{"AAPL": {Price: decimal.NewFromInt(100)}}, now); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearQuotes(); err != nil {
		t.Fatal(err)
	}
	fresh, err := s.FreshQuotes(DefaultQuoteTTL, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 0 {
		t.Errorf("quotes survive ClearQuotes: %v", fresh)
	}
}

func TestPriceHistory(t *testing.T) {
	s := openTestStore(t)

	series := []finboard.PricePoint{
		{Date: finboard.MustParseDate("2023-01-01"), Close: decimal.RequireFromString("130.5")},
		{Date: finboard.MustParseDate("2023-01-08"), Close: decimal.RequireFromString("132.25")},
	}
	if err := s.SaveHistory("AAPL", series); err != nil {
		t.Fatal(err)
	}
	// Saving again replaces, never duplicates.
	if err := s.SaveHistory("AAPL", series); err != nil {
		t.Fatal(err)
	}

	histories, err := s.LoadHistories()
	if err != nil {
		t.Fatal(err)
	}
	got := histories["AAPL"]
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	if got[0].Date.String() != "2023-01-01" || got[0].Close.String() != "130.5" {
		t.Errorf("first point = %+v", got[0])
	}
}

func TestExportImportTransactions(t *testing.T) {
	s := openTestStore(t)
	in := []finboard.Transaction{
		testTx(t, "2023-01-15", "AAPL", finboard.Buy, "10", "150", "-1500"),
		testTx(t, "2023-06-01", "AAPL", finboard.Sell, "4", "180", "720"),
	}
	if err := s.SaveTransactions(in); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.ExportTransactions(&buf); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Fatalf("export has %d lines, want 2", lines)
	}

	out, err := ImportTransactions(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Symbol != "AAPL" || !out[0].Quantity.Equal(in[0].Quantity) {
		t.Errorf("round trip lost data: %+v", out)
	}
}
