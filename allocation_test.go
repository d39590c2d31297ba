package finboard

import (
	"testing"
)

func TestAllocationByType(t *testing.T) {
	txs := []Transaction{
		tx(t, "2023-01-01", Stock, "TDRP", Buy, "AAPL", 10, 100, -1000),
		tx(t, "2023-01-01", Stock, "TDRP", Buy, "MSFT", 5, 200, -1000),
		tx(t, "2023-01-01", Crypto, "BINA", Buy, "BTC", 1, 20000, -20000),
		tx(t, "2023-01-01", ETF, "MYNV", Buy, "SPY", 2, 400, -800),
	}
	holdings := ApplyPrices(ComputeHoldings(txs), PriceMap{
		"AAPL": quote(110),
		"MSFT": quote(210),
		"BTC":  quote(25000),
		// SPY left unpriced: contributes nothing.
	})

	groups := AllocationByType(holdings)
	wantDecimal(t, "MKT", groups[Stock], 2150) // 1100 + 1050
	wantDecimal(t, "CRP", groups[Crypto], 25000)
	if _, ok := groups[ETF]; ok {
		t.Error("unpriced ETF position must not appear in the breakdown")
	}
}

func TestAllocationBySymbol(t *testing.T) {
	txs := []Transaction{
		buy(t, "2023-01-01", "AAPL", 10, 100, -1000),
		buy(t, "2023-01-01", "MSFT", 5, 200, -1000),
	}
	holdings := ApplyPrices(ComputeHoldings(txs), PriceMap{"AAPL": quote(110), "MSFT": quote(210)})

	groups := AllocationBySymbol(holdings)
	if len(groups) != 2 {
		t.Fatalf("got %d symbols, want 2", len(groups))
	}
	wantDecimal(t, "AAPL", groups["AAPL"], 1100)
	wantDecimal(t, "MSFT", groups["MSFT"], 1050)
}

func TestAggregateByPlatform(t *testing.T) {
	txs := []Transaction{
		tx(t, "2023-01-01", Stock, "TDRP", Buy, "AAPL", 10, 100, -1000),
		tx(t, "2023-02-01", Stock, "TDRP", Sell, "AAPL", 5, 120, 600),
		tx(t, "2023-01-15", Stock, "TDRP", Buy, "MSFT", 5, 200, -1000),
		tx(t, "2023-01-20", Crypto, "BINA", Buy, "BTC", 1, 20000, -20000),
	}

	summaries := AggregateByPlatform(txs)
	if len(summaries) != 2 {
		t.Fatalf("got %d platforms, want 2", len(summaries))
	}
	// Sorted by platform code.
	if summaries[0].Platform != "BINA" || summaries[1].Platform != "TDRP" {
		t.Fatalf("platform order = %s, %s; want BINA, TDRP", summaries[0].Platform, summaries[1].Platform)
	}

	tdrp := summaries[1]
	wantDecimal(t, "invested", tdrp.Invested, 2000)
	wantDecimal(t, "proceeds", tdrp.Proceeds, 600)
	wantDecimal(t, "net", tdrp.Net, 1400)
	if tdrp.Transactions != 3 {
		t.Errorf("txCount = %d, want 3", tdrp.Transactions)
	}
	if len(tdrp.Symbols) != 2 || tdrp.Symbols[0] != "AAPL" || tdrp.Symbols[1] != "MSFT" {
		t.Errorf("symbols = %v, want [AAPL MSFT]", tdrp.Symbols)
	}
}

func TestAggregateByPlatform_ClosedPositionsStillReported(t *testing.T) {
	txs := []Transaction{
		tx(t, "2023-01-01", Stock, "OLDB", Buy, "AAPL", 10, 100, -1000),
		tx(t, "2023-02-01", Stock, "OLDB", Sell, "AAPL", 10, 120, 1200),
	}
	summaries := AggregateByPlatform(txs)
	if len(summaries) != 1 {
		t.Fatalf("platform with only closed positions dropped")
	}
	wantDecimal(t, "net", summaries[0].Net, -200)
}

func TestMonthlyActivity(t *testing.T) {
	txs := []Transaction{
		buy(t, "2023-01-05", "AAPL", 10, 100, -1000),
		buy(t, "2023-01-20", "MSFT", 5, 200, -1000),
		sell(t, "2023-03-10", "AAPL", 5, 120, 600),
	}

	buckets := MonthlyActivity(txs)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	jan := buckets[0]
	if jan.Period != "2023-01" || jan.Buys != 2 || jan.Sells != 0 {
		t.Errorf("jan = %+v, want period 2023-01 with 2 buys", jan)
	}
	wantDecimal(t, "jan buyAmount", jan.BuyAmount, 2000)

	mar := buckets[1]
	if mar.Period != "2023-03" || mar.Sells != 1 {
		t.Errorf("mar = %+v, want period 2023-03 with 1 sell", mar)
	}
	wantDecimal(t, "mar sellAmount", mar.SellAmount, 600)
}

func TestYearlyActivity(t *testing.T) {
	txs := []Transaction{
		buy(t, "2022-12-05", "AAPL", 10, 100, -1000),
		buy(t, "2023-01-20", "MSFT", 5, 200, -1000),
		sell(t, "2023-03-10", "AAPL", 5, 120, 600),
	}
	buckets := YearlyActivity(txs)
	if len(buckets) != 2 || buckets[0].Period != "2022" || buckets[1].Period != "2023" {
		t.Fatalf("buckets = %+v, want years 2022 and 2023", buckets)
	}
	if buckets[1].Transactions != 2 {
		t.Errorf("2023 txCount = %d, want 2", buckets[1].Transactions)
	}
}
