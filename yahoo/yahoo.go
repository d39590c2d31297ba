// Package yahoo fetches quotes and historical price series from the Yahoo
// Finance chart API. It knows nothing about portfolios: it maps tickers to
// engine types (finboard.Quote, finboard.PricePoint) and that is all.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/finboard"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// batchSize limits concurrent requests per batch to stay under the API's
// informal rate limits.
const batchSize = 5

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client queries the Yahoo Finance chart API.
type Client struct {
	// HTTPClient is the client used for requests. Defaults to a client with
	// a 10 second timeout.
	HTTPClient *http.Client

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string

	// Tickers maps local symbols to Yahoo tickers (e.g. "BTC" -> "BTC-USD").
	// Symbols without a mapping are queried verbatim.
	Tickers map[string]string
}

// NewClient returns a client with default settings.
func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// ticker resolves the Yahoo ticker for a local symbol.
func (c *Client) ticker(symbol string) string {
	if t, ok := c.Tickers[symbol]; ok {
		return t
	}
	return symbol
}

// get performs a GET and unmarshals the JSON response body into data.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

// Quote fetches the live quote for one local symbol from the 1-day chart
// metadata. Change and change percent are derived against the previous
// close when one is present.
func (c *Client) Quote(ctx context.Context, symbol string) (finboard.Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL(), c.ticker(symbol))

	var jobj any
	if err := c.get(ctx, addr, &jobj); err != nil {
		return finboard.Quote{}, fmt.Errorf("cannot fetch quote for %q: %w", symbol, err)
	}

	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return finboard.Quote{}, fmt.Errorf("cannot read quote for %q: %w", symbol, err)
	}
	// previous close is optional; without it change stays zero.
	prev, err := jfloat(jobj, "$.chart.result[0].meta.chartPreviousClose")
	if err != nil {
		prev, err = jfloat(jobj, "$.chart.result[0].meta.previousClose")
	}

	quote := finboard.Quote{
		Price: decimal.NewFromFloat(price),
		Time:  time.Now(),
	}
	if currency, cerr := jstring(jobj, "$.chart.result[0].meta.currency"); cerr == nil {
		quote.Currency = currency
	} else {
		quote.Currency = "USD"
	}
	if err == nil && prev > 0 {
		quote.Change = quote.Price.Sub(decimal.NewFromFloat(prev))
		quote.ChangePct = quote.Change.Div(decimal.NewFromFloat(prev)).Mul(decimal.NewFromInt(100))
	}
	return quote, nil
}

// jfloat extracts a float64 at a jsonpath from a decoded JSON document.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath sometimes wraps a single answer in a list; keep the first.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a number: %v", path, jval)
	}
	return val, nil
}

func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string: %v", path, jval)
	}
	return val, nil
}

// chartResponse is the raw shape of the Yahoo chart API answer, for the
// history endpoint where whole arrays are consumed.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// historyInterval picks the sampling interval Yahoo expects for a range.
func historyInterval(rng string) string {
	switch rng {
	case "1mo", "3mo", "6mo":
		return "1d"
	case "1y", "2y":
		return "1wk"
	case "5y":
		return "1mo"
	default:
		return "1wk"
	}
}

// History fetches the closing-price series of one local symbol over a Yahoo
// range string ("1mo", "6mo", "1y", "5y", ...). Days without a close (market
// holidays mid-series) are skipped, never zero-filled.
func (c *Client) History(ctx context.Context, symbol, rng string) ([]finboard.PricePoint, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL(), c.ticker(symbol), rng, historyInterval(rng))

	var resp chartResponse
	if err := c.get(ctx, addr, &resp); err != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("cannot fetch history for %q: no chart result", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("cannot fetch history for %q: no quote indicators", symbol)
	}
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("cannot fetch history for %q: mismatched data lengths", symbol)
	}

	points := make([]finboard.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		points = append(points, finboard.PricePoint{
			Date:  finboard.NewDate(day.Date()),
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}
	return points, nil
}

// Quotes fetches quotes for many symbols, batchSize at a time. Symbols that
// fail are logged and omitted from the result, so one dead ticker never
// blocks the rest of the refresh.
func (c *Client) Quotes(ctx context.Context, symbols []string) (finboard.PriceMap, error) {
	prices := make(finboard.PriceMap, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchSize)
	for _, symbol := range symbols {
		g.Go(func() error {
			quote, err := c.Quote(ctx, symbol)
			if err != nil {
				log.Printf("quote %s: %v", symbol, err)
				return nil
			}
			mu.Lock()
			prices[symbol] = quote
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

// Histories fetches price histories for many symbols, batchSize at a time,
// with the same failure tolerance as Quotes.
func (c *Client) Histories(ctx context.Context, symbols []string, rng string) (finboard.Histories, error) {
	histories := make(finboard.Histories, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchSize)
	for _, symbol := range symbols {
		g.Go(func() error {
			series, err := c.History(ctx, symbol, rng)
			if err != nil {
				log.Printf("history %s: %v", symbol, err)
				return nil
			}
			if len(series) == 0 {
				return nil
			}
			mu.Lock()
			histories[symbol] = series
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return histories, nil
}
