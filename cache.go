package finboard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
)

// TimelineCache memoizes ValueTimeline results, keyed by a content hash of
// the inputs. It exists because presentation layers recompute timelines on
// nearly every filter change while the inputs rarely differ; the cache makes
// that cheap without hiding mutable state inside the engine. Callers own
// the cache and its lifetime.
//
// It is not safe for concurrent use; the engine is single-threaded by
// contract.
type TimelineCache struct {
	entries map[string][]TimelinePoint
}

// NewTimelineCache creates an empty cache.
func NewTimelineCache() *TimelineCache {
	return &TimelineCache{entries: make(map[string][]TimelinePoint)}
}

// ValueTimeline returns the memoized timeline for the given inputs,
// computing and storing it on first sight of this input content.
func (c *TimelineCache) ValueTimeline(txs []Transaction, histories Histories) []TimelinePoint {
	key := fingerprint(txs, histories)
	if points, ok := c.entries[key]; ok {
		return points
	}
	points := ValueTimeline(txs, histories)
	c.entries[key] = points
	return points
}

// Len returns the number of distinct inputs cached so far.
func (c *TimelineCache) Len() int { return len(c.entries) }

// Clear drops every cached timeline.
func (c *TimelineCache) Clear() {
	c.entries = make(map[string][]TimelinePoint)
}

// fingerprint produces a canonical SHA-256 hash of the timeline inputs.
// Transactions hash in their given order (order is meaningful for replay);
// histories hash sorted by symbol so map iteration order cannot leak in.
func fingerprint(txs []Transaction, histories Histories) string {
	h := sha256.New()

	for _, tx := range txs {
		writeTx(h, tx)
	}

	symbols := make([]string, 0, len(histories))
	for sym := range histories {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		fmt.Fprintf(h, "h|%s\n", sym)
		for _, p := range histories[sym] {
			fmt.Fprintf(h, "%s|%s\n", p.Date, p.Close)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeTx(w io.Writer, tx Transaction) {
	fmt.Fprintf(w, "t|%s|%s|%s|%s|%s|%s|%s|%s|%t\n",
		tx.Date, tx.Type, tx.Platform, tx.Action, tx.Symbol,
		tx.Quantity, tx.Price, tx.Balance, tx.SplitAdjusted)
}
