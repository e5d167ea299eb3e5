package ledger

import (
	"fmt"
	"sort"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// priceCache holds recent PriceAt results keyed by the commodity's
// address and the timestamp ("%p@%d") so a
// report that repeatedly asks for the same commodity's price at the same
// moment (e.g. printing a register with a running converted total) doesn't
// re-walk the full history map on every line.
var priceCache = cache.New(5*time.Minute, 10*time.Minute)

// Commodity flags are opaque bits carried through the codec unmodified.
// The small set below mirrors the kind of presentation and provenance
// flags a real pricing commodity needs; the codec never interprets
// them.
const (
	CommodityFlagNoMarket uint32 = 1 << 0 // no market quotes are fetched for this commodity
	CommodityFlagBuiltin  uint32 = 1 << 1 // built into the journal rather than declared
	CommodityFlagPrimary  uint32 = 1 << 2 // the journal's default reporting commodity
)

// HistoryPoint is one (timestamp, price) observation in a commodity's
// price history.
type HistoryPoint struct {
	When  int64 // Unix seconds
	Price Amount
}

// Commodity is a unit of value — a currency or a security — carrying a
// display precision, presentation flags, and an optional price history.
// The empty-symbol "null commodity" sits in a Journal's commodity table
// under the empty symbol but is never serialized; amounts with no
// commodity use [NoIdent].
type Commodity struct {
	Ident      uint32
	Symbol     string
	Name       string
	Note       string
	Precision  uint32
	Flags      uint32
	LastLookup int64
	Conversion Amount

	history map[int64]Amount
}

// NewCommodity returns an unattached commodity identified by symbol.
func NewCommodity(symbol string) *Commodity {
	return &Commodity{Symbol: symbol, history: make(map[int64]Amount)}
}

// AddPrice records that the commodity was worth price at the Unix time
// when.
func (c *Commodity) AddPrice(when int64, price Amount) {
	if c.history == nil {
		c.history = make(map[int64]Amount)
	}
	c.history[when] = price
}

// History returns the commodity's price history, ordered by timestamp.
// The binary codec writes history in this order so readers can rebuild
// an identical map without caring about Go's unordered map iteration.
func (c *Commodity) History() []HistoryPoint {
	points := make([]HistoryPoint, 0, len(c.history))
	for when, price := range c.history {
		points = append(points, HistoryPoint{When: when, Price: price})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].When < points[j].When })
	return points
}

// PriceAt returns the most recent recorded price at or before when, and
// whether one was found. Results are cached per commodity instance, and a
// cache hit still advances LastLookup so callers can tell the lookup
// happened even though the history map was skipped.
func (c *Commodity) PriceAt(when int64) (Amount, bool) {
	key := fmt.Sprintf("%p@%d", c, when)
	if cached, ok := priceCache.Get(key); ok {
		c.LastLookup = time.Now().Unix()
		if cached == nil {
			return Amount{}, false
		}
		return cached.(Amount), true
	}

	var best Amount
	var bestWhen int64
	found := false
	for t, amt := range c.history {
		if t <= when && (!found || t > bestWhen) {
			best, bestWhen, found = amt, t, true
		}
	}

	c.LastLookup = time.Now().Unix()
	if found {
		priceCache.Set(key, best, cache.DefaultExpiration)
	} else {
		priceCache.Set(key, nil, cache.DefaultExpiration)
	}
	return best, found
}
