package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCommodityPriceAtFindsMostRecentAtOrBefore(t *testing.T) {
	euro := NewCommodity("EUR")
	dollar := NewCommodity("$")
	euro.AddPrice(100, Amount{Commodity: dollar, Quantity: decimal.NewFromFloat(1.08)})
	euro.AddPrice(200, Amount{Commodity: dollar, Quantity: decimal.NewFromFloat(1.10)})

	price, found := euro.PriceAt(150)
	if !found {
		t.Fatalf("PriceAt(150) found = false, want true")
	}
	if !price.Quantity.Equal(decimal.NewFromFloat(1.08)) {
		t.Fatalf("PriceAt(150) = %v, want 1.08", price.Quantity)
	}

	if _, found := euro.PriceAt(50); found {
		t.Fatalf("PriceAt(50) found = true, want false: no price recorded that early")
	}
}

func TestCommodityPriceAtAdvancesLastLookupOnCacheHit(t *testing.T) {
	euro := NewCommodity("EUR")
	dollar := NewCommodity("$")
	euro.AddPrice(100, Amount{Commodity: dollar, Quantity: decimal.NewFromFloat(1.08)})

	if _, found := euro.PriceAt(150); !found {
		t.Fatalf("first PriceAt(150) found = false, want true")
	}
	firstLookup := euro.LastLookup

	// Second call for the same (commodity, timestamp) pair should come
	// back from priceCache rather than re-walking history, but still
	// record a fresh lookup.
	if _, found := euro.PriceAt(150); !found {
		t.Fatalf("cached PriceAt(150) found = false, want true")
	}
	if euro.LastLookup < firstLookup {
		t.Fatalf("LastLookup went backwards on cache hit")
	}
}
