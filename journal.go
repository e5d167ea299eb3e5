package ledger

import (
	"fmt"
	"time"
)

// ErrDuplicateCommodity is returned by AddCommodity when a commodity
// with the same symbol is already registered.
type ErrDuplicateCommodity struct {
	Symbol string
}

func (e *ErrDuplicateCommodity) Error() string {
	return fmt.Sprintf("ledger: commodity %q already registered", e.Symbol)
}

// SourceFile records one textual file that contributed to a Journal,
// and the modification time it had when the journal was built — the
// basis of the binary cache's staleness check.
type SourceFile struct {
	Path    string
	ModTime time.Time
}

// Journal is the root container: the chart of accounts, the commodity
// table, the ordered entries, and the source files that produced them.
type Journal struct {
	Sources     []SourceFile
	Master      *Account
	Commodities map[string]*Commodity
	Entries     []*Entry

	// Arena holds the entry, transaction, and bigint pools allocated by
	// the binary loader (see ledger/binary and [Arena]). It is nil for
	// journals built directly (e.g. by ledger/text) rather than read
	// back from a cache; Go's garbage collector, not an explicit
	// teardown, reclaims it once the Journal is unreachable.
	Arena *Arena
}

// NewJournal returns an empty journal with an unnamed master account
// and the null commodity registered under the empty symbol, so that
// Commodities always has exactly one entry even before anything else
// has been added.
func NewJournal() *Journal {
	return &Journal{
		Master:      NewAccount(""),
		Commodities: map[string]*Commodity{"": NewCommodity("")},
	}
}

// NullCommodity returns the journal's null commodity — the one never
// serialized by the binary codec and never referenced by an amount
// with a real commodity.
func (j *Journal) NullCommodity() *Commodity {
	return j.Commodities[""]
}

// AddCommodity registers c under its symbol, returning
// *ErrDuplicateCommodity if the symbol is already present.
func (j *Journal) AddCommodity(c *Commodity) error {
	if j.Commodities == nil {
		j.Commodities = make(map[string]*Commodity)
	}
	if _, exists := j.Commodities[c.Symbol]; exists {
		return &ErrDuplicateCommodity{Symbol: c.Symbol}
	}
	j.Commodities[c.Symbol] = c
	return nil
}

// FindOrCreateCommodity returns the commodity registered under symbol,
// creating and registering a new one if none exists yet.
func (j *Journal) FindOrCreateCommodity(symbol string) *Commodity {
	if j.Commodities == nil {
		j.Commodities = make(map[string]*Commodity)
	}
	if c, ok := j.Commodities[symbol]; ok {
		return c
	}
	c := NewCommodity(symbol)
	j.Commodities[symbol] = c
	return c
}

// AddEntry appends e to the journal's entries in order.
func (j *Journal) AddEntry(e *Entry) {
	j.Entries = append(j.Entries, e)
}
