package binary

import (
	"io"
	"sort"

	ledger "github.com/mdhowey/ledgerbin"
)

// commoditySymbols returns j's commodity symbols excluding the null
// commodity, sorted for a deterministic write order. The table's
// identifier assignment (and so every amount that references a
// commodity) depends on this order being stable across writes of the
// same journal.
func commoditySymbols(j *ledger.Journal) []string {
	symbols := make([]string, 0, len(j.Commodities))
	for sym := range j.Commodities {
		if sym == "" {
			continue
		}
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// writeCommodityTable writes the commodity count followed by each
// commodity's record. Identifiers are assigned into a
// side table up front, before any record is written, so a commodity's
// price history or conversion amount may reference any other commodity
// in the table regardless of write order.
func writeCommodityTable(w io.Writer, j *ledger.Journal, guards bool, bigintsCount *uint64) (map[*ledger.Commodity]uint32, error) {
	symbols := commoditySymbols(j)
	if err := writeU32(w, uint32(len(symbols))); err != nil {
		return nil, err
	}

	ident := make(map[*ledger.Commodity]uint32, len(symbols))
	for i, sym := range symbols {
		ident[j.Commodities[sym]] = uint32(i + 1)
	}

	for _, sym := range symbols {
		if err := writeCommodity(w, j.Commodities[sym], ident, guards, bigintsCount); err != nil {
			return nil, err
		}
	}
	return ident, nil
}

func writeCommodity(w io.Writer, c *ledger.Commodity, ident map[*ledger.Commodity]uint32, guards bool, bigintsCount *uint64) error {
	if err := writeU32(w, ident[c]); err != nil {
		return err
	}
	if err := writeString(w, c.Symbol, guards); err != nil {
		return err
	}
	if err := writeString(w, c.Name, guards); err != nil {
		return err
	}
	if err := writeString(w, c.Note, guards); err != nil {
		return err
	}
	if err := writeU32(w, c.Precision); err != nil {
		return err
	}
	if err := writeU32(w, c.Flags); err != nil {
		return err
	}

	history := c.History()
	if err := writeU32(w, uint32(len(history))); err != nil {
		return err
	}
	for _, pt := range history {
		if err := writeI64(w, pt.When); err != nil {
			return err
		}
		if err := writeAmount(w, pt.Price, ident, bigintsCount); err != nil {
			return err
		}
	}

	if err := writeI64(w, c.LastLookup); err != nil {
		return err
	}
	return writeAmount(w, c.Conversion, ident, bigintsCount)
}

// readCommodityTable reads the commodity count and each record in
// order, returning a dense index slice for identifier lookups
// (commodities[id-1]). Every slot is allocated before the first record
// is read, so an amount may resolve a commodity whose record comes
// later in the table. It does not register the commodities in any
// journal's symbol map; the caller does that, so it can detect and
// report a symbol collision as a typed error rather than a panic.
func readCommodityTable(r io.Reader, guards bool, arena *ledger.Arena) ([]*ledger.Commodity, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	commodities := make([]*ledger.Commodity, count)
	for i := range commodities {
		commodities[i] = ledger.NewCommodity("")
	}
	for i := uint32(0); i < count; i++ {
		if err := readCommodity(r, guards, commodities, arena); err != nil {
			return nil, err
		}
	}
	return commodities, nil
}

func readCommodity(r io.Reader, guards bool, commodities []*ledger.Commodity, arena *ledger.Arena) error {
	ident, err := readU32(r)
	if err != nil {
		return err
	}
	symbol, err := readStreamedString(r, guards)
	if err != nil {
		return err
	}
	name, err := readStreamedString(r, guards)
	if err != nil {
		return err
	}
	note, err := readStreamedString(r, guards)
	if err != nil {
		return err
	}
	precision, err := readU32(r)
	if err != nil {
		return err
	}
	flags, err := readU32(r)
	if err != nil {
		return err
	}

	if ident == 0 || int(ident) > len(commodities) {
		return structuralf("commodity identifier %d out of range for %d-commodity table", ident, len(commodities))
	}

	c := commodities[ident-1]
	c.Symbol = symbol
	c.Ident = ident
	c.Name = name
	c.Note = note
	c.Precision = precision
	c.Flags = flags

	historyCount, err := readU32(r)
	if err != nil {
		return err
	}
	for i := uint32(0); i < historyCount; i++ {
		when, err := readI64(r)
		if err != nil {
			return err
		}
		price, err := readAmount(r, commodities, arena)
		if err != nil {
			return err
		}
		c.AddPrice(when, price)
	}

	lastLookup, err := readI64(r)
	if err != nil {
		return err
	}
	c.LastLookup = lastLookup

	conversion, err := readAmount(r, commodities, arena)
	if err != nil {
		return err
	}
	c.Conversion = conversion

	return nil
}
