package binary

import (
	"io"
	"time"

	ledger "github.com/mdhowey/ledgerbin"
)

// writeEntryPool writes the pooled strings — each entry's code and
// payee, then each of its transactions' notes, in entry order — into w
// and tallies the total transaction count. It contributes nothing but
// string bytes: the objects that reference these strings are written
// later, by writeEntryRecords, without repeating the text.
func writeEntryPool(w io.Writer, entries []*ledger.Entry, guards bool) (uint64, error) {
	var xactCount uint64
	for _, e := range entries {
		if err := writeString(w, e.Code, guards); err != nil {
			return 0, err
		}
		if err := writeString(w, e.Payee, guards); err != nil {
			return 0, err
		}
		for _, x := range e.Transactions {
			if err := writeString(w, x.Note, guards); err != nil {
				return 0, err
			}
			xactCount++
		}
	}
	return xactCount, nil
}

// writeEntryRecords writes each entry's date, state, transaction count,
// and transactions. Code, payee, and note are never repeated here;
// they already live in the string pool written by writeEntryPool.
func writeEntryRecords(w io.Writer, entries []*ledger.Entry, accountIdent map[*ledger.Account]uint32, commodityIdent map[*ledger.Commodity]uint32, bigintsCount *uint64) error {
	for _, e := range entries {
		if err := writeI64(w, e.Date.Unix()); err != nil {
			return err
		}
		if _, err := w.Write([]byte{e.State}); err != nil {
			return err
		}
		if err := writeU32(w, uint32(len(e.Transactions))); err != nil {
			return err
		}
		for _, x := range e.Transactions {
			if err := writeTransactionRecord(w, x, accountIdent, commodityIdent, bigintsCount); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTransactionRecord(w io.Writer, x *ledger.Transaction, accountIdent map[*ledger.Account]uint32, commodityIdent map[*ledger.Commodity]uint32, bigintsCount *uint64) error {
	ident := ledger.NoIdent
	if x.Account != nil {
		id, ok := accountIdent[x.Account]
		if !ok {
			return structuralf("transaction references account %q that was never assigned an identifier", x.Account.Name)
		}
		ident = id
	}
	if err := writeU32(w, ident); err != nil {
		return err
	}
	if err := writeAmount(w, x.Amount, commodityIdent, bigintsCount); err != nil {
		return err
	}

	if x.Cost != nil {
		if _, err := w.Write([]byte{1}); err != nil {
			return err
		}
		if err := writeAmount(w, *x.Cost, commodityIdent, bigintsCount); err != nil {
			return err
		}
	} else {
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}

	return writeU32(w, x.Flags)
}

// readEntries constructs entryCount entries and their transactions
// directly into arena, threading the string-pool cursor through
// construction in the same order the writer produced pool content. It
// asserts the pool cursor lands exactly on the pool's end.
func readEntries(r io.Reader, guards bool, entryCount uint64, pool []byte, accounts []*ledger.Account, commodities []*ledger.Commodity, arena *ledger.Arena) ([]*ledger.Entry, error) {
	poolPos := 0
	entries := make([]*ledger.Entry, 0, entryCount)

	for i := uint64(0); i < entryCount; i++ {
		e := arena.NextEntry()

		dateUnix, err := readI64(r)
		if err != nil {
			return nil, err
		}
		e.Date = time.Unix(dateUnix, 0).UTC()

		state, err := readByte(r)
		if err != nil {
			return nil, err
		}
		e.State = state

		code, err := readPooledString(pool, &poolPos, guards)
		if err != nil {
			return nil, err
		}
		e.Code = code

		payee, err := readPooledString(pool, &poolPos, guards)
		if err != nil {
			return nil, err
		}
		e.Payee = payee

		txCount, err := readU32(r)
		if err != nil {
			return nil, err
		}

		for t := uint32(0); t < txCount; t++ {
			x := arena.NextTransaction()
			x.Flags = ledger.TransactionFlagBulkAlloc

			accIdent, err := readU32(r)
			if err != nil {
				return nil, err
			}
			if accIdent != ledger.NoIdent {
				if accIdent == 0 || int(accIdent) > len(accounts) {
					return nil, structuralf("transaction references out-of-range account identifier %d (table has %d entries)", accIdent, len(accounts))
				}
				x.Account = accounts[accIdent-1]
			}

			amt, err := readAmount(r, commodities, arena)
			if err != nil {
				return nil, err
			}
			x.Amount = amt

			costFlag, err := readByte(r)
			if err != nil {
				return nil, err
			}
			if costFlag != 0 {
				cost, err := readAmount(r, commodities, arena)
				if err != nil {
					return nil, err
				}
				x.Cost = &cost
			}

			flags, err := readU32(r)
			if err != nil {
				return nil, err
			}
			x.Flags |= flags

			note, err := readPooledString(pool, &poolPos, guards)
			if err != nil {
				return nil, err
			}
			x.Note = note

			e.AddTransaction(x)
		}

		entries = append(entries, e)
	}

	if poolPos != len(pool) {
		return nil, structuralf("string pool cursor stopped at %d but pool is %d bytes", poolPos, len(pool))
	}
	return entries, nil
}
