package ledger

import (
	"fmt"
	"math/big"
)

// Arena is a contiguous-allocation strategy for journals loaded from a
// binary cache: rather than one raw byte block carved up by hand, it is
// three typed slices — one per pool — allocated once at their exact
// final size and filled by index as the binary loader constructs
// entries, transactions, and bigint payloads. Taking the address of a
// slice element is safe here specifically because the slice is never
// grown after NewArena: no append-triggered reallocation can invalidate
// a pointer handed out by Next*.
//
// A Journal retains its Arena for as long as it is reachable; there is
// no explicit teardown because Go's garbage collector frees the arena
// and everything in it together once the Journal is unreachable.
type Arena struct {
	entries      []Entry
	transactions []Transaction
	bigints      []big.Int

	entryNext  int
	xactNext   int
	bigintNext int
}

// NewArena allocates the three pools at exactly the given sizes.
func NewArena(entryCount, transactionCount, bigintCount int) *Arena {
	return &Arena{
		entries:      make([]Entry, entryCount),
		transactions: make([]Transaction, transactionCount),
		bigints:      make([]big.Int, bigintCount),
	}
}

// NextEntry returns a pointer to the next unused entry slot.
func (a *Arena) NextEntry() *Entry {
	e := &a.entries[a.entryNext]
	a.entryNext++
	return e
}

// NextTransaction returns a pointer to the next unused transaction
// slot.
func (a *Arena) NextTransaction() *Transaction {
	t := &a.transactions[a.xactNext]
	a.xactNext++
	return t
}

// NextBigint returns a pointer to the next unused bigint slot, zero-
// valued and ready to be filled in place (e.g. via (*big.Int).SetBytes)
// without an additional heap allocation.
func (a *Arena) NextBigint() *big.Int {
	b := &a.bigints[a.bigintNext]
	a.bigintNext++
	return b
}

// EntryCount, TransactionCount, and BigintCount report each pool's
// declared capacity.
func (a *Arena) EntryCount() int      { return len(a.entries) }
func (a *Arena) TransactionCount() int { return len(a.transactions) }
func (a *Arena) BigintCount() int     { return len(a.bigints) }

// AssertExhausted reports an error unless every slot in every pool has
// been claimed by a Next* call: exactly the declared counts must be
// constructed, with no over- or under-run.
func (a *Arena) AssertExhausted() error {
	if a.entryNext != len(a.entries) {
		return fmt.Errorf("ledger: entry arena has %d slots but %d were constructed", len(a.entries), a.entryNext)
	}
	if a.xactNext != len(a.transactions) {
		return fmt.Errorf("ledger: transaction arena has %d slots but %d were constructed", len(a.transactions), a.xactNext)
	}
	if a.bigintNext != len(a.bigints) {
		return fmt.Errorf("ledger: bigint arena has %d slots but %d were constructed", len(a.bigints), a.bigintNext)
	}
	return nil
}
