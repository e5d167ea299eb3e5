package ledger

// Transaction flags are opaque bits carried through the codec. Bit 0 is
// set by the binary loader on every transaction it constructs, so
// destructors (or, in Go, nothing — the GC reclaims the arena) know the
// transaction's storage belongs to an arena rather than being a
// standalone heap allocation.
const TransactionFlagBulkAlloc uint32 = 1 << 0

// Cleared/pending state of an entry, carried in Entry.State.
const (
	StateUncleared byte = 0
	StatePending   byte = 1
	StateCleared   byte = 2
)

// Transaction is a single posting: a debit or credit of Amount against
// Account, with an optional Cost amount recording what it cost in a
// different commodity, and a free-text Note.
type Transaction struct {
	Account *Account
	Amount  Amount
	Cost    *Amount
	Flags   uint32
	Note    string
}

// BulkAlloc reports whether the transaction's storage is owned by a
// journal's arena rather than being an independently allocated value.
func (t *Transaction) BulkAlloc() bool {
	return t.Flags&TransactionFlagBulkAlloc != 0
}
