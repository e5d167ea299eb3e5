// Package ledger holds the in-memory double-entry accounting journal: a
// tree of accounts, a table of commodities, and the ordered entries and
// transactions posted against them.
//
// The domain types here are the graph that [github.com/mdhowey/ledgerbin/ledger/binary]
// caches to and restores from a binary stream, and that
// [github.com/mdhowey/ledgerbin/ledger/text] builds by parsing a textual
// ledger file.
package ledger
