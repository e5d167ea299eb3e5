// Package binary implements the on-disk cache codec for a
// [github.com/mdhowey/ledgerbin] Journal: a compact, self-describing
// binary format that round-trips the account tree, commodity table,
// entries, and transactions of a journal, and that can be read back
// far faster than the textual source it was built from.
//
// [WriteJournal] and [ReadJournal] are the package's two entry points.
// [Test] lets a caller cheaply check whether a stream looks like one
// of these caches before committing to a full read, the same role the
// original parser registry's test()/parse() pair played.
//
// Every field is written little-endian at a fixed width, whatever the
// host. The format is not forward-compatible beyond an exact
// format-version match, and supports no partial or streaming load: the
// whole journal is materialized in one call.
package binary
