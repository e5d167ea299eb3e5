package ledger

import (
	"testing"
	"time"
)

func TestNewJournalHasNullCommodity(t *testing.T) {
	j := NewJournal()
	if len(j.Commodities) != 1 {
		t.Fatalf("commodities = %d, want 1", len(j.Commodities))
	}
	if j.NullCommodity() == nil {
		t.Fatalf("NullCommodity() = nil")
	}
}

func TestAddCommodityRejectsDuplicates(t *testing.T) {
	j := NewJournal()
	if err := j.AddCommodity(NewCommodity("$")); err != nil {
		t.Fatalf("AddCommodity($) = %v, want nil", err)
	}
	err := j.AddCommodity(NewCommodity("$"))
	if err == nil {
		t.Fatalf("AddCommodity($) a second time should fail")
	}
	var dup *ErrDuplicateCommodity
	if !asErrDuplicateCommodity(err, &dup) {
		t.Fatalf("AddCommodity error = %v, want *ErrDuplicateCommodity", err)
	}
	if dup.Symbol != "$" {
		t.Fatalf("duplicate symbol = %q, want %q", dup.Symbol, "$")
	}
}

func asErrDuplicateCommodity(err error, target **ErrDuplicateCommodity) bool {
	if e, ok := err.(*ErrDuplicateCommodity); ok {
		*target = e
		return true
	}
	return false
}

func TestFindOrCreateCommodityIsIdempotent(t *testing.T) {
	j := NewJournal()
	a := j.FindOrCreateCommodity("$")
	b := j.FindOrCreateCommodity("$")
	if a != b {
		t.Fatalf("FindOrCreateCommodity returned different objects on repeat calls")
	}
}

func TestAddEntryPreservesOrder(t *testing.T) {
	j := NewJournal()
	j.AddEntry(NewEntry(time.Now(), "first"))
	j.AddEntry(NewEntry(time.Now(), "second"))

	if len(j.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(j.Entries))
	}
	if j.Entries[0].Payee != "first" || j.Entries[1].Payee != "second" {
		t.Fatalf("entries out of order: %q, %q", j.Entries[0].Payee, j.Entries[1].Payee)
	}
}
