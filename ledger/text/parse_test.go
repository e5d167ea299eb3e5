package text

import (
	"strings"
	"testing"
	"time"

	ledger "github.com/mdhowey/ledgerbin"
)

func TestParseSimpleEntry(t *testing.T) {
	input := `1970/01/01 Payee
	Expenses:Food  (123 * 3)
	Assets:Cash
`
	j := ledger.NewJournal()
	if err := Parse("", strings.NewReader(input), j); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(j.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(j.Entries))
	}
	e := j.Entries[0]
	if e.Payee != "Payee" {
		t.Fatalf("payee = %q, want Payee", e.Payee)
	}
	if !e.Date.Equal(time.Unix(0, 0).UTC()) {
		t.Fatalf("date = %v, want epoch", e.Date)
	}
	if len(e.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(e.Transactions))
	}
	if !e.Transactions[0].Amount.Quantity.Equal(e.Transactions[1].Amount.Quantity.Neg()) {
		t.Fatalf("postings don't balance: %v, %v", e.Transactions[0].Amount.Quantity, e.Transactions[1].Amount.Quantity)
	}
}

func TestParseBadPayeeLine(t *testing.T) {
	input := "1970/01/01Payee\n\tExpenses:Food  123\n\tAssets:Cash\n"
	j := ledger.NewJournal()
	if err := Parse("", strings.NewReader(input), j); err == nil {
		t.Fatalf("Parse should fail on a payee line with no space")
	}
}

func TestParseUnbalancedEntry(t *testing.T) {
	input := `1970/01/01 Payee
	Expenses:Food  123
	Assets:Cash   456
`
	j := ledger.NewJournal()
	if err := Parse("", strings.NewReader(input), j); err == nil {
		t.Fatalf("Parse should fail on an entry with no empty posting to absorb the remainder")
	}
}

func TestParseCurrencyToken(t *testing.T) {
	input := `2024/01/15 Grocery
	Expenses:Food  $ 10
	Assets:Cash    $ -10
`
	j := ledger.NewJournal()
	if err := Parse("", strings.NewReader(input), j); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := j.Commodities["$"]; !ok {
		t.Fatalf("$ commodity was not registered")
	}
}

func TestParseAccountDirectiveIsSkipped(t *testing.T) {
	input := `account Assets:Cash
	note a cash account

1970/01/01 Payee
	Expenses:Food  123
	Assets:Cash
`
	j := ledger.NewJournal()
	if err := Parse("", strings.NewReader(input), j); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(j.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(j.Entries))
	}
}
