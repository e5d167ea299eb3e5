package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNeedAtLeastTwoPostings is returned by IsBalanced when an entry
	// has fewer than two transactions.
	ErrNeedAtLeastTwoPostings = errors.New("ledger: entry needs at least two postings")
	// ErrNoEmptyAmountForExtraBalance is returned when an entry doesn't
	// balance to zero and no posting was left with a zero amount to
	// absorb the remainder.
	ErrNoEmptyAmountForExtraBalance = errors.New("ledger: unable to balance entry: no empty posting to place extra balance")
	// ErrMoreThanOneEmptyAmountInEntry is returned when more than one
	// posting was left with a zero amount; it is ambiguous which one
	// should absorb the remainder.
	ErrMoreThanOneEmptyAmountInEntry = errors.New("ledger: unable to balance entry: more than one posting has an empty amount")
)

// Entry is a dated accounting event: a payee, an optional reference
// code, a cleared/pending state, and the balanced set of transactions
// it posts.
type Entry struct {
	Date  time.Time
	State byte
	Code  string
	Payee string

	Transactions []*Transaction
}

// NewEntry returns an empty entry dated date.
func NewEntry(date time.Time, payee string) *Entry {
	return &Entry{Date: date, Payee: payee}
}

// AddTransaction appends xact to the entry's postings and registers it
// against xact.Account, if set.
func (e *Entry) AddTransaction(xact *Transaction) {
	e.Transactions = append(e.Transactions, xact)
	if xact.Account != nil {
		xact.Account.AddTransaction(xact)
	}
}

// IsBalanced reports whether the entry's transactions sum to zero,
// per commodity, after applying any cost overrides. When exactly one
// transaction has a zero amount, that transaction absorbs the
// remaining balance (the common "let the tool figure out the last
// leg" shorthand); the binary codec never calls this — balancing is a
// concern of the textual parser, which calls it on every entry it
// builds.
func (e *Entry) IsBalanced() error {
	if len(e.Transactions) < 2 {
		return ErrNeedAtLeastTwoPostings
	}

	totals := make(map[string]decimal.Decimal)
	var emptyIdx = -1
	numEmpty := 0

	for i, xact := range e.Transactions {
		if xact.Amount.IsZero() {
			numEmpty++
			emptyIdx = i
		}

		// A cost override revalues the posting into the cost's
		// commodity for balancing purposes: the posting's own
		// amount must cancel against other postings in the cost
		// commodity, not in the commodity it was originally stated
		// in.
		effective := xact.Amount
		negate := false
		if xact.Cost != nil {
			effective = *xact.Cost
			negate = true
		}

		symbol := ""
		if effective.Commodity != nil {
			symbol = effective.Commodity.Symbol
		}
		contribution := effective.Quantity
		if negate {
			contribution = contribution.Neg()
		}
		totals[symbol] = totals[symbol].Add(contribution)
	}

	var nonZero []string
	for symbol, total := range totals {
		if !total.IsZero() {
			nonZero = append(nonZero, symbol)
		}
	}
	if len(nonZero) == 0 {
		return nil
	}

	switch numEmpty {
	case 0:
		return ErrNoEmptyAmountForExtraBalance
	case 1:
		remainder := decimal.Zero
		for _, total := range totals {
			remainder = remainder.Add(total)
		}
		e.Transactions[emptyIdx].Amount.Quantity = remainder.Neg()
		return nil
	default:
		return ErrMoreThanOneEmptyAmountInEntry
	}
}
