package cmd

import (
	"sort"

	ledger "github.com/mdhowey/ledgerbin"
	"github.com/shopspring/decimal"
)

// accountBalance is one account's own postings plus everything under
// it, broken out per commodity symbol (the empty symbol stands for
// amounts with no commodity).
type accountBalance struct {
	account *ledger.Account
	totals  map[string]decimal.Decimal
}

// primaryTotal returns the alphabetically first commodity symbol in the
// account's totals and the balance in that symbol. Totals in any other
// commodity are not included.
func (b accountBalance) primaryTotal() (string, decimal.Decimal) {
	best := ""
	for sym := range b.totals {
		if best == "" || sym < best {
			best = sym
		}
	}
	return best, b.totals[best]
}

// collectBalances walks master's subtree and returns one accountBalance
// per account, each total including every descendant's postings —
// exactly what a chart-of-accounts balance report needs.
func collectBalances(master *ledger.Account) []accountBalance {
	var out []accountBalance
	var walk func(a *ledger.Account) map[string]decimal.Decimal
	walk = func(a *ledger.Account) map[string]decimal.Decimal {
		totals := make(map[string]decimal.Decimal)
		for _, xact := range a.Transactions() {
			sym := ""
			if xact.Amount.Commodity != nil {
				sym = xact.Amount.Commodity.Symbol
			}
			totals[sym] = totals[sym].Add(xact.Amount.Quantity)
		}
		for _, c := range a.Children() {
			childTotals := walk(c)
			for sym, amt := range childTotals {
				totals[sym] = totals[sym].Add(amt)
			}
		}
		out = append(out, accountBalance{account: a, totals: totals})
		return totals
	}
	walk(master)

	sort.Slice(out, func(i, j int) bool {
		return out[i].account.Name < out[j].account.Name
	})
	return out
}
