package qif

import (
	"strings"

	ledger "github.com/mdhowey/ledgerbin"
	"github.com/shopspring/decimal"
)

// AddToJournal appends one entry per transaction to j: a posting
// against account for the transaction's own amount, and a second
// posting against the category named by Transaction.Category (or
// "Unclassified" when absent) that absorbs the remainder, matching the
// "single empty posting" auto-balance shorthand Entry.IsBalanced
// implements.
func AddToJournal(txs []*Transaction, account string, j *ledger.Journal) error {
	dollar := j.FindOrCreateCommodity("$")
	mainAccount := j.Master.FindOrCreate(strings.Split(account, ":"))

	for _, tx := range txs {
		e := ledger.NewEntry(tx.Date, tx.Payee)
		e.Code = tx.Num

		category := tx.Category
		if category == "" {
			category = "Unclassified"
		}
		offsetAccount := j.Master.FindOrCreate(strings.Split(category, ":"))

		e.AddTransaction(&ledger.Transaction{
			Account: mainAccount,
			Amount:  ledger.Amount{Commodity: dollar, Quantity: tx.Amount},
			Note:    tx.Memo,
		})
		e.AddTransaction(&ledger.Transaction{
			Account: offsetAccount,
			Amount:  ledger.Amount{Commodity: dollar, Quantity: decimal.Zero},
		})

		if err := e.IsBalanced(); err != nil {
			return err
		}
		j.AddEntry(e)
	}
	return nil
}
