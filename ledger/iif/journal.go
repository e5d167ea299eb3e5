package iif

import (
	"strings"

	ledger "github.com/mdhowey/ledgerbin"
)

// AddToJournal appends every transaction decoded from f to j: each TRNS
// record becomes an [ledger.Entry] dated and payee'd from the Trns
// line, with one posting against Trns.Account and one offsetting
// posting per SPL line against its own account.
func AddToJournal(f *File, j *ledger.Journal) error {
	for _, b := range f.Blocks {
		txs, err := DeserializeTransactions(b)
		if err != nil {
			return err
		}
		for _, tx := range txs {
			addEntry(j, tx)
		}
	}
	return nil
}

// resolveAmount re-homes a decoded amount's commodity against j's own
// commodity table: the decoder tags every amount with a fixed
// placeholder symbol (see iif_trns.go's iifCommodity) since it has no
// journal to resolve against yet.
func resolveAmount(j *ledger.Journal, amt ledger.Amount) ledger.Amount {
	sym := "$"
	if amt.Commodity != nil {
		sym = amt.Commodity.Symbol
	}
	return ledger.Amount{Commodity: j.FindOrCreateCommodity(sym), Quantity: amt.Quantity}
}

func addEntry(j *ledger.Journal, tx Transaction) {
	e := ledger.NewEntry(tx.Tr.Date, tx.Tr.Name)
	if tx.Tr.Memo != "" {
		e.Code = tx.Tr.Memo
	}

	main := j.Master.FindOrCreate(strings.Split(tx.Tr.Account, ":"))
	e.AddTransaction(&ledger.Transaction{
		Account: main,
		Amount:  resolveAmount(j, tx.Tr.Amount),
		Note:    tx.Tr.Memo,
	})

	for _, spl := range tx.Splits {
		account := j.Master.FindOrCreate(strings.Split(spl.Account, ":"))
		e.AddTransaction(&ledger.Transaction{
			Account: account,
			Amount:  resolveAmount(j, spl.Amount),
			Note:    spl.Memo,
		})
	}

	if len(e.Transactions) < 2 {
		// A TRNS with no SPL lines carries no offsetting posting; the
		// entry can't balance on its own, so it's dropped rather than
		// added half-built. Real IIF exports always pair splits with
		// their parent, so this only fires on malformed input.
		return
	}
	if err := e.IsBalanced(); err != nil {
		return
	}

	j.AddEntry(e)
}
