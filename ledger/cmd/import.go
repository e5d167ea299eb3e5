package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jbrukh/bayesian"
	ledger "github.com/mdhowey/ledgerbin"
	"github.com/mdhowey/ledgerbin/ledger/qif"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var ErrNoMatchingAccount = errors.New("unable to find matching account")

var (
	csvDateFormat    string
	negateAmount     bool
	fieldDelimiter   string
	scaleFactor      float64
	overrideCurrency string
)

// importer trains a naive-Bayes classifier against an existing ledger
// so newly imported transactions can be assigned a likely offsetting
// account automatically instead of always landing in unknown:unknown.
type importer struct {
	matchingAccount string
	decScale        decimal.Decimal
	journal         *ledger.Journal
	classifier      *bayesian.Classifier
	classNames      []string
	predictionCache map[string]string
}

func newImporter(accountSubstring string, existing *ledger.Journal) (*importer, error) {
	imp := &importer{
		matchingAccount: accountSubstring,
		decScale:        decimal.NewFromFloat(scaleFactor),
		journal:         existing,
		predictionCache: make(map[string]string),
	}
	if existing == nil {
		return imp, nil
	}

	matchAccount, err := imp.findMatchingAccount()
	if err != nil {
		return nil, err
	}
	imp.matchingAccount = matchAccount
	imp.trainClassifier()
	return imp, nil
}

func (imp *importer) findMatchingAccount() (string, error) {
	var found string
	for _, bal := range collectBalances(imp.journal.Master) {
		if strings.EqualFold(bal.account.Name, imp.matchingAccount) {
			return bal.account.Name, nil
		}
		if strings.Contains(bal.account.Name, imp.matchingAccount) {
			found = bal.account.Name
		}
	}
	if found == "" {
		return "", ErrNoMatchingAccount
	}
	return found, nil
}

func (imp *importer) trainClassifier() {
	unique := make(map[string]bool)
	imp.journal.Master.Walk(func(a *ledger.Account) {
		if a.Name != "" {
			unique[a.Name] = true
		}
	})

	classes := make([]bayesian.Class, 0, len(unique))
	for name := range unique {
		classes = append(classes, bayesian.Class(name))
		imp.classNames = append(imp.classNames, name)
	}
	if len(classes) == 0 {
		return
	}

	classifier := bayesian.NewClassifier(classes...)
	for _, e := range imp.journal.Entries {
		payeeWords := strings.Fields(e.Payee)
		learnName := false
		for _, xact := range e.Transactions {
			if xact.Account != nil && xact.Account.Name == imp.matchingAccount {
				learnName = true
				break
			}
		}
		if !learnName {
			continue
		}
		for _, xact := range e.Transactions {
			if xact.Account != nil && xact.Account.Name != imp.matchingAccount {
				classifier.Learn(payeeWords, bayesian.Class(xact.Account.Name))
			}
		}
	}
	imp.classifier = classifier
}

// predictAccount runs the payee through the trained classifier and caches
// the result under the joined payee text, since an import file routinely
// repeats the same merchant across many rows and LogScores is the most
// expensive step per row.
func (imp *importer) predictAccount(payeeWords []string) string {
	if imp.classifier == nil {
		return "unknown:unknown"
	}

	key := strings.Join(payeeWords, " ")
	if cached, ok := imp.predictionCache[key]; ok {
		return cached
	}

	scores, _, _ := imp.classifier.LogScores(payeeWords)
	highScore1, highScore2 := math.Inf(-1), math.Inf(-1)
	matchIdx := 0
	for i, score := range scores {
		if score > highScore1 {
			highScore2 = highScore1
			highScore1 = score
			matchIdx = i
		}
	}

	predicted := "unknown:unknown"
	if highScore1-highScore2 > 10 {
		predicted = imp.classNames[matchIdx]
	}
	imp.predictionCache[key] = predicted
	return predicted
}

func (imp *importer) addEntry(out *ledger.Journal, date time.Time, payee string, amount decimal.Decimal, note string) {
	dollar := out.FindOrCreateCommodity(overrideCurrencyOr("$"))

	if negateAmount {
		amount = amount.Neg()
	}
	amount = amount.Mul(imp.decScale)

	e := ledger.NewEntry(date, payee)
	if note != "" {
		e.Code = note
	}

	sourceAccount := out.Master.FindOrCreate(strings.Split(imp.matchingAccount, ":"))
	offsetName := imp.predictAccount(strings.Fields(payee))
	offsetAccount := out.Master.FindOrCreate(strings.Split(offsetName, ":"))

	e.AddTransaction(&ledger.Transaction{
		Account: sourceAccount,
		Amount:  ledger.Amount{Commodity: dollar, Quantity: amount.Neg()},
	})
	e.AddTransaction(&ledger.Transaction{
		Account: offsetAccount,
		Amount:  ledger.Amount{Commodity: dollar, Quantity: amount},
		Note:    note,
	})

	if err := e.IsBalanced(); err == nil {
		out.AddEntry(e)
	}
}

func overrideCurrencyOr(def string) string {
	if overrideCurrency != "" {
		return overrideCurrency
	}
	return def
}

func (imp *importer) importCSV(r *os.File, out *ledger.Journal) error {
	csvReader := csv.NewReader(r)
	csvReader.Comma = rune(fieldDelimiter[0])

	records, err := csvReader.ReadAll()
	if err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	dateCol, payeeCol, amountCol, noteCol := -1, -1, -1, -1
	for i, field := range records[0] {
		field = strings.ToLower(field)
		switch {
		case strings.Contains(field, "date"):
			dateCol = i
		case strings.Contains(field, "description"), strings.Contains(field, "payee"):
			payeeCol = i
		case strings.Contains(field, "amount"), strings.Contains(field, "expense"):
			amountCol = i
		case strings.Contains(field, "note"), strings.Contains(field, "comment"):
			noteCol = i
		}
	}
	if dateCol < 0 || payeeCol < 0 || amountCol < 0 {
		return errors.New("csv: unable to find date/payee/amount columns from header")
	}

	for _, rec := range records[1:] {
		date, err := time.Parse(csvDateFormat, rec[dateCol])
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(rec[amountCol])
		if err != nil {
			amount = decimal.Zero
		}
		note := ""
		if noteCol >= 0 {
			note = rec[noteCol]
		}
		imp.addEntry(out, date, rec[payeeCol], amount, note)
	}
	return nil
}

func (imp *importer) importQIF(r *os.File, out *ledger.Journal) error {
	return qif.AddToJournal(mustParseQIF(r), imp.matchingAccount, out)
}

func mustParseQIF(r *os.File) []*qif.Transaction {
	txs, err := qif.ParseQIF(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qif parse error:", err)
		return nil
	}
	return txs
}

var importCmd = &cobra.Command{
	Use:   "import <account-substring> <file>",
	Args:  cobra.ExactArgs(2),
	Short: "Import transactions from CSV or QIF into ledger format",
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadRCConfig()
		if err != nil {
			return err
		}
		applyRCDefaults(cfg)

		accountSubstring, fileName := args[0], args[1]

		var existing *ledger.Journal
		if ledgerFilePath != "" {
			j, err := loadJournal(ledgerFilePath)
			if err != nil {
				return err
			}
			existing = j
		}

		imp, err := newImporter(accountSubstring, existing)
		if err != nil {
			return err
		}

		f, err := os.Open(fileName)
		if err != nil {
			return err
		}
		defer f.Close()

		out := ledger.NewJournal()
		lower := strings.ToLower(fileName)
		switch {
		case strings.HasSuffix(lower, ".qif"):
			if err := imp.importQIF(f, out); err != nil {
				return err
			}
		default:
			if err := imp.importCSV(f, out); err != nil {
				return err
			}
		}

		printJournal(out, nil, resolveColumns())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&negateAmount, "neg", false, "Negate amount column value.")
	importCmd.Flags().Float64Var(&scaleFactor, "scale", 1.0, "Scale factor to multiply against every imported amount.")
	importCmd.Flags().StringVar(&csvDateFormat, "date-format", "01/02/2006", "Date format.")
	importCmd.Flags().StringVar(&fieldDelimiter, "delimiter", ",", "Field delimiter.")
	importCmd.Flags().StringVar(&overrideCurrency, "override-currency", "", "Override detected currency for imported transactions.")
}
