package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/juztin/numeronym"
	ledger "github.com/mdhowey/ledgerbin"
	"github.com/mdhowey/ledgerbin/ledger/internal/fastcolor"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const transactionDateFormat = "2006/01/02"

var (
	columnWidth       int
	columnWide        bool
	showEmptyAccounts bool
	depthFlag         int
	abbreviate        bool
)

var printCmd = &cobra.Command{
	Use:   "print [account-substring-filter]...",
	Short: "Print matching transactions in ledger file format",
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadRCConfig()
		if err != nil {
			return err
		}
		applyRCDefaults(cfg)
		if columnWidth == 0 {
			columnWidth = 80
			if cfg.Columns != 0 {
				columnWidth = cfg.Columns
			}
		}

		j, err := loadJournal(ledgerFilePath)
		if err != nil {
			return err
		}
		printJournal(j, args, resolveColumns())
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [account-substring-filter]...",
	Short: "Print account balances",
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadRCConfig()
		if err != nil {
			return err
		}
		applyRCDefaults(cfg)

		j, err := loadJournal(ledgerFilePath)
		if err != nil {
			return err
		}
		printBalances(j, args, resolveColumns())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [account-substring-filter]...",
	Short: "Print a running balance per matching account",
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadRCConfig()
		if err != nil {
			return err
		}
		applyRCDefaults(cfg)

		j, err := loadJournal(ledgerFilePath)
		if err != nil {
			return err
		}
		printRegister(j, args, resolveColumns())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(registerCmd)

	for _, c := range []*cobra.Command{printCmd, balanceCmd, registerCmd} {
		c.Flags().IntVar(&columnWidth, "columns", 0, "Set a column width for output (default 80, or terminal width with --wide).")
		c.Flags().BoolVar(&columnWide, "wide", false, "Wide output (use terminal width).")
	}
	balanceCmd.Flags().BoolVar(&showEmptyAccounts, "empty", false, "Show accounts with a zero balance.")
	balanceCmd.Flags().IntVar(&depthFlag, "depth", -1, "Limit output to accounts at or above this chart depth.")
	balanceCmd.Flags().BoolVar(&abbreviate, "abbreviate", false, "Abbreviate long account segment names in output.")
}

func resolveColumns() int {
	if columnWidth == 0 && columnWide {
		columnWidth = 132
	}
	if columnWidth != 0 && columnWide {
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if tw, _, err := term.GetSize(fd); err == nil {
				return tw
			}
		}
	}
	if columnWidth == 0 {
		return 80
	}
	return columnWidth
}

func matchesFilter(a *ledger.Account, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if strings.Contains(a.Name, f) {
			return true
		}
	}
	return false
}

// abbreviateAccountName shortens each colon-separated segment except
// the last (and except segments of four bytes or fewer) to a numeronym,
// so "Expenses:Entertainment:Streaming" reads as "E6s:E11t:Streaming"
// when --abbreviate is set.
func abbreviateAccountName(name string) string {
	if !abbreviate {
		return name
	}
	segs := strings.Split(name, ":")
	for i := 0; i < len(segs)-1; i++ {
		if len(segs[i]) > 4 {
			segs[i] = string(numeronym.Parse([]byte(segs[i])))
		}
	}
	return strings.Join(segs, ":")
}

func printBalances(j *ledger.Journal, filterArr []string, columns int) {
	if columns < 12 {
		columns = 12
		fmt.Fprintf(os.Stderr, "warning: `columns` too small, setting to %d\n", columns)
	}
	accWidth := columns - 11

	colorNeg, colorAccount, colorReset := fastcolor.FgRed, fastcolor.FgBlue, fastcolor.Reset
	if !colorEnabled() {
		colorNeg, colorAccount, colorReset = fastcolor.Reset, fastcolor.Reset, fastcolor.Reset
	}

	buf := bufio.NewWriter(os.Stdout)
	defer buf.Flush()

	overall := decimal.Zero
	for _, bal := range collectBalances(j.Master) {
		if bal.account.Name == "" {
			continue
		}
		if !matchesFilter(bal.account, filterArr) {
			continue
		}
		if depthFlag >= 0 && int(bal.account.Depth) > depthFlag {
			continue
		}
		sym, amt := bal.primaryTotal()
		if amt.IsZero() && !showEmptyAccounts {
			continue
		}
		if bal.account.Depth == 1 {
			overall = overall.Add(amt)
		}

		outStr := amt.StringFixedBank(2)
		if sym != "" {
			outStr = sym + " " + outStr
		}
		amtColor := colorReset
		if amt.Sign() < 0 {
			amtColor = colorNeg
		}
		colorAccount.WriteStringFixed(buf, abbreviateAccountName(bal.account.Name), accWidth, false)
		buf.WriteString(" ")
		amtColor.WriteStringFixed(buf, outStr, 10, true)
		buf.WriteString("\n")
	}

	fmt.Fprintln(buf, strings.Repeat("-", columns))
	outStr := overall.StringFixedBank(2)
	amtColor := colorReset
	if overall.Sign() < 0 {
		amtColor = colorNeg
	}
	colorAccount.WriteStringFixed(buf, "", accWidth, false)
	buf.WriteString(" ")
	amtColor.WriteStringFixed(buf, outStr, 10, true)
	buf.WriteString("\n")
}

func writeEntry(w *bufio.Writer, e *ledger.Entry, columns int) {
	spaceStr := strings.Repeat(" ", columns)

	w.WriteString(e.Date.Format(transactionDateFormat))
	w.WriteString(" ")
	w.WriteString(e.Payee)
	w.WriteString("\n")

	for _, xact := range e.Transactions {
		outStr := xact.Amount.Quantity.StringFixedBank(2)
		if xact.Amount.Commodity != nil && xact.Amount.Commodity.Symbol != "" {
			outStr = xact.Amount.Commodity.Symbol + " " + outStr
		}
		if xact.Cost != nil {
			outStr += " @@ " + xact.Cost.Quantity.StringFixedBank(2)
		}
		name := ""
		if xact.Account != nil {
			name = xact.Account.Name
		}
		spaceCount := columns - 4 - len(name) - len(outStr)
		if spaceCount < 1 {
			spaceCount = 1
		}
		w.WriteString(spaceStr[:4])
		w.WriteString(name)
		w.WriteString(spaceStr[:spaceCount])
		w.WriteString(outStr)
		if xact.Note != "" {
			w.WriteString(" ; ")
			w.WriteString(xact.Note)
		}
		w.WriteString("\n")
	}
	w.WriteString("\n")
}

func printJournal(j *ledger.Journal, filterArr []string, columns int) {
	buf := bufio.NewWriter(os.Stdout)
	defer buf.Flush()

	for _, e := range j.Entries {
		match := len(filterArr) == 0
		for _, xact := range e.Transactions {
			if xact.Account != nil && matchesFilter(xact.Account, filterArr) {
				match = true
			}
		}
		if match {
			writeEntry(buf, e, columns)
		}
	}
}

func printRegister(j *ledger.Journal, filterArr []string, columns int) {
	if columns < 35 {
		columns = 35
	}
	remaining := columns - 30 - 4
	col1 := remaining / 3
	col2 := remaining - col1

	colorNeg, colorPayee, colorAccount, colorReset := fastcolor.FgRed, fastcolor.Bold, fastcolor.FgBlue, fastcolor.Reset
	if !colorEnabled() {
		colorNeg, colorPayee, colorAccount, colorReset = fastcolor.Reset, fastcolor.Reset, fastcolor.Reset, fastcolor.Reset
	}

	buf := bufio.NewWriter(os.Stdout)
	defer buf.Flush()

	running := make(map[string]decimal.Decimal)
	for _, e := range j.Entries {
		for _, xact := range e.Transactions {
			if xact.Account == nil || !matchesFilter(xact.Account, filterArr) {
				continue
			}

			sym := ""
			if xact.Amount.Commodity != nil {
				sym = xact.Amount.Commodity.Symbol
			}
			running[sym] = running[sym].Add(xact.Amount.Quantity)

			outStr := xact.Amount.Quantity.StringFixedBank(2)
			if sym != "" {
				outStr = sym + " " + outStr
			}
			totalStr := running[sym].StringFixedBank(2)
			if sym != "" {
				totalStr = sym + " " + totalStr
			}

			amtColor := colorReset
			if xact.Amount.Quantity.Sign() < 0 {
				amtColor = colorNeg
			}
			runColor := colorReset
			if running[sym].Sign() < 0 {
				runColor = colorNeg
			}

			buf.WriteString(e.Date.Format(transactionDateFormat))
			buf.WriteString(" ")
			colorPayee.WriteStringFixed(buf, e.Payee, col1, false)
			buf.WriteString(" ")
			colorAccount.WriteStringFixed(buf, abbreviateAccountName(xact.Account.Name), col2, false)
			buf.WriteString(" ")
			amtColor.WriteStringFixed(buf, outStr, 10, true)
			buf.WriteString(" ")
			runColor.WriteStringFixed(buf, totalStr, 10, true)
			buf.WriteString("\n")
		}
	}
}
