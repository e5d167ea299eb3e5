package text

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	date "github.com/joyt/godate"
	ledger "github.com/mdhowey/ledgerbin"
)

// ParseFile parses the ledger file at path, adding its accounts,
// commodities, and entries to j, and records it as one of j's sources
// using the file's own modification time.
func ParseFile(path string, j *ledger.Journal) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Parse(path, f, j); err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	j.Sources = append(j.Sources, ledger.SourceFile{Path: path, ModTime: info.ModTime()})
	return nil
}

// Parse reads a textual ledger from r — named name purely for error
// messages — and adds every account, commodity, and entry it contains
// to j. It does not record a source entry; callers that want staleness
// tracking against a real file should use ParseFile instead.
func Parse(name string, r io.Reader, j *ledger.Journal) error {
	p := &parser{scanner: newLineScanner(name, r), journal: j}
	return p.run()
}

// parser is a line-oriented parser: a date-layout cache so repeated
// identical date strings skip re-parsing, and no state that outlives a
// single Parse call.
type parser struct {
	scanner *lineScanner
	journal *ledger.Journal

	dateLayout  string
	strPrevDate string
	prevDate    time.Time
	prevDateErr error
}

func (p *parser) run() error {
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())

		var comment string
		if idx := strings.Index(line, ";"); idx >= 0 {
			comment = line[idx:]
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		before, after, split := strings.Cut(line, " ")
		if !split {
			return p.errf("unable to parse payee line: %s", line)
		}

		switch before {
		case "account", "include":
			// Chart-of-account declarations and file inclusion are
			// skipped rather than interpreted, since neither affects
			// the journal graph the binary codec caches.
			_ = after
			p.skipDirective()
		default:
			if err := p.parseEntry(before, after, comment); err != nil {
				return err
			}
		}
	}
	return p.scanner.Err()
}

func (p *parser) skipDirective() {
	for p.scanner.Scan() {
		if len(p.scanner.Text()) == 0 {
			return
		}
	}
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.scanner.Name(), p.scanner.LineNumber(), fmt.Sprintf(format, args...))
}

func (p *parser) parseDate(s string) (time.Time, error) {
	if p.strPrevDate == s {
		return p.prevDate, p.prevDateErr
	}

	t, err := time.Parse(p.dateLayout, s)
	if err != nil {
		t, p.dateLayout, err = date.ParseAndGetLayout(s)
		if err != nil {
			err = fmt.Errorf("unable to parse date %q: %w", s, err)
		}
	}

	p.strPrevDate, p.prevDate, p.prevDateErr = s, t, err
	return t, err
}

// parseEntry reads a date/payee header line's posting block and adds
// the resulting balanced entry to the journal.
func (p *parser) parseEntry(dateString, payee, payeeComment string) error {
	txDate, err := p.parseDate(dateString)
	if err != nil {
		return p.errf("%v", err)
	}

	var lines []string
	for p.scanner.Scan() {
		line := p.scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			break
		}
		lines = append(lines, line)
	}

	e := ledger.NewEntry(txDate, payee)
	_ = payeeComment

	for _, raw := range lines {
		line := raw
		var comment string
		if idx := strings.Index(line, ";"); idx >= 0 {
			comment = line[idx:]
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		pl, err := parsePostingLine(line, comment)
		if err != nil {
			return p.errf("unable to parse posting: %v", err)
		}

		account := p.journal.Master.FindOrCreate(strings.Split(pl.accountName, ":"))

		var commodity *ledger.Commodity
		if pl.currency != "" {
			commodity = p.journal.FindOrCreateCommodity(pl.currency)
		}

		// The @@/@ conversion grammar carries no token for the cost's
		// own commodity, so it can't populate Transaction.Cost
		// meaningfully; instead it revalues the posting's own quantity
		// in place, matching a flat single-pool balance check.
		qty := pl.amount
		switch {
		case pl.converted != nil:
			qty = *pl.converted
		case pl.factor != nil:
			qty = pl.amount.Mul(*pl.factor)
		}

		e.AddTransaction(&ledger.Transaction{
			Account: account,
			Amount:  ledger.Amount{Commodity: commodity, Quantity: qty},
			Note:    comment,
		})
	}

	if err := e.IsBalanced(); err != nil {
		return p.errf("unable to balance entry: %v", err)
	}

	p.journal.AddEntry(e)
	return nil
}
