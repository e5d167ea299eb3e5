package qif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// qifDateLayouts lists the date formats QIF exports are commonly seen
// using; Quicken/GnuCash both vary by locale and version.
var qifDateLayouts = []string{"1/2/2006", "1/2/'2006", "01/02/2006", "2006-01-02"}

func parseQIFDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range qifDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// Non-investment QIF transaction, based on the "Non-investment transaction format"
// from the GnuCash documentation. Only a subset of fields is modeled for now.
// Date and the two amount fields are parsed to domain values at decode time
// rather than kept as raw strings, so a caller building a [ledger.Journal]
// from a slice of these never has to re-parse QIF's own date/amount syntax.
type Transaction struct {
	// Header/type line, e.g. "!Type:Cash"
	Type string

	// Core transaction fields
	Date   time.Time       // D - Date
	Amount decimal.Decimal // T - Amount (or U); whichever of T and U comes last is kept
	Num    string          // N - Number (check/reference)
	Payee  string          // P - Payee/description
	Memo   string          // M - Memo
	Addr   string          // A - Address (multi-line; kept concatenated with '\n')
	Cleared  string        // C - Cleared status
	Category string        // L - Category (or transfer/class)

	// Split fields – repeated groups, flattened for now to first occurrence
	SplitCategory string          // S - Category in split
	SplitMemo     string          // E - Memo in split
	SplitAmount   decimal.Decimal // $ - Dollar amount of split
}

// Decoder reads QIF data from an input stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a new QIF decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r: bufio.NewReader(r),
	}
}

// Decode reads QIF data from the underlying reader and returns all parsed
// non-investment transactions. For now this is a convenience wrapper around
// a streaming decode; it reads the whole file.
func (d *Decoder) Decode() ([]*Transaction, error) {
	var (
		transactions []*Transaction
		currentType  string
	)

	for {
		line, err := d.readLine()
		if err == io.EOF {
			// No partial transaction handling – QIF files should end with '^'
			return transactions, nil
		}
		if err != nil {
			return nil, err
		}

		if len(line) == 0 {
			continue
		}

		// Header / account-type line: !Type:Cash, !Type:Bank, ...
		if strings.HasPrefix(line, "!Type:") {
			currentType = strings.TrimSpace(line[len("!Type:"):])
			continue
		}

		// A transaction must start with 'D' (date) according to the spec.
		if line[0] == 'D' {
			tx, err := d.decodeTransaction(currentType, line)
			if err != nil {
				return nil, err
			}
			transactions = append(transactions, tx)
			continue
		}

		// Lines outside of transactions are currently ignored.
	}

}

// decodeTransaction parses a single transaction, given that the first line
// (already read) is a 'D' date line. It continues reading until the '^' end
// marker has been consumed.
func (d *Decoder) decodeTransaction(txType string, firstLine string) (*Transaction, error) {
	tx := &Transaction{
		Type: txType,
	}

	if err := assignField(tx, firstLine); err != nil {
		return nil, err
	}

	for {
		line, err := d.readLine()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unexpected EOF while reading transaction")
			}
			return nil, err
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '^' {
			// end of transaction
			return tx, nil
		}

		if err := assignField(tx, line); err != nil {
			return nil, err
		}
	}
}

// assignField updates tx based on a single QIF field line, parsing the
// date and amount fields into their domain types as it goes.
func assignField(tx *Transaction, line string) error {
	if len(line) == 0 {
		return nil
	}

	prefix := line[0]
	value := line[1:]

	switch prefix {
	case 'D':
		date, err := parseQIFDate(value)
		if err != nil {
			return fmt.Errorf("qif: parsing date %q: %w", value, err)
		}
		tx.Date = date
	case 'T':
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("qif: parsing amount %q: %w", value, err)
		}
		tx.Amount = amount
	case 'U':
		// Higher precision amount; it replaces an earlier T, and a later
		// T replaces it.
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("qif: parsing amount %q: %w", value, err)
		}
		tx.Amount = amount
	case 'N':
		tx.Num = value
	case 'P':
		tx.Payee = value
	case 'M':
		if tx.Memo == "" {
			tx.Memo = value
		} else {
			// Multiple memo lines – concatenate with newline.
			tx.Memo += "\n" + value
		}
	case 'A':
		if tx.Addr == "" {
			tx.Addr = value
		} else {
			tx.Addr += "\n" + value
		}
	case 'C':
		tx.Cleared = value
	case 'L':
		tx.Category = value
	case 'S':
		// For now we keep only first split; real-world usage may need a slice.
		if tx.SplitCategory == "" {
			tx.SplitCategory = value
		}
	case 'E':
		if tx.SplitMemo == "" {
			tx.SplitMemo = value
		}
	case '$':
		if tx.SplitAmount.IsZero() {
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("qif: parsing split amount %q: %w", value, err)
			}
			tx.SplitAmount = amount
		}
	}
	return nil
}

// readLine reads a single logical line without the trailing '\n' or '\r\n'.
func (d *Decoder) readLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	// Trim CRLF and LF.
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && len(line) == 0 {
		return "", io.EOF
	}
	return line, err
}

// ParseQIF is a convenience helper that parses all transactions from a QIF
// stream and returns them.
func ParseQIF(reader io.Reader) ([]*Transaction, error) {
	return NewDecoder(reader).Decode()
}
