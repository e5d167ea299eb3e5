package text

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alfredxing/calc/compute"
	"github.com/shopspring/decimal"
)

// postingLine is one parsed line under a date/payee header, before it
// is turned into a [ledger.Transaction] posting against a resolved
// account. currency holds an explicit commodity symbol written before
// the amount ("$ 100" rather than "100"); it is empty when the amount
// carries no explicit unit.
type postingLine struct {
	accountName string
	currency    string
	amount      decimal.Decimal
	hasAmount   bool
	converted   *decimal.Decimal
	factor      *decimal.Decimal
	comment     string
}

// postingPattern matches one posting line: an account
// name, then two-or-more spaces (or a tab) before an optional currency
// symbol, the amount (a literal number or a parenthesized arithmetic
// expression evaluated with calc), and an optional @@ converted-amount
// or @ conversion-factor suffix.
var postingPattern = regexp.MustCompile(
	`^(?P<name>.+?)` +
		`(?:(?:\s{2,}|\t)` +
		`(?:(?P<currency>[A-Z\$]+)\s+)?` +
		`(?P<amount>[\-]?\d+(?:\.\d+)?|\([0-9+\-*/. ]+\))` +
		`(?:\s*(?:@@\s*` +
		`(?P<converted>[\-]?\d+(?:\.\d+)?)|@\s*` +
		`(?P<factor>[\-]?\d+(?:\.\d+)?)))?)?\s*$`,
)

func parsePostingLine(line, comment string) (postingLine, error) {
	line = strings.TrimSpace(line)

	m := postingPattern.FindStringSubmatch(line)
	if m == nil {
		return postingLine{}, fmt.Errorf("invalid posting: %q", line)
	}

	p := postingLine{
		accountName: m[1],
		currency:    m[2],
		comment:     comment,
	}

	if m[3] != "" {
		val, err := compute.Evaluate(m[3])
		if err != nil {
			return postingLine{}, fmt.Errorf("evaluating amount %q: %w", m[3], err)
		}
		p.amount = decimal.NewFromFloat(val)
		p.hasAmount = true
	}

	if m[4] != "" {
		conv, err := decimal.NewFromString(m[4])
		if err != nil {
			return postingLine{}, fmt.Errorf("parsing converted amount %q: %w", m[4], err)
		}
		p.converted = &conv
	}

	if m[5] != "" {
		factor, err := decimal.NewFromString(m[5])
		if err != nil {
			return postingLine{}, fmt.Errorf("parsing conversion factor %q: %w", m[5], err)
		}
		p.factor = &factor
	}

	return p, nil
}
