// Package text parses the textual double-entry ledger format into a
// [github.com/mdhowey/ledgerbin.Journal] — the graph the binary cache
// package caches and restores.
package text

import (
	"bufio"
	"io"
)

// lineScanner wraps bufio.Scanner with the filename and 1-based line
// number bookkeeping parse errors need to report "file:line: ..."
// locations.
type lineScanner struct {
	name string
	sc   *bufio.Scanner
	line int
}

func newLineScanner(name string, r io.Reader) *lineScanner {
	return &lineScanner{name: name, sc: bufio.NewScanner(r)}
}

func (s *lineScanner) Scan() bool {
	ok := s.sc.Scan()
	if ok {
		s.line++
	}
	return ok
}

func (s *lineScanner) Text() string { return s.sc.Text() }
func (s *lineScanner) Name() string { return s.name }
func (s *lineScanner) LineNumber() int { return s.line }
func (s *lineScanner) Err() error { return s.sc.Err() }
