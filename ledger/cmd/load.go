package cmd

import (
	"fmt"
	"os"

	ledger "github.com/mdhowey/ledgerbin"
	"github.com/mdhowey/ledgerbin/ledger/binary"
	"github.com/mdhowey/ledgerbin/ledger/text"
)

// cachePathFor returns the binary cache path ledgerbin maintains
// alongside a textual ledger file.
func cachePathFor(path string) string {
	return path + ".bin"
}

// loadJournal parses path, preferring a fresh binary cache over a full
// text re-parse. It writes (or refreshes) the cache on a successful
// text parse so the next invocation can skip straight to ReadJournal.
func loadJournal(path string) (*ledger.Journal, error) {
	if path == "-" {
		j := ledger.NewJournal()
		if err := text.Parse("-", os.Stdin, j); err != nil {
			return nil, err
		}
		return j, nil
	}

	cachePath := cachePathFor(path)
	if cf, err := os.Open(cachePath); err == nil {
		defer cf.Close()
		if ok, err := binary.Test(cf); err == nil && ok {
			j, _, err := binary.ReadJournal(cf, path, nil, binary.Options{})
			if err != nil {
				return nil, fmt.Errorf("ledgerbin: reading cache %s: %w", cachePath, err)
			}
			if j != nil {
				return j, nil
			}
		}
	}

	j := ledger.NewJournal()
	if err := text.ParseFile(path, j); err != nil {
		return nil, err
	}

	if cf, err := os.Create(cachePath); err == nil {
		defer cf.Close()
		if err := binary.WriteJournal(cf, j, binary.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: unable to write cache %s: %v\n", cachePath, err)
		}
	}

	return j, nil
}
