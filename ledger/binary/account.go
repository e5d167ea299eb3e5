package binary

import (
	"io"

	ledger "github.com/mdhowey/ledgerbin"
)

// writeAccountTree writes the master account's subtree in pre-order,
// preceded by the total account count. Identifiers are never written
// back into the live Account objects — the writer returns the ident
// assignments it made so later phases (transaction account references)
// can look them up without touching master's tree.
func writeAccountTree(w io.Writer, master *ledger.Account, guards bool) (map[*ledger.Account]uint32, error) {
	if err := writeU32(w, master.Count()); err != nil {
		return nil, err
	}

	ident := make(map[*ledger.Account]uint32)
	var next uint32

	var writeNode func(a *ledger.Account) error
	writeNode = func(a *ledger.Account) error {
		next++
		ident[a] = next

		parentIdent := ledger.NoIdent
		if a.Parent != nil {
			parentIdent = ident[a.Parent]
		}

		if err := writeU32(w, ident[a]); err != nil {
			return err
		}
		if err := writeU32(w, parentIdent); err != nil {
			return err
		}
		if err := writeString(w, a.Name, guards); err != nil {
			return err
		}
		if err := writeString(w, a.Note, guards); err != nil {
			return err
		}
		if err := writeU32(w, a.Depth); err != nil {
			return err
		}

		children := a.Children()
		if err := writeU32(w, uint32(len(children))); err != nil {
			return err
		}
		for _, c := range children {
			if err := writeNode(c); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeNode(master); err != nil {
		return nil, err
	}
	return ident, nil
}

// readAccountTree reads the account count and the master subtree,
// returning a dense index slice for identifier lookups (accounts[id-1])
// and the root account as read from the stream. The caller applies
// replacement-master handling, if any — this function only
// reconstructs what was written.
func readAccountTree(r io.Reader, guards bool) ([]*ledger.Account, *ledger.Account, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, nil, err
	}
	accounts := make([]*ledger.Account, count)
	root, err := readAccountNode(r, guards, accounts)
	if err != nil {
		return nil, nil, err
	}
	return accounts, root, nil
}

// readAccountNode reads one account record and, since the stream is
// pre-order, every one of its descendants immediately after. Parent
// linkage is resolved by identifier lookup into accounts rather than by
// threading a parent pointer through the recursion, matching the
// "rebuild cross-references by identifier lookup" principle the rest of
// the codec follows.
func readAccountNode(r io.Reader, guards bool, accounts []*ledger.Account) (*ledger.Account, error) {
	ident, err := readU32(r)
	if err != nil {
		return nil, err
	}
	parentIdent, err := readU32(r)
	if err != nil {
		return nil, err
	}
	name, err := readStreamedString(r, guards)
	if err != nil {
		return nil, err
	}
	note, err := readStreamedString(r, guards)
	if err != nil {
		return nil, err
	}
	depth, err := readU32(r)
	if err != nil {
		return nil, err
	}
	childCount, err := readU32(r)
	if err != nil {
		return nil, err
	}

	if ident == 0 || int(ident) > len(accounts) {
		return nil, structuralf("account identifier %d out of range for %d-account table", ident, len(accounts))
	}

	a := ledger.NewAccount(name)
	a.Ident = ident
	a.Note = note
	a.Depth = depth
	accounts[ident-1] = a

	if parentIdent != ledger.NoIdent {
		if parentIdent == 0 || int(parentIdent) > len(accounts) || accounts[parentIdent-1] == nil {
			return nil, structuralf("account %d references parent identifier %d that has not been read yet", ident, parentIdent)
		}
		parent := accounts[parentIdent-1]
		parent.AddAccount(a)
		a.Depth = depth
	}

	for i := uint32(0); i < childCount; i++ {
		if _, err := readAccountNode(r, guards, accounts); err != nil {
			return nil, err
		}
	}
	return a, nil
}
