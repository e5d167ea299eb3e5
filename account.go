package ledger

import "strings"

// NoIdent is the sentinel identifier meaning "no parent" or "no
// commodity". It is never a valid dense identifier, since those start
// at 1.
const NoIdent uint32 = 0xFFFFFFFF

// Account is a named node in the hierarchical chart of accounts.
// Identifiers are assigned by the binary codec's writer in pre-order
// traversal order (see ledger/binary); a freshly built account tree
// coming out of the text parser has Ident == 0 until it is written and
// read back through the codec.
type Account struct {
	Ident  uint32
	Parent *Account
	Name   string
	Note   string
	Depth  uint32

	children     []*Account
	childByName  map[string]*Account
	transactions []*Transaction
}

// NewAccount returns an unattached account node named name.
func NewAccount(name string) *Account {
	return &Account{Name: name}
}

// Children returns the account's direct children, in the order they
// were added.
func (a *Account) Children() []*Account {
	return a.children
}

// Transactions returns the transactions posted against this account.
// The slice is a non-owning view: the transactions themselves are owned
// by their entry (see [Entry]).
func (a *Account) Transactions() []*Transaction {
	return a.transactions
}

// AddAccount attaches child as a direct child of a, setting child's
// Parent and Depth. The child is indexed by the last colon-separated
// segment of its Name, so "Assets:Cash" is found as "Cash".
func (a *Account) AddAccount(child *Account) {
	child.Parent = a
	child.Depth = a.Depth + 1
	a.children = append(a.children, child)
	if a.childByName == nil {
		a.childByName = make(map[string]*Account)
	}
	key := child.Name
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	a.childByName[key] = child
}

// ChildByName returns the direct child whose last name segment is
// name, or nil.
func (a *Account) ChildByName(name string) *Account {
	return a.childByName[name]
}

// AddTransaction records xact as posted against a. It does not take
// ownership of xact; the entry that contains xact owns it.
func (a *Account) AddTransaction(xact *Transaction) {
	a.transactions = append(a.transactions, xact)
}

// FindOrCreate walks the colon-separated path components under a,
// creating any missing intermediate accounts, and returns the leaf.
// Account names in the textual ledger are colon-separated
// ("Assets:Bank:Checking"); this is how the text parser turns flat
// posting names into the chart-of-accounts tree the codec expects.
func (a *Account) FindOrCreate(segments []string) *Account {
	cur := a
	built := ""
	for _, seg := range segments {
		if built == "" {
			built = seg
		} else {
			built = built + ":" + seg
		}
		next := cur.childByName[seg]
		if next == nil {
			next = NewAccount(built)
			cur.AddAccount(next)
		}
		cur = next
	}
	return cur
}

// Walk calls visit for a and then, recursively, every descendant, in
// pre-order — the same order the binary codec's writer assigns
// identifiers in.
func (a *Account) Walk(visit func(*Account)) {
	visit(a)
	for _, c := range a.children {
		c.Walk(visit)
	}
}

// Count returns 1 plus the number of descendants of a.
func (a *Account) Count() uint32 {
	var n uint32
	a.Walk(func(*Account) { n++ })
	return n
}
