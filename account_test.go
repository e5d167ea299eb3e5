package ledger

import "testing"

func TestFindOrCreateBuildsColonPath(t *testing.T) {
	master := NewAccount("")
	leaf := master.FindOrCreate([]string{"Assets", "Bank", "Checking"})

	if leaf.Name != "Assets:Bank:Checking" {
		t.Fatalf("leaf name = %q, want %q", leaf.Name, "Assets:Bank:Checking")
	}
	if leaf.Depth != 3 {
		t.Fatalf("leaf depth = %d, want 3", leaf.Depth)
	}

	again := master.FindOrCreate([]string{"Assets", "Bank", "Checking"})
	if again != leaf {
		t.Fatalf("FindOrCreate did not return the existing account on a repeat call")
	}

	if master.ChildByName("Assets") == nil {
		t.Fatalf("master lost its Assets child")
	}
	if master.ChildByName("Assets").ChildByName("Bank") == nil {
		t.Fatalf("Assets lost its Bank child")
	}
}

func TestWalkIsPreOrder(t *testing.T) {
	master := NewAccount("")
	master.FindOrCreate([]string{"Assets", "Cash"})
	master.FindOrCreate([]string{"Expenses", "Food"})

	var order []string
	master.Walk(func(a *Account) { order = append(order, a.Name) })

	want := []string{"", "Assets", "Assets:Cash", "Expenses", "Expenses:Food"}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Walk visited %v, want %v", order, want)
		}
	}
}

func TestCountIncludesSelf(t *testing.T) {
	master := NewAccount("")
	if master.Count() != 1 {
		t.Fatalf("empty master count = %d, want 1", master.Count())
	}
	master.FindOrCreate([]string{"Assets", "Cash"})
	if master.Count() != 3 {
		t.Fatalf("count = %d, want 3", master.Count())
	}
}

func TestAddTransactionLinksAccount(t *testing.T) {
	a := NewAccount("Assets:Cash")
	x := &Transaction{Account: a}
	a.AddTransaction(x)

	txs := a.Transactions()
	if len(txs) != 1 || txs[0] != x {
		t.Fatalf("Transactions() = %v, want [%v]", txs, x)
	}
}
