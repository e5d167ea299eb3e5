package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsBalancedSimple(t *testing.T) {
	dollar := NewCommodity("$")
	e := NewEntry(time.Now(), "Grocery")
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}})
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(-10)}})

	if err := e.IsBalanced(); err != nil {
		t.Fatalf("IsBalanced() = %v, want nil", err)
	}
}

func TestIsBalancedFillsEmptyPosting(t *testing.T) {
	dollar := NewCommodity("$")
	e := NewEntry(time.Now(), "Grocery")
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}})
	empty := &Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.Zero}}
	e.AddTransaction(empty)

	if err := e.IsBalanced(); err != nil {
		t.Fatalf("IsBalanced() = %v, want nil", err)
	}
	if !empty.Amount.Quantity.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("empty posting absorbed %v, want -10", empty.Amount.Quantity)
	}
}

func TestIsBalancedNeedsTwoPostings(t *testing.T) {
	e := NewEntry(time.Now(), "Grocery")
	e.AddTransaction(&Transaction{})

	if err := e.IsBalanced(); !errors.Is(err, ErrNeedAtLeastTwoPostings) {
		t.Fatalf("IsBalanced() = %v, want ErrNeedAtLeastTwoPostings", err)
	}
}

func TestIsBalancedNoEmptyPostingForExtra(t *testing.T) {
	dollar := NewCommodity("$")
	e := NewEntry(time.Now(), "Grocery")
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}})
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(5)}})

	if err := e.IsBalanced(); !errors.Is(err, ErrNoEmptyAmountForExtraBalance) {
		t.Fatalf("IsBalanced() = %v, want ErrNoEmptyAmountForExtraBalance", err)
	}
}

func TestIsBalancedMoreThanOneEmptyPosting(t *testing.T) {
	dollar := NewCommodity("$")
	e := NewEntry(time.Now(), "Grocery")
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}})
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.Zero}})
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.Zero}})

	if err := e.IsBalanced(); !errors.Is(err, ErrMoreThanOneEmptyAmountInEntry) {
		t.Fatalf("IsBalanced() = %v, want ErrMoreThanOneEmptyAmountInEntry", err)
	}
}

func TestIsBalancedWithCostOverride(t *testing.T) {
	dollar := NewCommodity("$")
	euro := NewCommodity("EUR")

	e := NewEntry(time.Now(), "FX trade")
	cost := Amount{Commodity: dollar, Quantity: decimal.NewFromInt(110)}
	e.AddTransaction(&Transaction{
		Amount: Amount{Commodity: euro, Quantity: decimal.NewFromInt(100)},
		Cost:   &cost,
	})
	e.AddTransaction(&Transaction{Amount: Amount{Commodity: dollar, Quantity: decimal.NewFromInt(110)}})

	if err := e.IsBalanced(); err != nil {
		t.Fatalf("IsBalanced() = %v, want nil", err)
	}
}
