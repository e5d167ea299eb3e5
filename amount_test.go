package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountIsZero(t *testing.T) {
	dollar := NewCommodity("$")
	zero := Amount{Commodity: dollar, Quantity: decimal.Zero}
	if !zero.IsZero() {
		t.Fatalf("zero amount reports non-zero")
	}

	ten := Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}
	if ten.IsZero() {
		t.Fatalf("ten amount reports zero")
	}
}

func TestAmountNeg(t *testing.T) {
	dollar := NewCommodity("$")
	ten := Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}
	neg := ten.Neg()
	if !neg.Quantity.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("Neg() = %v, want -10", neg.Quantity)
	}
	if neg.Commodity != dollar {
		t.Fatalf("Neg() dropped the commodity")
	}
}

func TestAmountAdd(t *testing.T) {
	dollar := NewCommodity("$")
	a := Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}
	b := Amount{Commodity: dollar, Quantity: decimal.NewFromInt(-3)}
	sum := a.Add(b)
	if !sum.Quantity.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("Add() = %v, want 7", sum.Quantity)
	}
}

func TestAmountString(t *testing.T) {
	dollar := NewCommodity("$")
	a := Amount{Commodity: dollar, Quantity: decimal.NewFromInt(10)}
	if a.String() == "" {
		t.Fatalf("String() returned empty")
	}
}
