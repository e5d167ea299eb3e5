package ledger

import "github.com/shopspring/decimal"

// Amount is a quantity paired with the commodity it is denominated in.
// A nil Commodity means the amount has no unit — the codec serializes
// that case as [NoIdent] rather than an identifier.
//
// Quantity is an arbitrary-precision decimal. The binary codec treats
// its coefficient and exponent as an opaque payload: it never inspects
// the value, only counts and relocates it.
type Amount struct {
	Commodity *Commodity
	Quantity  decimal.Decimal
}

// NewAmount returns an amount of qty denominated in commodity, which
// may be nil.
func NewAmount(commodity *Commodity, qty decimal.Decimal) Amount {
	return Amount{Commodity: commodity, Quantity: qty}
}

// IsZero reports whether the amount's quantity is zero.
func (a Amount) IsZero() bool {
	return a.Quantity.IsZero()
}

// Neg returns the amount with its quantity negated.
func (a Amount) Neg() Amount {
	return Amount{Commodity: a.Commodity, Quantity: a.Quantity.Neg()}
}

// Add returns a + b. It does not check that the two amounts share a
// commodity; that check belongs to the caller, e.g. [Entry.IsBalanced].
func (a Amount) Add(b Amount) Amount {
	return Amount{Commodity: a.Commodity, Quantity: a.Quantity.Add(b.Quantity)}
}

// String renders the amount as "<symbol> <quantity>", or bare quantity
// when there is no commodity.
func (a Amount) String() string {
	if a.Commodity == nil || a.Commodity.Symbol == "" {
		return a.Quantity.String()
	}
	return a.Commodity.Symbol + " " + a.Quantity.String()
}
