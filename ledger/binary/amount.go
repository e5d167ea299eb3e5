package binary

import (
	"io"

	ledger "github.com/mdhowey/ledgerbin"
	"github.com/shopspring/decimal"
)

// writeQuantity serializes a decimal quantity as an opaque bigint
// payload: the codec never interprets the value, only counts it (via
// bigintsCount, so the reader can size its bigint arena up front) and
// relocates its bytes. The wire shape is a sign byte, exponent,
// magnitude length, and magnitude bytes.
func writeQuantity(w io.Writer, q decimal.Decimal, bigintsCount *uint64) error {
	coeff := q.Coefficient()
	mag := coeff.Bytes()

	if _, err := w.Write([]byte{byte(int8(coeff.Sign()))}); err != nil {
		return err
	}
	if err := writeU32(w, uint32(int32(q.Exponent()))); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(mag))); err != nil {
		return err
	}
	if len(mag) > 0 {
		if _, err := w.Write(mag); err != nil {
			return err
		}
	}

	*bigintsCount++
	return nil
}

// readQuantity places the deserialized bigint payload at the next
// arena bigint slot and advances the arena's cursor.
func readQuantity(r io.Reader, arena *ledger.Arena) (decimal.Decimal, error) {
	var signByte [1]byte
	if _, err := io.ReadFull(r, signByte[:]); err != nil {
		return decimal.Decimal{}, err
	}
	sign := int8(signByte[0])

	expU, err := readU32(r)
	if err != nil {
		return decimal.Decimal{}, err
	}
	exp := int32(expU)

	maglen, err := readU32(r)
	if err != nil {
		return decimal.Decimal{}, err
	}
	mag := make([]byte, maglen)
	if maglen > 0 {
		if _, err := io.ReadFull(r, mag); err != nil {
			return decimal.Decimal{}, err
		}
	}

	coeff := arena.NextBigint()
	coeff.SetBytes(mag)
	if sign < 0 {
		coeff.Neg(coeff)
	}
	return decimal.NewFromBigInt(coeff, exp), nil
}

// writeAmount writes the amount's commodity identifier — or NoIdent if
// it has no commodity — followed by its quantity.
func writeAmount(w io.Writer, amt ledger.Amount, commodityIdent map[*ledger.Commodity]uint32, bigintsCount *uint64) error {
	if amt.Commodity == nil || amt.Commodity.Symbol == "" {
		if err := writeU32(w, ledger.NoIdent); err != nil {
			return err
		}
	} else {
		ident, ok := commodityIdent[amt.Commodity]
		if !ok {
			return structuralf("amount references commodity %q that was never assigned an identifier", amt.Commodity.Symbol)
		}
		if err := writeU32(w, ident); err != nil {
			return err
		}
	}
	return writeQuantity(w, amt.Quantity, bigintsCount)
}

// readAmount reads a commodity identifier and resolves it against
// commodities (1-based, NoIdent meaning "no commodity"), then reads
// the quantity into the arena.
func readAmount(r io.Reader, commodities []*ledger.Commodity, arena *ledger.Arena) (ledger.Amount, error) {
	ident, err := readU32(r)
	if err != nil {
		return ledger.Amount{}, err
	}

	var commodity *ledger.Commodity
	if ident != ledger.NoIdent {
		if ident == 0 || int(ident) > len(commodities) {
			return ledger.Amount{}, structuralf("amount references out-of-range commodity identifier %d (table has %d entries)", ident, len(commodities))
		}
		commodity = commodities[ident-1]
	}

	qty, err := readQuantity(r, arena)
	if err != nil {
		return ledger.Amount{}, err
	}
	return ledger.Amount{Commodity: commodity, Quantity: qty}, nil
}
