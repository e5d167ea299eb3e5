package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// guardBefore and guardAfter bracket every string in debug-guarded
// streams. They exist purely to catch a reader/writer that has drifted
// out of sync with the format; release streams omit them entirely
// rather than writing a placeholder.
const (
	guardBefore uint16 = 0x3001
	guardAfter  uint16 = 0x3002
)

// Options configures a single WriteJournal/ReadJournal call. It
// carries no package-level state: every field here is threaded
// explicitly through the call so codec invocations never share mutable
// state.
type Options struct {
	// DebugGuards brackets every string with 16-bit guard constants on
	// write, and checks for them on read. A stream written with
	// DebugGuards must be read with DebugGuards; mixing is undefined.
	DebugGuards bool
}

func writeU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeI64(w io.Writer, v int64) error {
	return writeU64(w, uint64(v))
}

func readU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func readI64(r io.Reader) (int64, error) {
	v, err := readU64(r)
	return int64(v), err
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// writeString writes s length-prefixed, optionally bracketed by debug
// guards. Prefix byte: 0x00 for empty, 1..254 for a byte length, 0xFF
// as an escape followed by a 16-bit length for anything longer. The
// same function writes both streamed strings (account/commodity
// attributes) and pooled strings (entry/transaction text destined for
// the string pool) — the distinction is purely in when the caller
// invokes it, not in the wire shape.
func writeString(w io.Writer, s string, guards bool) error {
	if guards {
		if err := writeU16(w, guardBefore); err != nil {
			return err
		}
	}

	n := len(s)
	switch {
	case n == 0:
		if err := writeU16Byte(w, 0); err != nil {
			return err
		}
	case n <= 254:
		if err := writeU16Byte(w, uint8(n)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	case n <= 65535:
		if err := writeU16Byte(w, 0xFF); err != nil {
			return err
		}
		if err := writeU16(w, uint16(n)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	default:
		return fmt.Errorf("ledgerbin: string of length %d exceeds the 65535-byte format limit", n)
	}

	if guards {
		if err := writeU16(w, guardAfter); err != nil {
			return err
		}
	}
	return nil
}

func writeU16Byte(w io.Writer, b uint8) error {
	_, err := w.Write([]byte{b})
	return err
}

// readStreamedString reads a length-prefixed string directly from r.
// Used for account and commodity attributes and for source-file paths
// — everything the format reads inline rather than out of the string
// pool.
func readStreamedString(r io.Reader, guards bool) (string, error) {
	if guards {
		g, err := readU16(r)
		if err != nil {
			return "", err
		}
		if g != guardBefore {
			return "", structuralf("string guard mismatch before string: got %#x want %#x", g, guardBefore)
		}
	}

	var lenByte [1]byte
	if _, err := io.ReadFull(r, lenByte[:]); err != nil {
		return "", err
	}

	var s string
	switch lenByte[0] {
	case 0x00:
		s = ""
	case 0xFF:
		slen, err := readU16(r)
		if err != nil {
			return "", err
		}
		buf := make([]byte, slen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		s = string(buf)
	default:
		buf := make([]byte, lenByte[0])
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		s = string(buf)
	}

	if guards {
		g, err := readU16(r)
		if err != nil {
			return "", err
		}
		if g != guardAfter {
			return "", structuralf("string guard mismatch after string: got %#x want %#x", g, guardAfter)
		}
	}
	return s, nil
}

// readPooledString slices a string out of pool starting at *pos,
// advancing *pos past it. This is the read-side counterpart of the
// string-pool discipline: entry code/payee and transaction notes are
// written into a dedicated span ahead of the objects that reference
// them, then sliced back out in the same order during arena
// construction.
func readPooledString(pool []byte, pos *int, guards bool) (string, error) {
	if guards {
		if *pos+2 > len(pool) {
			return "", structuralf("string pool exhausted reading guard at offset %d", *pos)
		}
		g := binary.LittleEndian.Uint16(pool[*pos:])
		*pos += 2
		if g != guardBefore {
			return "", structuralf("string pool guard mismatch before string at offset %d: got %#x want %#x", *pos-2, g, guardBefore)
		}
	}

	if *pos+1 > len(pool) {
		return "", structuralf("string pool exhausted reading length prefix at offset %d", *pos)
	}
	lenByte := pool[*pos]
	*pos++

	var s string
	switch lenByte {
	case 0x00:
		s = ""
	case 0xFF:
		if *pos+2 > len(pool) {
			return "", structuralf("string pool exhausted reading escaped length at offset %d", *pos)
		}
		slen := int(binary.LittleEndian.Uint16(pool[*pos:]))
		*pos += 2
		if *pos+slen > len(pool) {
			return "", structuralf("string pool exhausted reading %d-byte string at offset %d", slen, *pos)
		}
		s = string(pool[*pos : *pos+slen])
		*pos += slen
	default:
		slen := int(lenByte)
		if *pos+slen > len(pool) {
			return "", structuralf("string pool exhausted reading %d-byte string at offset %d", slen, *pos)
		}
		s = string(pool[*pos : *pos+slen])
		*pos += slen
	}

	if guards {
		if *pos+2 > len(pool) {
			return "", structuralf("string pool exhausted reading guard at offset %d", *pos)
		}
		g := binary.LittleEndian.Uint16(pool[*pos:])
		*pos += 2
		if g != guardAfter {
			return "", structuralf("string pool guard mismatch after string at offset %d: got %#x want %#x", *pos-2, g, guardAfter)
		}
	}
	return s, nil
}
