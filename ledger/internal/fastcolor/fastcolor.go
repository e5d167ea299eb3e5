// Package fastcolor writes fixed-width, optionally ANSI-colored
// columns without going through fmt's reflection-based formatting —
// the print command writes thousands of these per invocation and the
// column math has to run once per cell, not once per byte.
package fastcolor

import (
	"io"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// Code is an ANSI color/style escape sequence. The zero Code writes no
// escape at all, so a disabled color (e.g. when stdout isn't a
// terminal) costs nothing beyond the fixed-width padding.
type Code string

const (
	Reset  Code = ""
	FgRed  Code = "\x1b[31m"
	FgBlue Code = "\x1b[34m"
	Bold   Code = "\x1b[1m"
)

const resetSeq = "\x1b[0m"

// WriteStringFixed writes s padded or truncated to width runes, wrapped
// in c's escape sequence if c is non-empty. rightAlign pads on the
// left, which is how amount columns line up; anything else pads on the
// right.
func (c Code) WriteStringFixed(w io.Writer, s string, width int, rightAlign bool) {
	n := utf8.RuneCountInString(s)
	if n > width {
		s = truncateRunes(s, width)
		n = width
	}
	pad := width - n

	if c != "" {
		io.WriteString(w, string(c))
	}
	if rightAlign && pad > 0 {
		writeSpaces(w, pad)
	}
	io.WriteString(w, s)
	if !rightAlign && pad > 0 {
		writeSpaces(w, pad)
	}
	if c != "" {
		io.WriteString(w, resetSeq)
	}
}

func truncateRunes(s string, n int) string {
	i := 0
	for idx := range s {
		if i == n {
			return s[:idx]
		}
		i++
	}
	return s
}

var spaces = make([]byte, 256)

func init() {
	for i := range spaces {
		spaces[i] = ' '
	}
}

func writeSpaces(w io.Writer, n int) {
	for n > 0 {
		chunk := n
		if chunk > len(spaces) {
			chunk = len(spaces)
		}
		w.Write(spaces[:chunk])
		n -= chunk
	}
}

// HeatColor blends coolHex to hotHex by frac (0..1) and returns the
// corresponding 24-bit ANSI foreground escape, for heat-map style
// balance displays where magnitude, not just sign, carries meaning.
func HeatColor(frac float64, coolHex, hotHex string) (Code, error) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	cool, err := colorful.Hex(coolHex)
	if err != nil {
		return Reset, err
	}
	hot, err := colorful.Hex(hotHex)
	if err != nil {
		return Reset, err
	}
	blended := cool.BlendLuv(hot, frac)
	r, g, b := blended.RGB255()
	return Code(ansi24(r, g, b)), nil
}

func ansi24(r, g, b uint8) string {
	const esc = "\x1b[38;2;"
	return esc + itoa(r) + ";" + itoa(g) + ";" + itoa(b) + "m"
}

func itoa(v uint8) string {
	if v == 0 {
		return "0"
	}
	var buf [3]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
