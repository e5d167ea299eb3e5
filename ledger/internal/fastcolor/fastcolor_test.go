package fastcolor

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteStringFixedPadding(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		width      int
		rightAlign bool
		want       string
	}{
		{"left pad short string", "ab", 5, false, "ab   "},
		{"right align pads left", "ab", 5, true, "   ab"},
		{"exact width", "abcde", 5, false, "abcde"},
		{"truncates over width", "abcdef", 5, false, "abcde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Reset.WriteStringFixed(&buf, tt.s, tt.width, tt.rightAlign)
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteStringFixedWrapsColorCode(t *testing.T) {
	var buf bytes.Buffer
	FgRed.WriteStringFixed(&buf, "x", 3, false)
	out := buf.String()
	if !strings.HasPrefix(out, string(FgRed)) {
		t.Errorf("output %q does not start with the color escape", out)
	}
	if !strings.HasSuffix(out, resetSeq) {
		t.Errorf("output %q does not end with a reset escape", out)
	}
}

func TestHeatColorClampsFraction(t *testing.T) {
	if _, err := HeatColor(-1, "#0000ff", "#ff0000"); err != nil {
		t.Fatalf("HeatColor(-1, ...): %v", err)
	}
	if _, err := HeatColor(2, "#0000ff", "#ff0000"); err != nil {
		t.Fatalf("HeatColor(2, ...): %v", err)
	}
}

func TestHeatColorInvalidHex(t *testing.T) {
	if _, err := HeatColor(0.5, "not-a-color", "#ff0000"); err == nil {
		t.Fatal("expected an error for an invalid hex color")
	}
}
