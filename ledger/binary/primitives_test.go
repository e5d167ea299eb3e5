package binary

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		guards bool
	}{
		{"empty", "", false},
		{"short", "Grocery", false},
		{"short guarded", "Grocery", true},
		{"exactly 254 bytes", strings.Repeat("x", 254), false},
		{"escaped length", strings.Repeat("y", 300), false},
		{"escaped length guarded", strings.Repeat("y", 300), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeString(&buf, tc.s, tc.guards); err != nil {
				t.Fatalf("writeString: %v", err)
			}
			got, err := readStreamedString(&buf, tc.guards)
			if err != nil {
				t.Fatalf("readStreamedString: %v", err)
			}
			if got != tc.s {
				t.Fatalf("got %q, want %q", got, tc.s)
			}
		})
	}
}

func TestStringOverLengthLimitErrors(t *testing.T) {
	var buf bytes.Buffer
	err := writeString(&buf, strings.Repeat("z", 65536), false)
	if err == nil {
		t.Fatalf("writeString of a 65536-byte string should fail")
	}
}

func TestPooledStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	strs := []string{"", "code", "a much longer payee string than the inline case", ""}
	for _, s := range strs {
		if err := writeString(&buf, s, true); err != nil {
			t.Fatalf("writeString: %v", err)
		}
	}

	pool := buf.Bytes()
	pos := 0
	for i, want := range strs {
		got, err := readPooledString(pool, &pos, true)
		if err != nil {
			t.Fatalf("readPooledString[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("readPooledString[%d] = %q, want %q", i, got, want)
		}
	}
	if pos != len(pool) {
		t.Fatalf("pool cursor at %d, want %d (pool exhaustion mismatch)", pos, len(pool))
	}
}

func TestGuardMismatchIsStructural(t *testing.T) {
	var buf bytes.Buffer
	if err := writeString(&buf, "hello", false); err != nil {
		t.Fatalf("writeString: %v", err)
	}
	_, err := readStreamedString(&buf, true)
	if err == nil {
		t.Fatalf("reading an unguarded string as guarded should fail")
	}
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want a *StructuralError", err)
	}
}

func FuzzStringRoundTrip(f *testing.F) {
	f.Add("")
	f.Add("a")
	f.Add(strings.Repeat("x", 254))
	f.Add(strings.Repeat("x", 255))
	f.Add(strings.Repeat("x", 1000))

	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 65535 {
			t.Skip()
		}
		var buf bytes.Buffer
		if err := writeString(&buf, s, false); err != nil {
			t.Fatalf("writeString: %v", err)
		}
		got, err := readStreamedString(&buf, false)
		if err != nil {
			t.Fatalf("readStreamedString: %v", err)
		}
		if got != s {
			t.Fatalf("round-trip mismatch: got %q, want %q", got, s)
		}
	})
}
