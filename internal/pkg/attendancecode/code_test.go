package attendancecode

import (
	"strconv"
	"testing"
)

func TestNewProducesSixDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if len(code) != Length {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), Length)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 0 || n > 999999 {
			t.Fatalf("code %q out of range", code)
		}
	}
}

func TestNewPreservesLeadingZeros(t *testing.T) {
	// With 5000 draws the chance of never seeing a code below 100000 is
	// about (0.9)^5000; a flake here means the generator is broken.
	seenLeadingZero := false
	for i := 0; i < 5000; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if code[0] == '0' {
			seenLeadingZero = true
			break
		}
	}
	if !seenLeadingZero {
		t.Error("no code with a leading zero in 5000 draws")
	}
}
