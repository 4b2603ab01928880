package crypto

import (
	"strings"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckPassword(hash, "secret"); err != nil {
		t.Fatalf("expected password to match")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}

func TestNumericCodeWidth(t *testing.T) {
	// Both verification and recovery codes are fixed at six digits, padded
	// with leading zeros when the random value is small.
	for i := 0; i < 200; i++ {
		code, err := NumericCode(6)
		if err != nil {
			t.Fatalf("code error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}

func TestTempPassword(t *testing.T) {
	pw, err := TempPassword(10)
	if err != nil {
		t.Fatalf("temp password error: %v", err)
	}
	if len(pw) != 10 {
		t.Fatalf("expected length 10, got %d", len(pw))
	}
	for _, c := range pw {
		if !strings.ContainsRune(tempPasswordAlphabet, c) {
			t.Fatalf("character %q outside alphabet", c)
		}
	}
}
