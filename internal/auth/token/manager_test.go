package token

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.Sign(42)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	claims, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.TutorID != 42 {
		t.Fatalf("expected tutor id 42, got %d", claims.TutorID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", time.Hour).Sign(1)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Parse(signed); err == nil {
		t.Fatalf("expected failure for token signed with a different secret")
	}
}

func TestTokenExpired(t *testing.T) {
	signed, err := NewManager("secret", -time.Minute).Sign(1)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := NewManager("secret", -time.Minute).Parse(signed); err == nil {
		t.Fatalf("expected failure for expired token")
	}
}

func TestTokenMalformed(t *testing.T) {
	m := NewManager("secret", time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := m.Parse(bad); err == nil {
			t.Fatalf("expected failure for malformed token %q", bad)
		}
	}
}
