package utils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	st, err := NewSessionToken("secret", "user-1", "ADMIN", now, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseSessionToken("secret", st.Token, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "ADMIN" {
		t.Fatalf("unexpected claims: sub=%q role=%q", claims.Subject, claims.Role)
	}
}

func TestSessionTokenExpiry(t *testing.T) {
	now := time.Now().UTC()
	st, err := NewSessionToken("secret", "user-1", "STUDENT", now, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	// Valid right up to the window, invalid at and after it.
	if _, err := ParseSessionToken("secret", st.Token, now.Add(59*time.Minute)); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}
	if _, err := ParseSessionToken("secret", st.Token, now.Add(time.Hour+time.Second)); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestSessionTokenWrongKey(t *testing.T) {
	now := time.Now().UTC()
	st, err := NewSessionToken("key-a", "user-1", "TEACHER", now, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseSessionToken("key-b", st.Token, now); err == nil {
		t.Fatalf("expected token signed with another key to be rejected")
	}
}

func TestSessionTokenTamper(t *testing.T) {
	now := time.Now().UTC()
	st, err := NewSessionToken("secret", "user-1", "STUDENT", now, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	// Flipping any single byte of the compact form (header, payload or
	// signature) must make verification fail.  'A' and 'z' differ in the
	// high sextet bits, so the mutation always changes decoded bytes even
	// at segment boundaries where trailing base64 bits are unused.
	raw := []byte(st.Token)
	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		if mutated[i] == 'A' {
			mutated[i] = 'z'
		} else {
			mutated[i] = 'A'
		}
		if _, err := ParseSessionToken("secret", string(mutated), now); err == nil {
			t.Fatalf("mutation at byte %d was accepted", i)
		}
	}
}
