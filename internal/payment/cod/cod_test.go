package cod

import (
	"testing"
	"time"
)

func TestSessionIDRoundTrip(t *testing.T) {
	id := NewSessionID(time.Now())
	if id == "" {
		t.Fatalf("session id should not be empty")
	}
	if !IsPseudoSession(id) {
		t.Fatalf("minted session %q should be recognized as pseudo", id)
	}
}

func TestIsPseudoSessionRejectsProviderSessions(t *testing.T) {
	for _, id := range []string{"cs_test_abc", "pi_123", "", "  "} {
		if IsPseudoSession(id) {
			t.Fatalf("%q should not be a pseudo session", id)
		}
	}
}

func TestNewSessionIDDistinct(t *testing.T) {
	a := NewSessionID(time.Unix(0, 1))
	b := NewSessionID(time.Unix(0, 2))
	if a == b {
		t.Fatalf("session ids should differ for different instants")
	}
}
