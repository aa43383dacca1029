package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsHashesOwnerIDs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"owner_id", "8d1c5a8e-0000-4000-8000-000000000001", "rifle", "R1"})
	if len(out) != 4 {
		t.Fatalf("len: want=4 got=%d", len(out))
	}
	hashed, ok := out[1].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("owner_id should be hashed, got %v", out[1])
	}
	if out[3] != "R1" {
		t.Fatalf("non-sensitive value changed: %v", out[3])
	}
}

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"jwt_secret", "s3cr3t", "authorization", "Bearer abc"})
	if out[1] != "[REDACTED]" || out[3] != "[REDACTED]" {
		t.Fatalf("expected redaction, got %v", out)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"session", "x", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestHashValueStable(t *testing.T) {
	a := hashValue("abc")
	b := hashValue("abc")
	if a != b || a == "" {
		t.Fatalf("hash not stable: %q %q", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("empty input should hash to empty")
	}
}
