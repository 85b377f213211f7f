package pwhash

import (
	"strings"
	"testing"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Tt1,.Lo%4abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	match, err := ComparePasswordWithHash(hash, "Tt1,.Lo%4abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Error("password should match its own hash")
	}

	match, err = ComparePasswordWithHash(hash, "wrong-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match {
		t.Error("wrong password should not match")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("Tt1,.Lo%4abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := HashPassword("Tt1,.Lo%4abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestComparePasswordWithInvalidHash(t *testing.T) {
	if _, err := ComparePasswordWithHash("not-a-hash", "pw"); err == nil {
		t.Error("expected error for malformed hash")
	}
}
