package jwthandling

import (
	"testing"
	"time"
)

func TestUserTokenRoundTrip(t *testing.T) {
	secret := "test-sign-key"

	token, err := GenerateNewUserToken(time.Minute, "u-1", "p1@example.com", "participant", "s-1", secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, valid, err := ValidateUserToken(token, secret)
	if err != nil || !valid {
		t.Fatalf("expected valid token, got valid=%v err=%v", valid, err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != "participant" {
		t.Errorf("unexpected role: %s", claims.Role)
	}
	if claims.SessionID != "s-1" {
		t.Errorf("unexpected session id: %s", claims.SessionID)
	}
}

func TestUserTokenWrongKey(t *testing.T) {
	token, err := GenerateNewUserToken(time.Minute, "u-1", "p1@example.com", "participant", "s-1", "key-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, valid, err := ValidateUserToken(token, "key-b")
	if valid || err == nil {
		t.Errorf("expected rejection with wrong key, got valid=%v err=%v", valid, err)
	}
}

func TestUserTokenExpired(t *testing.T) {
	token, err := GenerateNewUserToken(-time.Minute, "u-1", "p1@example.com", "researcher", "s-1", "key-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, valid, err := ValidateUserToken(token, "key-a")
	if valid || err == nil {
		t.Errorf("expected rejection of expired token, got valid=%v err=%v", valid, err)
	}
}
