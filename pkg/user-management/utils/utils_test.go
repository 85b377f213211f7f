package utils

import (
	"testing"
	"time"
)

func TestSanitizeEmail(t *testing.T) {
	t.Run("with different formats", func(t *testing.T) {
		email := SanitizeEmail("\n23234@test.DE")
		if email != "23234@test.de" {
			t.Errorf("unexpected email: %s", email)
		}

		email = SanitizeEmail("  \n 23234@test.DE \n\r")
		if email != "23234@test.de" {
			t.Errorf("unexpected email: %s", email)
		}

		email = SanitizeEmail("23234@test.de")
		if email != "23234@test.de" {
			t.Errorf("unexpected email: %s", email)
		}
	})
}

func TestCheckPasswordFormat(t *testing.T) {
	t.Run("with a too short password", func(t *testing.T) {
		if CheckPasswordFormat("1n34T6@") {
			t.Error("should be false")
		}
	})
	t.Run("with a too weak password", func(t *testing.T) {
		if CheckPasswordFormat("13342678") {
			t.Error("should be false")
		}
		if CheckPasswordFormat("11111aaaa") {
			t.Error("should be false")
		}
	})
	t.Run("with good passwords", func(t *testing.T) {
		if !CheckPasswordFormat("1n34T678") {
			t.Error("should be true")
		}
		if !CheckPasswordFormat("nnnnnnT@@") {
			t.Error("should be true")
		}
		if !CheckPasswordFormat("TTTTTTTT77.") {
			t.Error("should be true")
		}
		if !CheckPasswordFormat("Tt1,.Lo%4") {
			t.Error("should be true")
		}
	})
}

func TestCheckEmailFormat(t *testing.T) {
	t.Run("with missing @", func(t *testing.T) {
		if CheckEmailFormat("t.t.com") {
			t.Error("should be false")
		}
	})

	t.Run("with wrong domain format", func(t *testing.T) {
		if CheckEmailFormat("t@t.") {
			t.Error("should be false")
		}
	})

	t.Run("with missing top level domain", func(t *testing.T) {
		if CheckEmailFormat("t@com") {
			t.Error("should be false")
		}
	})

	t.Run("with wrong local format", func(t *testing.T) {
		if CheckEmailFormat("@t.com") {
			t.Error("should be false")
		}
	})

	t.Run("with too many @", func(t *testing.T) {
		if CheckEmailFormat("t@@t.com") {
			t.Error("should be false")
		}
	})

	t.Run("with correct format", func(t *testing.T) {
		if !CheckEmailFormat("t@t.com") {
			t.Error("should be true")
		}
	})

	t.Run("with plus addressing", func(t *testing.T) {
		if !CheckEmailFormat("t+1@t.com") {
			t.Error("should be true")
		}
	})
}

func TestGenerateUniqueTokenString(t *testing.T) {
	t1, err := GenerateUniqueTokenString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t2, err := GenerateUniqueTokenString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if t1 == t2 {
		t.Error("tokens should be unique")
	}
	if len(t1) < 32 {
		t.Errorf("token too short: %s", t1)
	}
}

func TestHasMoreAttemptsRecently(t *testing.T) {
	now := time.Now().Unix()

	t.Run("under the limit", func(t *testing.T) {
		attempts := []int64{now - 10, now - 20}
		if HasMoreAttemptsRecently(attempts, 3, 60) {
			t.Error("should be false")
		}
	})

	t.Run("at the limit", func(t *testing.T) {
		attempts := []int64{now - 10, now - 20, now - 30}
		if !HasMoreAttemptsRecently(attempts, 3, 60) {
			t.Error("should be true")
		}
	})

	t.Run("old attempts are ignored", func(t *testing.T) {
		attempts := []int64{now - 1000, now - 2000, now - 3000}
		if HasMoreAttemptsRecently(attempts, 3, 60) {
			t.Error("should be false")
		}
	})
}

func TestRemoveAttemptsOlderThan(t *testing.T) {
	now := time.Now().Unix()
	attempts := []int64{now - 10, now - 5000}

	kept := RemoveAttemptsOlderThan(attempts, 3600)
	if len(kept) != 1 {
		t.Errorf("expected 1 kept attempt, got %d", len(kept))
	}
}
