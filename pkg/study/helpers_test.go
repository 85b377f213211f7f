package study

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateSessionID(t *testing.T) {
	startedAt := time.Unix(1700000000, 0)

	got := generateSessionID("flu-cohort", "p-1234", startedAt)
	want := "flu-cohort-p-1234-1700000000"
	if got != want {
		t.Errorf("generateSessionID() = %v, want %v", got, want)
	}

	if !strings.HasPrefix(got, "flu-cohort-") {
		t.Errorf("session id should embed the study key: %s", got)
	}
}
