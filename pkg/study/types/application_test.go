package types

import (
	"testing"
)

func TestIsValidReviewDecision(t *testing.T) {
	tests := []struct {
		name     string
		decision string
		want     bool
	}{
		{
			name:     "accepted",
			decision: APPLICATION_STATUS_ACCEPTED,
			want:     true,
		},
		{
			name:     "rejected",
			decision: APPLICATION_STATUS_REJECTED,
			want:     true,
		},
		{
			name:     "pending is not a decision",
			decision: APPLICATION_STATUS_PENDING,
			want:     false,
		},
		{
			name:     "withdrawn is not a decision",
			decision: APPLICATION_STATUS_WITHDRAWN,
			want:     false,
		},
		{
			name:     "empty",
			decision: "",
			want:     false,
		},
		{
			name:     "unknown value",
			decision: "approved",
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidReviewDecision(tt.decision); got != tt.want {
				t.Errorf("IsValidReviewDecision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		target string
		want   bool
	}{
		{name: "pending to accepted", from: APPLICATION_STATUS_PENDING, target: APPLICATION_STATUS_ACCEPTED, want: true},
		{name: "pending to rejected", from: APPLICATION_STATUS_PENDING, target: APPLICATION_STATUS_REJECTED, want: true},
		{name: "pending to withdrawn", from: APPLICATION_STATUS_PENDING, target: APPLICATION_STATUS_WITHDRAWN, want: true},
		{name: "accepted to rejected", from: APPLICATION_STATUS_ACCEPTED, target: APPLICATION_STATUS_REJECTED, want: true},
		{name: "rejected to accepted", from: APPLICATION_STATUS_REJECTED, target: APPLICATION_STATUS_ACCEPTED, want: true},
		{name: "accepted to withdrawn", from: APPLICATION_STATUS_ACCEPTED, target: APPLICATION_STATUS_WITHDRAWN, want: false},
		{name: "withdrawn to accepted", from: APPLICATION_STATUS_WITHDRAWN, target: APPLICATION_STATUS_ACCEPTED, want: false},
		{name: "withdrawn to withdrawn", from: APPLICATION_STATUS_WITHDRAWN, target: APPLICATION_STATUS_WITHDRAWN, want: false},
		{name: "pending to pending", from: APPLICATION_STATUS_PENDING, target: APPLICATION_STATUS_PENDING, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Application{Status: tt.from}
			if got := a.CanTransitionTo(tt.target); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}
