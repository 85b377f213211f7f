package permissionchecker

import (
	"testing"
)

func TestHasRequiredRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		role          string
		requiredRoles []string
		want          bool
	}{
		{
			name:          "researcher where researcher required",
			role:          ROLE_RESEARCHER,
			requiredRoles: []string{ROLE_RESEARCHER},
			want:          true,
		},
		{
			name:          "admin passes researcher requirement",
			role:          ROLE_ADMIN,
			requiredRoles: []string{ROLE_RESEARCHER},
			want:          true,
		},
		{
			name:          "participant blocked from researcher endpoint",
			role:          ROLE_PARTICIPANT,
			requiredRoles: []string{ROLE_RESEARCHER},
			want:          false,
		},
		{
			name:          "researcher blocked from participant endpoint",
			role:          ROLE_RESEARCHER,
			requiredRoles: []string{ROLE_PARTICIPANT},
			want:          false,
		},
		{
			name:          "empty role fails closed",
			role:          "",
			requiredRoles: []string{ROLE_PARTICIPANT, ROLE_RESEARCHER},
			want:          false,
		},
		{
			name:          "unknown role fails closed",
			role:          "moderator",
			requiredRoles: []string{ROLE_RESEARCHER},
			want:          false,
		},
		{
			name:          "no required roles means nobody but admin",
			role:          ROLE_RESEARCHER,
			requiredRoles: []string{},
			want:          false,
		},
		{
			name:          "admin with no required roles",
			role:          ROLE_ADMIN,
			requiredRoles: []string{},
			want:          true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRequiredRole(tt.role, tt.requiredRoles); got != tt.want {
				t.Errorf("HasRequiredRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		subjectID       string
		role            string
		resourceOwnerID string
		want            bool
	}{
		{
			name:            "owner can access",
			subjectID:       "u1",
			role:            ROLE_RESEARCHER,
			resourceOwnerID: "u1",
			want:            true,
		},
		{
			name:            "non-owner cannot access",
			subjectID:       "u2",
			role:            ROLE_RESEARCHER,
			resourceOwnerID: "u1",
			want:            false,
		},
		{
			name:            "admin can access any resource",
			subjectID:       "u2",
			role:            ROLE_ADMIN,
			resourceOwnerID: "u1",
			want:            true,
		},
		{
			name:            "missing owner fails closed for non-admin",
			subjectID:       "u1",
			role:            ROLE_RESEARCHER,
			resourceOwnerID: "",
			want:            false,
		},
		{
			name:            "missing owner still allowed for admin",
			subjectID:       "u1",
			role:            ROLE_ADMIN,
			resourceOwnerID: "",
			want:            true,
		},
		{
			name:            "missing subject fails closed",
			subjectID:       "",
			role:            ROLE_ADMIN,
			resourceOwnerID: "u1",
			want:            false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessResource(tt.subjectID, tt.role, tt.resourceOwnerID); got != tt.want {
				t.Errorf("CanAccessResource() = %v, want %v", got, tt.want)
			}
		})
	}
}
