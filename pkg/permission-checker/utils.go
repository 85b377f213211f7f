package permissionchecker

func IsKnownRole(role string) bool {
	switch role {
	case ROLE_PARTICIPANT, ROLE_RESEARCHER, ROLE_ADMIN:
		return true
	}
	return false
}

// HasRequiredRole checks whether the caller's role is one of the required
// roles. Admins pass every role requirement. An unknown or empty role is
// never authorized.
func HasRequiredRole(role string, requiredRoles []string) bool {
	if !IsKnownRole(role) {
		return false
	}

	if role == ROLE_ADMIN {
		return true
	}

	for _, required := range requiredRoles {
		if role == required {
			return true
		}
	}
	return false
}

// CanAccessResource checks ownership: the caller must be the resource owner,
// unless they are an admin. Missing owner information fails closed.
func CanAccessResource(subjectID string, role string, resourceOwnerID string) bool {
	if subjectID == "" || resourceOwnerID == "" {
		return role == ROLE_ADMIN && subjectID != ""
	}

	if role == ROLE_ADMIN {
		return true
	}
	return subjectID == resourceOwnerID
}
