package permissionchecker

const (
	ROLE_PARTICIPANT = "participant"
	ROLE_RESEARCHER  = "researcher"
	ROLE_ADMIN       = "admin"
)
