package middlewares

import (
	"log/slog"
	"net/http"

	jwthandling "github.com/fieldwork-labs/fieldwork-backend/pkg/jwt-handling"
	pc "github.com/fieldwork-labs/fieldwork-backend/pkg/permission-checker"
	"github.com/gin-gonic/gin"
)

// RequireRole blocks callers whose role is not in the allowed set. Admins
// pass every role requirement. Must run after GetAndValidateUserJWT.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("RequireRole: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "validatedToken not found in context"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.UserClaims)

		if !pc.HasRequiredRole(parsedToken.Role, allowedRoles) {
			slog.Warn("RequireRole: insufficient role", slog.String("userID", parsedToken.Subject), slog.String("role", parsedToken.Role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient permissions"})
			return
		}
	}
}
