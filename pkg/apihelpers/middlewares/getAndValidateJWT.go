package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	globalinfosDB "github.com/fieldwork-labs/fieldwork-backend/pkg/db/global-infos"
	jwthandling "github.com/fieldwork-labs/fieldwork-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

const HeaderAuthorization = "Authorization"

// GetAndValidateUserJWT extracts the bearer token from the request, rejects
// logged out tokens and validates signature and expiry. Handlers only ever see
// the parsed claims, never the raw credential.
func GetAndValidateUserJWT(tokenSignKey string, globalInfosDBService *globalinfosDB.GlobalInfosDBService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no Authorization token found"})
			return
		}

		if isTokenBlocked(token, globalInfosDBService) {
			slog.Warn("token logged out")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token logged out"})
			return
		}

		parsedToken, ok, err := jwthandling.ValidateUserToken(token, tokenSignKey)
		if err != nil || !ok {
			errMsg := "token invalid"
			if err != nil {
				errMsg = err.Error()
			}
			slog.Warn("token validation failed", slog.String("error", errMsg))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "error during token validation"})
			return
		}
		c.Set("token", token)
		c.Set("validatedToken", parsedToken)
	}
}

// GetAndValidateUserJWTWithIgnoringExpiration is used by the token renew
// endpoint, where an expired access token together with a valid renew token is
// still acceptable.
func GetAndValidateUserJWTWithIgnoringExpiration(tokenSignKey string, globalInfosDBService *globalinfosDB.GlobalInfosDBService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no Authorization token found"})
			return
		}

		if isTokenBlocked(token, globalInfosDBService) {
			slog.Warn("token logged out")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token logged out"})
			return
		}

		parsedToken, _, err := jwthandling.ValidateUserToken(token, tokenSignKey)
		if err != nil && !strings.Contains(err.Error(), "token is expired") {
			slog.Warn("token validation failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "error during token validation"})
			return
		}
		c.Set("token", token)
		c.Set("validatedToken", parsedToken)
	}
}

func isTokenBlocked(token string, globalInfosDBService *globalinfosDB.GlobalInfosDBService) bool {
	return globalInfosDBService.IsJwtBlocked(token)
}

func extractToken(c *gin.Context) (string, error) {
	req := c.Request

	var token string
	tokens, ok := req.Header[HeaderAuthorization]
	if ok && len(tokens) > 0 {
		token = tokens[0]
		token = strings.TrimPrefix(token, "Bearer ")
		if len(token) == 0 {
			return token, errors.New("no token found in Authorization header")
		}
	} else {
		return token, errors.New("no Authorization header found")
	}
	return token, nil
}
