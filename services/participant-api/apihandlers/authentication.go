package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers"
	mw "github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/fieldwork-labs/fieldwork-backend/pkg/jwt-handling"
	pc "github.com/fieldwork-labs/fieldwork-backend/pkg/permission-checker"
	"github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/pwhash"
	userTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/types"
	umUtils "github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/utils"
)

const (
	loginFailedAttemptWindow = 5 * 60 // to count the login failures, seconds
	allowedPasswordAttempts  = 10
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", mw.RequirePayload(), h.signupWithEmail)
		authGroup.POST("/login", mw.RequirePayload(), h.loginWithEmail)
		authGroup.POST("/token/renew", mw.RequirePayload(), mw.GetAndValidateUserJWTWithIgnoringExpiration(h.tokenSignKey, h.globalInfosDBConn), h.renewToken)
		authGroup.GET("/token/validate", mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn), h.validateToken)
		authGroup.POST("/logout", mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn), h.logout)
	}
}

type SignupWithEmailReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) signupWithEmail(c *gin.Context) {
	var req SignupWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		slog.Error("missing required fields")
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "missing required fields")
		return
	}

	req.Email = umUtils.SanitizeEmail(req.Email)

	if !umUtils.CheckEmailFormat(req.Email) {
		slog.Error("invalid email format", slog.String("email", req.Email))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "invalid email format")
		return
	}

	if !umUtils.CheckPasswordFormat(req.Password) {
		slog.Error("invalid password format")
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "invalid password format")
		return
	}

	password, err := pwhash.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	// self service signup always creates participants, elevated roles are
	// provisioned through the management API
	now := time.Now().Unix()
	newUser := userTypes.User{
		Account: userTypes.Account{
			Type:      userTypes.ACCOUNT_TYPE_EMAIL,
			AccountID: req.Email,
			Password:  password,
			Role:      pc.ROLE_PARTICIPANT,
		},
		Timestamps: userTypes.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	id, err := h.userDBConn.AddUser(newUser)
	if err != nil {
		slog.Error("failed to create new user", slog.String("error", err.Error()), slog.String("email", req.Email))
		randomWait(1, 4)
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	tokenResp, err := h.issueTokensForUser(id, req.Email, pc.ROLE_PARTICIPANT)
	if err != nil {
		slog.Error("failed to issue tokens", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("signup successful", slog.String("subject", id))
	apihelpers.SuccessResponse(c, http.StatusCreated, tokenResp)
}

type LoginWithEmailReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) loginWithEmail(c *gin.Context) {
	var req LoginWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		slog.Error("missing required fields")
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "missing required fields")
		return
	}

	req.Email = umUtils.SanitizeEmail(req.Email)

	user, err := h.userDBConn.GetUserByAccountID(req.Email)
	if err != nil {
		slog.Warn("login attempt with wrong email address", slog.String("email", req.Email), slog.String("error", err.Error()))
		randomWait(1, 4)
		apihelpers.ErrorResponse(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if umUtils.HasMoreAttemptsRecently(user.Account.FailedLoginAttempts, allowedPasswordAttempts, loginFailedAttemptWindow) {
		slog.Warn("login attempt with too many failed attempts", slog.String("email", req.Email))
		if err := h.userDBConn.SaveFailedLoginAttempt(user.ID.Hex()); err != nil {
			slog.Error("failed to save failed login attempt", slog.String("error", err.Error()))
		}
		randomWait(1, 4)
		apihelpers.ErrorResponse(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	match, err := pwhash.ComparePasswordWithHash(user.Account.Password, req.Password)
	if err != nil || !match {
		if err == nil {
			err = errors.New("passwords do not match")
		}
		slog.Warn("login attempt with wrong password", slog.String("email", req.Email), slog.String("error", err.Error()))
		if err := h.userDBConn.SaveFailedLoginAttempt(user.ID.Hex()); err != nil {
			slog.Error("failed to save failed login attempt", slog.String("error", err.Error()))
		}
		randomWait(1, 4)
		apihelpers.ErrorResponse(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	tokenResp, err := h.issueTokensForUser(user.ID.Hex(), user.Account.AccountID, user.Account.Role)
	if err != nil {
		slog.Error("failed to issue tokens", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	user.Timestamps.LastLogin = time.Now().Unix()
	user.Account.FailedLoginAttempts = umUtils.RemoveAttemptsOlderThan(user.Account.FailedLoginAttempts, 3600)

	if _, err := h.userDBConn.ReplaceUser(user); err != nil {
		slog.Error("failed to update user", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("login successful", slog.String("subject", user.ID.Hex()))
	apihelpers.SuccessResponse(c, http.StatusOK, tokenResp)
}

type RenewTokenReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *HttpEndpoints) renewToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req RenewTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// check if user still exists
	user, err := h.userDBConn.GetUser(token.Subject)
	if err != nil {
		slog.Warn("user not found", slog.String("subject", token.Subject), slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusUnauthorized, "invalid token")
		return
	}

	newRenewToken, err := umUtils.GenerateUniqueTokenString()
	if err != nil {
		slog.Error("failed to generate renew token", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	rt, err := h.userDBConn.FindAndUpdateRenewToken(token.Subject, req.RefreshToken, newRenewToken)
	if err != nil {
		slog.Warn("renew token not found or expired", slog.String("subject", token.Subject), slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	if rt.NextToken == "" {
		// first use of this refresh token
		err = h.userDBConn.CreateRenewToken(token.Subject, newRenewToken, 0, token.SessionID)
		if err != nil {
			slog.Error("failed to save renew token", slog.String("error", err.Error()))
			apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
			return
		}
	} else {
		// inside the grace period, hand out the same successor token
		newRenewToken = rt.NextToken
	}

	newJwt, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		user.ID.Hex(),
		user.Account.AccountID,
		user.Account.Role,
		token.SessionID,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("token renewed", slog.String("subject", user.ID.Hex()))
	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{
		"accessToken":  newJwt,
		"refreshToken": newRenewToken,
		"expiresIn":    h.tokenExpiresIn.Seconds(),
	})
}

func (h *HttpEndpoints) validateToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	// check if user still exists
	if _, err := h.userDBConn.GetUser(token.Subject); err != nil {
		slog.Warn("user not found", slog.String("subject", token.Subject), slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusUnauthorized, "invalid token")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{"tokenInfos": token})
}

func (h *HttpEndpoints) logout(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	tokenString := c.MustGet("token").(string)

	// logout always succeeds from the client's point of view, backend
	// cleanup failures are only logged
	if err := h.userDBConn.DeleteRenewTokensForUser(token.Subject); err != nil {
		slog.Error("failed to delete renew tokens during logout", slog.String("error", err.Error()))
	}

	err := h.globalInfosDBConn.AddBlockedJwt(
		tokenString,
		token.ExpiresAt.Time,
	)
	if err != nil {
		slog.Error("failed to add blocked JWT", slog.String("error", err.Error()))
	}

	slog.Info("user logged out", slog.String("subject", token.Subject))
	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{"message": "logout successful"})
}

func (h *HttpEndpoints) issueTokensForUser(userID string, email string, role string) (gin.H, error) {
	sessionID := uuid.NewString()

	accessToken, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		userID,
		email,
		role,
		sessionID,
		h.tokenSignKey,
	)
	if err != nil {
		return nil, err
	}

	renewToken, err := umUtils.GenerateUniqueTokenString()
	if err != nil {
		return nil, err
	}

	if err := h.userDBConn.CreateRenewToken(userID, renewToken, 0, sessionID); err != nil {
		return nil, err
	}

	return gin.H{
		"accessToken":  accessToken,
		"refreshToken": renewToken,
		"expiresIn":    h.tokenExpiresIn.Seconds(),
		"role":         role,
	}, nil
}
