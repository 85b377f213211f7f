package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers"
	mw "github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/fieldwork-labs/fieldwork-backend/pkg/jwt-handling"
	pc "github.com/fieldwork-labs/fieldwork-backend/pkg/permission-checker"
	"github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/pwhash"
	userTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/types"
	umUtils "github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/utils"
)

// Researcher and admin accounts are provisioned here, the participant facing
// signup only ever creates participants.
func (h *HttpEndpoints) AddUserManagementAPI(rg *gin.RouterGroup) {
	usersGroup := rg.Group("/users")
	usersGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn))
	usersGroup.Use(mw.RequireRole(pc.ROLE_ADMIN))
	{
		usersGroup.POST("", mw.RequirePayload(), h.createUser)
	}
}

type CreateUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *HttpEndpoints) createUser(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
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

	if !pc.IsKnownRole(req.Role) {
		slog.Error("unknown role", slog.String("role", req.Role))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "unknown role")
		return
	}

	password, err := pwhash.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now().Unix()
	newUser := userTypes.User{
		Account: userTypes.Account{
			Type:      userTypes.ACCOUNT_TYPE_EMAIL,
			AccountID: req.Email,
			Password:  password,
			Role:      req.Role,
		},
		Timestamps: userTypes.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	id, err := h.userDBConn.AddUser(newUser)
	if err != nil {
		slog.Error("failed to create user", slog.String("error", err.Error()), slog.String("email", req.Email))
		apihelpers.ErrorResponse(c, http.StatusConflict, "could not create user with this email")
		return
	}

	slog.Info("user created", slog.String("userID", id), slog.String("role", req.Role), slog.String("createdBy", token.Subject))
	apihelpers.SuccessResponse(c, http.StatusCreated, gin.H{
		"id":    id,
		"email": req.Email,
		"role":  req.Role,
	})
}
