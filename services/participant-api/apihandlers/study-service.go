package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers"
	mw "github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/fieldwork-labs/fieldwork-backend/pkg/jwt-handling"
	pc "github.com/fieldwork-labs/fieldwork-backend/pkg/permission-checker"
	"github.com/fieldwork-labs/fieldwork-backend/pkg/study"
)

func (h *HttpEndpoints) AddStudyAPI(rg *gin.RouterGroup) {
	applicationsGroup := rg.Group("/applications")
	applicationsGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn))
	applicationsGroup.Use(mw.RequireRole(pc.ROLE_PARTICIPANT))
	{
		applicationsGroup.POST("", mw.RequirePayload(), h.submitApplication)
		applicationsGroup.PATCH("/:applicationID/withdraw", h.withdrawApplication)
	}

	sessionsGroup := rg.Group("/study-sessions")
	sessionsGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn))
	sessionsGroup.Use(mw.RequireRole(pc.ROLE_PARTICIPANT))
	{
		sessionsGroup.POST("", mw.RequirePayload(), h.startStudySession)
		sessionsGroup.GET("/:sessionID", h.getStudySession)
		sessionsGroup.PATCH("/:sessionID", mw.RequirePayload(), h.updateStudySessionProgress)
		sessionsGroup.POST("/:sessionID/complete", h.completeStudySession)
	}
}

type SubmitApplicationReq struct {
	StudyKey             string            `json:"studyKey"`
	EligibilityConfirmed bool              `json:"eligibilityConfirmed"`
	ScreeningResponses   map[string]string `json:"screeningResponses"`
}

func (h *HttpEndpoints) submitApplication(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req SubmitApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	application, err := study.OnSubmitApplication(
		req.StudyKey,
		token.Subject,
		req.EligibilityConfirmed,
		req.ScreeningResponses,
	)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to submit application")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusCreated, application)
}

func (h *HttpEndpoints) withdrawApplication(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	applicationID := c.Param("applicationID")

	application, err := study.OnWithdrawApplication(applicationID, token.Subject)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to withdraw application")
		return
	}

	slog.Info("application withdrawn", slog.String("applicationID", applicationID), slog.String("participantID", token.Subject))
	apihelpers.SuccessResponse(c, http.StatusOK, application)
}

type StartStudySessionReq struct {
	StudyKey string `json:"studyKey"`
}

func (h *HttpEndpoints) startStudySession(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req StartStudySessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session, created, err := study.OnStartSession(req.StudyKey, token.Subject)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to start study session")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	apihelpers.SuccessResponse(c, status, session)
}

func (h *HttpEndpoints) getStudySession(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	sessionID := c.Param("sessionID")

	session, err := study.OnGetSession(sessionID, token.Subject)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to get study session")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, session)
}

func (h *HttpEndpoints) updateStudySessionProgress(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	sessionID := c.Param("sessionID")

	// progress payloads are client defined, any JSON object is accepted and
	// stored as is (last write wins)
	var metadata map[string]interface{}
	if err := c.ShouldBindJSON(&metadata); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := study.OnUpdateSessionProgress(sessionID, token.Subject, metadata)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to update study session")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, session)
}

func (h *HttpEndpoints) completeStudySession(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	sessionID := c.Param("sessionID")

	var finalData map[string]interface{}
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&finalData); err != nil {
			slog.Error("failed to bind request", slog.String("error", err.Error()))
			apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	session, err := study.OnCompleteSession(sessionID, token.Subject, finalData)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to complete study session")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, session)
}

// handleStudyServiceError maps the study service sentinels onto HTTP statuses;
// unknown errors stay generic so no internals leak.
func (h *HttpEndpoints) handleStudyServiceError(c *gin.Context, err error, logMsg string) {
	slog.Warn(logMsg, slog.String("error", err.Error()))

	switch {
	case errors.Is(err, study.ErrStudyKeyRequired),
		errors.Is(err, study.ErrEligibilityNotConfirmed),
		errors.Is(err, study.ErrInvalidReviewDecision),
		errors.Is(err, study.ErrStudyNotActive):
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, study.ErrForbidden),
		errors.Is(err, study.ErrNoAcceptedApplication):
		apihelpers.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, study.ErrNotFound):
		apihelpers.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, study.ErrWrongStatus):
		apihelpers.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
