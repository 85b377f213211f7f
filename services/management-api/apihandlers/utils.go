package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers"
	"github.com/fieldwork-labs/fieldwork-backend/pkg/study"
)

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
