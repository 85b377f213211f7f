package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers"
	mw "github.com/fieldwork-labs/fieldwork-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/fieldwork-labs/fieldwork-backend/pkg/jwt-handling"
	pc "github.com/fieldwork-labs/fieldwork-backend/pkg/permission-checker"
	"github.com/fieldwork-labs/fieldwork-backend/pkg/study"
	studyTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/study/types"
	"github.com/fieldwork-labs/fieldwork-backend/pkg/utils"
)

func (h *HttpEndpoints) AddStudyManagementAPI(rg *gin.RouterGroup) {
	studiesGroup := rg.Group("/studies")
	studiesGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn))
	studiesGroup.Use(mw.RequireRole(pc.ROLE_RESEARCHER))
	{
		studiesGroup.POST("", mw.RequirePayload(), h.createStudy)
		studiesGroup.GET("", h.getStudies)
		studiesGroup.GET("/:studyKey", h.getStudy)
		studiesGroup.PATCH("/:studyKey/status", mw.RequirePayload(), h.updateStudyStatus)
		studiesGroup.DELETE("/:studyKey", mw.RequireRole(pc.ROLE_ADMIN), h.deleteStudy)

		studiesGroup.GET("/:studyKey/applications", h.getStudyApplications)
	}

	applicationsGroup := rg.Group("/applications")
	applicationsGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey, h.globalInfosDBConn))
	applicationsGroup.Use(mw.RequireRole(pc.ROLE_RESEARCHER))
	{
		applicationsGroup.PATCH("/:applicationID/review", mw.RequirePayload(), h.reviewApplication)
	}
}

type CreateStudyReq struct {
	Key     string                  `json:"key"`
	Props   studyTypes.StudyProps   `json:"props"`
	Configs studyTypes.StudyConfigs `json:"configs"`
	Status  string                  `json:"status"`
}

func (h *HttpEndpoints) createStudy(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req CreateStudyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Key == "" || !utils.IsURLSafe(req.Key) {
		slog.Error("invalid study key", slog.String("studyKey", req.Key))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "study key must be a non-empty URL safe string")
		return
	}
	if req.Props.Name == "" {
		slog.Error("study name missing", slog.String("studyKey", req.Key))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "study name is required")
		return
	}

	status := req.Status
	if status == "" {
		status = studyTypes.STUDY_STATUS_ACTIVE
	}
	if status != studyTypes.STUDY_STATUS_ACTIVE && status != studyTypes.STUDY_STATUS_INACTIVE {
		slog.Error("invalid study status", slog.String("status", status))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "invalid study status")
		return
	}

	if _, err := h.studyDBConn.GetStudy(req.Key); err == nil {
		slog.Warn("study key already in use", slog.String("studyKey", req.Key))
		apihelpers.ErrorResponse(c, http.StatusConflict, "study key already in use")
		return
	}

	newStudy := studyTypes.Study{
		Key:          req.Key,
		ResearcherID: token.Subject,
		Status:       status,
		Props:        req.Props,
		Configs:      req.Configs,
	}

	createdStudy, err := h.studyDBConn.CreateStudy(newStudy)
	if err != nil {
		slog.Error("failed to create study", slog.String("error", err.Error()), slog.String("studyKey", req.Key))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("study created", slog.String("studyKey", createdStudy.Key), slog.String("researcherID", token.Subject))
	apihelpers.SuccessResponse(c, http.StatusCreated, createdStudy)
}

func (h *HttpEndpoints) getStudies(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	statusFilter := c.DefaultQuery("status", "")

	studies, err := h.studyDBConn.GetStudies(statusFilter)
	if err != nil {
		slog.Error("failed to get studies", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	// researchers only see the studies they own
	visible := make([]studyTypes.Study, 0, len(studies))
	for _, s := range studies {
		if pc.CanAccessResource(token.Subject, token.Role, s.ResearcherID) {
			visible = append(visible, s)
		}
	}

	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{"studies": visible})
}

func (h *HttpEndpoints) getStudy(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	studyKey := c.Param("studyKey")

	studyInfo, err := h.studyDBConn.GetStudy(studyKey)
	if err != nil {
		slog.Warn("study not found", slog.String("studyKey", studyKey), slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusNotFound, "study not found")
		return
	}

	if !pc.CanAccessResource(token.Subject, token.Role, studyInfo.ResearcherID) {
		slog.Warn("access to study denied", slog.String("studyKey", studyKey), slog.String("userID", token.Subject))
		apihelpers.ErrorResponse(c, http.StatusForbidden, "not allowed to access this study")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, studyInfo)
}

type UpdateStudyStatusReq struct {
	Status string `json:"status"`
}

func (h *HttpEndpoints) updateStudyStatus(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	studyKey := c.Param("studyKey")

	var req UpdateStudyStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Status != studyTypes.STUDY_STATUS_ACTIVE && req.Status != studyTypes.STUDY_STATUS_INACTIVE {
		slog.Error("invalid study status", slog.String("status", req.Status))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, "invalid study status")
		return
	}

	studyInfo, err := h.studyDBConn.GetStudy(studyKey)
	if err != nil {
		slog.Warn("study not found", slog.String("studyKey", studyKey), slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusNotFound, "study not found")
		return
	}

	if !pc.CanAccessResource(token.Subject, token.Role, studyInfo.ResearcherID) {
		slog.Warn("access to study denied", slog.String("studyKey", studyKey), slog.String("userID", token.Subject))
		apihelpers.ErrorResponse(c, http.StatusForbidden, "not allowed to access this study")
		return
	}

	if err := h.studyDBConn.UpdateStudyStatus(studyKey, req.Status); err != nil {
		slog.Error("failed to update study status", slog.String("error", err.Error()), slog.String("studyKey", studyKey))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("study status updated", slog.String("studyKey", studyKey), slog.String("status", req.Status))
	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{"key": studyKey, "status": req.Status})
}

func (h *HttpEndpoints) deleteStudy(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	studyKey := c.Param("studyKey")

	if err := h.studyDBConn.DeleteStudy(studyKey); err != nil {
		if err == mongo.ErrNoDocuments {
			apihelpers.ErrorResponse(c, http.StatusNotFound, "study not found")
			return
		}
		slog.Error("failed to delete study", slog.String("error", err.Error()), slog.String("studyKey", studyKey))
		apihelpers.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("study deleted", slog.String("studyKey", studyKey), slog.String("deletedBy", token.Subject))
	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{"key": studyKey})
}

func (h *HttpEndpoints) getStudyApplications(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	studyKey := c.Param("studyKey")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	applications, paginationInfo, err := study.OnGetApplicationsForStudy(
		studyKey,
		token.Subject,
		token.Role,
		query.Status,
		query.Page,
		query.Limit,
	)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to list applications")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, gin.H{
		"applications": applications,
		"pagination":   apihelpers.PaginationRespFromInfos(paginationInfo),
	})
}

type ReviewApplicationReq struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

func (h *HttpEndpoints) reviewApplication(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	applicationID := c.Param("applicationID")

	var req ReviewApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		apihelpers.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	application, err := study.OnReviewApplication(
		applicationID,
		token.Subject,
		token.Role,
		req.Decision,
		req.Notes,
	)
	if err != nil {
		h.handleStudyServiceError(c, err, "failed to review application")
		return
	}

	apihelpers.SuccessResponse(c, http.StatusOK, application)
}
