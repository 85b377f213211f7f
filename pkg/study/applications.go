package study

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	studydb "github.com/fieldwork-labs/fieldwork-backend/pkg/db/study"
	pc "github.com/fieldwork-labs/fieldwork-backend/pkg/permission-checker"
	studyTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/study/types"
)

// OnSubmitApplication creates a new pending application for the participant.
// Eligibility must be confirmed at the boundary; the study must exist and be
// open for applications.
func OnSubmitApplication(
	studyKey string,
	participantID string,
	eligibilityConfirmed bool,
	screeningResponses map[string]string,
) (studyTypes.Application, error) {
	if studyKey == "" {
		return studyTypes.Application{}, ErrStudyKeyRequired
	}
	if !eligibilityConfirmed {
		return studyTypes.Application{}, ErrEligibilityNotConfirmed
	}

	studyInfo, err := studyDBService.GetStudy(studyKey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return studyTypes.Application{}, ErrNotFound
		}
		return studyTypes.Application{}, err
	}
	if studyInfo.Status != studyTypes.STUDY_STATUS_ACTIVE {
		return studyTypes.Application{}, ErrStudyNotActive
	}

	if screeningResponses == nil {
		screeningResponses = map[string]string{}
	}

	application := studyTypes.Application{
		StudyKey:             studyKey,
		ParticipantID:        participantID,
		Status:               studyTypes.APPLICATION_STATUS_PENDING,
		ScreeningResponses:   screeningResponses,
		EligibilityConfirmed: eligibilityConfirmed,
	}

	application, err = studyDBService.CreateApplication(application)
	if err != nil {
		return studyTypes.Application{}, err
	}

	slog.Info("application submitted", slog.String("studyKey", studyKey), slog.String("participantID", participantID), slog.String("applicationID", application.ID.Hex()))
	return application, nil
}

// OnGetApplicationsForStudy returns the review queue of a study, oldest
// submission first. Only the owning researcher or an admin may list it.
func OnGetApplicationsForStudy(
	studyKey string,
	requesterID string,
	requesterRole string,
	statusFilter string,
	page int64,
	limit int64,
) ([]studyTypes.Application, *studydb.PaginationInfos, error) {
	studyInfo, err := studyDBService.GetStudy(studyKey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if !pc.CanAccessResource(requesterID, requesterRole, studyInfo.ResearcherID) {
		return nil, nil, ErrForbidden
	}

	return studyDBService.GetApplications(studyKey, statusFilter, page, limit)
}

// OnReviewApplication applies a researcher decision. Re-reviewing an already
// reviewed application overwrites the earlier decision (last write wins);
// withdrawn applications are out of the reviewer's control.
func OnReviewApplication(
	applicationID string,
	requesterID string,
	requesterRole string,
	decision string,
	notes string,
) (studyTypes.Application, error) {
	if !studyTypes.IsValidReviewDecision(decision) {
		return studyTypes.Application{}, ErrInvalidReviewDecision
	}

	application, err := studyDBService.GetApplicationByID(applicationID)
	if err != nil {
		return studyTypes.Application{}, ErrNotFound
	}

	studyInfo, err := studyDBService.GetStudy(application.StudyKey)
	if err != nil {
		return studyTypes.Application{}, ErrNotFound
	}

	if !pc.CanAccessResource(requesterID, requesterRole, studyInfo.ResearcherID) {
		return studyTypes.Application{}, ErrForbidden
	}

	if !application.CanTransitionTo(decision) {
		return studyTypes.Application{}, ErrWrongStatus
	}

	application, err = studyDBService.UpdateApplicationReview(applicationID, decision, notes, requesterID)
	if err != nil {
		return studyTypes.Application{}, err
	}

	slog.Info("application reviewed", slog.String("applicationID", applicationID), slog.String("decision", decision), slog.String("reviewedBy", requesterID))
	return application, nil
}

// OnWithdrawApplication lets a participant pull back their own pending
// application. To avoid leaking other participants' applications, a foreign
// application id behaves like an unknown one.
func OnWithdrawApplication(applicationID string, participantID string) (studyTypes.Application, error) {
	application, err := studyDBService.GetApplicationByID(applicationID)
	if err != nil {
		return studyTypes.Application{}, ErrNotFound
	}
	if application.ParticipantID != participantID {
		return studyTypes.Application{}, ErrNotFound
	}

	if !application.CanTransitionTo(studyTypes.APPLICATION_STATUS_WITHDRAWN) {
		return studyTypes.Application{}, ErrWrongStatus
	}

	return studyDBService.UpdateApplicationStatus(applicationID, studyTypes.APPLICATION_STATUS_WITHDRAWN)
}
