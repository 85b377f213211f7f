package study

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	studyTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/study/types"
)

// SessionWithStudy is the session enriched with a denormalized study summary
// for the participant facing API.
type SessionWithStudy struct {
	studyTypes.StudySession
	Study studyTypes.StudySummary `json:"study"`
}

// OnStartSession starts the participant's run of a study. It requires an
// accepted application for the (studyKey, participantID) pair. Creation is
// idempotent: if a session already exists for the pair, it is returned
// unchanged and created is false.
func OnStartSession(studyKey string, participantID string) (session studyTypes.StudySession, created bool, err error) {
	if studyKey == "" {
		return session, false, ErrStudyKeyRequired
	}

	application, err := studyDBService.GetAcceptedApplication(studyKey, participantID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return session, false, ErrNoAcceptedApplication
		}
		return session, false, err
	}

	studyInfo, err := studyDBService.GetStudy(studyKey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return session, false, ErrNotFound
		}
		return session, false, err
	}

	now := time.Now()
	candidate := studyTypes.StudySession{
		SessionID:         generateSessionID(studyKey, participantID, now),
		StudyKey:          studyKey,
		ParticipantID:     participantID,
		ApplicationID:     application.ID.Hex(),
		Status:            studyTypes.SESSION_STATUS_ACTIVE,
		StartedAt:         now.Unix(),
		UpdatedAt:         now.Unix(),
		Metadata:          map[string]interface{}{},
		RecordingSettings: studyInfo.Configs.Recording,
	}

	session, err = studyDBService.CreateSessionIfNotExists(candidate)
	if err != nil {
		return session, false, err
	}

	created = session.SessionID == candidate.SessionID
	if created {
		slog.Info("study session started", slog.String("studyKey", studyKey), slog.String("participantID", participantID), slog.String("sessionID", session.SessionID))
	}
	return session, created, nil
}

// OnGetSession fetches a session owned by the participant, together with the
// study summary. A session of another participant and a missing parent study
// both surface as not found, so no existence information leaks.
func OnGetSession(sessionID string, participantID string) (SessionWithStudy, error) {
	session, err := studyDBService.GetSessionForParticipant(sessionID, participantID)
	if err != nil {
		return SessionWithStudy{}, ErrNotFound
	}

	studyInfo, err := studyDBService.GetStudy(session.StudyKey)
	if err != nil {
		return SessionWithStudy{}, ErrNotFound
	}

	return SessionWithStudy{
		StudySession: session,
		Study:        studyInfo.Summary(),
	}, nil
}

// OnUpdateSessionProgress overwrites the session metadata wholesale (last
// write wins, no merge semantics) while the session is active.
func OnUpdateSessionProgress(sessionID string, participantID string, metadata map[string]interface{}) (studyTypes.StudySession, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	session, err := studyDBService.UpdateSessionMetadata(sessionID, participantID, metadata)
	if err != nil {
		return studyTypes.StudySession{}, ErrNotFound
	}
	return session, nil
}

// OnCompleteSession marks the session as completed with the submitted final
// state. completedAt is written exactly once; completing an already completed
// session returns it unchanged.
func OnCompleteSession(sessionID string, participantID string, finalMetadata map[string]interface{}) (studyTypes.StudySession, error) {
	if finalMetadata == nil {
		finalMetadata = map[string]interface{}{}
	}

	session, err := studyDBService.CompleteSession(sessionID, participantID, finalMetadata)
	if err == nil {
		slog.Info("study session completed", slog.String("sessionID", session.SessionID), slog.String("participantID", participantID))
		return session, nil
	}

	// no active session matched: either already completed (idempotent) or not owned/absent
	existing, getErr := studyDBService.GetSessionForParticipant(sessionID, participantID)
	if getErr != nil {
		return studyTypes.StudySession{}, ErrNotFound
	}
	if existing.Status == studyTypes.SESSION_STATUS_COMPLETED {
		return existing, nil
	}
	return studyTypes.StudySession{}, err
}
