package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	APPLICATION_STATUS_PENDING   = "pending"
	APPLICATION_STATUS_ACCEPTED  = "accepted"
	APPLICATION_STATUS_REJECTED  = "rejected"
	APPLICATION_STATUS_WITHDRAWN = "withdrawn"
)

// Application represents one participant's request to join a study.
// Records are never deleted, the status field is the terminal marker.
type Application struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"applicationID,omitempty"`
	StudyKey             string             `bson:"studyKey" json:"studyKey"`
	ParticipantID        string             `bson:"participantID" json:"participantID"`
	Status               string             `bson:"status" json:"status"`
	ScreeningResponses   map[string]string  `bson:"screeningResponses" json:"screeningResponses"`
	EligibilityConfirmed bool               `bson:"eligibilityConfirmed" json:"eligibilityConfirmed"`
	AppliedAt            int64              `bson:"appliedAt" json:"appliedAt"`
	UpdatedAt            int64              `bson:"updatedAt" json:"updatedAt"`
	ReviewedAt           int64              `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy           string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

func IsValidReviewDecision(decision string) bool {
	return decision == APPLICATION_STATUS_ACCEPTED || decision == APPLICATION_STATUS_REJECTED
}

// CanTransitionTo encodes the application state machine:
// pending -> accepted | rejected | withdrawn,
// accepted <-> rejected (a reviewer may overwrite an earlier decision),
// withdrawn is terminal.
func (a Application) CanTransitionTo(target string) bool {
	switch a.Status {
	case APPLICATION_STATUS_PENDING:
		return target == APPLICATION_STATUS_ACCEPTED ||
			target == APPLICATION_STATUS_REJECTED ||
			target == APPLICATION_STATUS_WITHDRAWN
	case APPLICATION_STATUS_ACCEPTED, APPLICATION_STATUS_REJECTED:
		return target == APPLICATION_STATUS_ACCEPTED || target == APPLICATION_STATUS_REJECTED
	default:
		return false
	}
}
