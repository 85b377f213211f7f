package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SESSION_STATUS_ACTIVE    = "active"
	SESSION_STATUS_COMPLETED = "completed"
)

// StudySession represents one participant's run of a study. At most one
// session exists per (studyKey, participantID) pair, enforced by a unique
// index in the study DB.
type StudySession struct {
	ID                primitive.ObjectID     `bson:"_id,omitempty" json:"-"`
	SessionID         string                 `bson:"sessionID" json:"sessionID"`
	StudyKey          string                 `bson:"studyKey" json:"studyKey"`
	ParticipantID     string                 `bson:"participantID" json:"participantID"`
	ApplicationID     string                 `bson:"applicationID" json:"applicationID"`
	Status            string                 `bson:"status" json:"status"`
	StartedAt         int64                  `bson:"startedAt" json:"startedAt"`
	CompletedAt       int64                  `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	UpdatedAt         int64                  `bson:"updatedAt" json:"updatedAt"`
	Metadata          map[string]interface{} `bson:"metadata" json:"metadata"`
	RecordingSettings RecordingSettings      `bson:"recordingSettings" json:"recordingSettings"`
}
