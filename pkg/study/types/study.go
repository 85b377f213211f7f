package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	STUDY_STATUS_ACTIVE   = "active"
	STUDY_STATUS_INACTIVE = "inactive"
)

type Study struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key          string             `bson:"key" json:"key"`
	ResearcherID string             `bson:"researcherID" json:"researcherID"`
	Status       string             `bson:"status" json:"status"`
	Props        StudyProps         `bson:"props" json:"props"`
	Configs      StudyConfigs       `bson:"configs" json:"configs"`
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
}

type StudyProps struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

type StudyConfigs struct {
	Recording RecordingSettings `bson:"recording" json:"recording"`
}

// RecordingSettings is copied onto a session when it starts, so later changes
// to the study configs don't affect sessions already running.
type RecordingSettings struct {
	AudioEnabled       bool `bson:"audioEnabled" json:"audioEnabled"`
	ScreenEnabled      bool `bson:"screenEnabled" json:"screenEnabled"`
	MaxDurationMinutes int  `bson:"maxDurationMinutes" json:"maxDurationMinutes"`
}

// StudySummary is the denormalized study representation embedded into session responses.
type StudySummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (s Study) Summary() StudySummary {
	return StudySummary{
		Key:         s.Key,
		Name:        s.Props.Name,
		Description: s.Props.Description,
		Status:      s.Status,
	}
}
