package study

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	studyTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/study/types"
)

func (dbService *StudyDBService) CreateIndexForStudySessionsCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "studyKey", Value: 1},
				{Key: "participantID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "sessionID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "participantID", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	}
	_, err := dbService.collectionStudySessions().Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateSessionIfNotExists inserts the session unless one already exists for
// the (studyKey, participantID) pair, in which case the existing document is
// returned unchanged. The operation is a single upsert under the unique index,
// so two concurrent calls cannot produce duplicate sessions.
func (dbService *StudyDBService) CreateSessionIfNotExists(session studyTypes.StudySession) (studyTypes.StudySession, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"studyKey":      session.StudyKey,
		"participantID": session.ParticipantID,
	}
	update := bson.M{"$setOnInsert": session}

	elem := studyTypes.StudySession{}
	err := dbService.collectionStudySessions().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&elem)
	return elem, err
}

// GetSessionForParticipant enforces ownership through the query itself: the
// document must match both the session id and the calling participant.
func (dbService *StudyDBService) GetSessionForParticipant(sessionID string, participantID string) (session studyTypes.StudySession, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID":     sessionID,
		"participantID": participantID,
	}
	err = dbService.collectionStudySessions().FindOne(ctx, filter).Decode(&session)
	return session, err
}

// UpdateSessionMetadata overwrites the metadata of an active session (last write wins).
func (dbService *StudyDBService) UpdateSessionMetadata(sessionID string, participantID string, metadata map[string]interface{}) (session studyTypes.StudySession, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID":     sessionID,
		"participantID": participantID,
		"status":        studyTypes.SESSION_STATUS_ACTIVE,
	}
	update := bson.M{"$set": bson.M{
		"metadata":  metadata,
		"updatedAt": time.Now().Unix(),
	}}

	err = dbService.collectionStudySessions().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&session)
	return session, err
}

// CompleteSession marks an active session as completed. The status guard in
// the filter makes sure completedAt is only ever written once; completing an
// already completed session is a no-op for the caller (ErrNoDocuments).
func (dbService *StudyDBService) CompleteSession(sessionID string, participantID string, finalMetadata map[string]interface{}) (session studyTypes.StudySession, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	filter := bson.M{
		"sessionID":     sessionID,
		"participantID": participantID,
		"status":        studyTypes.SESSION_STATUS_ACTIVE,
	}
	update := bson.M{"$set": bson.M{
		"status":      studyTypes.SESSION_STATUS_COMPLETED,
		"completedAt": now,
		"updatedAt":   now,
		"metadata":    finalMetadata,
	}}

	err = dbService.collectionStudySessions().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&session)
	return session, err
}
