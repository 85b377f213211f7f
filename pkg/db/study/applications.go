package study

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	studyTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/study/types"
)

func (dbService *StudyDBService) CreateIndexForApplicationsCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "studyKey", Value: 1},
				{Key: "appliedAt", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "studyKey", Value: 1},
				{Key: "participantID", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	}
	_, err := dbService.collectionApplications().Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *StudyDBService) CreateApplication(application studyTypes.Application) (studyTypes.Application, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	application.AppliedAt = now
	application.UpdatedAt = now

	res, err := dbService.collectionApplications().InsertOne(ctx, application)
	if err != nil {
		return application, err
	}
	application.ID = res.InsertedID.(primitive.ObjectID)
	return application, nil
}

func (dbService *StudyDBService) GetApplicationByID(applicationID string) (application studyTypes.Application, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return application, err
	}

	filter := bson.M{"_id": _id}
	err = dbService.collectionApplications().FindOne(ctx, filter).Decode(&application)
	return application, err
}

// get paginated set of applications for a study, ordered by appliedAt
// ascending so the oldest submission is reviewed first
func (dbService *StudyDBService) GetApplications(studyKey string, statusFilter string, page int64, limit int64) (applications []studyTypes.Application, paginationInfo *PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"studyKey": studyKey}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}

	count, err := dbService.GetApplicationCount(filter)
	if err != nil {
		return applications, paginationInfo, err
	}

	paginationInfo = prepPaginationInfos(
		count,
		page,
		limit,
	)

	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find()
	opts.SetSort(bson.M{"appliedAt": 1})
	opts.SetSkip(skip)
	opts.SetLimit(paginationInfo.PageSize)

	cursor, err := dbService.collectionApplications().Find(ctx, filter, opts)
	if err != nil {
		return applications, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &applications)
	return applications, paginationInfo, err
}

func (dbService *StudyDBService) GetApplicationCount(filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionApplications().CountDocuments(ctx, filter)
}

// get the accepted application for a (studyKey, participantID) pair, used as
// the session creation gate
func (dbService *StudyDBService) GetAcceptedApplication(studyKey string, participantID string) (application studyTypes.Application, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"studyKey":      studyKey,
		"participantID": participantID,
		"status":        studyTypes.APPLICATION_STATUS_ACCEPTED,
	}
	err = dbService.collectionApplications().FindOne(ctx, filter).Decode(&application)
	return application, err
}

// UpdateApplicationReview sets the review outcome and returns the updated document.
func (dbService *StudyDBService) UpdateApplicationReview(applicationID string, status string, notes string, reviewedBy string) (application studyTypes.Application, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return application, err
	}

	now := time.Now().Unix()
	filter := bson.M{"_id": _id}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"notes":      notes,
		"reviewedBy": reviewedBy,
		"reviewedAt": now,
		"updatedAt":  now,
	}}

	err = dbService.collectionApplications().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&application)
	return application, err
}

// UpdateApplicationStatus changes only the status marker (participant withdrawal).
func (dbService *StudyDBService) UpdateApplicationStatus(applicationID string, status string) (application studyTypes.Application, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return application, err
	}

	filter := bson.M{"_id": _id}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().Unix(),
	}}

	err = dbService.collectionApplications().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&application)
	return application, err
}
