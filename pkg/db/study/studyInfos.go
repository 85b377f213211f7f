package study

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	studyTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/study/types"
)

func (dbService *StudyDBService) createIndexForStudyInfosCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionStudyInfos().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "key", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	return err
}

func (dbService *StudyDBService) CreateStudy(study studyTypes.Study) (studyTypes.Study, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	study.CreatedAt = time.Now().Unix()

	res, err := dbService.collectionStudyInfos().InsertOne(ctx, study)
	if err != nil {
		return study, err
	}
	study.ID = res.InsertedID.(primitive.ObjectID)
	return study, nil
}

// get studies, optionally filtered by status
func (dbService *StudyDBService) GetStudies(statusFilter string) (studies []studyTypes.Study, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}

	cursor, err := dbService.collectionStudyInfos().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &studies)
	if err != nil {
		return nil, err
	}

	return studies, nil
}

// get study by study key
func (dbService *StudyDBService) GetStudy(studyKey string) (study studyTypes.Study, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": studyKey}
	err = dbService.collectionStudyInfos().FindOne(ctx, filter).Decode(&study)
	return study, err
}

func (dbService *StudyDBService) UpdateStudyStatus(studyKey string, status string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": studyKey}
	update := bson.M{"$set": bson.M{"status": status}}
	res, err := dbService.collectionStudyInfos().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// delete study by study key
func (dbService *StudyDBService) DeleteStudy(studyKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": studyKey}
	res, err := dbService.collectionStudyInfos().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	slog.Info("study deleted", slog.String("studyKey", studyKey))
	return nil
}
