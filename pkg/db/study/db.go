package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldwork-labs/fieldwork-backend/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_STUDY_INFOS    = "study-infos"
	COLLECTION_NAME_APPLICATIONS   = "applications"
	COLLECTION_NAME_STUDY_SESSIONS = "study-sessions"
)

type StudyDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewStudyDBService(configs db.DBConfig) (*StudyDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	studyDBSc := &StudyDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := studyDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for study DB", slog.String("error", err.Error()))
		}
	}

	return studyDBSc, nil
}

func (dbService *StudyDBService) getDBName() string {
	return dbService.DBNamePrefix + "studyDB"
}

func (dbService *StudyDBService) collectionStudyInfos() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_STUDY_INFOS)
}

func (dbService *StudyDBService) collectionApplications() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_APPLICATIONS)
}

func (dbService *StudyDBService) collectionStudySessions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_STUDY_SESSIONS)
}

func (dbService *StudyDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *StudyDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for study DB")

	if err := dbService.createIndexForStudyInfosCollection(); err != nil {
		slog.Error("Error creating index for study infos", slog.String("error", err.Error()))
	}

	if err := dbService.CreateIndexForApplicationsCollection(); err != nil {
		slog.Error("Error creating index for applications", slog.String("error", err.Error()))
	}

	if err := dbService.CreateIndexForStudySessionsCollection(); err != nil {
		slog.Error("Error creating index for study sessions", slog.String("error", err.Error()))
	}

	return nil
}
