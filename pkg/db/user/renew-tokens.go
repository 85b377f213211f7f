package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RENEW_TOKEN_GRACE_PERIOD     = 30 // seconds
	RENEW_TOKEN_DEFAULT_LIFETIME = 60 * 60 * 24 * 90
)

type RenewToken struct {
	UserID     string `bson:"userID"`
	RenewToken string `bson:"renewToken"`
	ExpiresAt  int64  `bson:"expiresAt"`
	SessionID  string `bson:"sessionID"`
	NextToken  string `bson:"nextToken"`
}

func (dbService *UserDBService) CreateIndexForRenewTokens() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionRenewTokens().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "userID", Value: 1},
					{Key: "renewToken", Value: 1},
					{Key: "expiresAt", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "renewToken", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
	)
	return err
}

func (dbService *UserDBService) CreateRenewToken(userID string, renewToken string, lifetime int64, sessionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if lifetime <= 0 {
		lifetime = RENEW_TOKEN_DEFAULT_LIFETIME
	}

	rt := RenewToken{
		UserID:     userID,
		RenewToken: renewToken,
		ExpiresAt:  time.Now().Unix() + lifetime,
		SessionID:  sessionID,
	}
	_, err := dbService.collectionRenewTokens().InsertOne(ctx, rt)
	return err
}

// FindAndUpdateRenewToken looks up a not yet expired renew token of the user
// and links the follow up token, so a token reuse inside the grace period
// hands out the same successor.
func (dbService *UserDBService) FindAndUpdateRenewToken(userID string, renewToken string, nextToken string) (rt RenewToken, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"userID":     userID,
		"renewToken": renewToken,
		"expiresAt":  bson.M{"$gt": time.Now().Unix()},
	}
	update := bson.M{"$set": bson.M{"nextToken": nextToken}}

	err = dbService.collectionRenewTokens().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&rt)
	return rt, err
}

func (dbService *UserDBService) DeleteRenewTokensForUser(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"userID": userID}
	_, err := dbService.collectionRenewTokens().DeleteMany(ctx, filter)
	return err
}

func (dbService *UserDBService) DeleteExpiredRenewTokens() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"expiresAt": bson.M{"$lt": time.Now().Unix() - RENEW_TOKEN_GRACE_PERIOD}}
	res, err := dbService.collectionRenewTokens().DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
