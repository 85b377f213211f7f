package user

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/fieldwork-labs/fieldwork-backend/pkg/user-management/types"
)

func (dbService *UserDBService) CreateIndexForUsers() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionUsers().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "account.accountID", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "account.role", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "timestamps.createdAt", Value: 1},
				},
			},
		},
	)
	return err
}

func (dbService *UserDBService) AddUser(user userTypes.User) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	user.ID = primitive.NilObjectID
	user.Timestamps.CreatedAt = time.Now().Unix()

	res, err := dbService.collectionUsers().InsertOne(ctx, user)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (dbService *UserDBService) GetUser(userID string) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return userTypes.User{}, err
	}

	var user userTypes.User
	filter := bson.M{"_id": _id}
	err = dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *UserDBService) GetUserByAccountID(accountID string) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var user userTypes.User
	filter := bson.M{"account.accountID": accountID}
	err := dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *UserDBService) ReplaceUser(user userTypes.User) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": user.ID}

	rd := options.After
	opts := options.FindOneAndReplaceOptions{
		ReturnDocument: &rd,
	}

	elem := userTypes.User{}
	err := dbService.collectionUsers().FindOneAndReplace(ctx, filter, user, &opts).Decode(&elem)
	return elem, err
}

func (dbService *UserDBService) SaveFailedLoginAttempt(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": _id}
	update := bson.M{"$push": bson.M{"account.failedLoginAttempts": time.Now().Unix()}}
	res, err := dbService.collectionUsers().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}
