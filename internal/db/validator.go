package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
)

func (db *Database) UpsertValidator(ctx context.Context, validator *model.ValidatorDocument) error {
	filter := bson.M{"_id": validator.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := db.collection(model.ValidatorCollection).ReplaceOne(ctx, filter, validator, opts)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{
			Key:     fmt.Sprintf("%d", validator.ID),
			Message: "validator operator or escrow already taken",
		}
	}
	return err
}

func (db *Database) GetValidatorByID(ctx context.Context, id uint64) (*model.ValidatorDocument, error) {
	return db.findValidator(ctx, bson.M{"_id": id}, fmt.Sprintf("%d", id))
}

func (db *Database) GetValidatorByOperator(ctx context.Context, operator string) (*model.ValidatorDocument, error) {
	return db.findValidator(ctx, bson.M{"operator": operator}, operator)
}

func (db *Database) findValidator(ctx context.Context, filter bson.M, key string) (*model.ValidatorDocument, error) {
	var validator model.ValidatorDocument
	err := db.collection(model.ValidatorCollection).FindOne(ctx, filter).Decode(&validator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     key,
				Message: "validator not found",
			}
		}
		return nil, err
	}
	return &validator, nil
}

func (db *Database) GetAllValidators(ctx context.Context) ([]*model.ValidatorDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := db.collection(model.ValidatorCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var validators []*model.ValidatorDocument
	if err := cursor.All(ctx, &validators); err != nil {
		return nil, err
	}
	return validators, nil
}

func (db *Database) DeleteValidator(ctx context.Context, id uint64) error {
	res, err := db.collection(model.ValidatorCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{
			Key:     fmt.Sprintf("%d", id),
			Message: "validator not found when deleting",
		}
	}
	return nil
}
