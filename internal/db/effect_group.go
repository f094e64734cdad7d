package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
)

func (db *Database) SaveEffectGroup(ctx context.Context, group *model.EffectGroupDocument) error {
	_, err := db.collection(model.EffectGroupCollection).InsertOne(ctx, group)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     group.ID,
						Message: "effect group already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

// GetEffectGroups returns the latest effect groups, optionally filtered by
// operation
func (db *Database) GetEffectGroups(
	ctx context.Context, operation string, limit int64,
) ([]*model.EffectGroupDocument, error) {
	filter := bson.M{}
	if operation != "" {
		filter["operation"] = operation
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := db.collection(model.EffectGroupCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*model.EffectGroupDocument
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
