package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
)

func (db *Database) GetProtocolState(ctx context.Context) (*model.ProtocolStateDocument, error) {
	var state model.ProtocolStateDocument
	err := db.collection(model.ProtocolStateCollection).
		FindOne(ctx, bson.M{"_id": model.ProtocolStateID}).
		Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.ProtocolStateID,
				Message: "protocol state not found",
			}
		}
		return nil, err
	}
	return &state, nil
}

func (db *Database) SaveProtocolState(ctx context.Context, state *model.ProtocolStateDocument) error {
	state.ID = model.ProtocolStateID
	opts := options.Replace().SetUpsert(true)
	_, err := db.collection(model.ProtocolStateCollection).
		ReplaceOne(ctx, bson.M{"_id": model.ProtocolStateID}, state, opts)
	return err
}
