package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
)

// mongo error code returned when creating a collection that exists
const namespaceExistsCode = 48

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	ValidatorCollection: {
		{Keys: bson.D{{Key: "operator", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "escrow", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "buffer", Value: 1}}},
	},
	ProtocolStateCollection: nil,
	EffectGroupCollection: {
		{Keys: bson.D{{Key: "operation", Value: 1}, {Key: "created_at", Value: -1}}},
	},
}

// Setup creates the collections and indexes the service relies on
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for collection, indexes := range collections {
		if err := createCollection(ctx, database, collection); err != nil {
			return err
		}
		for _, idx := range indexes {
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	err := database.CreateCollection(ctx, collectionName)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorCode(namespaceExistsCode) {
		log.Ctx(ctx).Debug().Msg(fmt.Sprintf("Collection already exists: %s", collectionName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
	}

	log.Ctx(ctx).Debug().Msg(fmt.Sprintf("Collection created successfully: %s", collectionName))
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	index := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	log.Ctx(ctx).Debug().Msg(fmt.Sprintf("Index created successfully on collection: %s", collectionName))
	return nil
}
