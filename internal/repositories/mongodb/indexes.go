package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the secondary indexes the repositories rely on.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		winsCollection: {
			{Keys: bson.D{{Key: "participantPhone", Value: 1}, {Key: "issuedAt", Value: -1}}},
		},
		claimsCollection: {
			{Keys: bson.D{{Key: "claimedAt", Value: -1}}},
		},
		fraudAlertsCollection: {
			{Keys: bson.D{{Key: "isReviewed", Value: 1}, {Key: "detectedAt", Value: -1}}},
		},
		verifiersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		playPassesCollection: {
			// expired passes are reaped by the server
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
