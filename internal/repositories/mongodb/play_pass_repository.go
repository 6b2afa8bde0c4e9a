package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const playPassesCollection = "play_passes"

var _ repositories.PlayPassRepository = (*playPassRepository)(nil)

type playPassRepository struct {
	collection *mongo.Collection
}

// NewPlayPassRepository creates a new repository for trivia play passes
func NewPlayPassRepository(db *mongo.Database) repositories.PlayPassRepository {
	return &playPassRepository{
		collection: db.Collection(playPassesCollection),
	}
}

func (r *playPassRepository) Create(ctx context.Context, pass *models.PlayPass) error {
	_, err := r.collection.InsertOne(ctx, pass)
	return classify(err)
}

// Consume flips used from false to true in one conditional update, so a pass can
// unlock at most one reveal.
func (r *playPassRepository) Consume(ctx context.Context, id, phone string, now time.Time) (*models.PlayPass, error) {
	filter := bson.M{
		"_id":         id,
		"phoneNumber": phone,
		"used":        false,
		"expiresAt":   bson.M{"$gt": now},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pass models.PlayPass
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"used": true}}, opts).Decode(&pass)
	if err != nil {
		return nil, classify(err)
	}
	return &pass, nil
}

func (r *playPassRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, classify(err)
	}
	return result.DeletedCount, nil
}
