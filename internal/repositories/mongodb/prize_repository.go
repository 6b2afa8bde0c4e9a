package mongodb

import (
	"context"
	"strings"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const prizesCollection = "prizes"

// Ensure prizeRepository implements repositories.PrizeRepository
var _ repositories.PrizeRepository = (*prizeRepository)(nil)

type prizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new repository for the prize catalog
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &prizeRepository{
		collection: db.Collection(prizesCollection),
	}
}

// FindAll returns the whole catalog ordered by id
func (r *prizeRepository) FindAll(ctx context.Context) ([]*models.Prize, error) {
	return r.find(ctx, bson.M{})
}

// FindByID finds a prize by id, case-insensitively
func (r *prizeRepository) FindByID(ctx context.Context, id string) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": strings.ToLower(id)}).Decode(&prize)
	if err != nil {
		return nil, classify(err)
	}
	return &prize, nil
}

// FindDrawable returns the prizes that can take part in a reveal
func (r *prizeRepository) FindDrawable(ctx context.Context) ([]*models.Prize, error) {
	return r.find(ctx, bson.M{
		"stock":  bson.M{"$gt": 0},
		"weight": bson.M{"$gt": 0},
	})
}

func (r *prizeRepository) find(ctx context.Context, filter bson.M) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	prizes := []*models.Prize{}
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, classify(err)
	}
	return prizes, nil
}

// Create inserts a new prize. ErrDuplicate when the id is taken.
func (r *prizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	prize.ID = strings.ToLower(prize.ID)
	_, err := r.collection.InsertOne(ctx, prize)
	return classify(err)
}

// Update replaces the editable fields of an existing prize
func (r *prizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	prize.ID = strings.ToLower(prize.ID)
	update := bson.M{"$set": bson.M{
		"name":      prize.Name,
		"imageRef":  prize.ImageRef,
		"weight":    prize.Weight,
		"stock":     prize.Stock,
		"updatedAt": prize.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": prize.ID}, update)
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Upsert creates or overwrites a prize, keeping its original creation time
func (r *prizeRepository) Upsert(ctx context.Context, prize *models.Prize) error {
	prize.ID = strings.ToLower(prize.ID)
	update := bson.M{
		"$set": bson.M{
			"name":      prize.Name,
			"imageRef":  prize.ImageRef,
			"weight":    prize.Weight,
			"stock":     prize.Stock,
			"updatedAt": prize.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": prize.CreatedAt},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": prize.ID}, update, options.Update().SetUpsert(true))
	return classify(err)
}

// Delete removes a prize from the catalog
func (r *prizeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": strings.ToLower(id)})
	if err != nil {
		return classify(err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count returns the catalog size
func (r *prizeRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	return n, classify(err)
}
