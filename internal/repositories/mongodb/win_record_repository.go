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

const winsCollection = "wins"

var _ repositories.WinRecordRepository = (*winRecordRepository)(nil)

type winRecordRepository struct {
	collection *mongo.Collection
}

// NewWinRecordRepository creates a new repository for the win ledger
func NewWinRecordRepository(db *mongo.Database) repositories.WinRecordRepository {
	return &winRecordRepository{
		collection: db.Collection(winsCollection),
	}
}

// Create writes a ledger entry in a single insert
func (r *winRecordRepository) Create(ctx context.Context, win *models.WinRecord) error {
	_, err := r.collection.InsertOne(ctx, win)
	return classify(err)
}

// FindByToken finds the ledger entry for a QR token
func (r *winRecordRepository) FindByToken(ctx context.Context, token string) (*models.WinRecord, error) {
	var win models.WinRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": token}).Decode(&win); err != nil {
		return nil, classify(err)
	}
	return &win, nil
}

// FindByPhone returns a participant's wins, newest first
func (r *winRecordRepository) FindByPhone(ctx context.Context, phone string) ([]*models.WinRecord, error) {
	opts := options.Find().SetSort(bson.M{"issuedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"participantPhone": phone}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	var wins []*models.WinRecord
	if err := cursor.All(ctx, &wins); err != nil {
		return nil, classify(err)
	}
	return wins, nil
}

// MarkClaimed moves a Won entry to Claimed. A Claimed entry is never touched again.
func (r *winRecordRepository) MarkClaimed(ctx context.Context, token string, claimedAt time.Time, claimedBy string) error {
	filter := bson.M{"_id": token, "status": models.WinStatusWon}
	update := bson.M{"$set": bson.M{
		"status":    models.WinStatusClaimed,
		"claimedAt": claimedAt,
		"claimedBy": claimedBy,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count returns the number of ledger entries
func (r *winRecordRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	return n, classify(err)
}

// DeleteAll clears the ledger
func (r *winRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, classify(err)
	}
	return result.DeletedCount, nil
}
