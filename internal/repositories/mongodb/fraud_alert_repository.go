package mongodb

import (
	"context"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fraudAlertsCollection = "fraud_alerts"

var _ repositories.FraudAlertRepository = (*fraudAlertRepository)(nil)

type fraudAlertRepository struct {
	collection *mongo.Collection
}

// NewFraudAlertRepository creates a new repository for fraud alerts
func NewFraudAlertRepository(db *mongo.Database) repositories.FraudAlertRepository {
	return &fraudAlertRepository{
		collection: db.Collection(fraudAlertsCollection),
	}
}

// Create inserts an alert and assigns its id
func (r *fraudAlertRepository) Create(ctx context.Context, alert *models.FraudAlert) error {
	alert.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, alert)
	return classify(err)
}

// FindAll lists alerts newest first, optionally only the ones not yet reviewed
func (r *fraudAlertRepository) FindAll(ctx context.Context, onlyPending bool) ([]*models.FraudAlert, error) {
	filter := bson.M{}
	if onlyPending {
		filter["isReviewed"] = false
	}
	opts := options.Find().SetSort(bson.M{"detectedAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	alerts := []*models.FraudAlert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, classify(err)
	}
	return alerts, nil
}

// MarkReviewed flags an alert as reviewed
func (r *fraudAlertRepository) MarkReviewed(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isReviewed": true}})
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *fraudAlertRepository) CountPending(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"isReviewed": false})
	return n, classify(err)
}

func (r *fraudAlertRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, classify(err)
	}
	return result.DeletedCount, nil
}
