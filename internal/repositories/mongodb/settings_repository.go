package mongodb

import (
	"context"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	settingsCollection = "settings"
	promoSettingsID    = "promo"
)

var _ repositories.SettingsRepository = (*settingsRepository)(nil)

// settingsRepository keeps the promotion settings as a single keyed document
type settingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *mongo.Database) repositories.SettingsRepository {
	return &settingsRepository{
		collection: db.Collection(settingsCollection),
	}
}

// Get retrieves the current settings. ErrNotFound when none were ever saved.
func (r *settingsRepository) Get(ctx context.Context) (*models.PromoSettings, error) {
	var settings models.PromoSettings
	if err := r.collection.FindOne(ctx, bson.M{"_id": promoSettingsID}).Decode(&settings); err != nil {
		return nil, classify(err)
	}
	return &settings, nil
}

// Save replaces the settings document, creating it on first use
func (r *settingsRepository) Save(ctx context.Context, settings *models.PromoSettings) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": promoSettingsID},
		settings,
		options.Replace().SetUpsert(true),
	)
	return classify(err)
}
