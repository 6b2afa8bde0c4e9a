package mongodb

import (
	"context"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const participantsCollection = "participants"

var _ repositories.ParticipantRepository = (*participantRepository)(nil)

type participantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new repository for participants
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &participantRepository{
		collection: db.Collection(participantsCollection),
	}
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	_, err := r.collection.InsertOne(ctx, participant)
	return classify(err)
}

func (r *participantRepository) FindByPhone(ctx context.Context, phone string) (*models.Participant, error) {
	var participant models.Participant
	if err := r.collection.FindOne(ctx, bson.M{"_id": phone}).Decode(&participant); err != nil {
		return nil, classify(err)
	}
	return &participant, nil
}

func (r *participantRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	return n, classify(err)
}

func (r *participantRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, classify(err)
	}
	return result.DeletedCount, nil
}
