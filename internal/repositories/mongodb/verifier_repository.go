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

const verifiersCollection = "verifiers"

// Ensure verifierRepository implements repositories.VerifierRepository
var _ repositories.VerifierRepository = (*verifierRepository)(nil)

type verifierRepository struct {
	collection *mongo.Collection
}

// NewVerifierRepository creates a new repository for verifier accounts
func NewVerifierRepository(db *mongo.Database) repositories.VerifierRepository {
	return &verifierRepository{
		collection: db.Collection(verifiersCollection),
	}
}

// Create inserts a new verifier. The unique username index turns a clash into ErrDuplicate.
func (r *verifierRepository) Create(ctx context.Context, verifier *models.Verifier) error {
	verifier.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, verifier)
	return classify(err)
}

// FindByUsername finds a verifier by username
func (r *verifierRepository) FindByUsername(ctx context.Context, username string) (*models.Verifier, error) {
	var verifier models.Verifier
	if err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&verifier); err != nil {
		// ErrNotFound lets the service tell 'not found' from other errors
		return nil, classify(err)
	}
	return &verifier, nil
}

// FindAll lists verifiers by username
func (r *verifierRepository) FindAll(ctx context.Context) ([]*models.Verifier, error) {
	opts := options.Find().SetSort(bson.M{"username": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	verifiers := []*models.Verifier{}
	if err := cursor.All(ctx, &verifiers); err != nil {
		return nil, classify(err)
	}
	return verifiers, nil
}

// Delete removes a verifier account
func (r *verifierRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify(err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
