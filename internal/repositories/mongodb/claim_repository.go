package mongodb

import (
	"context"
	"errors"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const claimsCollection = "claims"

var _ repositories.ClaimRepository = (*claimRepository)(nil)

type claimRepository struct {
	client *mongo.Client
	claims *mongo.Collection
	prizes *mongo.Collection
}

// NewClaimRepository creates a new repository for redemption records.
// ClaimPrize needs a replica set or sharded cluster for transactions.
func NewClaimRepository(db *mongo.Database) repositories.ClaimRepository {
	return &claimRepository{
		client: db.Client(),
		claims: db.Collection(claimsCollection),
		prizes: db.Collection(prizesCollection),
	}
}

// FindByToken returns the claim for a token, or ErrNotFound
func (r *claimRepository) FindByToken(ctx context.Context, token string) (*models.ClaimRecord, error) {
	var claim models.ClaimRecord
	if err := r.claims.FindOne(ctx, bson.M{"_id": token}).Decode(&claim); err != nil {
		return nil, classify(err)
	}
	return &claim, nil
}

// FindRecent returns the latest claims, newest first
func (r *claimRepository) FindRecent(ctx context.Context, limit int) ([]*models.ClaimRecord, error) {
	opts := options.Find().SetSort(bson.M{"claimedAt": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.claims.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	claims := []*models.ClaimRecord{}
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, classify(err)
	}
	return claims, nil
}

// ClaimPrize runs the claim unit inside a snapshot transaction. Both the stock
// re-read and the claim re-check are point reads, and the decrement is guarded on
// stock > 0, so two transactions touching the same prize or token conflict and at
// most one commits.
func (r *claimRepository) ClaimPrize(ctx context.Context, claim *models.ClaimRecord) (*models.Prize, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, classify(err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority()))

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var prize models.Prize
		if err := r.prizes.FindOne(sc, bson.M{"_id": claim.PrizeID}).Decode(&prize); err != nil {
			return nil, classify(err)
		}
		if prize.Stock <= 0 {
			return nil, repositories.ErrNoStock
		}

		err := r.claims.FindOne(sc, bson.M{"_id": claim.Token}).Err()
		if err == nil {
			return nil, repositories.ErrAlreadyClaimed
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, classify(err)
		}

		if _, err := r.claims.InsertOne(sc, claim); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, repositories.ErrAlreadyClaimed
			}
			return nil, classify(err)
		}

		update, err := r.prizes.UpdateOne(sc,
			bson.M{"_id": prize.ID, "stock": bson.M{"$gt": 0}},
			bson.M{
				"$inc": bson.M{"stock": -1},
				"$set": bson.M{"updatedAt": claim.ClaimedAt},
			},
		)
		if err != nil {
			return nil, classify(err)
		}
		if update.ModifiedCount == 0 {
			return nil, repositories.ErrNoStock
		}
		return &prize, nil
	}, txnOpts)
	if err != nil {
		return nil, classify(err)
	}
	return result.(*models.Prize), nil
}

// Count returns the number of redeemed tokens
func (r *claimRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.claims.CountDocuments(ctx, bson.M{})
	return n, classify(err)
}

// DeleteAll clears the claim history
func (r *claimRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.claims.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, classify(err)
	}
	return result.DeletedCount, nil
}
