package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func prizeDoc(id, name string, weight, stock int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "weight", Value: weight},
		{Key: "stock", Value: stock},
	}
}

func TestPrizeRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	ctx := context.Background()
	ns := "sansol-promo.prizes"

	mt.Run("find by id lowercases the key", func(mt *mtest.T) {
		repo := NewPrizeRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			prizeDoc("auricular-bt", "Auricular Bluetooth", 10, 1)))

		prize, err := repo.FindByID(ctx, "AURICULAR-BT")
		require.NoError(mt, err)
		assert.Equal(mt, "auricular-bt", prize.ID)
		assert.Equal(mt, 10, prize.Weight)
		assert.Equal(mt, 1, prize.Stock)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(mt, "auricular-bt", filter.Lookup("_id").StringValue())
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := NewPrizeRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(ctx, "missing")
		assert.True(mt, errors.Is(err, repositories.ErrNotFound))
	})

	mt.Run("find drawable", func(mt *mtest.T) {
		repo := NewPrizeRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			prizeDoc("cafe", "Cafe", 5, 3),
			prizeDoc("gorra", "Gorra", 2, 9),
		))

		prizes, err := repo.FindDrawable(ctx)
		require.NoError(mt, err)
		require.Len(mt, prizes, 2)
		assert.Equal(mt, "cafe", prizes[0].ID)
		assert.Equal(mt, "gorra", prizes[1].ID)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, int32(0), filter.Lookup("stock", "$gt").Int32())
		assert.Equal(mt, int32(0), filter.Lookup("weight", "$gt").Int32())
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewPrizeRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(ctx, &models.Prize{ID: "Cafe", Name: "Cafe", Weight: 1, Stock: 1})
		assert.True(mt, errors.Is(err, repositories.ErrDuplicate))
	})

	mt.Run("update missing prize", func(mt *mtest.T) {
		repo := NewPrizeRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(ctx, &models.Prize{ID: "ghost", Name: "Ghost", Weight: 1})
		assert.True(mt, errors.Is(err, repositories.ErrNotFound))
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewPrizeRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repo.Delete(ctx, "CAFE"))
	})
}

func TestPlayPassRepository_Consume(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	ctx := context.Background()

	mt.Run("unused pass", func(mt *mtest.T) {
		repo := NewPlayPassRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "pass-1"},
			{Key: "phoneNumber", Value: "3001234567"},
			{Key: "score", Value: 3},
			{Key: "used", Value: true},
		}}))

		pass, err := repo.Consume(ctx, "pass-1", "3001234567", timeNow())
		require.NoError(mt, err)
		assert.Equal(mt, "pass-1", pass.ID)
		assert.True(mt, pass.Used)
	})

	mt.Run("used or unknown pass", func(mt *mtest.T) {
		repo := NewPlayPassRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Consume(ctx, "pass-1", "3001234567", timeNow())
		assert.True(mt, errors.Is(err, repositories.ErrNotFound))
	})
}
