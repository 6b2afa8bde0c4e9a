package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const candidatesKey = "sansol:catalog:candidates"

// CatalogCache holds the reveal candidates between catalog writes and claims.
// Redemption always re-reads the prize.
type CatalogCache interface {
	// GetCandidates returns the cached list and whether it was present
	GetCandidates(ctx context.Context) ([]models.Prize, bool, error)

	SetCandidates(ctx context.Context, prizes []models.Prize) error

	// Invalidate drops the cached list after a catalog write or a claim
	Invalidate(ctx context.Context) error
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCatalogCache creates a new Redis-backed catalog cache
func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	return &redisCatalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisCatalogCache) GetCandidates(ctx context.Context) ([]models.Prize, bool, error) {
	val, err := c.client.Get(ctx, candidatesKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get candidates: %w", err)
	}

	var prizes []models.Prize
	if err := json.Unmarshal(val, &prizes); err != nil {
		return nil, false, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return prizes, true, nil
}

func (c *redisCatalogCache) SetCandidates(ctx context.Context, prizes []models.Prize) error {
	val, err := json.Marshal(prizes)
	if err != nil {
		return fmt.Errorf("failed to encode candidates: %w", err)
	}
	return c.client.Set(ctx, candidatesKey, val, c.ttl).Err()
}

func (c *redisCatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, candidatesKey).Err()
}

type nopCatalogCache struct{}

// NewNopCatalogCache returns a cache that never holds anything
func NewNopCatalogCache() CatalogCache {
	return nopCatalogCache{}
}

func (nopCatalogCache) GetCandidates(context.Context) ([]models.Prize, bool, error) {
	return nil, false, nil
}

func (nopCatalogCache) SetCandidates(context.Context, []models.Prize) error { return nil }

func (nopCatalogCache) Invalidate(context.Context) error { return nil }
