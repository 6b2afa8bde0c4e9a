package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/cache"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
)

type prizeService struct {
	prizeRepo repositories.PrizeRepository
	cache     cache.CatalogCache
	maxPrizes int
	log       *logger.Logger
}

// NewPrizeService creates a new PrizeService. maxPrizes caps the catalog size.
func NewPrizeService(prizeRepo repositories.PrizeRepository, catalogCache cache.CatalogCache, maxPrizes int, log *logger.Logger) PrizeService {
	if catalogCache == nil {
		catalogCache = cache.NewNopCatalogCache()
	}
	return &prizeService{
		prizeRepo: prizeRepo,
		cache:     catalogCache,
		maxPrizes: maxPrizes,
		log:       log,
	}
}

func (s *prizeService) ListPrizes(ctx context.Context) ([]*models.Prize, error) {
	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	return prizes, nil
}

func (s *prizeService) GetPrize(ctx context.Context, id string) (*models.Prize, error) {
	prize, err := s.prizeRepo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPrizeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prize: %w", err)
	}
	return prize, nil
}

// CreatePrize adds a prize while the catalog is below its size limit
func (s *prizeService) CreatePrize(ctx context.Context, req *models.PrizeRequest, now time.Time) (*models.Prize, error) {
	count, err := s.prizeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count prizes: %w", err)
	}
	if s.maxPrizes > 0 && count >= int64(s.maxPrizes) {
		return nil, ErrCatalogFull
	}

	prize := prizeFromRequest(req)
	prize.CreatedAt = now
	prize.UpdatedAt = now
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrPrizeExists
		}
		return nil, fmt.Errorf("failed to create prize: %w", err)
	}

	s.invalidate(ctx)
	return prize, nil
}

// UpdatePrize overwrites name, image, weight and stock. The id cannot change.
func (s *prizeService) UpdatePrize(ctx context.Context, id string, req *models.PrizeRequest, now time.Time) (*models.Prize, error) {
	if !strings.EqualFold(id, req.ID) {
		return nil, fmt.Errorf("prize id %q does not match path id %q", req.ID, id)
	}

	prize := prizeFromRequest(req)
	prize.UpdatedAt = now
	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrizeNotFound
		}
		return nil, fmt.Errorf("failed to update prize: %w", err)
	}

	s.invalidate(ctx)
	return s.GetPrize(ctx, prize.ID)
}

func (s *prizeService) DeletePrize(ctx context.Context, id string) error {
	if err := s.prizeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrizeNotFound
		}
		return fmt.Errorf("failed to delete prize: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// DrawableCandidates serves the in-stock prizes from cache when possible
func (s *prizeService) DrawableCandidates(ctx context.Context) ([]models.Prize, error) {
	cached, ok, err := s.cache.GetCandidates(ctx)
	if err != nil {
		s.log.Entry().WithError(err).Warn("catalog cache read failed, falling back to store")
	}
	if ok {
		return cached, nil
	}

	prizes, err := s.prizeRepo.FindDrawable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drawable prizes: %w", err)
	}

	candidates := make([]models.Prize, 0, len(prizes))
	for _, p := range prizes {
		if p.Drawable() {
			candidates = append(candidates, *p)
		}
	}

	if err := s.cache.SetCandidates(ctx, candidates); err != nil {
		s.log.Entry().WithError(err).Warn("catalog cache write failed")
	}
	return candidates, nil
}

func (s *prizeService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Entry().WithError(err).Warn("catalog cache invalidation failed")
	}
}

func prizeFromRequest(req *models.PrizeRequest) *models.Prize {
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	return &models.Prize{
		ID:       strings.ToLower(strings.TrimSpace(req.ID)),
		Name:     strings.TrimSpace(req.Name),
		ImageRef: strings.TrimSpace(req.ImageRef),
		Weight:   req.Weight,
		Stock:    stock,
	}
}
