package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/cache"
	"github.com/ArowuTest/sansol-promo-backend/internal/metrics"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/ArowuTest/sansol-promo-backend/pkg/qrtoken"
	"github.com/sirupsen/logrus"
)

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// ClaimCandidate is a token that passed validation and may be claimed
type ClaimCandidate struct {
	Token     string       `json:"token"`
	Prize     models.Prize `json:"prize"`
	IssuedAt  time.Time    `json:"issuedAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// RedemptionResult is a successful claim. Prize.Stock is the stock after the decrement.
type RedemptionResult struct {
	Claim      *models.ClaimRecord `json:"claim"`
	Prize      models.Prize        `json:"prize"`
	WinUpdated bool                `json:"winUpdated"`
}

type redemptionService struct {
	prizeRepo   repositories.PrizeRepository
	claimRepo   repositories.ClaimRepository
	winRepo     repositories.WinRecordRepository
	settings    SettingsService
	cache       cache.CatalogCache
	maxAttempts int
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// NewRedemptionService creates a new RedemptionService. claimRetries bounds the
// extra attempts made when the claim transaction hits a transient failure.
// catalogCache is dropped after every claim so reveals see the new stock.
func NewRedemptionService(
	prizeRepo repositories.PrizeRepository,
	claimRepo repositories.ClaimRepository,
	winRepo repositories.WinRecordRepository,
	settings SettingsService,
	catalogCache cache.CatalogCache,
	claimRetries int,
	log *logger.Logger,
	m *metrics.Metrics,
) RedemptionService {
	if claimRetries < 0 {
		claimRetries = 0
	}
	if catalogCache == nil {
		catalogCache = cache.NewNopCatalogCache()
	}
	return &redemptionService{
		prizeRepo:   prizeRepo,
		claimRepo:   claimRepo,
		winRepo:     winRepo,
		settings:    settings,
		cache:       catalogCache,
		maxAttempts: claimRetries + 1,
		log:         log,
		metrics:     m,
	}
}

// Verify checks format, prior claim, prize, stock and expiry, in that order
func (s *redemptionService) Verify(ctx context.Context, rawToken string, now time.Time) (*ClaimCandidate, error) {
	candidate, err := s.verify(ctx, rawToken, now)
	if err != nil {
		s.metrics.ObserveRedemption(string(CodeOf(err)))
	}
	return candidate, err
}

func (s *redemptionService) verify(ctx context.Context, rawToken string, now time.Time) (*ClaimCandidate, error) {
	tok, err := qrtoken.Parse(rawToken)
	if err != nil {
		return nil, newRedemptionError(CodeInvalidFormat, ErrInvalidFormat.Message, err)
	}
	token := tok.String()

	claim, err := s.claimRepo.FindByToken(ctx, token)
	switch {
	case err == nil:
		return nil, alreadyClaimed(claim)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, storeError(err)
	}

	prize, err := s.prizeRepo.FindByID(ctx, tok.PrizeID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newRedemptionError(CodePrizeNotFound, fmt.Sprintf("prize %q not found", tok.PrizeID), nil)
	}
	if err != nil {
		return nil, storeError(err)
	}

	if prize.Stock <= 0 {
		return nil, newRedemptionError(CodeNoStock, fmt.Sprintf("%s is out of stock", prize.Name), nil)
	}

	days, err := s.settings.ValidityDays(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	expiresAtMillis := expiryMillis(tok.IssuedAtMillis, days)
	if now.UnixMilli() > expiresAtMillis {
		return nil, newRedemptionError(CodeExpired,
			fmt.Sprintf("code expired on %s", time.UnixMilli(expiresAtMillis).UTC().Format(time.RFC3339)), nil)
	}

	return &ClaimCandidate{
		Token:     token,
		Prize:     *prize,
		IssuedAt:  tok.IssuedAt(),
		ExpiresAt: time.UnixMilli(expiresAtMillis),
	}, nil
}

// Claim runs the atomic claim, retrying transient store failures a bounded number
// of times. The ledger update afterwards is best-effort.
func (s *redemptionService) Claim(ctx context.Context, candidate *ClaimCandidate, verifier string, now time.Time) (*RedemptionResult, error) {
	result, err := s.claim(ctx, candidate, verifier, now)
	if err != nil {
		s.metrics.ObserveRedemption(string(CodeOf(err)))
		return nil, err
	}
	s.metrics.ObserveRedemption("claimed")
	return result, nil
}

func (s *redemptionService) claim(ctx context.Context, candidate *ClaimCandidate, verifier string, now time.Time) (*RedemptionResult, error) {
	if verifier == "" {
		return nil, newRedemptionError(CodePermissionDenied, "verifier identity is required", nil)
	}

	claim := &models.ClaimRecord{
		Token:     candidate.Token,
		PrizeID:   candidate.Prize.ID,
		PrizeName: candidate.Prize.Name,
		ClaimedAt: now,
		ClaimedBy: verifier,
	}

	var prize *models.Prize
	for attempt := 1; ; attempt++ {
		var err error
		prize, err = s.claimRepo.ClaimPrize(ctx, claim)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrTransient) || attempt >= s.maxAttempts {
			return nil, s.claimError(ctx, candidate, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, newRedemptionError(CodeTransient, ErrTransient.Message, ctxErr)
		}

		s.metrics.ObserveClaimRetry()
		s.log.Entry().WithFields(logrus.Fields{
			"token":   candidate.Token,
			"attempt": attempt,
		}).WithError(err).Warn("claim transaction conflict, retrying")
	}

	result := &RedemptionResult{Claim: claim, Prize: *prize}
	result.Prize.Stock--

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Entry().WithField("prize_id", claim.PrizeID).WithError(err).Error("catalog cache invalidation failed after claim")
	}

	if err := s.winRepo.MarkClaimed(ctx, claim.Token, now, verifier); err != nil {
		// the claim record and the decrement are authoritative
		s.log.Entry().WithFields(logrus.Fields{
			"token":    claim.Token,
			"prize_id": claim.PrizeID,
		}).WithError(err).Warn("claim recorded but win record was not updated")
	} else {
		result.WinUpdated = true
	}

	s.log.Entry().WithFields(logrus.Fields{
		"token":       claim.Token,
		"prize_id":    claim.PrizeID,
		"claimed_by":  verifier,
		"stock_after": result.Prize.Stock,
	}).Info("prize claimed")
	return result, nil
}

// claimError converts a failed claim transaction into the redemption taxonomy
func (s *redemptionService) claimError(ctx context.Context, candidate *ClaimCandidate, err error) error {
	switch {
	case errors.Is(err, repositories.ErrAlreadyClaimed):
		existing, findErr := s.claimRepo.FindByToken(ctx, candidate.Token)
		if findErr != nil {
			return newRedemptionError(CodeAlreadyClaimed, ErrAlreadyClaimed.Message, nil)
		}
		return alreadyClaimed(existing)
	case errors.Is(err, repositories.ErrNoStock):
		return newRedemptionError(CodeNoStock, fmt.Sprintf("%s is out of stock", candidate.Prize.Name), nil)
	case errors.Is(err, repositories.ErrNotFound):
		return newRedemptionError(CodePrizeNotFound, fmt.Sprintf("prize %q not found", candidate.Prize.ID), nil)
	default:
		return storeError(err)
	}
}

// Redeem validates the token and claims it
func (s *redemptionService) Redeem(ctx context.Context, rawToken, verifier string, now time.Time) (*RedemptionResult, error) {
	candidate, err := s.Verify(ctx, rawToken, now)
	if err != nil {
		return nil, err
	}
	return s.Claim(ctx, candidate, verifier, now)
}

// expiryMillis saturates instead of wrapping for issue times near the int64 limit
func expiryMillis(issuedAtMillis int64, days int) int64 {
	window := int64(days) * dayMillis
	if issuedAtMillis > math.MaxInt64-window {
		return math.MaxInt64
	}
	return issuedAtMillis + window
}

func alreadyClaimed(claim *models.ClaimRecord) error {
	return newRedemptionError(CodeAlreadyClaimed,
		fmt.Sprintf("code already redeemed on %s by %s", claim.ClaimedAt.UTC().Format(time.RFC3339), claim.ClaimedBy), nil)
}
