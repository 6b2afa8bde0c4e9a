package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResetConfirmationWord must be sent to reset the promotion
const ResetConfirmationWord = "REINICIAR"

const defaultClaimsLimit = 100

type adminService struct {
	participantRepo repositories.ParticipantRepository
	winRepo         repositories.WinRecordRepository
	claimRepo       repositories.ClaimRepository
	alertRepo       repositories.FraudAlertRepository
	passRepo        repositories.PlayPassRepository
	prizeRepo       repositories.PrizeRepository
	log             *logger.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	participantRepo repositories.ParticipantRepository,
	winRepo repositories.WinRecordRepository,
	claimRepo repositories.ClaimRepository,
	alertRepo repositories.FraudAlertRepository,
	passRepo repositories.PlayPassRepository,
	prizeRepo repositories.PrizeRepository,
	log *logger.Logger,
) AdminService {
	return &adminService{
		participantRepo: participantRepo,
		winRepo:         winRepo,
		claimRepo:       claimRepo,
		alertRepo:       alertRepo,
		passRepo:        passRepo,
		prizeRepo:       prizeRepo,
		log:             log,
	}
}

func (s *adminService) ListFraudAlerts(ctx context.Context, onlyPending bool) ([]*models.FraudAlert, error) {
	alerts, err := s.alertRepo.FindAll(ctx, onlyPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list fraud alerts: %w", err)
	}
	return alerts, nil
}

func (s *adminService) MarkAlertReviewed(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrAlertNotFound
	}
	if err := s.alertRepo.MarkReviewed(ctx, objectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAlertNotFound
		}
		return fmt.Errorf("failed to update fraud alert: %w", err)
	}
	return nil
}

// ListClaims returns the latest claims; limit <= 0 uses a default page size
func (s *adminService) ListClaims(ctx context.Context, limit int) ([]*models.ClaimRecord, error) {
	if limit <= 0 {
		limit = defaultClaimsLimit
	}
	claims, err := s.claimRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

func (s *adminService) Stats(ctx context.Context) (*models.PromoStats, error) {
	var stats models.PromoStats
	var err error

	if stats.Participants, err = s.participantRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	if stats.Wins, err = s.winRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count wins: %w", err)
	}
	if stats.Claims, err = s.claimRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}
	if stats.PendingFraudAlerts, err = s.alertRepo.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("failed to count fraud alerts: %w", err)
	}
	if stats.Prizes, err = s.prizeRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count prizes: %w", err)
	}
	return &stats, nil
}

// ResetPromotion deletes all participant activity. The prize catalog and staff
// accounts are kept.
func (s *adminService) ResetPromotion(ctx context.Context, confirmation string) (*models.ResetSummary, error) {
	if confirmation != ResetConfirmationWord {
		return nil, ErrResetNotConfirmed
	}

	var summary models.ResetSummary
	var err error

	if summary.Participants, err = s.participantRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete participants: %w", err)
	}
	if summary.Wins, err = s.winRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete wins: %w", err)
	}
	if summary.Claims, err = s.claimRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete claims: %w", err)
	}
	if summary.FraudAlerts, err = s.alertRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete fraud alerts: %w", err)
	}
	if summary.PlayPasses, err = s.passRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete play passes: %w", err)
	}

	s.log.Entry().WithFields(logrus.Fields{
		"participants": summary.Participants,
		"wins":         summary.Wins,
		"claims":       summary.Claims,
		"fraud_alerts": summary.FraudAlerts,
	}).Warn("promotion reset")
	return &summary, nil
}
