package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/metrics"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/internal/utils"
	"github.com/ArowuTest/sansol-promo-backend/pkg/fraudcheck"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// RegistrationResult is an accepted registration. Returning is set when the phone
// was already registered and the stored participant is returned unchanged.
type RegistrationResult struct {
	Participant *models.Participant `json:"participant"`
	Returning   bool                `json:"returning"`
}

// FraudRejection is returned when the fraud check flags a submission
type FraudRejection struct {
	Explanation string
}

func (e *FraudRejection) Error() string {
	return fmt.Sprintf("%s: %s", ErrFraudDetected, e.Explanation)
}

func (e *FraudRejection) Unwrap() error {
	return ErrFraudDetected
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	alertRepo       repositories.FraudAlertRepository
	checker         fraudcheck.Checker
	log             *logger.Logger
	metrics         *metrics.Metrics
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	alertRepo repositories.FraudAlertRepository,
	checker fraudcheck.Checker,
	log *logger.Logger,
	m *metrics.Metrics,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		alertRepo:       alertRepo,
		checker:         checker,
		log:             log,
		metrics:         m,
	}
}

// Register admits a participant. A known phone short-circuits to the stored record;
// a new one must pass the fraud check. A check that cannot be completed holds the
// registration and stores nothing.
func (s *participantService) Register(ctx context.Context, req *models.RegisterRequest, now time.Time) (*RegistrationResult, error) {
	if req.Consent == nil || !*req.Consent {
		return nil, ErrConsentRequired
	}
	fullName := strings.Join(strings.Fields(req.FullName), " ")
	phone := utils.CleanPhone(req.PhoneNumber)

	existing, err := s.participantRepo.FindByPhone(ctx, phone)
	if err == nil {
		s.metrics.ObserveRegistration("returning")
		return &RegistrationResult{Participant: existing, Returning: true}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	entry := s.log.Entry().WithField("phone", phone)

	verdict, err := s.checker.CheckSubmission(ctx, fraudcheck.Submission{
		FullName:    fullName,
		PhoneNumber: phone,
		Consent:     true,
	})
	if err != nil {
		entry.WithError(err).Warn("fraud check failed, holding registration")
		s.metrics.ObserveRegistration("held")
		return nil, fmt.Errorf("%w: %v", ErrFraudCheckHold, err)
	}

	if verdict.IsFraudulent {
		alert := &models.FraudAlert{
			FullName:    fullName,
			PhoneNumber: phone,
			DetectedAt:  now,
			Explanation: verdict.Explanation,
		}
		if err := s.alertRepo.Create(ctx, alert); err != nil {
			entry.WithError(err).Error("failed to store fraud alert")
		}
		entry.WithField("explanation", verdict.Explanation).Info("registration rejected by fraud check")
		s.metrics.ObserveRegistration("fraud")
		return nil, &FraudRejection{Explanation: verdict.Explanation}
	}

	participant := &models.Participant{
		PhoneNumber:  phone,
		FullName:     fullName,
		ConsentGiven: true,
		RegisteredAt: now,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// registered concurrently
			stored, findErr := s.participantRepo.FindByPhone(ctx, phone)
			if findErr == nil {
				return &RegistrationResult{Participant: stored, Returning: true}, nil
			}
		}
		return nil, fmt.Errorf("failed to register participant: %w", err)
	}

	entry.WithFields(logrus.Fields{"name": fullName}).Info("participant registered")
	s.metrics.ObserveRegistration("registered")
	return &RegistrationResult{Participant: participant}, nil
}

func (s *participantService) GetParticipant(ctx context.Context, phone string) (*models.Participant, error) {
	participant, err := s.participantRepo.FindByPhone(ctx, utils.CleanPhone(phone))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}
