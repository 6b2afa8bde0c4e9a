package services

import (
	"context"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
)

// SettingsService manages the promotion settings
type SettingsService interface {
	// GetSettings returns the stored settings, or the configured defaults when none exist
	GetSettings(ctx context.Context) (*models.PromoSettings, error)

	// ValidityDays returns the current token validity window in days
	ValidityDays(ctx context.Context) (int, error)

	// UpdateSettings stores new settings on behalf of an admin
	UpdateSettings(ctx context.Context, settings *models.PromoSettings, updatedBy string, now time.Time) (*models.PromoSettings, error)
}

// RedemptionService validates scanned QR tokens and claims prizes
type RedemptionService interface {
	// Verify runs the validation pipeline without mutating anything
	Verify(ctx context.Context, rawToken string, now time.Time) (*ClaimCandidate, error)

	// Claim atomically records the claim and decrements stock
	Claim(ctx context.Context, candidate *ClaimCandidate, verifier string, now time.Time) (*RedemptionResult, error)

	// Redeem is Verify followed by Claim
	Redeem(ctx context.Context, rawToken, verifier string, now time.Time) (*RedemptionResult, error)
}

// ParticipantService registers participants behind the fraud check
type ParticipantService interface {
	Register(ctx context.Context, req *models.RegisterRequest, now time.Time) (*RegistrationResult, error)
	GetParticipant(ctx context.Context, phone string) (*models.Participant, error)
}

// TriviaService serves the question gate and issues play passes
type TriviaService interface {
	// Questions returns the question bank in random order, without answers
	Questions() []models.TriviaQuestion

	// SubmitAnswers scores a submission and issues a pass when it passes the gate
	SubmitAnswers(ctx context.Context, req *models.TriviaAnswers, now time.Time) (*TriviaResult, error)
}

// PlayService spends play passes on prize reveals and exposes the win ledger
type PlayService interface {
	Reveal(ctx context.Context, req *models.RevealRequest, now time.Time) (*RevealResult, error)
	GetWin(ctx context.Context, token string) (*models.WinRecord, error)
}

// PrizeService manages the prize catalog
type PrizeService interface {
	ListPrizes(ctx context.Context) ([]*models.Prize, error)
	GetPrize(ctx context.Context, id string) (*models.Prize, error)
	CreatePrize(ctx context.Context, req *models.PrizeRequest, now time.Time) (*models.Prize, error)
	UpdatePrize(ctx context.Context, id string, req *models.PrizeRequest, now time.Time) (*models.Prize, error)
	DeletePrize(ctx context.Context, id string) error

	// DrawableCandidates returns the prizes eligible for a reveal
	DrawableCandidates(ctx context.Context) ([]models.Prize, error)
}

// AuthService authenticates staff and manages verifier accounts
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error)
	ParseToken(token string) (*models.Session, error)
	CreateVerifier(ctx context.Context, req *models.VerifierRequest, now time.Time) (*models.Verifier, error)
	ListVerifiers(ctx context.Context) ([]*models.Verifier, error)
	DeleteVerifier(ctx context.Context, id string) error
}

// AdminService covers the back-office views and the promotion reset
type AdminService interface {
	ListFraudAlerts(ctx context.Context, onlyPending bool) ([]*models.FraudAlert, error)
	MarkAlertReviewed(ctx context.Context, id string) error
	ListClaims(ctx context.Context, limit int) ([]*models.ClaimRecord, error)
	Stats(ctx context.Context) (*models.PromoStats, error)
	ResetPromotion(ctx context.Context, confirmation string) (*models.ResetSummary, error)
}
