package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store errors. Implementations translate driver errors into these so the service
// layer never inspects driver types.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrNoStock          = errors.New("prize out of stock")
	ErrAlreadyClaimed   = errors.New("token already claimed")
	ErrTransient        = errors.New("transient store failure")
	ErrPermissionDenied = errors.New("store permission denied")
)

// PrizeRepository defines the interface for prize catalog operations
type PrizeRepository interface {
	FindAll(ctx context.Context) ([]*models.Prize, error)
	FindByID(ctx context.Context, id string) (*models.Prize, error)
	// FindDrawable returns prizes with stock > 0 and weight > 0
	FindDrawable(ctx context.Context) ([]*models.Prize, error)
	Create(ctx context.Context, prize *models.Prize) error
	Update(ctx context.Context, prize *models.Prize) error
	Upsert(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// WinRecordRepository defines the interface for the win ledger
type WinRecordRepository interface {
	Create(ctx context.Context, win *models.WinRecord) error
	FindByToken(ctx context.Context, token string) (*models.WinRecord, error)
	FindByPhone(ctx context.Context, phone string) ([]*models.WinRecord, error)
	// MarkClaimed moves a Won record to Claimed. ErrNotFound when no Won record matches.
	MarkClaimed(ctx context.Context, token string, claimedAt time.Time, claimedBy string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ClaimRepository defines the interface for redemption audit records
type ClaimRepository interface {
	FindByToken(ctx context.Context, token string) (*models.ClaimRecord, error)
	FindRecent(ctx context.Context, limit int) ([]*models.ClaimRecord, error)
	// ClaimPrize runs the atomic claim unit: re-read stock, re-check the claim by
	// token, insert the claim and decrement stock by one. It applies fully or not at
	// all and returns the prize as it was before the decrement.
	ClaimPrize(ctx context.Context, claim *models.ClaimRecord) (*models.Prize, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ParticipantRepository defines the interface for participant operations
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByPhone(ctx context.Context, phone string) (*models.Participant, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// FraudAlertRepository defines the interface for fraud alert operations
type FraudAlertRepository interface {
	Create(ctx context.Context, alert *models.FraudAlert) error
	FindAll(ctx context.Context, onlyPending bool) ([]*models.FraudAlert, error)
	MarkReviewed(ctx context.Context, id primitive.ObjectID) error
	CountPending(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// VerifierRepository defines the interface for verifier account operations
type VerifierRepository interface {
	Create(ctx context.Context, verifier *models.Verifier) error
	FindByUsername(ctx context.Context, username string) (*models.Verifier, error)
	FindAll(ctx context.Context) ([]*models.Verifier, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SettingsRepository defines the interface for the promotion settings document
type SettingsRepository interface {
	Get(ctx context.Context) (*models.PromoSettings, error)
	Save(ctx context.Context, settings *models.PromoSettings) error
}

// PlayPassRepository defines the interface for trivia play passes
type PlayPassRepository interface {
	Create(ctx context.Context, pass *models.PlayPass) error
	// Consume marks an unused, unexpired pass owned by phone as used.
	// ErrNotFound covers unknown, used and expired passes alike.
	Consume(ctx context.Context, id, phone string, now time.Time) (*models.PlayPass, error)
	DeleteAll(ctx context.Context) (int64, error)
}
