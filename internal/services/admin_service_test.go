package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(store *memStore) AdminService {
	return NewAdminService(
		fakeParticipantRepo{store},
		fakeWinRepo{store},
		fakeClaimRepo{store},
		fakeAlertRepo{store},
		fakePassRepo{store},
		fakePrizeRepo{store},
		logger.Discard(),
	)
}

func seedActivity(t *testing.T, store *memStore) {
	t.Helper()
	ctx := context.Background()
	store.addPrize("gorra", 5, 3)
	store.participants[testPhone] = &models.Participant{PhoneNumber: testPhone, FullName: "Ana Gil"}
	store.passes["p1"] = &models.PlayPass{ID: "p1", PhoneNumber: testPhone, ExpiresAt: testNow.Add(time.Hour)}
	store.wins["t1"] = &models.WinRecord{Token: "t1", PrizeID: "gorra", ParticipantPhone: testPhone, Status: models.WinStatusWon}
	store.claims["t1"] = &models.ClaimRecord{Token: "t1", PrizeID: "gorra", ClaimedAt: testNow}
	store.claims["t2"] = &models.ClaimRecord{Token: "t2", PrizeID: "gorra", ClaimedAt: testNow.Add(time.Minute)}
	require.NoError(t, fakeAlertRepo{store}.Create(ctx, &models.FraudAlert{PhoneNumber: "5555555555"}))
	require.NoError(t, fakeAlertRepo{store}.Create(ctx, &models.FraudAlert{PhoneNumber: "6666666666"}))
}

func TestAdmin_StatsAndAlerts(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedActivity(t, store)
	svc := newTestAdminService(store)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PromoStats{Participants: 1, Wins: 1, Claims: 2, PendingFraudAlerts: 2, Prizes: 1}, *stats)

	alerts, err := svc.ListFraudAlerts(ctx, true)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	require.NoError(t, svc.MarkAlertReviewed(ctx, alerts[0].ID.Hex()))
	assert.ErrorIs(t, svc.MarkAlertReviewed(ctx, "zzz"), ErrAlertNotFound)

	pending, err := svc.ListFraudAlerts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	all, err := svc.ListFraudAlerts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	claims, err := svc.ListClaims(ctx, 1)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "t2", claims[0].Token)
}

func TestAdmin_ResetPromotion(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedActivity(t, store)
	svc := newTestAdminService(store)

	_, err := svc.ResetPromotion(ctx, "reiniciar")
	assert.ErrorIs(t, err, ErrResetNotConfirmed)
	assert.Len(t, store.participants, 1)

	summary, err := svc.ResetPromotion(ctx, ResetConfirmationWord)
	require.NoError(t, err)
	assert.Equal(t, models.ResetSummary{Participants: 1, Wins: 1, Claims: 2, FraudAlerts: 2, PlayPasses: 1}, *summary)

	assert.Empty(t, store.participants)
	assert.Empty(t, store.claims)
	assert.Len(t, store.prizes, 1, "catalog survives a reset")
}
