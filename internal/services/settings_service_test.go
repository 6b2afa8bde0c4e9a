package services

import (
	"context"
	"testing"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultUntilSaved(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewSettingsService(fakeSettingsRepo{store}, 7)

	days, err := svc.ValidityDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, days)

	saved, err := svc.UpdateSettings(ctx, &models.PromoSettings{ValidityDays: 14}, "admin", testNow)
	require.NoError(t, err)
	assert.Equal(t, "admin", saved.UpdatedBy)
	assert.Equal(t, testNow, saved.UpdatedAt)

	days, err = svc.ValidityDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, days)

	_, err = svc.UpdateSettings(ctx, &models.PromoSettings{ValidityDays: 0}, "admin", testNow)
	assert.Error(t, err)
	days, _ = svc.ValidityDays(ctx)
	assert.Equal(t, 14, days)
}
