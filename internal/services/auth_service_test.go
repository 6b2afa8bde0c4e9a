package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, store *memStore) AuthService {
	t.Helper()
	tokens, err := jwt.NewStaffTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(fakeVerifierRepo{store}, tokens, "admin", string(hash))
}

func TestAuth_AdminLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newMemStore())

	result, err := svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Role)

	session, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Subject)
	assert.Equal(t, models.RoleAdmin, session.Role)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_VerifierLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newMemStore())

	verifier, err := svc.CreateVerifier(ctx, &models.VerifierRequest{Username: "caja1", Password: "secreto123"}, testNow)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", verifier.Password)

	_, err = svc.CreateVerifier(ctx, &models.VerifierRequest{Username: "caja1", Password: "otraclave1"}, testNow)
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = svc.CreateVerifier(ctx, &models.VerifierRequest{Username: "Admin", Password: "otraclave1"}, testNow)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	result, err := svc.Login(ctx, &models.LoginRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleVerifier, result.Role)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "caja1", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &models.LoginRequest{Username: "caja9", Password: "secreto123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	verifiers, err := svc.ListVerifiers(ctx)
	require.NoError(t, err)
	require.Len(t, verifiers, 1)

	require.NoError(t, svc.DeleteVerifier(ctx, verifier.ID.Hex()))
	assert.ErrorIs(t, svc.DeleteVerifier(ctx, verifier.ID.Hex()), ErrVerifierNotFound)
	assert.ErrorIs(t, svc.DeleteVerifier(ctx, "not-hex"), ErrVerifierNotFound)
}

func TestAuth_ParseTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(t, newMemStore())
	other, err := jwt.NewStaffTokenService("other-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue("admin", models.RoleAdmin, time.Now())
	require.NoError(t, err)
	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}
