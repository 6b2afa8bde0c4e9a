package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffTokenService(t *testing.T) {
	svc, err := NewStaffTokenService("top-secret", time.Hour)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, expiresAt, err := svc.Issue("caja1", "verifier", time.Now())
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := svc.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "caja1", claims.Subject)
		assert.Equal(t, "verifier", claims.Role)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := svc.Issue("caja1", "verifier", time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.True(t, errors.Is(err, ErrTokenExpired))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewStaffTokenService("another-secret", time.Hour)
		require.NoError(t, err)
		token, _, err := other.Issue("admin", "admin", time.Now())
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.Error(t, err)
	})
}

func TestNewStaffTokenService_RequiresSecret(t *testing.T) {
	_, err := NewStaffTokenService("", time.Hour)
	assert.Error(t, err)
}
