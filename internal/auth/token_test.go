package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/esim-activation-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)
	identity := domain.Identity{ID: "admin", Username: "admin"}

	token, expiresAt, err := tm.GenerateToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenManager("secret-a", time.Hour).GenerateToken(domain.Identity{ID: "admin", Username: "admin"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.GenerateToken(domain.Identity{ID: "admin", Username: "admin"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("test-secret", time.Hour).Verify("not-a-jwt")
	assert.Error(t, err)
}
