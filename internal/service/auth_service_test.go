package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/esim-activation-service/internal/config"
	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/repository"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

func newAuthService(store *memKV) (*AuthService, repository.CredentialRepository) {
	repo := repository.NewCredentialRepository(store)
	cfg := config.AuthConfig{
		JWTSecret:         "test-secret",
		TokenTTLHours:     24,
		BcryptCost:        4, // minimum cost keeps the tests fast
		BootstrapUsername: "admin",
		BootstrapPassword: "admin123",
		SecurityAnswer:    "blue house",
	}
	return NewAuthService(cfg, repo), repo
}

func TestLoginBootstrapThenStoredCredential(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newAuthService(newMemKV())

	// First login with bootstrap credentials creates the record.
	token, _, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	credential, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", credential.Username)
	assert.NotEmpty(t, credential.PasswordHash)
	assert.NotEqual(t, "admin123", credential.PasswordHash)

	// The issued token verifies to the operator identity.
	identity, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)

	// Subsequent logins go through the stored hash.
	_, _, err = svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "admin", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newMemKV())
	_, _, err := svc.Login(context.Background(), "intruder", "admin123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newAuthService(newMemKV())
	identity := domain.Identity{ID: "admin", Username: "admin"}

	_, _, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, identity, "wrong", "new-password")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	require.NoError(t, svc.ChangePassword(ctx, identity, "admin123", "new-password"))

	credential, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, credential.PasswordSetByUser)

	_, _, err = svc.Login(ctx, "admin", "admin123")
	require.Error(t, err)
	_, _, err = svc.Login(ctx, "admin", "new-password")
	require.NoError(t, err)
}

func TestResetPasswordWithSecurityAnswer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemKV()
	svc, _ := newAuthService(store)

	err := svc.ResetPassword(ctx, "wrong answer", "fresh-password")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	// Case and surrounding whitespace are ignored.
	require.NoError(t, svc.ResetPassword(ctx, "  Blue HOUSE ", "fresh-password"))

	_, _, err = svc.Login(ctx, "admin", "fresh-password")
	require.NoError(t, err)
}

func TestResetPasswordPrefersStoredAnswer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemKV()
	svc, _ := newAuthService(store)

	require.NoError(t, store.Set(ctx, "security:answer", "red door", 0))

	err := svc.ResetPassword(ctx, "blue house", "fresh-password")
	require.Error(t, err, "configured fallback must not work once an answer is stored")

	require.NoError(t, svc.ResetPassword(ctx, "red door", "fresh-password"))
}
