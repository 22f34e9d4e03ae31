package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/esim-activation-service/internal/repository"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

func newShortLinkService(store *memKV) *ShortLinkService {
	return NewShortLinkService(repository.NewShortLinkRepository(store), "https://ezrefillny.net/", nil, zap.NewNop())
}

func TestShortLinkCreateAndResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newShortLinkService(newMemKV())

	link, err := svc.Create(ctx, "LPA:1$smdp.example.com$ABC123")
	require.NoError(t, err)
	require.Len(t, link.ShortID, 6)
	assert.Equal(t, "https://ezrefillny.net/s/"+link.ShortID, link.ShortURL)
	assert.Equal(t, "LPA:1$smdp.example.com$ABC123", link.ProvisioningCode)

	resolved, err := svc.Resolve(ctx, link.ShortID)
	require.NoError(t, err)
	assert.Equal(t, "LPA:1$smdp.example.com$ABC123", resolved.ProvisioningCode)
	assert.Contains(t, resolved.ActivationURL, "esimsetup.apple.com")
	assert.Contains(t, resolved.ActivationURL, "LPA%3A1%24smdp.example.com%24ABC123")
}

func TestShortLinkCreateRequiresPrefix(t *testing.T) {
	t.Parallel()

	svc := newShortLinkService(newMemKV())

	for _, code := range []string{"", "ABC123", "lpa:1$x$y"} {
		_, err := svc.Create(context.Background(), code)
		require.Errorf(t, err, "code %q", code)
		assert.True(t, apperrors.IsCode(err, "INVALID_FORMAT"), "code %q", code)
	}
}

func TestShortLinkResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := newShortLinkService(newMemKV()).Resolve(context.Background(), "zzzzzz")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestShortLinkExpiredLooksNeverIssued(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemKV()
	repo := repository.NewShortLinkRepository(store)
	svc := NewShortLinkService(repo, "https://ezrefillny.net", nil, zap.NewNop())

	reserved, err := repo.Reserve(ctx, "abc234", "LPA:1$x$y", time.Millisecond)
	require.NoError(t, err)
	require.True(t, reserved)
	time.Sleep(10 * time.Millisecond)

	_, err = svc.Resolve(ctx, "abc234")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestShortLinkIDsUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newShortLinkService(newMemKV())

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		link, err := svc.Create(ctx, "LPA:1$smdp.example.com$ABC123")
		require.NoError(t, err)
		require.False(t, seen[link.ShortID], "duplicate short id issued")
		seen[link.ShortID] = true
	}
}
