package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/esim-activation-service/internal/persistence"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

const shortLinkKeyPrefix = "shortlink:"

// ShortLinkRepository owns the ephemeral shortId -> provisioning-code mapping.
type ShortLinkRepository interface {
	// Reserve atomically claims shortID and reports whether the claim won.
	Reserve(ctx context.Context, shortID, provisioningCode string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, shortID string) (bool, error)
	Resolve(ctx context.Context, shortID string) (string, error)
}

type shortLinkRepository struct {
	store persistence.KV
}

// NewShortLinkRepository instantiates repository.
func NewShortLinkRepository(store persistence.KV) ShortLinkRepository {
	return &shortLinkRepository{store: store}
}

func (r *shortLinkRepository) Reserve(ctx context.Context, shortID, provisioningCode string, ttl time.Duration) (bool, error) {
	ok, err := r.store.SetIfAbsent(ctx, shortLinkKeyPrefix+shortID, provisioningCode, ttl)
	if err != nil {
		return false, apperrors.NewStoreUnavailable(err)
	}
	return ok, nil
}

func (r *shortLinkRepository) Exists(ctx context.Context, shortID string) (bool, error) {
	ok, err := r.store.Exists(ctx, shortLinkKeyPrefix+shortID)
	if err != nil {
		return false, apperrors.NewStoreUnavailable(err)
	}
	return ok, nil
}

// Resolve returns the stored code. A never-issued id and an expired one are
// indistinguishable to the caller.
func (r *shortLinkRepository) Resolve(ctx context.Context, shortID string) (string, error) {
	code, err := r.store.Get(ctx, shortLinkKeyPrefix+shortID)
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return "", apperrors.NewNotFound("short link", map[string]any{"shortId": shortID})
		}
		return "", apperrors.NewStoreUnavailable(err)
	}
	return code, nil
}
