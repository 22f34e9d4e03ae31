package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/persistence"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

const (
	credentialKeyPrefix = "user:"
	securityAnswerKey   = "security:answer"
)

// CredentialRepository stores operator credential records.
type CredentialRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Credential, error)
	SetByUsername(ctx context.Context, credential *domain.Credential) error
	// SecurityAnswer returns the stored reset-question answer, or "" when
	// none has been set.
	SecurityAnswer(ctx context.Context) (string, error)
}

type credentialRepository struct {
	store persistence.KV
}

// NewCredentialRepository instantiates repository.
func NewCredentialRepository(store persistence.KV) CredentialRepository {
	return &credentialRepository{store: store}
}

func (r *credentialRepository) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	raw, err := r.store.Get(ctx, credentialKeyPrefix+username)
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	var credential domain.Credential
	if err := json.Unmarshal([]byte(raw), &credential); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &credential, nil
}

func (r *credentialRepository) SetByUsername(ctx context.Context, credential *domain.Credential) error {
	raw, err := json.Marshal(credential)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := r.store.Set(ctx, credentialKeyPrefix+credential.Username, string(raw), 0); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

func (r *credentialRepository) SecurityAnswer(ctx context.Context) (string, error) {
	answer, err := r.store.Get(ctx, securityAnswerKey)
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return "", nil
		}
		return "", apperrors.NewStoreUnavailable(err)
	}
	return answer, nil
}
