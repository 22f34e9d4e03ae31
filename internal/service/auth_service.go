package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/esim-activation-service/internal/auth"
	"github.com/spec-kit/esim-activation-service/internal/config"
	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/repository"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// AuthService coordinates operator login and password management.
type AuthService struct {
	credentials       repository.CredentialRepository
	tokenMgr          *auth.TokenManager
	bcryptCost        int
	bootstrapUsername string
	bootstrapPassword string
	securityAnswer    string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, credentials repository.CredentialRepository) *AuthService {
	return &AuthService{
		credentials:       credentials,
		tokenMgr:          auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost:        cfg.BcryptCost,
		bootstrapUsername: cfg.BootstrapUsername,
		bootstrapPassword: cfg.BootstrapPassword,
		securityAnswer:    cfg.SecurityAnswer,
	}
}

// Login authenticates an operator and issues a bearer token. When no
// credential record exists yet and the configured bootstrap credentials are
// presented, the record is created on first login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	credential, err := s.credentials.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if auth.ComparePassword(credential.PasswordHash, password) != nil {
			return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
	case apperrors.IsCode(err, "NOT_FOUND"):
		if s.bootstrapPassword == "" || username != s.bootstrapUsername || password != s.bootstrapPassword {
			return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		credential, err = s.createCredential(ctx, username, password, false)
		if err != nil {
			return "", time.Time{}, err
		}
	default:
		return "", time.Time{}, err
	}

	return s.tokenMgr.GenerateToken(domain.Identity{ID: credential.ID, Username: credential.Username})
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, currentPassword, newPassword string) error {
	credential, err := s.credentials.GetByUsername(ctx, identity.Username)
	switch {
	case err == nil:
		if auth.ComparePassword(credential.PasswordHash, currentPassword) != nil {
			return apperrors.NewUnauthorized("current password is incorrect")
		}
	case apperrors.IsCode(err, "NOT_FOUND"):
		// Token issued before the first record was persisted: the current
		// password must be the bootstrap one.
		if s.bootstrapPassword == "" || currentPassword != s.bootstrapPassword {
			return apperrors.NewUnauthorized("current password is incorrect")
		}
		credential = &domain.Credential{
			ID:        identity.ID,
			Username:  identity.Username,
			CreatedAt: time.Now().UTC(),
		}
	default:
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	credential.PasswordHash = hash
	credential.PasswordSetByUser = true
	credential.UpdatedAt = time.Now().UTC()
	return s.credentials.SetByUsername(ctx, credential)
}

// ResetPassword resets the bootstrap operator's password after verifying the
// security answer, compared case-insensitively with surrounding whitespace
// ignored. The answer stored in the backing store overrides the configured
// fallback.
func (s *AuthService) ResetPassword(ctx context.Context, securityAnswer, newPassword string) error {
	correct, err := s.credentials.SecurityAnswer(ctx)
	if err != nil {
		return err
	}
	if correct == "" {
		correct = s.securityAnswer
	}
	if correct == "" || !strings.EqualFold(strings.TrimSpace(securityAnswer), strings.TrimSpace(correct)) {
		return apperrors.NewUnauthorized("incorrect security answer")
	}

	credential, err := s.credentials.GetByUsername(ctx, s.bootstrapUsername)
	if apperrors.IsCode(err, "NOT_FOUND") {
		_, err = s.createCredential(ctx, s.bootstrapUsername, newPassword, true)
		return err
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	credential.PasswordHash = hash
	credential.PasswordSetByUser = true
	credential.UpdatedAt = time.Now().UTC()
	return s.credentials.SetByUsername(ctx, credential)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) createCredential(ctx context.Context, username, password string, setByUser bool) (*domain.Credential, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	credential := &domain.Credential{
		ID:                uuid.NewString(),
		Username:          username,
		PasswordHash:      hash,
		PasswordSetByUser: setByUser,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.credentials.SetByUsername(ctx, credential); err != nil {
		return nil, err
	}
	return credential, nil
}
