package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/esim-activation-service/internal/auth"
	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/events"
	"github.com/spec-kit/esim-activation-service/internal/repository"
	"github.com/spec-kit/esim-activation-service/internal/shortid"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// ActivationCreateInput carries creation fields; empty values mean "not set".
type ActivationCreateInput struct {
	PhoneNumber      string
	Notes            string
	ProvisioningCode string
	Status           domain.ActivationStatus
}

// ActivationPatch carries a partial update; nil fields are left unchanged.
type ActivationPatch struct {
	PhoneNumber      *string
	Notes            *string
	ProvisioningCode *string
	Status           *domain.ActivationStatus
}

// ActivationService coordinates the activation lifecycle.
type ActivationService struct {
	activations repository.ActivationRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewActivationService builds the service.
func NewActivationService(activations repository.ActivationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ActivationService {
	return &ActivationService{activations: activations, dispatcher: dispatcher, logger: logger}
}

// Create allocates an id and stores a new activation. Anonymous callers can
// only create standby records: a supplied provisioning code is rejected and
// any supplied status is ignored.
func (s *ActivationService) Create(ctx context.Context, input ActivationCreateInput, identity domain.Identity) (*domain.Activation, error) {
	identity, err := auth.Decide(auth.OpCreate, identity, input.ProvisioningCode != "")
	if err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(input.Status)})
	}

	status := domain.ActivationStatusStandby
	code := ""
	if !identity.Anonymous() {
		code = input.ProvisioningCode
		switch {
		case code != "":
			status = domain.ActivationStatusActive
		case input.Status != "":
			status = input.Status
		}
	}

	now := time.Now().UTC()
	activation := &domain.Activation{
		ID:               shortid.NewActivationID(),
		PhoneNumber:      input.PhoneNumber,
		Notes:            input.Notes,
		Status:           status,
		ProvisioningCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        identity.Actor(),
		UpdatedBy:        identity.Actor(),
	}

	if err := s.activations.Create(ctx, activation); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventActivationCreated, activation)
	return activation, nil
}

// Update applies a partial patch to an existing activation. Status
// resolution, in precedence order: an explicit standby clears the code and
// wins over any code in the same patch; otherwise a non-empty resulting code
// forces active; otherwise a supplied status is adopted; otherwise the status
// is left unchanged.
func (s *ActivationService) Update(ctx context.Context, id string, patch ActivationPatch, identity domain.Identity) (*domain.Activation, error) {
	identity, err := auth.Decide(auth.OpUpdate, identity, false)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*patch.Status)})
	}

	activation, err := s.activations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.PhoneNumber != nil {
		activation.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Notes != nil {
		activation.Notes = *patch.Notes
	}
	if patch.ProvisioningCode != nil {
		activation.ProvisioningCode = *patch.ProvisioningCode
	}

	switch {
	case patch.Status != nil && *patch.Status == domain.ActivationStatusStandby:
		activation.ProvisioningCode = ""
		activation.Status = domain.ActivationStatusStandby
	case activation.ProvisioningCode != "":
		activation.Status = domain.ActivationStatusActive
	case patch.Status != nil:
		activation.Status = *patch.Status
	}

	activation.UpdatedAt = time.Now().UTC()
	activation.UpdatedBy = identity.Actor()

	if err := s.activations.Update(ctx, activation); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventActivationUpdated, activation)
	return activation, nil
}

// Get returns the full internal record. Callers serving anonymous reads must
// project it through PublicView before responding.
func (s *ActivationService) Get(ctx context.Context, id string) (*domain.Activation, error) {
	return s.activations.GetByID(ctx, id)
}

// List returns all activations, newest first. Authenticated-only.
func (s *ActivationService) List(ctx context.Context, identity domain.Identity) ([]domain.Activation, error) {
	if _, err := auth.Decide(auth.OpList, identity, false); err != nil {
		return nil, err
	}
	return s.activations.List(ctx)
}

// Delete removes the record and its index membership. Authenticated-only.
func (s *ActivationService) Delete(ctx context.Context, id string, identity domain.Identity) error {
	identity, err := auth.Decide(auth.OpDelete, identity, false)
	if err != nil {
		return err
	}
	if err := s.activations.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.EventActivationDeleted, &domain.Activation{ID: id, UpdatedBy: identity.Actor()})
	return nil
}

func (s *ActivationService) publish(ctx context.Context, eventType events.EventType, activation *domain.Activation) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		ActivationID: activation.ID,
		Actor:        activation.UpdatedBy,
		Timestamp:    time.Now().UTC(),
		Payload: events.ActivationChangedPayload{
			Status:  activation.Status,
			HasCode: activation.ProvisioningCode != "",
		},
	})
}
