package dto

import (
	"time"

	"github.com/spec-kit/esim-activation-service/internal/domain"
)

// CreateActivationRequest payload for new activations. Anonymous callers may
// only populate phoneNumber and notes.
type CreateActivationRequest struct {
	PhoneNumber      string                  `json:"phoneNumber"`
	Notes            string                  `json:"notes"`
	ProvisioningCode string                  `json:"lpaCode"`
	Status           domain.ActivationStatus `json:"status"`
}

// UpdateActivationRequest is a partial patch; absent fields stay unchanged.
type UpdateActivationRequest struct {
	PhoneNumber      *string                  `json:"phoneNumber"`
	Notes            *string                  `json:"notes"`
	ProvisioningCode *string                  `json:"lpaCode"`
	Status           *domain.ActivationStatus `json:"status"`
}

// ActivationResponse is the full record returned to authenticated operators.
type ActivationResponse struct {
	ID               string                  `json:"id"`
	PhoneNumber      string                  `json:"phoneNumber"`
	Notes            string                  `json:"notes"`
	Status           domain.ActivationStatus `json:"status"`
	ProvisioningCode string                  `json:"lpaCode"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
	CreatedBy        string                  `json:"createdBy"`
	UpdatedBy        string                  `json:"updatedBy,omitempty"`
}
