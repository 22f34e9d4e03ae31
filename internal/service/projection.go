package service

import (
	"strings"
	"time"

	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/lpa"
)

// PublicActivation is the anonymous-safe view of an activation.
type PublicActivation struct {
	ID               string                  `json:"id"`
	Status           domain.ActivationStatus `json:"status"`
	PhoneNumber      *string                 `json:"phoneNumber"`
	ProvisioningCode *string                 `json:"lpaCode"`
	ActivationURL    *string                 `json:"activationUrl"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

// PublicView projects the full internal record to what anonymous callers may
// see: the phone number masked, and the provisioning code plus activation URL
// exposed only once the record is active.
func PublicView(activation *domain.Activation) PublicActivation {
	view := PublicActivation{
		ID:        activation.ID,
		Status:    activation.Status,
		CreatedAt: activation.CreatedAt,
		UpdatedAt: activation.UpdatedAt,
	}

	if activation.PhoneNumber != "" {
		masked := MaskPhoneNumber(activation.PhoneNumber)
		view.PhoneNumber = &masked
	}

	if activation.Status == domain.ActivationStatusActive && activation.ProvisioningCode != "" {
		code := activation.ProvisioningCode
		url := lpa.ActivationURL(code)
		view.ProvisioningCode = &code
		view.ActivationURL = &url
	}

	return view
}

// MaskPhoneNumber replaces every character except the last four with '*'.
// Numbers shorter than four characters are returned unchanged: masking them
// would leak nothing useful while producing confusing output.
func MaskPhoneNumber(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
