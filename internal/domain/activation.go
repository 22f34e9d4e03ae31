package domain

import "time"

// ActivationStatus enumerates lifecycle states for activations.
type ActivationStatus string

const (
	ActivationStatusStandby    ActivationStatus = "standby"
	ActivationStatusProcessing ActivationStatus = "processing"
	ActivationStatusActive     ActivationStatus = "active"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ActivationStatus) Valid() bool {
	switch s {
	case ActivationStatusStandby, ActivationStatusProcessing, ActivationStatusActive:
		return true
	}
	return false
}

// AnonymousActor is stamped on records created without an authenticated identity.
const AnonymousActor = "webapp"

// Activation is the aggregate for one eSIM provisioning request.
// ProvisioningCode is serialized as lpaCode to keep stored records readable by
// the carrier tooling that consumes them.
type Activation struct {
	ID               string           `json:"id"`
	PhoneNumber      string           `json:"phoneNumber"`
	Notes            string           `json:"notes"`
	Status           ActivationStatus `json:"status"`
	ProvisioningCode string           `json:"lpaCode"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	CreatedBy        string           `json:"createdBy"`
	UpdatedBy        string           `json:"updatedBy,omitempty"`
}
