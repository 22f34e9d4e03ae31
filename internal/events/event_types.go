package events

import (
	"time"

	"github.com/spec-kit/esim-activation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventActivationCreated EventType = "activation_created"
	EventActivationUpdated EventType = "activation_updated"
	EventActivationDeleted EventType = "activation_deleted"
	EventShortLinkCreated  EventType = "shortlink_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	ActivationID string      `json:"activation_id,omitempty"`
	Actor        string      `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload,omitempty"`
}

// ActivationChangedPayload payload.
type ActivationChangedPayload struct {
	Status  domain.ActivationStatus `json:"status"`
	HasCode bool                    `json:"has_code"`
}

// ShortLinkCreatedPayload payload.
type ShortLinkCreatedPayload struct {
	ShortID string `json:"short_id"`
}
