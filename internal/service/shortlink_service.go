package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/events"
	"github.com/spec-kit/esim-activation-service/internal/lpa"
	"github.com/spec-kit/esim-activation-service/internal/repository"
	"github.com/spec-kit/esim-activation-service/internal/shortid"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// ShortLink is the result of creating a short alias for a provisioning code.
type ShortLink struct {
	ShortID          string `json:"shortId"`
	ShortURL         string `json:"shortUrl"`
	ProvisioningCode string `json:"lpaCode"`
}

// ResolvedLink is what a short id dereferences to.
type ResolvedLink struct {
	ProvisioningCode string `json:"lpaCode"`
	ActivationURL    string `json:"activationUrl"`
}

// ShortLinkService owns the code -> short-id mapping.
type ShortLinkService struct {
	links         repository.ShortLinkRepository
	publicBaseURL string
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewShortLinkService builds the service.
func NewShortLinkService(links repository.ShortLinkRepository, publicBaseURL string, dispatcher events.Dispatcher, logger *zap.Logger) *ShortLinkService {
	return &ShortLinkService{
		links:         links,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// Create allocates a collision-checked 6-character id and stores the mapping
// with a 30-day advisory expiry. The id is reserved with an atomic
// set-if-absent, so two concurrent creates can never share an id; losing the
// reservation race restarts allocation once before giving up.
func (s *ShortLinkService) Create(ctx context.Context, provisioningCode string) (*ShortLink, error) {
	if !strings.HasPrefix(provisioningCode, "LPA:") {
		return nil, apperrors.NewInvalidFormat("invalid provisioning code")
	}

	for attempt := 0; attempt < 2; attempt++ {
		id, err := shortid.Allocate(ctx, shortid.Alphabet, shortid.DefaultLength, s.links.Exists, shortid.DefaultMaxAttempts)
		if err != nil {
			return nil, err
		}

		reserved, err := s.links.Reserve(ctx, id, provisioningCode, domain.ShortLinkTTL)
		if err != nil {
			return nil, err
		}
		if !reserved {
			continue
		}

		s.publish(ctx, id)
		return &ShortLink{
			ShortID:          id,
			ShortURL:         s.publicBaseURL + "/s/" + id,
			ProvisioningCode: provisioningCode,
		}, nil
	}

	return nil, apperrors.NewExhausted("short link reservation exhausted retry budget")
}

// Resolve maps a short id back to its provisioning code and activation URL.
// Expired and never-issued ids both come back NOT_FOUND.
func (s *ShortLinkService) Resolve(ctx context.Context, shortID string) (*ResolvedLink, error) {
	code, err := s.links.Resolve(ctx, shortID)
	if err != nil {
		return nil, err
	}
	return &ResolvedLink{
		ProvisioningCode: code,
		ActivationURL:    lpa.ActivationURL(code),
	}, nil
}

func (s *ShortLinkService) publish(ctx context.Context, shortID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventShortLinkCreated,
		Actor:     domain.AnonymousActor,
		Timestamp: time.Now().UTC(),
		Payload:   events.ShortLinkCreatedPayload{ShortID: shortID},
	})
}
