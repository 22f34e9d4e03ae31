package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/esim-activation-service/internal/api/dto"
	"github.com/spec-kit/esim-activation-service/internal/service"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// ShortLinksHandler serves the short-link endpoints.
type ShortLinksHandler struct {
	service *service.ShortLinkService
}

// NewShortLinksHandler constructs handler.
func NewShortLinksHandler(shortLinkService *service.ShortLinkService) *ShortLinksHandler {
	return &ShortLinksHandler{service: shortLinkService}
}

// Create POST /api/shortlink.
func (h *ShortLinksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateShortLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	link, err := h.service.Create(c.UserContext(), req.ProvisioningCode)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ShortLinkResponse{
		ShortID:          link.ShortID,
		ShortURL:         link.ShortURL,
		ProvisioningCode: link.ProvisioningCode,
	})
}

// Resolve GET /api/shortlink/:id.
func (h *ShortLinksHandler) Resolve(c *fiber.Ctx) error {
	resolved, err := h.service.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ResolvedShortLinkResponse{
		ProvisioningCode: resolved.ProvisioningCode,
		ActivationURL:    resolved.ActivationURL,
	})
}
