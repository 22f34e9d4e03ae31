package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/esim-activation-service/internal/api/dto"
	"github.com/spec-kit/esim-activation-service/internal/auth"
	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/service"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// ActivationsHandler serves the public and admin activation endpoints.
type ActivationsHandler struct {
	service *service.ActivationService
}

// NewActivationsHandler constructs handler.
func NewActivationsHandler(activationService *service.ActivationService) *ActivationsHandler {
	return &ActivationsHandler{service: activationService}
}

// GetPublic GET /api/activation/:id. Anonymous; the record is projected.
func (h *ActivationsHandler) GetPublic(c *fiber.Ctx) error {
	activation, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(service.PublicView(activation))
}

// Create POST /api/admin/activations. Anonymous callers create standby
// records; operators may set any field.
func (h *ActivationsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateActivationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	activation, err := h.service.Create(c.UserContext(), service.ActivationCreateInput{
		PhoneNumber:      req.PhoneNumber,
		Notes:            req.Notes,
		ProvisioningCode: req.ProvisioningCode,
		Status:           req.Status,
	}, auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(activationResponse(activation))
}

// List GET /api/admin/activations.
func (h *ActivationsHandler) List(c *fiber.Ctx) error {
	activations, err := h.service.List(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	items := make([]dto.ActivationResponse, 0, len(activations))
	for i := range activations {
		items = append(items, activationResponse(&activations[i]))
	}
	return c.JSON(items)
}

// Update PUT /api/admin/activations/:id.
func (h *ActivationsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateActivationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	activation, err := h.service.Update(c.UserContext(), c.Params("id"), service.ActivationPatch{
		PhoneNumber:      req.PhoneNumber,
		Notes:            req.Notes,
		ProvisioningCode: req.ProvisioningCode,
		Status:           req.Status,
	}, auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(activationResponse(activation))
}

// Delete DELETE /api/admin/activations/:id.
func (h *ActivationsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id"), auth.IdentityFromContext(c)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "activation deleted"})
}

func activationResponse(activation *domain.Activation) dto.ActivationResponse {
	return dto.ActivationResponse{
		ID:               activation.ID,
		PhoneNumber:      activation.PhoneNumber,
		Notes:            activation.Notes,
		Status:           activation.Status,
		ProvisioningCode: activation.ProvisioningCode,
		CreatedAt:        activation.CreatedAt,
		UpdatedAt:        activation.UpdatedAt,
		CreatedBy:        activation.CreatedBy,
		UpdatedBy:        activation.UpdatedBy,
	}
}
