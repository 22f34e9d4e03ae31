package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/esim-activation-service/internal/api/dto"
	"github.com/spec-kit/esim-activation-service/internal/auth"
	"github.com/spec-kit/esim-activation-service/internal/service"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// AuthHandler serves operator authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	token, _, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{Token: token, Username: req.Username})
}

// Verify GET /api/auth/verify. Reached only through the auth middleware.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	return c.JSON(dto.VerifyResponse{Valid: true, Username: identity.Username})
}

// ChangePassword POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}
	if len(req.NewPassword) < 6 {
		return apperrors.NewValidationError("new password must be at least 6 characters", nil)
	}

	if err := h.service.ChangePassword(c.UserContext(), auth.IdentityFromContext(c), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "password changed successfully"})
}

// ResetPassword POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SecurityAnswer == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("security answer and new password required", nil)
	}
	if len(req.NewPassword) < 4 {
		return apperrors.NewValidationError("password must be at least 4 characters", nil)
	}

	if err := h.service.ResetPassword(c.UserContext(), req.SecurityAnswer, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "password reset successfully"})
}
