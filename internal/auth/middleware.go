package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/esim-activation-service/internal/domain"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens and loads identities.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require enforces authentication for protected routes.
func (m *AuthMiddleware) Require(c *fiber.Ctx) error {
	identity, err := m.identityFromHeader(c)
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional loads an identity when a valid bearer token is present and lets
// anonymous callers through. An invalid token is treated as anonymous, as
// the create endpoint tolerates stale tokens from the public web app.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if identity, err := m.identityFromHeader(c); err == nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

func (m *AuthMiddleware) identityFromHeader(c *fiber.Ctx) (domain.Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return domain.Identity{}, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Identity{}, apperrors.NewUnauthorized("invalid authorization header")
	}

	identity, err := m.tokens.Verify(parts[1])
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorized("invalid or expired token")
	}
	return identity, nil
}

// IdentityFromContext retrieves the authenticated operator. The zero identity
// means the caller is anonymous.
func IdentityFromContext(c *fiber.Ctx) domain.Identity {
	if val, ok := c.Locals(identityKey).(domain.Identity); ok {
		return val
	}
	return domain.Identity{}
}
