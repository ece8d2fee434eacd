package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

const (
	// UsernameLocalKey is the context locals key holding the authenticated username.
	UsernameLocalKey = "auth_username"
	// RoleLocalKey is the context locals key holding the authenticated user's role.
	RoleLocalKey = "auth_role"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// Returns "" when the header is absent or not a bearer scheme.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// RequireAuth resolves the bearer token to a user and stores the username and
// role in context locals. Requests without a valid token get 401; the response
// never distinguishes a missing token from a revoked or expired one.
func RequireAuth(cred service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return fiber.ErrUnauthorized
		}

		user, err := cred.Validate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return fiber.ErrUnauthorized
			}
			return fiber.ErrServiceUnavailable
		}

		c.Locals(UsernameLocalKey, user.Username)
		c.Locals(RoleLocalKey, user.Role)

		return c.Next()
	}
}

// RequireRole rejects requests whose authenticated user does not carry the
// given role. Must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r, _ := c.Locals(RoleLocalKey).(string); r != role {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}
