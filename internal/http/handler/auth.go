package handler

import (
	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges a username and password for a bearer token.
func Login(cred service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		token, err := cred.Authenticate(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(loginResponse{Token: token})
	}
}

// Logout revokes the bearer token presented on the request. Revoking is
// idempotent, so a token that is already gone still yields 204.
func Logout(cred service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err := cred.Revoke(c.UserContext(), token); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
