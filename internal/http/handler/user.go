package handler

import (
	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions a new account. Admin only.
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := svc.Create(c.UserContext(), req.Username, req.Password, req.Role)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// GetUser returns an account by username. The password hash is never serialized.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.Get(c.UserContext(), c.Params("name"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

// UpdateUser changes the password and/or role of an account. Admin only.
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := svc.Update(c.UserContext(), c.Params("name"), req.Password, req.Role)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

// DeleteUser removes an account and, via cascade, its tokens. Admin only.
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("name")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
