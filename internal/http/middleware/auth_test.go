package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docvault/internal/model"
	"docvault/internal/service"
	serviceMocks "docvault/internal/service/mocks"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"well-formed", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"trailing space", "Bearer abc123 ", "abc123"},
		{"empty header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer ", ""},
		{"bare token", "abc123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BearerToken(tt.header))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	newApp := func(cred service.CredentialService) *fiber.App {
		app := fiber.New()
		app.Use(RequireAuth(cred))
		app.Get("/protected", func(c *fiber.Ctx) error {
			username, _ := c.Locals(UsernameLocalKey).(string)
			role, _ := c.Locals(RoleLocalKey).(string)
			return c.JSON(fiber.Map{"username": username, "role": role})
		})
		return app
	}

	t.Run("valid token reaches the handler with identity set", func(t *testing.T) {
		mockCred := new(serviceMocks.MockCredentialService)
		mockCred.On("Validate", mock.Anything, "good-token").
			Return(&model.User{Username: "admin", Role: model.RoleAdmin}, nil)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		resp, _ := newApp(mockCred).Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockCred.AssertExpectations(t)
	})

	t.Run("missing header", func(t *testing.T) {
		mockCred := new(serviceMocks.MockCredentialService)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, _ := newApp(mockCred).Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockCred.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
	})

	t.Run("rejected token", func(t *testing.T) {
		mockCred := new(serviceMocks.MockCredentialService)
		mockCred.On("Validate", mock.Anything, "bad-token").
			Return(nil, service.ErrUnauthorized)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")
		resp, _ := newApp(mockCred).Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("auth backend failure is not a 401", func(t *testing.T) {
		mockCred := new(serviceMocks.MockCredentialService)
		mockCred.On("Validate", mock.Anything, "some-token").
			Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")
		resp, _ := newApp(mockCred).Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	newApp := func(role string) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(RoleLocalKey, role)
			return c.Next()
		})
		app.Use(RequireRole(model.RoleAdmin))
		app.Get("/admin", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		resp, _ := newApp(model.RoleAdmin).Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		resp, _ := newApp(model.RoleUser).Test(req)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("no role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		resp, _ := newApp("").Test(req)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
