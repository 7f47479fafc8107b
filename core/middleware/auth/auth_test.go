package auth_test

import (
	"net/http/httptest"
	"testing"

	"donation-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{AdminKey: key}))
	app.Get("/secret", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	app := newProtectedApp("s3cret")

	t.Run("Missing Credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secret", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secret", nil)
		req.Header.Set(auth.HeaderName, "nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Header Credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secret", nil)
		req.Header.Set(auth.HeaderName, "s3cret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Query Credential", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secret?admin_secret_key=s3cret", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Empty Configured Key Locks Group", func(t *testing.T) {
		locked := newProtectedApp("")
		req := httptest.NewRequest("GET", "/secret?admin_secret_key=", nil)
		resp, err := locked.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
