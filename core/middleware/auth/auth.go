package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the admin secret.
const HeaderName = "X-Admin-Key"

// QueryName is the query parameter alternative, kept for compatibility with
// the original wire format.
const QueryName = "admin_secret_key"

// Config holds the auth middleware configuration.
type Config struct {
	// AdminKey is the secret compared against the caller-supplied credential.
	AdminKey string
}

// New returns a middleware that rejects requests whose admin credential does
// not exactly match the configured secret. An empty configured secret locks
// the protected group entirely rather than opening it.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplied := c.Get(HeaderName)
		if supplied == "" {
			supplied = c.Query(QueryName)
		}

		if cfg.AdminKey == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(cfg.AdminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid admin secret key",
			})
		}
		return c.Next()
	}
}
