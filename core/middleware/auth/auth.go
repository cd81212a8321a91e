package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Header is the request header carrying the API key.
const Header = "X-API-Key"

// Config configures the auth middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables authentication.
	ApiKey string
	// Skip lists paths served without authentication.
	Skip []string
}

// New creates a middleware rejecting requests whose X-API-Key header does not
// match cfg.ApiKey with 401 Unauthorized.
func New(cfg Config) fiber.Handler {
	skip := make(map[string]struct{}, len(cfg.Skip))
	for _, p := range cfg.Skip {
		skip[p] = struct{}{}
	}
	expected := []byte(cfg.ApiKey)

	return func(c *fiber.Ctx) error {
		if len(expected) == 0 {
			return c.Next()
		}
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}
		if subtle.ConstantTimeCompare([]byte(c.Get(Header)), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
