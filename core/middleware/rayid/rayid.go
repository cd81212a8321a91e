package rayid

import (
	"proc-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the ray ID.
const Header = "X-Ray-ID"

// New creates a middleware that assigns every request a ray ID. An incoming
// X-Ray-ID header is reused; otherwise a random UUID is generated. The ID is
// stored in the context locals and echoed in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}

// Get returns the ray ID of the request, or an empty string.
func Get(c *fiber.Ctx) string {
	rid, _ := c.Locals(logger.RayIDKey).(string)
	return rid
}
