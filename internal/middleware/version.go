package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// VersionMiddleware parses the X-Api-Version header, stores it in context and
// echoes it back on the response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", "1.0.0")

		// Support version aliases
		if version == "1.0" {
			version = "1.0.0"
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
