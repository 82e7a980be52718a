package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gatesim/internal/types"
)

// APIVersion is the version served when the client does not ask for one
const APIVersion = "1.0.0"

// VersionMiddleware normalizes the X-Api-Version header, rejects unknown major
// versions and stores the result in c.Locals("apiVersion")
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimPrefix(c.Get("X-Api-Version", APIVersion), "v")

		// Support version aliases
		switch version {
		case "1", "1.0":
			version = APIVersion
		}
		if major, _, _ := strings.Cut(version, "."); major != "1" {
			return types.BadRequest("Unsupported API version '%s'", version)
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)
		return c.Next()
	}
}
