package certapi

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// authMiddleware enforces the shared bearer secret on admin routes.
// A missing Authorization header is answered with 401, anything but the
// exact configured bearer token with 403. An empty configured token
// rejects every request.
func authMiddleware(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := string(c.Request().Header.Peek("Authorization"))
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing Authorization header"})
		}
		parts := strings.Split(auth, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(adminToken)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
		}
		return c.Next()
	}
}
