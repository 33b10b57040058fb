package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/auth"
)

// JWTAuth verifies the bearer token and stores the caller identity in
// request locals. Everything downstream trusts user_id/role from here and
// never from the request body.
func JWTAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization"})
		}
		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}
