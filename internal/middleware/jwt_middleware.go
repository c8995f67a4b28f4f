package middleware

import (
	"strings"

	"catalogs/internal/models"
	"catalogs/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the Locals key under which the authenticated user is stored.
const UserKey = "user"

// AuthRequired is a Fiber middleware that resolves the bearer token into the
// stored user record. The identity is re-verified on every request; nothing
// is cached between requests.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user placed in Locals by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
