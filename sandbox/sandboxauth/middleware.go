package sandboxauth

import (
	"strings"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "user_id"
	localEmail  = "user_email"
)

// Middleware requires a valid bearer token and stores the caller in Locals
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return sandbox.ErrUnauthorized().WithDetail("reason", "missing authorization header")
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return sandbox.ErrUnauthorized().WithDetail("reason", "invalid authorization format")
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return err
		}

		c.Locals(localUserID, claims.UserID())
		c.Locals(localEmail, claims.Email)
		return c.Next()
	}
}

// UserID returns the authenticated caller
func UserID(c *fiber.Ctx) (kernel.UserID, bool) {
	id, ok := c.Locals(localUserID).(kernel.UserID)
	return id, ok && !id.IsEmpty()
}

func Email(c *fiber.Ctx) (kernel.Email, bool) {
	email, ok := c.Locals(localEmail).(kernel.Email)
	return email, ok
}
