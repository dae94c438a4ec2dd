package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/fundgate/fundgate/internal/config"
)

// AdminAuth authenticates the administrator with a bearer token checked
// against the configured bcrypt hash and installs the admin account id as
// the request caller. In development mode with no hash configured the
// caller header is trusted as-is.
func AdminAuth(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminTokenBcrypt == "" {
			if cfg.IsDev() {
				return c.Next()
			}
			return fiber.NewError(http.StatusForbidden, "administrator authentication is not configured")
		}

		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminTokenBcrypt), []byte(token)); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid administrator token")
		}

		c.Locals(CallerLocal, cfg.AdminAccount.String())
		return c.Next()
	}
}
