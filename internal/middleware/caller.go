package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/fundgate/fundgate/internal/account"
)

const (
	callerHeader = "X-Caller-Account"

	// CallerLocal is the fiber.Ctx local holding the authenticated caller account id.
	CallerLocal = "caller_account"
)

// Caller extracts the pre-authenticated caller identity from the request.
// Authentication itself happens upstream; this service only needs the
// resulting account id.
func Caller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Header values alias fasthttp's reusable request buffer; copy
		// before the id outlives this request (e.g. as a ledger map key).
		raw := utils.CopyString(c.Get(callerHeader))
		if raw == "" {
			return c.Next()
		}
		acct, err := account.Parse(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid caller account")
		}
		c.Locals(CallerLocal, acct.String())
		return c.Next()
	}
}

// CallerFrom returns the caller account stored on the request, if any.
func CallerFrom(c *fiber.Ctx) (account.ID, bool) {
	raw, _ := c.Locals(CallerLocal).(string)
	if raw == "" {
		return "", false
	}
	return account.ID(raw), true
}
