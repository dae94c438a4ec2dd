package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundgate/fundgate/internal/ledger"
)

// RegisterFundsRoutes wires ledger endpoints. Withdrawals and transfers are
// administrator-only; deposits carry the caller's own identity.
func RegisterFundsRoutes(r fiber.Router, h *ledger.Handler, adminAuth, depositLimiter fiber.Handler) {
	r.Post("/deposits", depositLimiter, h.Deposit)
	r.Post("/withdrawals", adminAuth, h.Withdraw)
	r.Post("/transfers", adminAuth, h.Transfer)
	r.Get("/accounts/:account/balance", h.Balance)
	r.Get("/entries", adminAuth, h.Entries)
}
