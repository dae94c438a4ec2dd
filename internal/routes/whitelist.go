package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundgate/fundgate/internal/registry"
)

// RegisterWhitelistRoutes wires whitelist endpoints. Mutations require the
// administrator; membership queries are open.
func RegisterWhitelistRoutes(r fiber.Router, h *registry.Handler, adminAuth fiber.Handler) {
	r.Post("/whitelist", adminAuth, h.Add)
	r.Post("/whitelist/bulk", adminAuth, h.Bulk)
	r.Delete("/whitelist/:account", adminAuth, h.Remove)
	r.Get("/whitelist", h.Members)
	r.Get("/whitelist/:account", h.IsWhitelisted)
}
