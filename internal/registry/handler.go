package registry

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fundgate/fundgate/internal/account"
	"github.com/fundgate/fundgate/internal/middleware"
)

// Handler exposes whitelist HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a whitelist HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addRequest struct {
	Account string `json:"account"`
}

type bulkRequest struct {
	Action   string   `json:"action"`
	Accounts []string `json:"accounts"`
}

// Add appends one account to the whitelist.
func (h *Handler) Add(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "caller identity required")
	}

	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acct, err := account.Parse(req.Account)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	if err := h.service.Add(c.UserContext(), caller, acct); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"account": acct.String(), "whitelisted": true})
}

// Remove deletes one whitelist occurrence of the account.
func (h *Handler) Remove(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "caller identity required")
	}

	acct, err := account.Parse(c.Params("account"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	if err := h.service.Remove(c.UserContext(), caller, acct); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account": acct.String(), "whitelisted": false})
}

// Bulk applies add or remove to each listed account in order. The batch is
// not transactional; the response reports how many elements were applied
// before any failure.
func (h *Handler) Bulk(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "caller identity required")
	}

	var req bulkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	accts := make([]account.ID, 0, len(req.Accounts))
	for _, raw := range req.Accounts {
		acct, err := account.Parse(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid account id")
		}
		accts = append(accts, acct)
	}

	var applied int
	var err error
	switch req.Action {
	case "add":
		applied, err = h.service.BulkAdd(c.UserContext(), caller, accts)
	case "remove":
		applied, err = h.service.BulkRemove(c.UserContext(), caller, accts)
	default:
		return fiber.NewError(http.StatusBadRequest, "action must be add or remove")
	}

	if err != nil {
		if errors.Is(err, ErrAdminOnly) {
			return fiber.NewError(http.StatusForbidden, "administrator only")
		}
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"applied": applied,
			"error":   err.Error(),
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"applied": applied})
}

// IsWhitelisted reports membership for a single account.
func (h *Handler) IsWhitelisted(c *fiber.Ctx) error {
	acct, err := account.Parse(c.Params("account"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}
	whitelisted, err := h.service.IsWhitelisted(c.UserContext(), acct)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account": acct.String(), "whitelisted": whitelisted})
}

// Members returns the whitelist snapshot in insertion order.
func (h *Handler) Members(c *fiber.Ctx) error {
	members, err := h.service.Members(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.String()
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"members": out})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrAdminOnly):
		return fiber.NewError(http.StatusForbidden, "administrator only")
	case errors.Is(err, ErrNotInWhitelist):
		return fiber.NewError(http.StatusNotFound, "account not in whitelist")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
