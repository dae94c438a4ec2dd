package ledger

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fundgate/fundgate/internal/account"
	"github.com/fundgate/fundgate/internal/custody"
	"github.com/fundgate/fundgate/internal/middleware"
)

// Handler exposes fund ledger HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a ledger HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

type withdrawRequest struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

type transferRequest struct {
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Amount      int64  `json:"amount"`
}

// Deposit credits the calling account after locking external funds into custody.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "caller identity required")
	}

	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.service.Deposit(c.UserContext(), caller, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotWhitelisted):
			return fiber.NewError(http.StatusForbidden, "account not whitelisted")
		case errors.Is(err, custody.ErrInsufficientExternalFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient external funds")
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"account":      caller.String(),
		"balance":      balance,
		"completed_at": time.Now().UTC(),
	})
}

// Withdraw releases custodied funds to the target account's external wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "caller identity required")
	}

	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	target, err := account.Parse(req.Account)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	balance, err := h.service.Withdraw(c.UserContext(), caller, target, req.Amount)
	if err != nil {
		return mapFundsError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"account":      target.String(),
		"balance":      balance,
		"completed_at": time.Now().UTC(),
	})
}

// Transfer re-titles custodied funds between two ledger entries.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "caller identity required")
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	from, err := account.Parse(req.FromAccount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid from_account")
	}
	to, err := account.Parse(req.ToAccount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid to_account")
	}

	result, err := h.service.Transfer(c.UserContext(), caller, from, to, req.Amount)
	if err != nil {
		return mapFundsError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"from_account": from.String(),
		"to_account":   to.String(),
		"from_balance": result.FromBalance,
		"to_balance":   result.ToBalance,
		"completed_at": time.Now().UTC(),
	})
}

// Balance returns the recorded balance for an account, 0 when unknown.
func (h *Handler) Balance(c *fiber.Ctx) error {
	acct, err := account.Parse(c.Params("account"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	balance, err := h.service.GetBalance(c.UserContext(), acct)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account":   acct.String(),
		"balance":   balance,
		"timestamp": time.Now().UTC(),
	})
}

// Entries returns the full ledger snapshot. Administrator only by routing.
func (h *Handler) Entries(c *fiber.Ctx) error {
	entries, err := h.service.Entries(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]fiber.Map, len(entries))
	for i, entry := range entries {
		out[i] = fiber.Map{"account": entry.Account.String(), "balance": entry.Balance}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"entries": out})
}

func mapFundsError(err error) error {
	switch {
	case errors.Is(err, ErrAdminOnly):
		return fiber.NewError(http.StatusForbidden, "administrator only")
	case errors.Is(err, ErrNoFundsAllocated):
		return fiber.NewError(http.StatusNotFound, "no funds allocated for account")
	case errors.Is(err, ErrInsufficientBalance):
		return fiber.NewError(http.StatusBadRequest, "insufficient balance")
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
