package routes

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/fundgate/fundgate/internal/custody"
)

func TestDebugFullApp(t *testing.T) {
	app, custodian := setupApp(t)
	custody.SeedWallet(custodian, "alice", 500)
	do := func(method, path, caller, body string) (int, string) {
		var rd io.Reader
		if body != "" {
			rd = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, rd)
		if body != "" {
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		}
		if caller != "" {
			req.Header.Set("X-Caller-Account", caller)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}
	s, b := do("POST", "/api/v1/whitelist", "admin-1", `{"account":"alice"}`)
	t.Logf("whitelist: %d %s", s, b)
	s, b = do("POST", "/api/v1/deposits", "alice", `{"amount":100}`)
	t.Logf("deposit: %d %s", s, b)
	s, b = do("GET", "/api/v1/entries", "admin-1", "")
	t.Logf("entries: %d %s", s, b)
	s, b = do("POST", "/api/v1/withdrawals", "admin-1", `{"account":"alice","amount":25}`)
	t.Logf("withdraw: %d %s", s, b)
	s, b = do("GET", "/api/v1/entries", "admin-1", "")
	t.Logf("entries after: %d %s", s, b)
}
