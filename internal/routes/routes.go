package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fundgate/fundgate/internal/config"
	"github.com/fundgate/fundgate/internal/custody"
	"github.com/fundgate/fundgate/internal/events"
	"github.com/fundgate/fundgate/internal/ledger"
	"github.com/fundgate/fundgate/internal/middleware"
	"github.com/fundgate/fundgate/internal/registry"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg       config.Config
	DB        *pgxpool.Pool
	Cache     *redis.Client
	Custodian custody.Custodian
	Logger    *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Durable state and a real event stream are required outside of dev.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Caller())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Event sink: Redis stream when available, structured log otherwise.
	var sink events.Sink
	if d.Cache != nil {
		sink = events.NewRedisSink(d.Cache, d.Cfg.EventStream)
	} else {
		sink = events.NewLoggerSink(d.Logger)
	}

	var registryStore registry.Store
	if d.DB != nil {
		registryStore = registry.NewPostgresStore(d.DB)
	} else {
		registryStore = registry.NewMemoryStore()
	}
	registrySvc := registry.NewService(registryStore, d.Cfg.AdminAccount, sink, d.Logger)

	var ledgerStore ledger.Store
	if d.DB != nil {
		ledgerStore = ledger.NewPostgresStore(d.DB)
	} else {
		ledgerStore = ledger.NewMemoryStore()
	}

	custodian := d.Custodian
	if custodian == nil {
		custodian = custody.NewSimulated()
	}
	ledgerSvc := ledger.NewService(ledgerStore, registrySvc, custodian, d.Cfg.AdminAccount, sink, d.Logger)

	registryHandler := registry.NewHandler(registrySvc)
	ledgerHandler := ledger.NewHandler(ledgerSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	adminAuth := middleware.AdminAuth(d.Cfg)
	depositLimiter := middleware.DepositRateLimit(d.Cache, d.Cfg.DepositRateLimit)

	RegisterWhitelistRoutes(api, registryHandler, adminAuth)
	RegisterFundsRoutes(api, ledgerHandler, adminAuth, depositLimiter)

	return nil
}
