package api

import (
	"errors"

	"controle-financeiro/docs"
	"controle-financeiro/internal/api/handlers"
	"controle-financeiro/pkg/auth"
	"controle-financeiro/pkg/config"
	"controle-financeiro/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Documents  *handlers.DocumentHandler
	Categories *handlers.CategoryHandler
	Purchases  *handlers.PurchaseHandler
	FixedCosts *handlers.ObligationHandler
	Incomes    *handlers.ObligationHandler
	Reports    *handlers.ReportHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "controle-financeiro",
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal server error"
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				msg = e.Message
			} else {
				appLogger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": msg,
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthMiddleware(jwtManager, appLogger))

	extractions := protected.Group("/extractions")
	extractions.Post("/url", h.Documents.ExtractURL)
	extractions.Post("/image", h.Documents.ExtractImage)
	extractions.Post("/access-key", h.Documents.ExtractAccessKey)
	protected.Get("/documents", h.Documents.ListDocuments)

	categories := protected.Group("/categories")
	categories.Get("", h.Categories.List)
	categories.Post("", h.Categories.Create)
	categories.Post("/defaults", h.Categories.Seed)
	categories.Put("/:id", h.Categories.Rename)
	categories.Delete("/:id", h.Categories.Delete)

	purchases := protected.Group("/purchases")
	purchases.Get("", h.Purchases.List)
	purchases.Post("", h.Purchases.Create)
	purchases.Delete("/:id", h.Purchases.Delete)

	mountObligations(protected.Group("/fixed-costs"), h.FixedCosts)
	mountObligations(protected.Group("/incomes"), h.Incomes)

	protected.Get("/transactions", h.Reports.Transactions)
	protected.Get("/reports/categories", h.Reports.Categories)
	protected.Get("/dashboard", h.Reports.Dashboard)

	return app
}

func mountObligations(r fiber.Router, h *handlers.ObligationHandler) {
	r.Get("", h.List)
	r.Post("", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}
