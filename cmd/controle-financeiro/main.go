package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"controle-financeiro/internal/api"
	"controle-financeiro/internal/api/handlers"
	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/metrics"
	"controle-financeiro/internal/ocr"
	"controle-financeiro/internal/recurrence"
	"controle-financeiro/internal/repository"
	"controle-financeiro/internal/scraper"
	"controle-financeiro/internal/service"
	"controle-financeiro/pkg/auth"
	"controle-financeiro/pkg/config"
	"controle-financeiro/pkg/logger"
	"controle-financeiro/pkg/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title Controle Financeiro API
// @version 1.0
// @description Personal finance backend: receipt extraction, purchases, fixed costs, incomes and monthly reports.

// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting controle-financeiro")

	ctx := context.Background()

	if cfg.Database.RunMigrations {
		if err := postgres.RunMigrations(cfg.Database.DSN(), appLogger); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	purchaseRepo := repository.NewPurchaseRepository(db, appLogger)
	obligationRepo := repository.NewObligationRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Extraction pipeline
	var collectors *metrics.Extraction
	if cfg.Metrics.Enabled {
		collectors = metrics.Default()
	} else {
		collectors = metrics.New(prometheus.NewRegistry())
	}

	models := newProviders(cfg, appLogger)
	defer models.Close()

	var generator extraction.Generator
	if p := models.get(ctx, cfg.LLM.Provider); p != nil {
		generator = collectors.InstrumentGenerator(cfg.LLM.Provider, p)
	}
	var vision extraction.TextDetector
	if p := models.get(ctx, cfg.OCR.Provider); p != nil {
		vision = p
	}
	appLogger.Info("Model providers",
		zap.String("llm", cfg.LLM.Provider),
		zap.Bool("llm_ready", generator != nil),
		zap.String("ocr", cfg.OCR.Provider),
		zap.Bool("ocr_ready", vision != nil),
	)

	orchestrator := extraction.NewOrchestrator(
		generator,
		scraper.New(cfg.Scraper, appLogger),
		ocr.NewReader(vision, appLogger),
		extraction.Options{
			LookupURLTemplate:    cfg.Extraction.AccessKeyLookupURL,
			CategorizeTableItems: cfg.Extraction.CategorizeTableItems,
			FetchTimeout:         cfg.Scraper.Timeout,
			OCRTimeout:           cfg.OCR.Timeout,
			GenerationTimeout:    cfg.LLM.Timeout,
			Observer:             collectors,
		},
		appLogger,
	)

	// Services
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	authService := service.NewAuthService(userRepo, categoryService, jwtManager, appLogger)
	purchaseService := service.NewPurchaseService(purchaseRepo, appLogger)
	obligationService := service.NewObligationService(obligationRepo, appLogger)
	reportService := service.NewReportService(purchaseRepo, obligationRepo, service.ReportOptions{
		UpcomingLimit: cfg.Extraction.UpcomingLimit,
		DefaultDueDay: cfg.Extraction.DefaultDueDay,
	}, appLogger)
	extractionService := service.NewExtractionService(orchestrator, docRepo, appLogger)

	app := api.SetupRouter(api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, appLogger),
		Documents:  handlers.NewDocumentHandler(extractionService, cfg.Extraction.MaxUploadSize, appLogger),
		Categories: handlers.NewCategoryHandler(categoryService, appLogger),
		Purchases:  handlers.NewPurchaseHandler(purchaseService, appLogger),
		FixedCosts: handlers.NewObligationHandler(obligationService, recurrence.KindFixedCost, appLogger),
		Incomes:    handlers.NewObligationHandler(obligationService, recurrence.KindIncome, appLogger),
		Reports:    handlers.NewReportHandler(reportService, appLogger),
	}, jwtManager, cfg, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
