// Command seed gives an existing user the default category set.
//
//	seed -email ana@example.com
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"controle-financeiro/internal/repository"
	"controle-financeiro/internal/service"
	"controle-financeiro/pkg/config"
	"controle-financeiro/pkg/logger"
	"controle-financeiro/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "email of the user to seed")
	flag.Parse()
	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

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

	user, err := repository.NewUserRepository(db, appLogger).GetByEmail(ctx, strings.ToLower(*email))
	if err != nil {
		appLogger.Fatal("User not found", zap.String("email", *email), zap.Error(err))
	}

	categories := service.NewCategoryService(repository.NewCategoryRepository(db, appLogger), appLogger)
	created, err := categories.SeedDefaults(ctx, user.ID)
	if err != nil {
		appLogger.Fatal("Failed to seed categories", zap.Error(err))
	}

	appLogger.Info("Seeding completed", zap.String("email", *email), zap.Int64("created", created))
}
