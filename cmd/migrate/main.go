package main

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pricewatch/internal/app/pricing/config"
	"pricewatch/internal/app/pricing/entity"
	"pricewatch/pkg/logger"
)

// Мигратор создает схему БД через GORM AutoMigrate.
// Запускается отдельно от сервиса: go run ./cmd/migrate
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("pricing-migrate", "info")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Порядок важен: таблицы со ссылками создаются после таблиц,
	// на которые они ссылаются
	err = db.AutoMigrate(
		&entity.User{},
		&entity.Competitor{},
		&entity.Product{},
		&entity.CompetitorPricing{},
		&entity.PriceHistory{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}

	logger.Info().Msg("Migration completed")
}
