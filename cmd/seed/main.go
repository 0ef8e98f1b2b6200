package main

import (
	"github.com/oggyb/gym-buddy/internal/config"
	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.Named("seed")

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	if err := db.SeedDemoData(database); err != nil {
		log.Error("failed to seed", "err", err)
		return
	}

	log.Info("seeding completed", "demo_user", db.DemoUserID)
}
