package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/migration"
	"github.com/hesab/backend/internal/infrastructure/persistence"
	"github.com/hesab/backend/internal/infrastructure/seed"
	"go.uber.org/zap"
)

func main() {
	var (
		count    int
		randSeed uint64
		logLevel string
	)
	flag.IntVar(&count, "transactions", seed.DefaultTransactions, "Number of random transactions to post")
	flag.Uint64Var(&randSeed, "seed", 0, "Random seed; 0 picks one at random")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		m, err := migration.FromConfig(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to create migrator", zap.Error(err))
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	s := seed.New(
		persistence.NewGormAccountRepository(db.DB),
		persistence.NewGormTransactionRepository(db.DB),
		log,
		seed.WithFaker(gofakeit.New(randSeed)),
		seed.WithTransactions(count),
	)
	if _, err := s.Run(context.Background()); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
}
