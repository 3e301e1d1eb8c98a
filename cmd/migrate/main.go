package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quiz-deck/internal/config"
	"quiz-deck/internal/database"
	"quiz-deck/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	timeout := flag.Duration("timeout", time.Minute, "overall migration timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, *direction); err != nil {
		l.Fatal("Failed to run migrations", zap.String("direction", *direction), zap.Error(err))
	}
}
