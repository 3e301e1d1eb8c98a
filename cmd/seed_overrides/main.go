package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"quiz-deck/internal/adapter"
	"quiz-deck/internal/config"
	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/service"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "delete the stored deck so the default source is used again")
	force := flag.Bool("force", false, "overwrite a deck that is already stored")
	timeout := flag.Duration("timeout", time.Minute, "overall seeding timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	overrides, closeStore, err := adapter.OpenOverrideStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open override store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	if *reset {
		if err := overrides.Delete(ctx, cfg.Store.Key); err != nil {
			log.Fatal("Failed to reset stored deck", zap.String("key", cfg.Store.Key), zap.Error(err))
		}
		log.Info("Stored deck removed", zap.String("key", cfg.Store.Key))
		return
	}

	if !*force {
		_, err := overrides.Get(ctx, cfg.Store.Key)
		switch {
		case err == nil:
			log.Warn("A deck is already stored; rerun with -force to overwrite", zap.String("key", cfg.Store.Key))
			return
		case !errors.Is(err, domain.ErrStoreMiss):
			log.Fatal("Failed to read stored deck", zap.String("key", cfg.Store.Key), zap.Error(err))
		}
	}

	// Load through an empty store so the default source is always read and normalized.
	source := adapter.NewQuestionSource(cfg.Source)
	categories, err := service.NewQuestionStore(adapter.NewMemoryOverrideStore(), source, cfg.Store.Key).Load(ctx)
	if err != nil {
		log.Fatal("Failed to load default questions", zap.Error(err))
	}

	if err := service.NewQuestionStore(overrides, source, cfg.Store.Key).Persist(ctx, categories); err != nil {
		log.Fatal("Failed to seed override store", zap.Error(err))
	}

	total := 0
	for _, c := range categories {
		total += len(c.Questions)
	}
	log.Info("Override store seeded",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("categories", len(categories)),
		zap.Int("questions", total),
	)
}
