package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"quiz-deck/internal/config"
	"quiz-deck/internal/importer"
	"quiz-deck/internal/logger"

	"go.uber.org/zap"
)

const exitNothingParsed = 2

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	output := flag.String("output", cfg.Source.Path, "question document to append to")
	category := flag.String("category", cfg.Deck.TestCategory, "category receiving the parsed questions")
	version := flag.Int("version", 0, "test version for new ids (V<version>Q<k>); 0 picks the next unused version")
	timeout := flag.Duration("timeout", time.Minute, "overall import timeout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: import_dump [-output <json-file>] [-category <name>] [-version <n>] <dump-file>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	l := logger.Get()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	items, err := importer.ParseFiles(ctx, flag.Args())
	if err != nil {
		l.Fatal("Failed to parse dumps", zap.Error(err))
	}
	if len(items) == 0 {
		l.Warn("No questions found in dumps", zap.Strings("inputs", flag.Args()))
		_ = logger.Sync()
		os.Exit(exitNothingParsed)
	}

	doc, err := os.ReadFile(*output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Fatal("Failed to read question document", zap.String("path", *output), zap.Error(err))
	}

	updated, usedVersion, err := importer.AppendToCategory(doc, *category, *version, items)
	if err != nil {
		l.Fatal("Failed to merge questions", zap.String("path", *output), zap.Error(err))
	}

	if err := os.WriteFile(*output, updated, 0o644); err != nil {
		l.Fatal("Failed to write question document", zap.String("path", *output), zap.Error(err))
	}

	l.Info("Imported questions",
		zap.Int("count", len(items)),
		zap.String("category", *category),
		zap.Int("version", usedVersion),
		zap.String("output", *output),
	)
}
