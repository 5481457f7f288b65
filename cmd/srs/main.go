// cmd/srs/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocab_srs/internal/config"
	"vocab_srs/internal/logging"
	"vocab_srs/internal/repository"
	"vocab_srs/internal/service"
	"vocab_srs/internal/srs"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	configDir := fs.String("config", "configs", "directory containing config.yaml")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(fs)
		return 2
	}

	// Configを読み込み
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		return 1
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	logger.Debug("Application starting...", slog.String("version", config.AppVersion))

	// DB接続 (GORM)
	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		return 1
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		}
	}()

	// Dependency Injection
	scheduler := srs.New(srs.SystemClock)
	wordRepo := repository.NewGormWordRepository()
	c := &cli{
		words:   service.NewWordService(db, wordRepo, srs.SystemClock),
		reviews: service.NewReviewService(db, wordRepo, scheduler, cfg),
		in:      os.Stdin,
		out:     os.Stdout,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger.With(slog.String("command", fs.Arg(0))))

	if err := c.run(ctx, fs.Args()); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [-config dir] <command> [flags]\n\nCommands:\n", config.AppName)
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-9s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(out)
	fs.PrintDefaults()
}
