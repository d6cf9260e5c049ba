package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/vocabtrainer/internal/bot"
	"github.com/example/vocabtrainer/internal/config"
	"github.com/example/vocabtrainer/internal/database"
	"github.com/example/vocabtrainer/internal/importer"
	"github.com/example/vocabtrainer/internal/scheduler"
	"github.com/example/vocabtrainer/internal/wordbank"
)

func setupLogger(env string) *zap.Logger {
	if env == "development" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := setupLogger(cfg.Env)
	defer logger.Sync()

	// Load the word table. A schema problem here is fatal: no practice
	// session can start without a valid word bank.
	entries, result, err := importer.ImportWords(importer.DefaultConfig(cfg.WordsFile))
	if err != nil {
		logger.Fatal("failed to import words", zap.String("file", cfg.WordsFile), zap.Error(err))
	}
	if len(result.Errors) > 0 {
		logger.Warn("some rows were skipped during import",
			zap.Int("skipped", result.Skipped),
			zap.Strings("errors", result.Errors))
	}

	bank, err := wordbank.Load(entries)
	if err != nil {
		logger.Fatal("failed to load word bank", zap.Error(err))
	}
	logger.Info("word bank loaded",
		zap.Int("entries", bank.Len()),
		zap.Int("topics", len(bank.Topics())))

	db, err := database.Connect(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	history := database.NewAttemptRecordRepository(db)

	b, err := bot.New(cfg.TelegramToken, cfg.Env, bank, history, logger)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reminder.Enabled {
		sched := scheduler.New(history, b, cfg.Reminder, logger)
		sched.Start()
		defer sched.Stop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		logger.Info("received signal", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
		close(done)
	}()

	logger.Info("bot started")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("bot error", zap.Error(err))
		}
	}()

	<-done
	logger.Info("bot stopped")
}
