package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/price-refresh/internal/bot"
	"github.com/Houeta/price-refresh/internal/config"
	"github.com/Houeta/price-refresh/internal/currency"
	"github.com/Houeta/price-refresh/internal/extractor"
	"github.com/Houeta/price-refresh/internal/repository/sqlite"
	"github.com/Houeta/price-refresh/internal/scheduler"
	"github.com/Houeta/price-refresh/internal/services/quota"
	"github.com/Houeta/price-refresh/internal/services/refresher"
	"github.com/Houeta/price-refresh/internal/services/tracker"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer repo.Close() //nolint:errcheck // closing on exit

	normalizer, err := currency.NewNormalizer(cfg.Currency.Base, cfg.Currency.Rates)
	if err != nil {
		log.Fatalf("Failed to init currency normalizer: %v", err)
	}
	if err = checkFallbackCurrency(normalizer, cfg.Currency.Fallback); err != nil {
		log.Fatalf("Invalid fallback currency: %v", err)
	}
	logger.DebugContext(ctx, "Currency rates loaded", "base", normalizer.Base(), "codes", normalizer.Codes())

	priceRefresher := refresher.NewRefresher(
		logger,
		extractor.NewHTMLExtractor(logger, cfg.Refresh.ExtractTimeout, cfg.Refresh.UserAgent),
		normalizer,
		repo,
		refresher.Options{
			Concurrency:      cfg.Refresh.Concurrency,
			ExtractTimeout:   cfg.Refresh.ExtractTimeout,
			RunTimeout:       cfg.Refresh.RunTimeout,
			FallbackCurrency: cfg.Currency.Fallback,
		},
	)

	reconciler := quota.NewReconciler(logger, repo)

	priceBot, err := bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, bot.Services{
		Tracker:     tracker.NewService(logger, repo, reconciler, cfg.Quota.DefaultLimit),
		Quota:       reconciler,
		Refresher:   priceRefresher,
		Subscribers: repo,
		AdminIDs:    cfg.Tg.AdminIDs,
	})
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	sched, err := scheduler.New(logger, priceRefresher, priceBot, cfg.Refresh.Schedule, cfg.Refresh.Location)
	if err != nil {
		log.Fatalf("Failed to init scheduler: %v", err)
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"schedule", cfg.Refresh.Schedule, "timezone", cfg.Refresh.Location.String())

	var wg conc.WaitGroup

	// Start the bot and the scheduler in goroutines to allow main to listen for signals.
	wg.Go(priceBot.Start)
	wg.Go(func() { sched.Start(ctx) })

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Stop the bot gracefully; the scheduler stops on its own once ctx is done.
	priceBot.Stop()
	wg.Wait()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// checkFallbackCurrency makes sure quotes without a stated currency can be normalized.
func checkFallbackCurrency(normalizer *currency.Normalizer, code string) error {
	if _, err := normalizer.ToBase(decimal.Zero, code); err != nil {
		return fmt.Errorf("%s has no configured rate: %w", code, err)
	}
	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

// dropTime removes the timestamp; the log collector stamps records itself.
func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
