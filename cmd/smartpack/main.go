package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/smartpack/internal/api/http"
	"github.com/i474232898/smartpack/internal/config"
	"github.com/i474232898/smartpack/internal/forecast"
	"github.com/i474232898/smartpack/internal/forecast/nws"
	"github.com/i474232898/smartpack/internal/scheduler"
	"github.com/i474232898/smartpack/internal/snapshot"
	"github.com/i474232898/smartpack/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	// Shared HTTP client for outbound NWS calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	nwsOpts := nws.Options{
		BaseURL:     cfg.NWSBaseURL,
		UserAgent:   cfg.NWSUserAgent,
		MaxRetries:  cfg.NWSMaxRetries,
		BreakerName: "nws-batch",
	}
	client := nws.NewClient(httpClient, nwsOpts, lg.Named("nws"))

	// Live lookups get their own breaker so user input cannot stall the batch.
	nwsOpts.BreakerName = "nws-live"
	liveClient := nws.NewClient(httpClient, nwsOpts, lg.Named("nws-live"))

	// The local snapshot file is always written and is what the dashboard reads.
	fileStore := store.NewFileStore(cfg.SnapshotFile)
	writers := []snapshot.Writer{fileStore}

	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			lg.Fatal("failed to load aws config", zap.Error(err))
		}
		writers = append(writers, store.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Key))
		lg.Info("publishing snapshots to s3", zap.String("bucket", cfg.S3Bucket), zap.String("key", cfg.S3Key))
	}

	cache := store.NewCache(fileStore)
	job := snapshot.NewJob(cfg.Locations, client, store.Tee(writers...), cfg.FetchDelay, lg.Named("job"))

	// Scheduler that periodically rebuilds the snapshot.
	sched := scheduler.New(job, cache, cfg.FetchInterval, cfg.RunOnStart, lg.Named("scheduler"))
	if err := sched.Start(); err != nil {
		lg.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "smartpack",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "smartpack",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Cache:     cache,
		Locations: cfg.Locations,
		Live:      forecast.NewRateLimitedFetcher(liveClient, cfg.LiveRateLimit, cfg.LiveRateBurst, cfg.LiveMaxWait),
		Logger:    lg.Named("api"),
	})

	go func() {
		lg.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Warn("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("error during shutdown", zap.Error(err))
	}
}
