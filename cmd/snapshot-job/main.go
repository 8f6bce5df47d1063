// Command snapshot-job builds the forecast snapshot once and exits.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/i474232898/smartpack/internal/config"
	"github.com/i474232898/smartpack/internal/forecast/nws"
	"github.com/i474232898/smartpack/internal/snapshot"
	"github.com/i474232898/smartpack/internal/store"
)

func main() {
	out := flag.String("out", "", "snapshot file to write (overrides SNAPSHOT_FILE)")
	locations := flag.String("locations", "", "location list file (overrides LOCATIONS_FILE)")
	flag.Parse()

	if *locations != "" {
		os.Setenv("LOCATIONS_FILE", *locations)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *out != "" {
		cfg.SnapshotFile = *out
	}

	lg, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	client := nws.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, nws.Options{
		BaseURL:    cfg.NWSBaseURL,
		UserAgent:  cfg.NWSUserAgent,
		MaxRetries: cfg.NWSMaxRetries,
	}, lg.Named("nws"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fileStore := store.NewFileStore(cfg.SnapshotFile)
	job := snapshot.NewJob(cfg.Locations, client, fileStore, cfg.FetchDelay, lg.Named("job"))
	snap, err := job.Run(ctx)
	if err != nil {
		lg.Error("snapshot run failed", zap.Error(err))
		lg.Sync()
		os.Exit(1)
	}

	lg.Info("snapshot written",
		zap.String("path", fileStore.Path()),
		zap.Int("locations", len(snap)),
		zap.Int("skipped", len(job.Locations())-len(snap)),
	)
}
