// Command snapshot-lambda runs the snapshot batch job as an AWS Lambda
// function, typically on an EventBridge schedule, and publishes to S3.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/i474232898/smartpack/internal/config"
	"github.com/i474232898/smartpack/internal/forecast"
	"github.com/i474232898/smartpack/internal/forecast/nws"
	"github.com/i474232898/smartpack/internal/snapshot"
	"github.com/i474232898/smartpack/internal/store"
)

// Event optionally overrides where the snapshot is published.
type Event struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Result is returned to the invoker.
type Result struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	Locations int    `json:"locations"`
	Skipped   int    `json:"skipped"`
}

type handler struct {
	cfg     *config.AppConfig
	fetcher forecast.Fetcher
	objects store.ObjectAPI
	logger  *zap.Logger
}

func (h *handler) handle(ctx context.Context, evt Event) (Result, error) {
	bucket, key := h.cfg.S3Bucket, h.cfg.S3Key
	if evt.Bucket != "" {
		bucket = evt.Bucket
	}
	if evt.Key != "" {
		key = evt.Key
	}
	if bucket == "" {
		return Result{}, fmt.Errorf("no bucket configured: set SNAPSHOT_S3_BUCKET or pass bucket in the event")
	}

	job := snapshot.NewJob(h.cfg.Locations, h.fetcher, store.NewS3Store(h.objects, bucket, key), h.cfg.FetchDelay, h.logger)
	snap, err := job.Run(ctx)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Bucket:    bucket,
		Key:       key,
		Locations: len(snap),
		Skipped:   len(h.cfg.Locations) - len(snap),
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	h := &handler{
		cfg: cfg,
		fetcher: nws.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, nws.Options{
			BaseURL:    cfg.NWSBaseURL,
			UserAgent:  cfg.NWSUserAgent,
			MaxRetries: cfg.NWSMaxRetries,
		}, lg.Named("nws")),
		objects: s3.NewFromConfig(awsCfg),
		logger:  lg.Named("job"),
	}

	lambda.Start(h.handle)
}
