package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/smartpack/internal/forecast"
	"github.com/i474232898/smartpack/internal/gear"
)

// ErrEmptySnapshot is returned when every location failed; the previously
// written snapshot is left untouched.
var ErrEmptySnapshot = errors.New("no location produced a forecast")

// Job fetches every configured location in order, derives gear for each and
// writes the aggregate once at the end.
type Job struct {
	locations []forecast.Location
	fetcher   forecast.Fetcher
	writer    Writer
	delay     time.Duration
	logger    *zap.Logger
}

// NewJob creates a Job. delay is slept between consecutive locations to stay
// polite with the remote service.
func NewJob(locations []forecast.Location, fetcher forecast.Fetcher, writer Writer, delay time.Duration, logger *zap.Logger) *Job {
	return &Job{
		locations: append([]forecast.Location(nil), locations...),
		fetcher:   fetcher,
		writer:    writer,
		delay:     delay,
		logger:    logger,
	}
}

// Locations returns a copy of the reference list the job runs over.
func (j *Job) Locations() []forecast.Location {
	return append([]forecast.Location(nil), j.locations...)
}

// Run executes one batch. Locations whose fetch or recommendation fails are
// logged and left out of the result. Nothing is written when ctx is cancelled
// or when no location succeeded.
func (j *Job) Run(ctx context.Context) (Snapshot, error) {
	log := j.logger.With(zap.String("run_id", uuid.NewString()))
	log.Info("snapshot run started", zap.Int("locations", len(j.locations)))

	snap := make(Snapshot, len(j.locations))
	for i, loc := range j.locations {
		if i > 0 {
			if err := sleep(ctx, j.delay); err != nil {
				log.Warn("snapshot run cancelled", zap.Error(err))
				return nil, err
			}
		}

		entry, err := j.buildEntry(ctx, loc)
		if err != nil {
			if ctx.Err() != nil {
				log.Warn("snapshot run cancelled", zap.Error(ctx.Err()))
				return nil, ctx.Err()
			}
			log.Warn("skipping location",
				zap.String("location", loc.Name),
				zap.Bool("insufficient_data", errors.Is(err, gear.ErrInsufficientData)),
				zap.Error(err),
			)
			continue
		}

		snap[loc.Name] = entry
		log.Info("location updated",
			zap.String("location", loc.Name),
			zap.Int("periods", len(entry.Forecast)),
			zap.Int("warnings", len(entry.Warnings)),
		)
	}

	if len(snap) == 0 && len(j.locations) > 0 {
		log.Error("no successful locations; keeping previous snapshot")
		return nil, ErrEmptySnapshot
	}

	if err := j.writer.Write(ctx, snap); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	log.Info("snapshot run completed",
		zap.Int("entries", len(snap)),
		zap.Int("skipped", len(j.locations)-len(snap)),
	)
	return snap, nil
}

func (j *Job) buildEntry(ctx context.Context, loc forecast.Location) (Entry, error) {
	periods, err := j.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Entry{}, err
	}

	set, err := gear.Recommend(periods)
	if err != nil {
		return Entry{}, err
	}
	return NewEntry(loc, periods, set), nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
