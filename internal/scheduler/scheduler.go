package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/smartpack/internal/snapshot"
)

// Runner executes one snapshot batch.
type Runner interface {
	Run(ctx context.Context) (snapshot.Snapshot, error)
}

// Sink receives every snapshot a successful run produced.
type Sink interface {
	Set(snap snapshot.Snapshot)
}

// Scheduler periodically runs the snapshot batch job.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	runner     Runner
	sink       Sink
	interval   time.Duration
	runOnStart bool
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler. sink may be nil.
func New(runner Runner, sink Sink, interval time.Duration, runOnStart bool, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		runner:     runner,
		sink:       sink,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// Runs never overlap; a run still in progress when the next tick fires
// makes that tick a no-op.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid snapshot interval %v", s.interval)
	}

	sched := s.scheduler.Every(s.interval).SingletonMode()
	if !s.runOnStart {
		sched = sched.WaitForSchedule()
	}

	_, err := sched.Do(func() {
		if err := s.RunOnce(s.ctx); err != nil {
			s.logger.Error("scheduled snapshot run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("scheduler started",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_start", s.runOnStart),
	)
	s.scheduler.StartAsync()
	return nil
}

// RunOnce runs the batch job now and hands a successful result to the sink.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	snap, err := s.runner.Run(ctx)
	if err != nil {
		return err
	}
	if s.sink != nil {
		s.sink.Set(snap)
	}
	return nil
}

// Stop cancels any in-flight run and stops future runs.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
