package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// StaleJobSource lists jobs that stopped reporting progress.
type StaleJobSource interface {
	ListStale(ctx context.Context, updatedBefore time.Time) ([]models.Job, error)
}

// StaleJobSweeper periodically flags jobs stuck in pending or processing
// whose updated_at stopped advancing, e.g. after a mid-run store failure or
// a worker crash. It only reports; stuck jobs are not retried.
type StaleJobSweeper struct {
	source    StaleJobSource
	threshold time.Duration
	scheduler *gocron.Scheduler
}

func NewStaleJobSweeper(source StaleJobSource, threshold, interval time.Duration) (*StaleJobSweeper, error) {
	if threshold <= 0 {
		threshold = 30 * time.Minute
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	s := gocron.NewScheduler(time.UTC)
	s.TagsUnique()

	sweeper := &StaleJobSweeper{
		source:    source,
		threshold: threshold,
		scheduler: s,
	}
	if _, err := s.Every(interval).Tag("stale-jobs").Do(sweeper.sweep); err != nil {
		return nil, err
	}
	return sweeper, nil
}

// Start runs the sweep schedule in the background.
func (s *StaleJobSweeper) Start() {
	s.scheduler.StartAsync()
	logger.Info("stale job sweeper started", "threshold", s.threshold.String())
}

func (s *StaleJobSweeper) Stop() {
	s.scheduler.Stop()
}

func (s *StaleJobSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.threshold)
	jobs, err := s.source.ListStale(ctx, cutoff)
	if err != nil {
		logger.Error("stale job sweep failed", "error", err)
		return
	}
	for _, job := range jobs {
		logger.Warn("job has stopped reporting progress",
			"job_id", job.ID, "meeting_id", job.MeetingID,
			"status", job.Status, "updated_at", job.UpdatedAt)
	}
}
