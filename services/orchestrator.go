package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/telemetry"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// JobStore is the narrow persistence contract the orchestrator needs. The
// store serializes concurrent writes to distinct jobs; each Update call is
// atomic, last writer wins.
type JobStore interface {
	// Create makes a pending job for the meeting, replacing any previous
	// job for it, and returns the new job id.
	Create(ctx context.Context, meetingID string) (string, error)
	Update(ctx context.Context, jobID string, upd JobUpdate) error
	// Read returns the job or an error wrapping ErrNotFound.
	Read(ctx context.Context, jobID string) (*models.Job, error)
	// ReadByMeeting returns the meeting's current job or ErrNotFound.
	ReadByMeeting(ctx context.Context, meetingID string) (*models.Job, error)
}

// JobUpdate carries the fields one Update call sets. Nil pointers leave the
// stored value untouched; updated_at always advances.
type JobUpdate struct {
	Status     string
	StartTime  *time.Time
	EndTime    *time.Time
	ChunkCount *int
	Error      *string
	Metadata   *string
	Result     *models.MergedResult
}

// SubmitRequest is one transcript processing request.
type SubmitRequest struct {
	MeetingID    string               `json:"meeting_id"`
	Text         string               `json:"text"`
	Selector     models.ModelSelector `json:"selector"`
	ChunkSize    int                  `json:"chunk_size"`
	Overlap      int                  `json:"overlap"`
	CustomPrompt string               `json:"custom_prompt"`
}

// Scheduler hands a validated run off the submitting call path. The run
// reports its outcome only through the job store, never back to the caller.
type Scheduler interface {
	Schedule(ctx context.Context, jobID string, req SubmitRequest) error
}

// Options tunes an Orchestrator.
type Options struct {
	// ChunkConcurrency bounds parallel chunk invocations per run.
	ChunkConcurrency int
	Metrics          *telemetry.Metrics
}

// Orchestrator owns the end-to-end run for one transcript: job creation,
// chunking, per-chunk invocation, merge, and the pending -> processing ->
// completed/failed state transitions.
type Orchestrator struct {
	store       JobStore
	invoker     *ChunkInvoker
	scheduler   Scheduler
	concurrency int
	metrics     *telemetry.Metrics
}

func NewOrchestrator(store JobStore, invoker *ChunkInvoker, opts Options) *Orchestrator {
	concurrency := opts.ChunkConcurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	return &Orchestrator{
		store:       store,
		invoker:     invoker,
		concurrency: concurrency,
		metrics:     opts.Metrics,
	}
}

// SetScheduler wires the scheduler that executes runs. Must be called
// before Submit.
func (o *Orchestrator) SetScheduler(s Scheduler) {
	o.scheduler = s
}

// Submit validates the request, creates a pending job and schedules the run
// without blocking the caller. The job id is returned synchronously;
// validation failures surface here, before any job exists.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", fmt.Errorf("%w: transcript text is empty", ErrInvalidInput)
	}
	if req.ChunkSize <= 0 {
		return "", fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, req.ChunkSize)
	}
	if strings.TrimSpace(req.MeetingID) == "" {
		return "", fmt.Errorf("%w: meeting id is required", ErrInvalidInput)
	}
	if req.Overlap < 0 {
		req.Overlap = 0
	}
	if req.Overlap >= req.ChunkSize {
		req.Overlap = req.ChunkSize - 1
	}

	jobID, err := o.store.Create(ctx, req.MeetingID)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	if err := o.scheduler.Schedule(ctx, jobID, req); err != nil {
		o.failJob(ctx, jobID, fmt.Errorf("schedule run: %w", err))
		return "", fmt.Errorf("schedule run: %w", err)
	}

	logger.Info("job submitted", "job_id", jobID, "meeting_id", req.MeetingID,
		"chunk_size", req.ChunkSize, "overlap", req.Overlap, "provider", req.Selector.Provider)
	return jobID, nil
}

// Run executes one summarization job. It is invoked by a scheduler, never
// by the submitting caller; every failure is captured into the job record
// instead of being returned upward.
func (o *Orchestrator) Run(ctx context.Context, jobID string, req SubmitRequest) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("run panicked", "job_id", jobID, "panic", r)
			o.failJob(ctx, jobID, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := o.store.Update(ctx, jobID, JobUpdate{
		Status:    models.StatusProcessing,
		StartTime: &started,
	}); err != nil {
		// Without the processing mark the run cannot safely continue; the
		// job stays pending and is caught by the staleness sweep.
		logger.Error("failed to mark job processing", "job_id", jobID, "error", err)
		return
	}

	chunks, err := SplitTranscript(req.Text, req.ChunkSize, req.Overlap)
	if err != nil {
		o.failJob(ctx, jobID, err)
		o.metrics.RecordJob(ctx, models.StatusFailed, time.Since(started))
		return
	}
	logger.Debug("transcript chunked", "job_id", jobID, "chunks", len(chunks))

	results := o.invokeAll(ctx, chunks, req)

	merged, excluded, err := MergeChunkResults(results)
	o.metrics.RecordChunks(ctx, len(chunks)-excluded, excluded)
	if err != nil {
		o.failJob(ctx, jobID, err)
		o.metrics.RecordJob(ctx, models.StatusFailed, time.Since(started))
		return
	}

	ended := time.Now()
	upd := JobUpdate{
		Status:     models.StatusCompleted,
		EndTime:    &ended,
		ChunkCount: &merged.ChunkCount,
		Result:     merged,
	}
	if excluded > 0 {
		warning := fmt.Sprintf("%d of %d chunks failed and were excluded from the merge", excluded, len(chunks))
		upd.Metadata = &warning
		logger.Warn("job completed with excluded chunks", "job_id", jobID, "excluded", excluded)
	}
	if err := o.store.Update(ctx, jobID, upd); err != nil {
		logger.Error("failed to persist completed job", "job_id", jobID, "error", err)
		return
	}

	o.metrics.RecordJob(ctx, models.StatusCompleted, time.Since(started))
	logger.Info("job completed", "job_id", jobID, "chunks", merged.ChunkCount,
		"excluded", excluded, "elapsed", time.Since(started).String())
}

// invokeAll fans the chunks out under the concurrency bound. Results land
// in an index-addressed slice so the merger always sees them in chunk
// order regardless of completion order.
func (o *Orchestrator) invokeAll(ctx context.Context, chunks []models.ChunkSpec, req SubmitRequest) []models.ChunkResult {
	results := make([]models.ChunkResult, len(chunks))
	sem := newSemaphore(o.concurrency)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk models.ChunkSpec) {
			defer wg.Done()
			if err := sem.acquire(ctx); err != nil {
				results[i] = models.ChunkResult{
					Index:  chunk.Index,
					Status: models.ChunkFailed,
					Error:  err.Error(),
				}
				return
			}
			defer sem.release()
			results[i] = o.invoker.Invoke(ctx, chunk, req.Selector, req.CustomPrompt)
		}(i, chunk)
	}
	wg.Wait()
	return results
}

func (o *Orchestrator) failJob(ctx context.Context, jobID string, cause error) {
	ended := time.Now()
	msg := cause.Error()
	if err := o.store.Update(ctx, jobID, JobUpdate{
		Status:  models.StatusFailed,
		EndTime: &ended,
		Error:   &msg,
	}); err != nil {
		logger.Error("failed to persist failed job", "job_id", jobID, "error", err)
		return
	}
	logger.Warn("job failed", "job_id", jobID, "error", msg)
}

// GetJob returns a job snapshot by id.
func (o *Orchestrator) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return o.store.Read(ctx, jobID)
}

// GetJobByMeeting returns the meeting's current job.
func (o *Orchestrator) GetJobByMeeting(ctx context.Context, meetingID string) (*models.Job, error) {
	return o.store.ReadByMeeting(ctx, meetingID)
}
