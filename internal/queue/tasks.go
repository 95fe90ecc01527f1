package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
)

const TaskProcessTranscript = "summary:process"

// ProcessPayload carries one scheduled summarization run through Redis.
type ProcessPayload struct {
	JobID   string                 `json:"job_id"`
	Request services.SubmitRequest `json:"request"`
}

// NewProcessTask builds the asynq task for one run. The run captures its
// own failures into the job record, so the queue never retries it.
func NewProcessTask(jobID string, req services.SubmitRequest) (*asynq.Task, error) {
	payload, err := json.Marshal(ProcessPayload{JobID: jobID, Request: req})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(
		TaskProcessTranscript,
		payload,
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
	), nil
}

// Scheduler enqueues runs on the asynq task queue. It satisfies
// services.Scheduler and replaces the in-process pool when Redis is
// configured.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) Schedule(ctx context.Context, jobID string, req services.SubmitRequest) error {
	task, err := NewProcessTask(jobID, req)
	if err != nil {
		return fmt.Errorf("build task: %w", err)
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}
	logger.Debug("run enqueued", "job_id", jobID, "task_id", info.ID, "queue", info.Queue)
	return nil
}

// Processor handles queued runs on the worker side.
type Processor struct {
	orc *services.Orchestrator
}

func NewProcessor(orc *services.Orchestrator) *Processor {
	return &Processor{orc: orc}
}

func (p *Processor) HandleProcessTranscript(ctx context.Context, t *asynq.Task) error {
	var payload ProcessPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("processing queued run", "job_id", payload.JobID, "meeting_id", payload.Request.MeetingID)
	p.orc.Run(ctx, payload.JobID, payload.Request)
	return nil
}
