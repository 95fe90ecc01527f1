package services

import (
	"context"
	"sync"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
)

type runTask struct {
	jobID string
	req   SubmitRequest
}

// InProcessScheduler feeds runs to a fixed pool of worker goroutines over a
// channel. It is the default scheduler when no external task queue is
// configured.
type InProcessScheduler struct {
	orc     *Orchestrator
	tasks   chan runTask
	workers int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewInProcessScheduler(orc *Orchestrator, workers, queueDepth int) *InProcessScheduler {
	if workers <= 0 {
		workers = 2
	}
	if queueDepth <= 0 {
		queueDepth = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &InProcessScheduler{
		orc:     orc,
		tasks:   make(chan runTask, queueDepth),
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (s *InProcessScheduler) Start() {
	logger.Info("starting in-process job workers", "workers", s.workers)
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Stop cancels in-flight runs and drops queued tasks; affected jobs stay
// pending or processing and are flagged by the staleness sweep.
func (s *InProcessScheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	logger.Info("in-process job workers stopped")
}

// Schedule enqueues a run. It blocks only when the queue is full.
func (s *InProcessScheduler) Schedule(ctx context.Context, jobID string, req SubmitRequest) error {
	select {
	case s.tasks <- runTask{jobID: jobID, req: req}:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *InProcessScheduler) worker(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.tasks:
			logger.Debug("worker picked up job", "worker", id, "job_id", task.jobID)
			s.orc.Run(s.ctx, task.jobID, task.req)
		}
	}
}
