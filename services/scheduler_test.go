package services

import (
	"context"
	"testing"
	"time"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/ai"
)

func TestInProcessSchedulerRejectsAfterStop(t *testing.T) {
	store := newMemoryJobStore()
	reg := ai.NewRegistry()
	reg.Register("fake", indexedGenerator{})
	orc := NewOrchestrator(store, NewChunkInvoker(reg, time.Second), Options{})

	// Never started: fill the queue so the send path cannot win the
	// select, then stop and verify the shutdown error surfaces.
	pool := NewInProcessScheduler(orc, 1, 2)
	for i := 0; i < 2; i++ {
		if err := pool.Schedule(context.Background(), "fill", SubmitRequest{}); err != nil {
			t.Fatalf("schedule %d should buffer: %v", i, err)
		}
	}
	pool.Stop()

	err := pool.Schedule(context.Background(), "job-x", SubmitRequest{})
	if err == nil {
		t.Fatal("expected error scheduling on a stopped pool")
	}
}

func TestInProcessSchedulerHonorsCallerContext(t *testing.T) {
	store := newMemoryJobStore()
	reg := ai.NewRegistry()
	orc := NewOrchestrator(store, NewChunkInvoker(reg, time.Second), Options{})

	// No workers started and a full queue, so Schedule can only exit via
	// the caller's context.
	pool := NewInProcessScheduler(orc, 1, 1)
	if err := pool.Schedule(context.Background(), "fill", SubmitRequest{}); err != nil {
		t.Fatalf("first schedule should buffer: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := pool.Schedule(ctx, "blocked", SubmitRequest{}); err == nil {
		t.Fatal("expected context error on full queue")
	}
}
