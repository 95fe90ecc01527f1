package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the application's counters and histograms. All recording
// methods are nil-safe so instrumentation stays optional.
type Metrics struct {
	JobsProcessed   metric.Int64Counter
	JobDuration     metric.Float64Histogram
	ChunksProcessed metric.Int64Counter
}

// InitMetrics registers the summarization pipeline metrics.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("meeting-summarizer")

	jobsProcessed, err := meter.Int64Counter(
		"summary.jobs.total",
		metric.WithDescription("Summarization jobs finished, by final status"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		"summary.job.duration",
		metric.WithDescription("End-to-end summarization job duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	chunksProcessed, err := meter.Int64Counter(
		"summary.chunks.total",
		metric.WithDescription("Chunk invocations, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		JobsProcessed:   jobsProcessed,
		JobDuration:     jobDuration,
		ChunksProcessed: chunksProcessed,
	}, nil
}

// RecordJob records one finished job with its final status.
func (m *Metrics) RecordJob(ctx context.Context, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.JobsProcessed.Add(ctx, 1, attrs)
	m.JobDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordChunks records chunk invocation outcomes for one run.
func (m *Metrics) RecordChunks(ctx context.Context, succeeded, failed int) {
	if m == nil {
		return
	}
	if succeeded > 0 {
		m.ChunksProcessed.Add(ctx, int64(succeeded), metric.WithAttributes(attribute.String("outcome", "success")))
	}
	if failed > 0 {
		m.ChunksProcessed.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("outcome", "failed")))
	}
}
