package ai

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator calls the Gemini API behind a circuit breaker and a
// request-rate limiter. It satisfies Generator.
type GeminiGenerator struct {
	client      *genai.Client
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
}

// NewGeminiGenerator builds a Gemini-backed generator. requestsPerMinute
// should match the account tier; e.g. 10 for the free tier.
func NewGeminiGenerator(ctx context.Context, apiKey string, requestsPerMinute int) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	// Slight headroom below the nominal RPM limit.
	limit := rate.Limit(float64(requestsPerMinute) * 0.9 / 60.0)
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &GeminiGenerator{
		client:      client,
		breaker:     breaker,
		rateLimiter: rate.NewLimiter(limit, burst),
	}, nil
}

// Generate sends one prompt to Gemini and returns the concatenated text of
// the first candidate's parts.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	tracer := otel.Tracer("gemini-generator")
	ctx, span := tracer.Start(ctx, "gemini.generate")
	defer span.End()

	if model == "" {
		model = defaultGeminiModel
	}
	span.SetAttributes(
		attribute.String("gemini.model", model),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	)

	if err := g.rateLimiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		return "", err
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		m := g.client.GenerativeModel(model)
		m.SetTemperature(0.2)
		m.SetMaxOutputTokens(2048)

		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("gemini.error", true))
		return "", err
	}

	resp := result.(*genai.GenerateContentResponse)
	if resp.UsageMetadata != nil {
		span.SetAttributes(attribute.Int("gemini.total_tokens", int(resp.UsageMetadata.TotalTokenCount)))
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}
	return out.String()
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
