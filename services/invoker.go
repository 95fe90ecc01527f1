package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/ai"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// DefaultPrompt is used when a submission carries no custom instructions.
const DefaultPrompt = "Generate a summary of the meeting transcript."

const defaultChunkTimeout = 2 * time.Minute

// ChunkInvoker sends one chunk to the generation backend selected by the
// model selector and parses the structured reply. A backend error, timeout
// or unparseable response is confined to that chunk's result.
type ChunkInvoker struct {
	generators *ai.Registry
	timeout    time.Duration
}

// NewChunkInvoker creates an invoker over the given provider registry.
// timeout bounds each individual chunk invocation; zero means the default.
func NewChunkInvoker(generators *ai.Registry, timeout time.Duration) *ChunkInvoker {
	if timeout <= 0 {
		timeout = defaultChunkTimeout
	}
	return &ChunkInvoker{generators: generators, timeout: timeout}
}

// Invoke summarizes a single chunk. It always returns a ChunkResult; on any
// failure the result has Status failed and carries the error text.
func (ci *ChunkInvoker) Invoke(ctx context.Context, chunk models.ChunkSpec, selector models.ModelSelector, instructions string) models.ChunkResult {
	result := models.ChunkResult{Index: chunk.Index, Status: models.ChunkFailed}

	gen, err := ci.generators.Lookup(selector.Provider)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, ci.timeout)
	defer cancel()

	raw, err := gen.Generate(callCtx, buildChunkPrompt(chunk.Text, instructions), selector.Model)
	if err != nil {
		result.Error = fmt.Sprintf("backend error: %v", err)
		return result
	}

	reply, err := parseStructuredReply(raw)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Status = models.ChunkSuccess
	result.SummaryFragment = strings.TrimSpace(reply.Summary)
	result.ActionItems = reply.ActionItems
	result.KeyPoints = reply.KeyPoints
	return result
}

func buildChunkPrompt(text, instructions string) string {
	if strings.TrimSpace(instructions) == "" {
		instructions = DefaultPrompt
	}
	return fmt.Sprintf(`%s

Respond with a single JSON object and nothing else, in this shape:
{"summary": "...", "action_items": ["..."], "key_points": ["..."]}

Transcript section:
%s`, instructions, text)
}

type structuredReply struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	KeyPoints   []string `json:"key_points"`
}

// parseStructuredReply decodes the backend's JSON reply. Models often wrap
// JSON in markdown code fences, so those are stripped first.
func parseStructuredReply(raw string) (structuredReply, error) {
	var reply structuredReply
	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return reply, fmt.Errorf("unparseable model response: %v", err)
	}
	return reply, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
