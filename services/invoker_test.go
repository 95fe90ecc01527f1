package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/ai"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// fakeGenerator returns a canned reply or error, or blocks until the
// context expires when delay is set.
type fakeGenerator struct {
	reply      string
	err        error
	delay      time.Duration
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	f.lastPrompt = prompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func newTestInvoker(g ai.Generator, timeout time.Duration) *ChunkInvoker {
	reg := ai.NewRegistry()
	reg.Register("fake", g)
	return NewChunkInvoker(reg, timeout)
}

var testSelector = models.ModelSelector{Provider: "fake", Model: "fake-model"}

func TestInvokeSuccess(t *testing.T) {
	gen := &fakeGenerator{
		reply: `{"summary": "Budget approved.", "action_items": ["circulate deck"], "key_points": ["Q3 on track"]}`,
	}
	inv := newTestInvoker(gen, time.Second)

	res := inv.Invoke(context.Background(), models.ChunkSpec{Index: 4, Text: "chunk text"}, testSelector, "")
	if res.Status != models.ChunkSuccess {
		t.Fatalf("status %q, error %q", res.Status, res.Error)
	}
	if res.Index != 4 {
		t.Fatalf("index %d, want 4", res.Index)
	}
	if res.SummaryFragment != "Budget approved." {
		t.Fatalf("summary %q", res.SummaryFragment)
	}
	if !reflect.DeepEqual(res.ActionItems, []string{"circulate deck"}) {
		t.Fatalf("action items %v", res.ActionItems)
	}
	if !strings.Contains(gen.lastPrompt, "chunk text") {
		t.Fatal("chunk text missing from prompt")
	}
	if !strings.Contains(gen.lastPrompt, DefaultPrompt) {
		t.Fatal("default instructions missing from prompt")
	}
}

func TestInvokeCustomPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary": "ok"}`}
	inv := newTestInvoker(gen, time.Second)

	inv.Invoke(context.Background(), models.ChunkSpec{Text: "t"}, testSelector, "Focus on decisions only.")
	if !strings.Contains(gen.lastPrompt, "Focus on decisions only.") {
		t.Fatal("custom instructions missing from prompt")
	}
	if strings.Contains(gen.lastPrompt, DefaultPrompt) {
		t.Fatal("default instructions should be replaced by custom ones")
	}
}

func TestInvokeStripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{
		reply: "```json\n{\"summary\": \"fenced\", \"key_points\": [\"kp\"]}\n```",
	}
	inv := newTestInvoker(gen, time.Second)

	res := inv.Invoke(context.Background(), models.ChunkSpec{Text: "t"}, testSelector, "")
	if res.Status != models.ChunkSuccess {
		t.Fatalf("status %q, error %q", res.Status, res.Error)
	}
	if res.SummaryFragment != "fenced" {
		t.Fatalf("summary %q", res.SummaryFragment)
	}
}

func TestInvokeUnknownProvider(t *testing.T) {
	inv := newTestInvoker(&fakeGenerator{}, time.Second)

	res := inv.Invoke(context.Background(), models.ChunkSpec{Index: 1}, models.ModelSelector{Provider: "nope"}, "")
	if res.Status != models.ChunkFailed {
		t.Fatalf("status %q, want failed", res.Status)
	}
	if !strings.Contains(res.Error, "unsupported provider") {
		t.Fatalf("error %q", res.Error)
	}
}

func TestInvokeBackendError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	inv := newTestInvoker(gen, time.Second)

	res := inv.Invoke(context.Background(), models.ChunkSpec{Index: 2}, testSelector, "")
	if res.Status != models.ChunkFailed {
		t.Fatalf("status %q, want failed", res.Status)
	}
	if !strings.Contains(res.Error, "quota exceeded") {
		t.Fatalf("error %q", res.Error)
	}
}

func TestInvokeMalformedReply(t *testing.T) {
	gen := &fakeGenerator{reply: "Sure! Here is your summary: the meeting went well."}
	inv := newTestInvoker(gen, time.Second)

	res := inv.Invoke(context.Background(), models.ChunkSpec{}, testSelector, "")
	if res.Status != models.ChunkFailed {
		t.Fatalf("status %q, want failed", res.Status)
	}
	if !strings.Contains(res.Error, "unparseable model response") {
		t.Fatalf("error %q", res.Error)
	}
}

func TestInvokeTimeout(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary": "late"}`, delay: 200 * time.Millisecond}
	inv := newTestInvoker(gen, 20*time.Millisecond)

	res := inv.Invoke(context.Background(), models.ChunkSpec{}, testSelector, "")
	if res.Status != models.ChunkFailed {
		t.Fatalf("status %q, want failed", res.Status)
	}
	if !strings.Contains(res.Error, "backend error") {
		t.Fatalf("error %q", res.Error)
	}
}
