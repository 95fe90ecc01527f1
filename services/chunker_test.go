package services

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitTranscriptSingleChunk(t *testing.T) {
	chunks, err := SplitTranscript("a short transcript", 5000, 1000)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "a short transcript" {
		t.Fatalf("chunk text altered: %q", chunks[0].Text)
	}
	if chunks[0].StartOffset != 0 || chunks[0].EndOffset != len([]rune("a short transcript")) {
		t.Fatalf("bad offsets: %d..%d", chunks[0].StartOffset, chunks[0].EndOffset)
	}
}

func TestSplitTranscriptOverlappingWindows(t *testing.T) {
	text := strings.Repeat("x", 12000)
	chunks, err := SplitTranscript(text, 5000, 1000)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	// step is 4000, so windows start at 0, 4000, 8000
	wantStarts := []int{0, 4000, 8000}
	wantEnds := []int{5000, 9000, 12000}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: index %d", i, c.Index)
		}
		if c.StartOffset != wantStarts[i] || c.EndOffset != wantEnds[i] {
			t.Errorf("chunk %d: offsets %d..%d, want %d..%d",
				i, c.StartOffset, c.EndOffset, wantStarts[i], wantEnds[i])
		}
		if len(c.Text) != c.EndOffset-c.StartOffset {
			t.Errorf("chunk %d: text length %d != span %d", i, len(c.Text), c.EndOffset-c.StartOffset)
		}
	}
}

func TestSplitTranscriptCoversEveryRune(t *testing.T) {
	text := strings.Repeat("abcdefghij", 1234)
	chunks, err := SplitTranscript(text, 777, 123)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	covered := make([]bool, len([]rune(text)))
	for _, c := range chunks {
		for i := c.StartOffset; i < c.EndOffset; i++ {
			covered[i] = true
		}
	}
	for i, ok := range covered {
		if !ok {
			t.Fatalf("rune %d not covered by any chunk", i)
		}
	}
	if last := chunks[len(chunks)-1]; last.EndOffset != len(covered) {
		t.Fatalf("last chunk ends at %d, want %d", last.EndOffset, len(covered))
	}
}

func TestSplitTranscriptDeterministic(t *testing.T) {
	text := strings.Repeat("meeting notes ", 2000)
	first, err := SplitTranscript(text, 5000, 1000)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	second, err := SplitTranscript(text, 5000, 1000)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitTranscriptClampsOverlap(t *testing.T) {
	text := strings.Repeat("y", 25)
	// overlap >= size must still advance the window
	chunks, err := SplitTranscript(text, 10, 10)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartOffset <= chunks[i-1].StartOffset {
			t.Fatalf("window did not advance: chunk %d starts at %d after %d",
				i, chunks[i].StartOffset, chunks[i-1].StartOffset)
		}
	}
	if last := chunks[len(chunks)-1]; last.EndOffset != 25 {
		t.Fatalf("last chunk ends at %d, want 25", last.EndOffset)
	}
}

func TestSplitTranscriptNegativeOverlap(t *testing.T) {
	chunks, err := SplitTranscript(strings.Repeat("z", 30), 10, -5)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 contiguous chunks, got %d", len(chunks))
	}
	if chunks[1].StartOffset != 10 {
		t.Fatalf("negative overlap not treated as zero: second chunk starts at %d", chunks[1].StartOffset)
	}
}

func TestSplitTranscriptInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		chunkSize int
	}{
		{"empty text", "", 100},
		{"whitespace text", "   \n\t ", 100},
		{"zero chunk size", "some text", 0},
		{"negative chunk size", "some text", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SplitTranscript(tc.text, tc.chunkSize, 0)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSplitTranscriptMultibyteRunes(t *testing.T) {
	text := strings.Repeat("日本語の会議", 100) // 600 runes
	chunks, err := SplitTranscript(text, 250, 50)
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	var rebuilt []rune
	for _, c := range chunks {
		r := []rune(c.Text)
		if len(r) != c.EndOffset-c.StartOffset {
			t.Fatalf("chunk %d: %d runes, offsets claim %d", c.Index, len(r), c.EndOffset-c.StartOffset)
		}
		rebuilt = append(rebuilt[:c.StartOffset], r...)
	}
	if string(rebuilt) != text {
		t.Fatal("chunks do not reassemble the original text")
	}
}
