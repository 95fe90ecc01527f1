package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

func TestMergeChunkResultsOrdersByIndex(t *testing.T) {
	results := []models.ChunkResult{
		{Index: 2, Status: models.ChunkSuccess, SummaryFragment: "third"},
		{Index: 0, Status: models.ChunkSuccess, SummaryFragment: "first"},
		{Index: 1, Status: models.ChunkSuccess, SummaryFragment: "second"},
	}
	merged, excluded, err := MergeChunkResults(results)
	if err != nil {
		t.Fatalf("merge error: %v", err)
	}
	if excluded != 0 {
		t.Fatalf("expected 0 excluded, got %d", excluded)
	}
	if merged.Summary != "first\n\nsecond\n\nthird" {
		t.Fatalf("fragments out of order: %q", merged.Summary)
	}
	if merged.ChunkCount != 3 {
		t.Fatalf("chunk count %d, want 3", merged.ChunkCount)
	}
}

func TestMergeChunkResultsSkipsFailed(t *testing.T) {
	results := []models.ChunkResult{
		{Index: 0, Status: models.ChunkSuccess, SummaryFragment: "intro", ActionItems: []string{"send agenda"}},
		{Index: 1, Status: models.ChunkFailed, Error: "backend error: timeout"},
		{Index: 2, Status: models.ChunkSuccess, SummaryFragment: "wrap-up", ActionItems: []string{"book room"}},
	}
	merged, excluded, err := MergeChunkResults(results)
	if err != nil {
		t.Fatalf("merge error: %v", err)
	}
	if excluded != 1 {
		t.Fatalf("expected 1 excluded, got %d", excluded)
	}
	if merged.ChunkCount != 2 {
		t.Fatalf("chunk count %d, want 2", merged.ChunkCount)
	}
	if merged.Summary != "intro\n\nwrap-up" {
		t.Fatalf("unexpected summary: %q", merged.Summary)
	}
	if !reflect.DeepEqual(merged.ActionItems, []string{"send agenda", "book room"}) {
		t.Fatalf("unexpected action items: %v", merged.ActionItems)
	}
}

func TestMergeChunkResultsAllFailed(t *testing.T) {
	results := []models.ChunkResult{
		{Index: 0, Status: models.ChunkFailed, Error: "x"},
		{Index: 1, Status: models.ChunkFailed, Error: "y"},
	}
	merged, excluded, err := MergeChunkResults(results)
	if !errors.Is(err, ErrNoUsableChunks) {
		t.Fatalf("expected ErrNoUsableChunks, got %v", err)
	}
	if merged != nil {
		t.Fatal("expected nil result when every chunk failed")
	}
	if excluded != 2 {
		t.Fatalf("expected 2 excluded, got %d", excluded)
	}
}

func TestMergeChunkResultsDedupesEntries(t *testing.T) {
	results := []models.ChunkResult{
		{
			Index: 0, Status: models.ChunkSuccess,
			ActionItems: []string{"Send the agenda", "Review budget"},
			KeyPoints:   []string{"Q3 targets agreed"},
		},
		{
			Index: 1, Status: models.ChunkSuccess,
			// duplicates differing only in case and whitespace
			ActionItems: []string{"send  the agenda", "Schedule follow-up"},
			KeyPoints:   []string{"q3 targets  agreed", "Hiring freeze lifted"},
		},
	}
	merged, _, err := MergeChunkResults(results)
	if err != nil {
		t.Fatalf("merge error: %v", err)
	}
	wantActions := []string{"Send the agenda", "Review budget", "Schedule follow-up"}
	if !reflect.DeepEqual(merged.ActionItems, wantActions) {
		t.Fatalf("action items = %v, want %v", merged.ActionItems, wantActions)
	}
	wantPoints := []string{"Q3 targets agreed", "Hiring freeze lifted"}
	if !reflect.DeepEqual(merged.KeyPoints, wantPoints) {
		t.Fatalf("key points = %v, want %v", merged.KeyPoints, wantPoints)
	}
}

func TestMergeChunkResultsSkipsEmptyEntries(t *testing.T) {
	results := []models.ChunkResult{
		{Index: 0, Status: models.ChunkSuccess, SummaryFragment: "  ", ActionItems: []string{"", "   ", "real item"}},
	}
	merged, _, err := MergeChunkResults(results)
	if err != nil {
		t.Fatalf("merge error: %v", err)
	}
	if merged.Summary != "" {
		t.Fatalf("blank fragment should be dropped, got %q", merged.Summary)
	}
	if !reflect.DeepEqual(merged.ActionItems, []string{"real item"}) {
		t.Fatalf("unexpected action items: %v", merged.ActionItems)
	}
}
