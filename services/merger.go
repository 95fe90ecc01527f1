package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// MergeChunkResults assembles per-chunk outputs into one document-level
// result. Summary fragments are joined in chunk-index order; action items
// and key points are deduplicated case-insensitively with whitespace
// normalized, first occurrence winning. Failed chunks are skipped and their
// count returned so the caller can surface a warning. If every chunk failed
// the merge returns ErrNoUsableChunks.
func MergeChunkResults(results []models.ChunkResult) (*models.MergedResult, int, error) {
	ordered := make([]models.ChunkResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	var (
		fragments   []string
		actionItems []string
		keyPoints   []string
		seenActions = map[string]bool{}
		seenPoints  = map[string]bool{}
		excluded    int
	)

	for _, r := range ordered {
		if r.Status != models.ChunkSuccess {
			excluded++
			continue
		}
		if frag := strings.TrimSpace(r.SummaryFragment); frag != "" {
			fragments = append(fragments, frag)
		}
		actionItems = appendDeduped(actionItems, seenActions, r.ActionItems)
		keyPoints = appendDeduped(keyPoints, seenPoints, r.KeyPoints)
	}

	included := len(ordered) - excluded
	if included == 0 {
		return nil, excluded, fmt.Errorf("%w: all %d chunks failed", ErrNoUsableChunks, excluded)
	}

	return &models.MergedResult{
		Summary:     strings.Join(fragments, "\n\n"),
		ActionItems: actionItems,
		KeyPoints:   keyPoints,
		ChunkCount:  included,
	}, excluded, nil
}

func appendDeduped(dst []string, seen map[string]bool, entries []string) []string {
	for _, entry := range entries {
		key := normalizeEntry(entry)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		dst = append(dst, strings.TrimSpace(entry))
	}
	return dst
}

// normalizeEntry lowercases and collapses whitespace so that trivial
// variants introduced by overlapping chunks compare equal.
func normalizeEntry(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
