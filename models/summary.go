package models

// ChunkSpec is a contiguous slice of the transcript. Offsets are rune
// offsets so that multi-byte characters are never split across chunks.
type ChunkSpec struct {
	Index       int    `json:"index"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Text        string `json:"text"`
}

// Chunk result statuses.
const (
	ChunkSuccess = "success"
	ChunkFailed  = "failed"
)

// ChunkResult holds the structured output of summarizing one chunk.
// A failed chunk carries the error but never aborts its siblings.
type ChunkResult struct {
	Index           int      `json:"index"`
	SummaryFragment string   `json:"summary_fragment"`
	ActionItems     []string `json:"action_items"`
	KeyPoints       []string `json:"key_points"`
	Status          string   `json:"status"`
	Error           string   `json:"error,omitempty"`
}

// MergedResult is the document-level summary assembled from the per-chunk
// results. ChunkCount is the number of chunks that contributed to it.
type MergedResult struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	KeyPoints   []string `json:"key_points"`
	ChunkCount  int      `json:"chunk_count"`
}

// ModelSelector identifies the generation backend for a run.
type ModelSelector struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
