package services

import (
	"fmt"
	"strings"

	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// SplitTranscript splits text into overlapping windows of at most chunkSize
// runes. Consecutive windows share overlap runes so context survives chunk
// boundaries; the final window may be shorter. The same inputs always yield
// the same sequence.
func SplitTranscript(text string, chunkSize, overlap int) ([]models.ChunkSpec, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: transcript text is empty", ErrInvalidInput)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, chunkSize)
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		// A full-size overlap would stop the window from advancing.
		overlap = chunkSize - 1
	}

	runes := []rune(text)
	step := chunkSize - overlap

	var chunks []models.ChunkSpec
	for start := 0; ; start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, models.ChunkSpec{
			Index:       len(chunks),
			StartOffset: start,
			EndOffset:   end,
			Text:        string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
