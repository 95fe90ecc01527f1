package services

import "errors"

// Sentinel errors for the summarization pipeline. Callers classify with
// errors.Is; wrapped messages carry the detail.
var (
	// ErrInvalidInput rejects a submission before any job is created.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoUsableChunks means every chunk of a run failed, so there is
	// nothing to merge. Job-level, terminal.
	ErrNoUsableChunks = errors.New("no usable chunks")

	// ErrNotFound is returned on reads for an unknown job or meeting.
	ErrNotFound = errors.New("not found")
)
