package models

import "time"

// Job statuses. Transitions only move forward:
// pending -> processing -> completed | failed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is one asynchronous summarization run for a single transcript
// submission. A meeting has at most one current job; re-submitting a
// transcript for the same meeting replaces the previous job.
type Job struct {
	ID         string        `json:"id"`
	MeetingID  string        `json:"meeting_id"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	StartTime  *time.Time    `json:"start_time,omitempty"`
	EndTime    *time.Time    `json:"end_time,omitempty"`
	ChunkCount int           `json:"chunk_count"`
	Error      string        `json:"error,omitempty"`
	Metadata   string        `json:"metadata,omitempty"`
	Result     *MergedResult `json:"result,omitempty"`
}

// Terminal reports whether the job has reached a final state.
func (j *Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
