package models

import "time"

// Meeting groups transcripts and their summarization jobs.
type Meeting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transcript is one raw transcript segment saved for a meeting.
// Immutable once stored.
type Transcript struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Submission records the parameters of the latest processing request for
// a meeting, so a run can be replayed or audited later.
type Submission struct {
	MeetingID string    `json:"meeting_id"`
	Text      string    `json:"text"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	ChunkSize int       `json:"chunk_size"`
	Overlap   int       `json:"overlap"`
	CreatedAt time.Time `json:"created_at"`
}
