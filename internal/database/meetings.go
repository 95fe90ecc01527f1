package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KRAadithiya/Meeting-Summarizer/models"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
)

// MeetingRepository persists meetings, their transcripts and the latest
// submission parameters.
type MeetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// EnsureMeeting inserts the meeting if it does not exist yet. An empty
// title gets a placeholder so the row is still listable.
func (r *MeetingRepository) EnsureMeeting(ctx context.Context, id, title string) error {
	if title == "" {
		title = "Untitled Meeting"
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		insert into meetings (id, title, created_at, updated_at)
		values ($1, $2, $3, $3)
		on conflict (id) do nothing
	`, id, title, now)
	if err != nil {
		return fmt.Errorf("ensure meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepository) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	rows, err := r.db.QueryContext(ctx, `
		select id, title, created_at, updated_at
		from meetings
		order by created_at desc
	`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// GetMeeting returns the meeting and its transcripts.
func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (*models.Meeting, []models.Transcript, error) {
	var m models.Meeting
	err := r.db.QueryRowContext(ctx, `
		select id, title, created_at, updated_at from meetings where id = $1
	`, id).Scan(&m.ID, &m.Title, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fmt.Errorf("%w: meeting %s", services.ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("get meeting: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		select id, meeting_id, transcript, recorded_at
		from transcripts
		where meeting_id = $1
		order by recorded_at
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get meeting transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []models.Transcript
	for rows.Next() {
		var t models.Transcript
		if err := rows.Scan(&t.ID, &t.MeetingID, &t.Text, &t.Timestamp); err != nil {
			return nil, nil, fmt.Errorf("get meeting transcripts: %w", err)
		}
		transcripts = append(transcripts, t)
	}
	return &m, transcripts, rows.Err()
}

func (r *MeetingRepository) UpdateTitle(ctx context.Context, id, title string) error {
	res, err := r.db.ExecContext(ctx, `
		update meetings set title = $1, updated_at = $2 where id = $3
	`, title, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update meeting title: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meeting title: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: meeting %s", services.ErrNotFound, id)
	}
	return nil
}

// DeleteMeeting removes the meeting with its transcripts, submission
// parameters and current job.
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `delete from transcript_chunks where meeting_id = $1`, id); err != nil {
		return fmt.Errorf("delete meeting submissions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `delete from summary_jobs where meeting_id = $1`, id); err != nil {
		return fmt.Errorf("delete meeting jobs: %w", err)
	}
	res, err := tx.ExecContext(ctx, `delete from meetings where id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: meeting %s", services.ErrNotFound, id)
	}
	return tx.Commit()
}

// AddTranscript stores one immutable transcript segment.
func (r *MeetingRepository) AddTranscript(ctx context.Context, t models.Transcript) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		insert into transcripts (id, meeting_id, transcript, recorded_at)
		values ($1, $2, $3, $4)
	`, t.ID, t.MeetingID, t.Text, t.Timestamp)
	if err != nil {
		return fmt.Errorf("add transcript: %w", err)
	}
	return nil
}

// SaveSubmission upserts the latest processing parameters for a meeting.
func (r *MeetingRepository) SaveSubmission(ctx context.Context, s models.Submission) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		insert into transcript_chunks (meeting_id, transcript_text, provider, model, chunk_size, overlap, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)
		on conflict (meeting_id) do update set
			transcript_text = excluded.transcript_text,
			provider = excluded.provider,
			model = excluded.model,
			chunk_size = excluded.chunk_size,
			overlap = excluded.overlap,
			created_at = excluded.created_at
	`, s.MeetingID, s.Text, s.Provider, s.Model, s.ChunkSize, s.Overlap, now)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}
