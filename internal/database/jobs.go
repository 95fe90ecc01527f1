package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KRAadithiya/Meeting-Summarizer/models"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
)

// JobRepository is the relational implementation of services.JobStore,
// plus the staleness listing used by the sweeper.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a pending job for the meeting. A meeting has at most one
// current job, so an existing row is reset in place with the fresh id.
func (r *JobRepository) Create(ctx context.Context, meetingID string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		insert into summary_jobs (id, meeting_id, status, created_at, updated_at, chunk_count)
		values ($1, $2, $3, $4, $4, 0)
		on conflict (meeting_id) do update set
			id = excluded.id,
			status = excluded.status,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			start_time = null,
			end_time = null,
			chunk_count = 0,
			error = null,
			metadata = null,
			result = null
	`, id, meetingID, models.StatusPending, now)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	return id, nil
}

// Update applies the set fields in one statement; updated_at always
// advances. Terminal jobs never regress to an earlier status.
func (r *JobRepository) Update(ctx context.Context, jobID string, upd services.JobUpdate) error {
	set := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Status != "" {
		add("status", upd.Status)
	}
	if upd.StartTime != nil {
		add("start_time", upd.StartTime.UTC())
	}
	if upd.EndTime != nil {
		add("end_time", upd.EndTime.UTC())
	}
	if upd.ChunkCount != nil {
		add("chunk_count", *upd.ChunkCount)
	}
	if upd.Error != nil {
		add("error", *upd.Error)
	}
	if upd.Metadata != nil {
		add("metadata", *upd.Metadata)
	}
	if upd.Result != nil {
		raw, err := json.Marshal(upd.Result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		add("result", raw)
	}

	args = append(args, jobID)
	query := fmt.Sprintf("update summary_jobs set %s where id = $%d", strings.Join(set, ", "), len(args))
	if upd.Status == models.StatusPending || upd.Status == models.StatusProcessing {
		query += fmt.Sprintf(" and status not in ('%s', '%s')", models.StatusCompleted, models.StatusFailed)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: job %s", services.ErrNotFound, jobID)
	}
	return nil
}

const jobColumns = `id, meeting_id, status, created_at, updated_at, start_time, end_time, chunk_count, error, metadata, result`

func (r *JobRepository) Read(ctx context.Context, jobID string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+jobColumns+` from summary_jobs where id = $1`, jobID)
	return scanJob(row)
}

func (r *JobRepository) ReadByMeeting(ctx context.Context, meetingID string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+jobColumns+` from summary_jobs where meeting_id = $1`, meetingID)
	return scanJob(row)
}

// ListStale returns non-terminal jobs whose updated_at stopped advancing
// before the cutoff.
func (r *JobRepository) ListStale(ctx context.Context, updatedBefore time.Time) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		select `+jobColumns+` from summary_jobs
		where status in ($1, $2) and updated_at < $3
		order by updated_at
	`, models.StatusPending, models.StatusProcessing, updatedBefore.UTC())
	if err != nil {
		return nil, fmt.Errorf("list stale jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		job       models.Job
		startTime sql.NullTime
		endTime   sql.NullTime
		errText   sql.NullString
		metadata  sql.NullString
		result    []byte
	)

	err := row.Scan(
		&job.ID, &job.MeetingID, &job.Status, &job.CreatedAt, &job.UpdatedAt,
		&startTime, &endTime, &job.ChunkCount, &errText, &metadata, &result,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: job", services.ErrNotFound)
		}
		return nil, fmt.Errorf("read job: %w", err)
	}

	if startTime.Valid {
		t := startTime.Time
		job.StartTime = &t
	}
	if endTime.Valid {
		t := endTime.Time
		job.EndTime = &t
	}
	if errText.Valid {
		job.Error = errText.String
	}
	if metadata.Valid {
		job.Metadata = metadata.String
	}
	if len(result) > 0 {
		var merged models.MergedResult
		if err := json.Unmarshal(result, &merged); err != nil {
			return nil, fmt.Errorf("decode job result: %w", err)
		}
		job.Result = &merged
	}
	return &job, nil
}
