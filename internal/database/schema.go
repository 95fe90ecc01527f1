package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema mirrors the transcript-summarizer layout: meetings own transcripts,
// each meeting has at most one current summarization job, and the latest
// submission parameters are kept for auditing.
const schema = `
create table if not exists meetings (
	id         text primary key,
	title      text not null,
	created_at timestamptz not null,
	updated_at timestamptz not null
);

create table if not exists transcripts (
	id          text primary key,
	meeting_id  text not null references meetings(id) on delete cascade,
	transcript  text not null,
	recorded_at text not null
);

create table if not exists summary_jobs (
	id          text not null,
	meeting_id  text primary key,
	status      text not null,
	created_at  timestamptz not null,
	updated_at  timestamptz not null,
	start_time  timestamptz,
	end_time    timestamptz,
	chunk_count integer not null default 0,
	error       text,
	metadata    text,
	result      jsonb
);

create unique index if not exists summary_jobs_id_idx on summary_jobs(id);
create index if not exists summary_jobs_status_idx on summary_jobs(status, updated_at);

create table if not exists transcript_chunks (
	meeting_id      text primary key,
	transcript_text text not null,
	provider        text not null,
	model           text not null,
	chunk_size      integer,
	overlap         integer,
	created_at      timestamptz not null
);
`

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
