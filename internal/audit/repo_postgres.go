package audit

import (
	"context"
	"database/sql"
	"errors"

	"call-console/pkg/utils"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS console_audit_events (
		id           UUID PRIMARY KEY,
		type         TEXT NOT NULL,
		call_id      TEXT NOT NULL DEFAULT '',
		call_list_id TEXT NOT NULL DEFAULT '',
		request_id   TEXT NOT NULL DEFAULT '',
		message      TEXT NOT NULL DEFAULT '',
		metadata     JSONB,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS console_audit_events_created_at_idx
		ON console_audit_events (created_at DESC)`,
}

// PostgresRepo stores events in console_audit_events. It only ever inserts.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) (*PostgresRepo, error) {
	if db == nil {
		return nil, errors.New("audit: db is nil")
	}
	return &PostgresRepo{db: db}, nil
}

// EnsureSchema creates the table and index when missing.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	return utils.Migrate(ctx, r.db, schema...)
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO console_audit_events
			(id, type, call_id, call_list_id, request_id, message, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, string(e.Type), e.CallID, e.CallListID, e.RequestID, e.Message, nullableJSON(e.Metadata), e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, call_id, call_list_id, request_id, message, COALESCE(metadata::text, ''), created_at
		FROM console_audit_events
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0, limit)
	for rows.Next() {
		var e Event
		var typ string
		if err := rows.Scan(&e.ID, &typ, &e.CallID, &e.CallListID, &e.RequestID, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Type = EventType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableJSON(s string) any {
	if s == "" {
		return nil
	}
	return s
}
