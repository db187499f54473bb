package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"invoice_idor/internal/models"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const (
	insertEventSQL = `INSERT INTO access_events (id, occurred_at, type, user_id, message, meta) VALUES (?, ?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, user_id, message, meta FROM access_events`
	deleteEventSQL = `DELETE FROM access_events WHERE occurred_at < ?`
)

// Append inserts a new event. If EventID or OccurredAt are empty, they're set.
// occurred_at is stored as Unix nanoseconds so range filters compare numerically.
func (r *EventSQLite) Append(ctx context.Context, e models.AccessEvent) error {
	e = withEventDefaults(e)

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UnixNano(),
		e.Type,
		e.UserID,
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert access event %s: %w", e.Type, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.AccessEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UnixNano())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UnixNano())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := selectEventSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select access events: %w", err)
	}
	defer rows.Close()

	out := make([]models.AccessEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.AccessEvent
			nanos   int64
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &nanos, &ev.Type, &ev.UserID, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan access event: %w", err)
		}
		ev.OccurredAt = time.Unix(0, nanos).UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access events: %w", err)
	}
	return out, nil
}

// DeleteBefore removes events older than the cutoff and reports how many went.
func (r *EventSQLite) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteEventSQL, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete access events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
