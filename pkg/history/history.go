// Package history keeps a local log of scheduling outcomes for diagnostics.
// It records what the scheduler decided, never task state; the task store
// stays the single owner of that.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"slotta/pkg/model"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// ErrDisabled is returned by a nil or disabled log.
var ErrDisabled = errors.New("history disabled")

// Entry is one recorded scheduling outcome.
type Entry struct {
	At        time.Time
	RequestID string
	TaskID    string
	Status    model.Status
	Start     time.Time
	End       time.Time
	Message   string
	TookMS    int64
}

type Log struct {
	db *sql.DB
}

// Open creates or opens the sqlite outcome log at path.
func Open(path string) (*Log, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	l := &Log{db: db}
	if err := l.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx, string(b))
	return err
}

func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append records one outcome. Safe to call on a nil log.
func (l *Log) Append(ctx context.Context, e Entry) error {
	if l == nil || l.db == nil {
		return ErrDisabled
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO outcomes(at, request_id, task_id, status, start_at, end_at, message, took_ms)
		 VALUES(?,?,?,?,?,?,?,?)`,
		e.At.Format(time.RFC3339Nano), e.RequestID, e.TaskID, e.Status.String(),
		nullTime(e.Start), nullTime(e.End), nullStr(e.Message), e.TookMS,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// Recent returns the latest n entries, newest first.
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	if l == nil || l.db == nil {
		return nil, ErrDisabled
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT at, request_id, task_id, status, start_at, end_at, message, took_ms
		 FROM outcomes ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		var start, end, msg sql.NullString
		var status string
		if err := rows.Scan(&at, &e.RequestID, &e.TaskID, &status, &start, &end, &msg, &e.TookMS); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		e.Status = parseStatus(status)
		if start.Valid {
			e.Start, _ = time.Parse(time.RFC3339Nano, start.String)
		}
		if end.Valid {
			e.End, _ = time.Parse(time.RFC3339Nano, end.String)
		}
		e.Message = msg.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func parseStatus(s string) model.Status {
	switch s {
	case "scheduled":
		return model.StatusScheduled
	case "conflict":
		return model.StatusConflict
	case "no_slots":
		return model.StatusNoSlots
	default:
		return model.StatusError
	}
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}
