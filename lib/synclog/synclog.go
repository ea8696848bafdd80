// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package synclog records pull outcomes in a local SQLite database.
// The log is purely observational: the CLI writes an event around
// each pull and "spectra history" reads them back. Nothing in the
// library depends on it.
package synclog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/spectra-foundation/spectra/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS pull_events (
    id         INTEGER PRIMARY KEY,
    dataset_id TEXT NOT NULL,
    title      TEXT NOT NULL,
    started_at INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    files      INTEGER NOT NULL,
    bytes      INTEGER NOT NULL,
    outcome    TEXT NOT NULL,
    error      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS pull_events_started_at ON pull_events (started_at DESC);
`

// Event is one recorded pull.
type Event struct {
	DatasetID string
	Title     string
	StartedAt time.Time
	Duration  time.Duration
	Files     int
	Bytes     int64
	Outcome   string
	Error     string
}

// Outcome values for Event.Outcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Log is an append-only pull history backed by SQLite.
type Log struct {
	pool *sqlitepool.Pool
}

// Open opens (and if needed creates) the history database at path.
func Open(path string, logger *slog.Logger) (*Log, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     path,
		PoolSize: 2,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening pull history: %w", err)
	}
	return &Log{pool: pool}, nil
}

// Close closes the underlying pool.
func (l *Log) Close() error {
	return l.pool.Close()
}

// Record appends one pull event.
func (l *Log) Record(ctx context.Context, event Event) error {
	conn, err := l.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer l.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO pull_events
		    (dataset_id, title, started_at, duration_ms, files, bytes, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				event.DatasetID,
				event.Title,
				event.StartedAt.UnixMilli(),
				event.Duration.Milliseconds(),
				event.Files,
				event.Bytes,
				event.Outcome,
				event.Error,
			},
		})
	if err != nil {
		return fmt.Errorf("recording pull event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	conn, err := l.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer l.pool.Put(conn)

	var events []Event
	err = sqlitex.Execute(conn, `
		SELECT dataset_id, title, started_at, duration_ms, files, bytes, outcome, error
		FROM pull_events
		ORDER BY started_at DESC, id DESC
		LIMIT ?`,
		&sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				events = append(events, Event{
					DatasetID: stmt.ColumnText(0),
					Title:     stmt.ColumnText(1),
					StartedAt: time.UnixMilli(stmt.ColumnInt64(2)),
					Duration:  time.Duration(stmt.ColumnInt64(3)) * time.Millisecond,
					Files:     stmt.ColumnInt(4),
					Bytes:     stmt.ColumnInt64(5),
					Outcome:   stmt.ColumnText(6),
					Error:     stmt.ColumnText(7),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("reading pull history: %w", err)
	}
	return events, nil
}
