package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/medagent/internal/core"
)

// ErrSessionNotFound is returned when the index has no row for a session id.
var ErrSessionNotFound = errors.New("session not found")

// SessionsRepo is the SQLite-backed session index. The log files on disk
// stay the source of truth; this table only makes them discoverable after
// a restart.
type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) Add(ctx context.Context, entry core.SessionEntry) error {
	query := `INSERT INTO sessions (session_id, timestamp, patient, json_path, txt_path, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		entry.SessionID, entry.Timestamp, entry.Patient, entry.JSONPath, entry.TXTPath, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionsRepo) Get(ctx context.Context, sessionID string) (*core.SessionEntry, error) {
	query := `SELECT session_id, timestamp, patient, json_path, txt_path, created_at
	          FROM sessions WHERE session_id = ?`
	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return entry, nil
}

func (r *SessionsRepo) ListRecent(ctx context.Context, limit int) ([]core.SessionEntry, error) {
	query := `SELECT session_id, timestamp, patient, json_path, txt_path, created_at
	          FROM sessions ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.list(ctx, query, limit)
}

func (r *SessionsRepo) ListBeyond(ctx context.Context, keep int) ([]core.SessionEntry, error) {
	query := `SELECT session_id, timestamp, patient, json_path, txt_path, created_at
	          FROM sessions ORDER BY created_at DESC, id DESC LIMIT -1 OFFSET ?`
	return r.list(ctx, query, keep)
}

func (r *SessionsRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionsRepo) list(ctx context.Context, query string, arg any) ([]core.SessionEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var entries []core.SessionEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*core.SessionEntry, error) {
	var entry core.SessionEntry
	var createdAt time.Time
	if err := s.Scan(&entry.SessionID, &entry.Timestamp, &entry.Patient,
		&entry.JSONPath, &entry.TXTPath, &createdAt); err != nil {
		return nil, err
	}
	entry.CreatedAt = createdAt
	return &entry, nil
}

var _ core.SessionIndex = (*SessionsRepo)(nil)
