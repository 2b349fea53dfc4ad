package core

import (
	"context"
	"time"
)

// SessionEntry is one row of the session index. It points at the log files
// written for a session; the files themselves remain the source of truth.
type SessionEntry struct {
	SessionID string    `json:"session_id"`
	Timestamp string    `json:"timestamp"`
	Patient   string    `json:"patient"`
	JSONPath  string    `json:"json_path"`
	TXTPath   string    `json:"txt_path"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionIndex interface {
	Add(ctx context.Context, entry SessionEntry) error
	Get(ctx context.Context, sessionID string) (*SessionEntry, error)
	ListRecent(ctx context.Context, limit int) ([]SessionEntry, error)
	// ListBeyond returns entries older than the newest keep entries,
	// newest-first. Used by the retention sweeper.
	ListBeyond(ctx context.Context, keep int) ([]SessionEntry, error)
	Delete(ctx context.Context, sessionID string) error
}
