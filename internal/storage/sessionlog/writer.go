package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/medagent/internal/core"
)

// Writer persists completed sessions as a pair of files named by session
// id: a structured JSON log and a human-readable text rendering.
type Writer struct {
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string { return w.dir }

func (w *Writer) JSONPath(sessionID string) string {
	return filepath.Join(w.dir, sessionID+".json")
}

func (w *Writer) TXTPath(sessionID string) string {
	return filepath.Join(w.dir, sessionID+".txt")
}

// Write persists both renderings of the session. Either both files exist
// afterwards or neither does: if the text file fails after the JSON was
// written, the JSON is removed again.
func (w *Writer) Write(sess *core.SessionLog) (jsonPath, txtPath string, err error) {
	jsonPath = w.JSONPath(sess.SessionID)
	txtPath = w.TXTPath(sess.SessionID)

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal session log: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write json log: %w", err)
	}

	if err := os.WriteFile(txtPath, []byte(renderText(sess)), 0o644); err != nil {
		_ = os.Remove(jsonPath)
		return "", "", fmt.Errorf("failed to write text log: %w", err)
	}
	return jsonPath, txtPath, nil
}

// Read loads a previously written session from its JSON log.
func (w *Writer) Read(sessionID string) (*core.SessionLog, error) {
	data, err := os.ReadFile(w.JSONPath(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session log: %w", err)
	}
	var sess core.SessionLog
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session log: %w", err)
	}
	return &sess, nil
}

// Remove deletes both files of a session. Missing files are not an error,
// so the retention sweeper can re-run over a partially cleaned session.
func (w *Writer) Remove(sessionID string) error {
	for _, path := range []string{w.JSONPath(sessionID), w.TXTPath(sessionID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

func renderText(sess *core.SessionLog) string {
	var b strings.Builder
	b.WriteString("=== MedAgent Diagnosis Log ===\n")
	fmt.Fprintf(&b, "Session ID: %s\nTimestamp: %s\n\n", sess.SessionID, sess.Timestamp)
	b.WriteString("=== Report ===\n")
	b.WriteString(sess.ReportText)
	b.WriteString("\n\n")
	for _, key := range core.OutputKeys {
		fmt.Fprintf(&b, "--- %s ---\n", key)
		b.WriteString(sess.Outputs[key])
		b.WriteString("\n\n")
	}
	return b.String()
}
