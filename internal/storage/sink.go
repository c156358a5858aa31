package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Soumik-05/talentscout/internal/conversation"

	"go.uber.org/zap"
)

// DefaultDir is where finished interviews are dumped when no directory is
// configured.
const DefaultDir = "candidate_data"

// FileSink stores finished interview snapshots as pretty-printed JSON files
// keyed by completion timestamp.
type FileSink struct {
	dir    string
	logger *zap.Logger
}

// NewFileSink creates a FileSink writing into dir. An empty dir falls back
// to DefaultDir.
func NewFileSink(dir string, logger *zap.Logger) *FileSink {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{dir: dir, logger: logger}
}

// Save writes the snapshot to <dir>/<yyyymmdd_hhmmss>.json, creating the
// directory when needed.
func (s *FileSink) Save(snapshot *conversation.Snapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is required")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal candidate record: %w", err)
	}

	path := filepath.Join(s.dir, snapshot.Timestamp.Format("20060102_150405")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write candidate record: %w", err)
	}

	s.logger.Info("candidate record saved",
		zap.String("session_id", snapshot.SessionID),
		zap.String("path", path),
	)

	return nil
}
