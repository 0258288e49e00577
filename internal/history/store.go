package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cvforge/internal/model"
)

// FileStore persists generation records as one JSON object per line,
// appended in insertion order. The format stays greppable, and a damaged
// file never blocks generation: corrupt lines are skipped on read.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ model.HistoryStore = (*FileStore)(nil)

// NewFileStore returns a store backed by the JSONL file at path. The file
// is created on first Append.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Append writes one record to the end of the log.
func (s *FileStore) Append(rec model.GenerationRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// List returns all records oldest-first. A missing or unreadable file
// yields an empty history rather than an error.
func (s *FileStore) List() ([]model.GenerationRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("history unreadable, treating as empty", "path", s.path, "error", err)
		}
		return nil, nil
	}
	defer f.Close()

	var records []model.GenerationRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024) // generated outputs can be long
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec model.GenerationRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			s.logger.Warn("skipping corrupt history line", "path", s.path, "error", err)
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		s.logger.Warn("history read stopped early", "path", s.path, "error", err)
	}
	return records, nil
}

// Clear removes the whole history.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
