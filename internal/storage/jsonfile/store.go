package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"internship-monitor/internal/observability"
	"internship-monitor/internal/storage"
)

// Store keeps the seen-set as a JSON array of strings in a single file.
type Store struct {
	path       string
	maxEntries int
	logger     *observability.Logger
}

// NewStore stores the seen-set at dataDir/fileName. maxEntries > 0 bounds the
// file to the most recent identifiers.
func NewStore(dataDir, fileName string, maxEntries int, logger *observability.Logger) *Store {
	return &Store{
		path:       filepath.Join(dataDir, fileName),
		maxEntries: maxEntries,
		logger:     logger,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the seen-set. A missing file is an empty set; so is a corrupt one,
// which is logged and replaced on the next Save.
func (s *Store) Load(ctx context.Context) (*storage.SeenSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.NewSeenSet(), nil
		}
		return nil, fmt.Errorf("failed to read seen-set: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("Seen-set file is corrupted, starting fresh",
			"path", s.path,
			"error", err.Error(),
		)
		return storage.NewSeenSet(), nil
	}

	s.logger.Debug("Loaded seen-set", "path", s.path, "count", len(ids))
	return storage.NewSeenSet(ids...), nil
}

// Save rewrites the whole file.
func (s *Store) Save(ctx context.Context, seen *storage.SeenSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	ids := seen.Newest(s.maxEntries)
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen-set: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write seen-set: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace seen-set: %w", err)
	}

	if dropped := seen.Len() - len(ids); dropped > 0 {
		s.logger.Info("Seen-set trimmed", "kept", len(ids), "dropped", dropped)
	}
	s.logger.Debug("Saved seen-set", "path", s.path, "count", len(ids))
	return nil
}
