package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CompareStore keeps one JSON artifact per (category, document set) under
// dir. The artifact is the reconciled oracle output, stored as-is so a
// reader sees exactly what the model grouped.
type CompareStore struct {
	dir    string
	logger *slog.Logger
}

func NewCompareStore(dir string, logger *slog.Logger) (*CompareStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create compare store dir: %w", err)
	}
	return &CompareStore{dir: dir, logger: logger}, nil
}

// Key derives the cache identity from the category and the document stems.
// Stems are sorted so the same selection in any order hits the same artifact.
func Key(category string, documents []string) string {
	sorted := make([]string, len(documents))
	for i, d := range documents {
		sorted[i] = strings.ReplaceAll(d, " ", "_")
	}
	sort.Strings(sorted)
	return "common_metrics_" + strings.ToLower(category) + "_" + strings.Join(sorted, "_")
}

// Path returns the artifact location for a cache key.
func (s *CompareStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads a cached comparison. The boolean reports presence.
func (s *CompareStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read comparison %s: %w", key, err)
	}
	return data, true, nil
}

// Store persists a comparison artifact.
func (s *CompareStore) Store(key string, data []byte) (string, error) {
	dst := s.Path(key)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write comparison %s: %w", key, err)
	}
	s.logger.Info("store.comparison.ok", "key", key, "bytes", len(data), "path", dst)
	return dst, nil
}
