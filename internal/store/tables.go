// Package store persists the two flat-file caches: one CSV metric table per
// document, and one JSON comparison artifact per (category, document set).
// Both are append-only by identity; repeat requests read instead of rebuild.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/esgpipe/esgpipe/internal/metrics"
)

const tableExt = ".csv"

// TableStore keeps one CSV per document under dir, keyed by document stem.
type TableStore struct {
	dir    string
	logger *slog.Logger
}

func NewTableStore(dir string, logger *slog.Logger) (*TableStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create table store dir: %w", err)
	}
	return &TableStore{dir: dir, logger: logger}, nil
}

// Path returns the artifact location for a document stem.
func (s *TableStore) Path(document string) string {
	return filepath.Join(s.dir, document+tableExt)
}

// Exists reports whether the document already has a persisted table.
func (s *TableStore) Exists(document string) bool {
	st, err := os.Stat(s.Path(document))
	return err == nil && !st.IsDir()
}

// Load reads a persisted table. The boolean reports presence; a present but
// malformed artifact returns an error.
func (s *TableStore) Load(document string) (metrics.Table, bool, error) {
	f, err := os.Open(s.Path(document))
	if err != nil {
		if os.IsNotExist(err) {
			return metrics.Table{}, false, nil
		}
		return metrics.Table{}, false, fmt.Errorf("open table %s: %w", document, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("store.table.close_error", "document", document, "error", cerr)
		}
	}()

	table, err := metrics.ReadTableCSV(f, document)
	if err != nil {
		return metrics.Table{}, true, err
	}
	return table, true, nil
}

// Store writes the table atomically (temp file + rename) so a crash never
// leaves a half-written artifact that would poison the cache check.
func (s *TableStore) Store(table metrics.Table) (string, error) {
	start := time.Now()
	dst := s.Path(table.Document)

	tmp, err := os.CreateTemp(s.dir, table.Document+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp table: %w", err)
	}
	if err := table.WriteCSV(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write table %s: %w", table.Document, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("rename table %s: %w", table.Document, err)
	}

	s.logger.Info("store.table.ok",
		"document", table.Document,
		"rows", len(table.Records),
		"path", dst,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return dst, nil
}

// List returns the stems of all persisted tables, sorted by filename.
func (s *TableStore) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+tableExt))
	if err != nil {
		return nil, err
	}
	stems := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		stems = append(stems, base[:len(base)-len(tableExt)])
	}
	return stems, nil
}
