// Package ledger records one row per pipeline run in a local sqlite file.
// It is observational: the pipeline's correctness never depends on it, and a
// nil *Ledger is a valid no-op.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/esgpipe/esgpipe/constants"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	target      TEXT NOT NULL,
	status      TEXT NOT NULL,
	chunks      INTEGER NOT NULL DEFAULT 0,
	records     INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at DESC);
`

// Run is one ledger row.
type Run struct {
	ID         string
	Kind       constants.RunKind
	Target     string
	Status     constants.RunStatus
	Chunks     int
	Records    int
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(ctx context.Context, path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

func (l *Ledger) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

// Begin inserts a RUNNING row and returns its id. Failures are logged and
// swallowed; an unwritable ledger must not block a run.
func (l *Ledger) Begin(ctx context.Context, kind constants.RunKind, target string) string {
	if l == nil {
		return ""
	}
	id := uuid.New().String()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, target, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(kind), target, string(constants.RunStatusRunning), time.Now().UTC())
	if err != nil {
		l.logger.Warn("ledger.begin_error", "kind", kind, "target", target, "error", err)
		return ""
	}
	return id
}

// Finish stamps the terminal status and counters on a row created by Begin.
func (l *Ledger) Finish(ctx context.Context, id string, status constants.RunStatus, chunks, records int, runErr error) {
	if l == nil || id == "" {
		return
	}
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, chunks = ?, records = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(status), chunks, records, errText, time.Now().UTC(), id)
	if err != nil {
		l.logger.Warn("ledger.finish_error", "run_id", id, "error", err)
	}
}

// Recent returns the newest rows, most recent first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	if l == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, kind, target, status, chunks, records, error, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			l.logger.Warn("ledger.rows_close_error", "error", cerr)
		}
	}()

	var out []Run
	for rows.Next() {
		var r Run
		var kind, status string
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &kind, &r.Target, &status, &r.Chunks, &r.Records, &r.Error, &r.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Kind = constants.RunKind(kind)
		r.Status = constants.RunStatus(status)
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
