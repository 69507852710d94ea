package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/esgpipe/esgpipe/constants"
	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/ledger"
	"github.com/esgpipe/esgpipe/internal/llm"
	"github.com/esgpipe/esgpipe/internal/metrics"
	"github.com/esgpipe/esgpipe/internal/reconcile"
	"github.com/esgpipe/esgpipe/internal/store"
)

// CompareResult summarizes one comparison run.
type CompareResult struct {
	Groups []metrics.Group
	Key    string
	Cached bool
	Path   string
}

// Comparator groups semantically equivalent metrics across previously
// extracted tables, one oracle request per (category, document set).
type Comparator struct {
	Logger *slog.Logger
	Oracle llm.Oracle
	Tables *store.TableStore
	Cache  *store.CompareStore
	Ledger *ledger.Ledger // optional
}

func NewComparator(logger *slog.Logger, oracle llm.Oracle, tables *store.TableStore, cache *store.CompareStore, led *ledger.Ledger) *Comparator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparator{Logger: logger, Oracle: oracle, Tables: tables, Cache: cache, Ledger: led}
}

// Compare loads the named documents' tables, filters them to the category
// and asks the oracle for semantic groups. Identical document-set-plus-
// category requests are served from the persisted artifact without an
// oracle call, mirroring the extraction cache invariant. Fewer than two
// documents with matching rows aborts with insufficient input and writes
// nothing.
func (c *Comparator) Compare(ctx context.Context, documents []string, category string) (CompareResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	key := store.Key(category, documents)

	log := c.Logger.With("run_id", runID, "category", category, "documents", len(documents))
	log.Info("pipeline.compare.start", "key", key)

	if len(documents) < 2 {
		return CompareResult{}, common.NewAppError("COMPARE_ERROR",
			"at least two documents are required", common.ErrInsufficientInput)
	}

	if data, ok, err := c.Cache.Load(key); err != nil {
		return CompareResult{}, err
	} else if ok {
		groups, err := metrics.DecodeGroups(data)
		if err != nil {
			return CompareResult{}, fmt.Errorf("cached comparison %s: %w", key, err)
		}
		log.Info("pipeline.compare.cache_hit", "groups", len(groups))
		if id := c.Ledger.Begin(ctx, constants.RunKindCompare, key); id != "" {
			c.Ledger.Finish(ctx, id, constants.RunStatusCached, 0, len(groups), nil)
		}
		return CompareResult{Groups: groups, Key: key, Cached: true, Path: c.Cache.Path(key)}, nil
	}

	filtered := make([][]metrics.Record, 0, len(documents))
	for _, doc := range documents {
		table, ok, err := c.Tables.Load(doc)
		if err != nil {
			// A malformed table drops out of the comparison, same as a
			// missing one; the minimum-input guard below decides the outcome.
			log.Warn("pipeline.compare.table_unreadable", "document", doc, "error", err)
			continue
		}
		if !ok {
			log.Warn("pipeline.compare.table_missing", "document", doc)
			continue
		}
		rows := table.FilterCategory(category)
		if len(rows) == 0 {
			log.Warn("pipeline.compare.no_rows_in_category", "document", doc)
			continue
		}
		filtered = append(filtered, rows)
	}

	if len(filtered) < 2 {
		return CompareResult{}, common.NewAppError("COMPARE_ERROR",
			fmt.Sprintf("need at least two documents with %s rows, got %d", category, len(filtered)),
			common.ErrInsufficientInput)
	}

	ledgerID := c.Ledger.Begin(ctx, constants.RunKindCompare, key)

	payload, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		c.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, 0, err)
		return CompareResult{}, fmt.Errorf("marshal comparison payload: %w", err)
	}

	raw, err := c.Oracle.Generate(ctx, llm.BuildComparisonPrompt(category), string(payload))
	if err != nil {
		c.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, 0, err)
		return CompareResult{}, err
	}

	recovered, ok := reconcile.RecoverJSON(raw)
	if !ok {
		err := common.NewAppError("COMPARE_ERROR",
			"no JSON could be recovered from the comparison response", common.ErrBadOracleJSON)
		c.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, 0, err)
		return CompareResult{}, err
	}
	groups, err := metrics.DecodeGroups(recovered)
	if err != nil {
		appErr := common.NewAppError("COMPARE_ERROR",
			fmt.Sprintf("comparison response is not group-shaped: %v", err), common.ErrBadOracleJSON)
		c.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, 0, appErr)
		return CompareResult{}, appErr
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, recovered, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(recovered)
	}
	dst, err := c.Cache.Store(key, pretty.Bytes())
	if err != nil {
		c.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, len(groups), err)
		return CompareResult{}, err
	}

	c.Ledger.Finish(ctx, ledgerID, constants.RunStatusSucceeded, 0, len(groups), nil)
	log.Info("pipeline.compare.ok",
		"groups", len(groups),
		"tables", len(filtered),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return CompareResult{Groups: groups, Key: key, Path: dst}, nil
}
