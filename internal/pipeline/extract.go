// Package pipeline coordinates the extraction and comparison flows: cache
// check, chunking, oracle calls, reconciliation, normalization, persistence.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/esgpipe/esgpipe/constants"
	"github.com/esgpipe/esgpipe/internal/document"
	"github.com/esgpipe/esgpipe/internal/ledger"
	"github.com/esgpipe/esgpipe/internal/llm"
	"github.com/esgpipe/esgpipe/internal/metrics"
	"github.com/esgpipe/esgpipe/internal/reconcile"
	"github.com/esgpipe/esgpipe/internal/store"
)

// Config holds chunking and pacing behavior for the extract stage.
type Config struct {
	// PagesPerPart bounds each chunk's page count.
	PagesPerPart int
	// Cooldown is the fixed pause between successive oracle calls. Pacing
	// against rate limits, not a retry or correctness mechanism.
	Cooldown time.Duration
}

// Result summarizes one extraction run.
type Result struct {
	Table    metrics.Table
	Chunks   int
	Failed   int // chunks whose oracle call failed
	Unparsed int // synthetic records among Table.Records
	Cached   bool
	Path     string // persisted artifact, empty when nothing was stored
}

// Processor runs the per-document extraction flow. Chunks are processed
// strictly one at a time; there is no fan-out.
type Processor struct {
	Logger *slog.Logger
	Cfg    Config
	Pages  document.PageSource
	Oracle llm.Oracle
	Tables *store.TableStore
	Ledger *ledger.Ledger // optional
}

func NewProcessor(logger *slog.Logger, cfg Config, pages document.PageSource, oracle llm.Oracle, tables *store.TableStore, led *ledger.Ledger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PagesPerPart <= 0 {
		cfg.PagesPerPart = 5
	}
	return &Processor{Logger: logger, Cfg: cfg, Pages: pages, Oracle: oracle, Tables: tables, Ledger: led}
}

// ProcessDocument extracts the metric table for one report. If the document
// stem already has a persisted table the oracle is never invoked and the
// cached table is returned; this cost-control check always runs first.
// Chunk failures are isolated: a failed oracle call is logged and the run
// continues, so partial results still aggregate and persist.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	stem := constants.DocumentStem(path)
	docName := filepath.Base(path)
	runID := uuid.New().String()

	log := p.Logger.With("run_id", runID, "document", stem)
	log.Info("pipeline.extract.start", "path", path, "pages_per_part", p.Cfg.PagesPerPart)

	if cached, ok, err := p.Tables.Load(stem); err != nil {
		return Result{}, err
	} else if ok {
		log.Info("pipeline.extract.cache_hit", "rows", len(cached.Records))
		if id := p.Ledger.Begin(ctx, constants.RunKindExtract, stem); id != "" {
			p.Ledger.Finish(ctx, id, constants.RunStatusCached, 0, len(cached.Records), nil)
		}
		return Result{Table: cached, Cached: true, Path: p.Tables.Path(stem)}, nil
	}

	ledgerID := p.Ledger.Begin(ctx, constants.RunKindExtract, stem)

	pages, err := p.Pages.ExtractPages(ctx, path)
	if err != nil {
		p.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, 0, err)
		return Result{}, fmt.Errorf("extract pages: %w", err)
	}
	chunks, err := document.Split(pages, p.Cfg.PagesPerPart)
	if err != nil {
		p.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, 0, 0, err)
		return Result{}, err
	}

	table := metrics.Table{Document: stem}
	res := Result{Chunks: len(chunks)}

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			p.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, res.Chunks, len(table.Records), err)
			return Result{}, err
		}

		records, err := p.processChunk(ctx, log, chunk)
		if err != nil {
			// Fail soft: one bad chunk must not abort the document.
			res.Failed++
			log.Error("pipeline.extract.chunk_failed",
				"chunk", chunk.Index, "pages", fmt.Sprintf("%d-%d", chunk.StartPage(), chunk.EndPage()),
				"error", err)
		}

		for _, rec := range records {
			normalized, coerced := metrics.Normalize(rec, docName)
			if coerced && !rec.Unparsed() {
				log.Warn("pipeline.extract.category_coerced",
					"chunk", chunk.Index, "metric", rec.MetricName, "label", rec.Category)
			}
			if normalized.Unparsed() {
				res.Unparsed++
			}
			table.Records = append(table.Records, normalized)
		}

		if p.Cfg.Cooldown > 0 && chunk.Index < len(chunks)-1 {
			time.Sleep(p.Cfg.Cooldown)
		}
	}

	p.auditRecords(log, table)

	if len(table.Records) == 0 {
		log.Warn("pipeline.extract.no_metrics")
		p.Ledger.Finish(ctx, ledgerID, constants.RunStatusSucceeded, res.Chunks, 0, nil)
		res.Table = table
		return res, nil
	}

	dst, err := p.Tables.Store(table)
	if err != nil {
		p.Ledger.Finish(ctx, ledgerID, constants.RunStatusFailed, res.Chunks, len(table.Records), err)
		return Result{}, err
	}

	p.Ledger.Finish(ctx, ledgerID, constants.RunStatusSucceeded, res.Chunks, len(table.Records), nil)
	log.Info("pipeline.extract.ok",
		"chunks", res.Chunks,
		"failed_chunks", res.Failed,
		"rows", len(table.Records),
		"unparsed", res.Unparsed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	res.Table = table
	res.Path = dst
	return res, nil
}

// processChunk runs one oracle round trip and reconciles the response.
// Records come back stamped with the chunk's first absolute page number.
func (p *Processor) processChunk(ctx context.Context, log *slog.Logger, chunk document.Chunk) ([]metrics.Record, error) {
	raw, err := p.Oracle.Generate(ctx, llm.BuildExtractionPrompt(chunk.Text()))
	if err != nil {
		return nil, err
	}
	records := reconcile.Reconcile(raw, chunk.StartPage())
	log.Info("pipeline.extract.chunk_ok",
		"chunk", chunk.Index,
		"pages", fmt.Sprintf("%d-%d", chunk.StartPage(), chunk.EndPage()),
		"records", len(records),
	)
	return records, nil
}

// auditRecords checks the parsed records against the metric schema and logs
// the violation count. Advisory only; incomplete records are kept and
// projected onto empty cells.
func (p *Processor) auditRecords(log *slog.Logger, table metrics.Table) {
	parsed := make([]metrics.Record, 0, len(table.Records))
	for _, r := range table.Records {
		if !r.Unparsed() {
			parsed = append(parsed, r)
		}
	}
	if len(parsed) == 0 {
		return
	}
	doc, err := json.Marshal(parsed)
	if err != nil {
		return
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildMetricArraySchema(), doc); err != nil {
		log.Warn("pipeline.extract.schema_violations", "error", err)
	}
}
