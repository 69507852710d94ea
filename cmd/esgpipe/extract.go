package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/esgpipe/esgpipe/constants"
	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/document"
	"github.com/esgpipe/esgpipe/internal/ledger"
	"github.com/esgpipe/esgpipe/internal/llm/gemini"
	"github.com/esgpipe/esgpipe/internal/pipeline"
	"github.com/esgpipe/esgpipe/internal/store"
)

func newExtractCmd(cfg *common.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <report.pdf> [more.pdf ...]",
		Short: "Extract ESG metrics from PDF reports into per-document CSV tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			for _, path := range args {
				ext := constants.NormalizeExt(filepath.Ext(path))
				if _, ok := constants.AllowedExtensions[ext]; !ok {
					return common.NewAppError("INPUT_ERROR",
						fmt.Sprintf("%q is not a supported report type", path), common.ErrInvalidInput)
				}
			}

			tables, err := store.NewTableStore(filepath.Join(cfg.Storage.DataDir, "extracted_results"), logger)
			if err != nil {
				return err
			}
			led, err := ledger.Open(cmd.Context(), cfg.Storage.LedgerPath, logger)
			if err != nil {
				logger.Warn("ledger unavailable, continuing without it", "error", err)
				led = nil
			}
			defer func() { _ = led.Close() }()

			oracle := gemini.NewClient(gemini.Config{
				APIKey:      cfg.LLM.APIKey,
				BaseURL:     cfg.LLM.BaseURL,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				Timeout:     cfg.LLM.Timeout,
			}, logger)

			proc := pipeline.NewProcessor(logger, pipeline.Config{
				PagesPerPart: cfg.Pipeline.PagesPerPart,
				Cooldown:     cfg.Pipeline.Cooldown,
			}, document.NewPDFSource(logger), oracle, tables, led)

			for _, path := range args {
				res, err := proc.ProcessDocument(cmd.Context(), path)
				if err != nil {
					return err
				}
				if res.Cached {
					fmt.Printf("%s: already processed, %d metric(s) at %s\n",
						path, len(res.Table.Records), res.Path)
					continue
				}
				fmt.Printf("%s: %d chunk(s), %d metric(s) (%d unparsed, %d failed chunk(s))\n",
					path, res.Chunks, len(res.Table.Records), res.Unparsed, res.Failed)
				if res.Path != "" {
					fmt.Printf("  saved to %s\n", res.Path)
				} else {
					fmt.Println("  no metrics were extracted; nothing saved")
				}
			}
			return nil
		},
	}
	return cmd
}
