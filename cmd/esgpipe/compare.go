package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/esgpipe/esgpipe/constants"
	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/ledger"
	"github.com/esgpipe/esgpipe/internal/llm/gemini"
	"github.com/esgpipe/esgpipe/internal/metrics"
	"github.com/esgpipe/esgpipe/internal/pipeline"
	"github.com/esgpipe/esgpipe/internal/store"
)

func newCompareCmd(cfg *common.Config, logger *slog.Logger) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "compare <doc> <doc> [more ...]",
		Short: "Group semantically common metrics across extracted documents",
		Long: "Compare takes the stems of previously extracted documents (as listed under " +
			"the extracted_results directory) and asks the model to group metrics that " +
			"refer to the same underlying indicator.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !constants.IsValid(category) {
				return common.NewAppError("INPUT_ERROR",
					fmt.Sprintf("category must be one of Environmental, Social, Governance; got %q", category),
					common.ErrInvalidInput)
			}

			tables, err := store.NewTableStore(filepath.Join(cfg.Storage.DataDir, "extracted_results"), logger)
			if err != nil {
				return err
			}
			cache, err := store.NewCompareStore(filepath.Join(cfg.Storage.DataDir, "cached_json"), logger)
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

			comparator := pipeline.NewComparator(logger, oracle, tables, cache, led)
			res, err := comparator.Compare(cmd.Context(), args, category)
			if err != nil {
				return err
			}

			if res.Cached {
				fmt.Printf("loaded cached comparison from %s\n", res.Path)
			} else {
				fmt.Printf("comparison saved to %s\n", res.Path)
			}
			fmt.Printf("%d common metric group(s) for %s\n", len(res.Groups), category)
			for _, g := range res.Groups {
				name := g.CommonMetric
				if name == "" {
					name = "Unnamed Metric"
				}
				fmt.Printf("\n%s\n", name)
				for _, key := range g.DatasetKeys() {
					for _, rec := range g.Datasets[key] {
						fmt.Printf("  %s: %s = %s %s (%s, %s)\n",
							key, rec.MetricName, metrics.CellString(rec.Value), rec.Unit,
							metrics.CellString(rec.Year), rec.Source)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(constants.Environmental),
		"ESG category to compare (Environmental, Social, Governance)")
	return cmd
}
