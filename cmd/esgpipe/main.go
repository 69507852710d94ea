package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/esgpipe/esgpipe/internal/common"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	root := &cobra.Command{
		Use:           "esgpipe",
		Short:         "Extract and compare ESG metrics from sustainability report PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newExtractCmd(cfg, logger),
		newCompareCmd(cfg, logger),
		newExportCmd(cfg, logger),
		newRunsCmd(cfg, logger),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}
