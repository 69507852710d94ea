package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/export"
	"github.com/esgpipe/esgpipe/internal/store"
)

func newExportCmd(cfg *common.Config, logger *slog.Logger) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <doc>",
		Short: "Render an extracted metric table as an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := store.NewTableStore(filepath.Join(cfg.Storage.DataDir, "extracted_results"), logger)
			if err != nil {
				return err
			}

			svc := export.NewService(tables, logger)
			data, err := svc.ExportTableXLSX(args[0])
			if err != nil {
				return err
			}

			dst := output
			if dst == "" {
				dst = args[0] + ".xlsx"
			}
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			fmt.Printf("exported %s to %s\n", args[0], dst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <doc>.xlsx)")
	return cmd
}
