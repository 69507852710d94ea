package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/ledger"
)

func newRunsCmd(cfg *common.Config, logger *slog.Logger) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent pipeline runs from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := ledger.Open(cmd.Context(), cfg.Storage.LedgerPath, logger)
			if err != nil {
				return err
			}
			defer func() { _ = led.Close() }()

			runs, err := led.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tKIND\tTARGET\tSTATUS\tCHUNKS\tRECORDS\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"),
					r.Kind, r.Target, r.Status, r.Chunks, r.Records, r.Error)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to list")
	return cmd
}
