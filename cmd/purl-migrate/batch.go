package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/pkg/logger"
	"purl-migrate.io/migrator/internal/usecase"
)

func (c *cli) newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIR OUTDIR",
		Short: "Migrate every *.xml file in DIR",
		Long: `Migrates each DIR/<name>.xml with idspace <name> into OUTDIR/<name>.yml.
Files are processed concurrently; a failing file does not stop the others.`,
		Args: cobra.ExactArgs(2),
		RunE: c.runBatch,
	}
	cmd.Flags().IntVar(&c.workers, "workers", 0, "concurrent migrations (default: worker.pool_size)")
	return cmd
}

func (c *cli) runBatch(cmd *cobra.Command, args []string) error {
	defer c.app.Shutdown()

	results, err := c.app.Batch.Execute(cmd.Context(), usecase.BatchMigrateInput{
		SourceDir: args[0],
		OutputDir: args[1],
	})

	w := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			logger.Error("Migration failed", zap.String("source", r.Source), zap.Error(r.Err))
			fmt.Fprintf(w, "FAIL %s\n", r.Source)
			continue
		}
		fmt.Fprintf(w, "OK   %s -> %s (%d entries)\n", r.Source, r.Target, r.Output.Exact+r.Output.Prefix)
	}
	return err
}
