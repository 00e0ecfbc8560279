package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify YAML_FILE",
		Short: "Check a PURL YAML configuration",
		Long: `Re-checks a generated or hand-edited configuration: base_url matches the
idspace, every entry has one kind and an absolute replacement, exact entries
precede prefix entries and prefix entries are ordered longest first.`,
		Args: cobra.ExactArgs(1),
		RunE: c.runVerify,
	}
}

func (c *cli) runVerify(cmd *cobra.Command, args []string) error {
	defer c.app.Shutdown()

	in, err := c.app.Files.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	report, err := c.app.Verifier.Verify(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK %s: idspace %s, %d entries (%d exact, %d prefix)\n",
		args[0], report.Idspace, report.Entries, report.Exact, report.Prefix)
	return nil
}
