// Package main provides the purl-migrate command.
//
// purl-migrate converts a PURL XML redirect export into a PURL YAML
// configuration:
//
//	purl-migrate IDSPACE [XML_FILE] [YAML_FILE]
//
// XML_FILE and YAML_FILE default to stdin and stdout ("-" selects them
// explicitly). Logs go to stderr.
//
// Import Path: purl-migrate.io/migrator/cmd/purl-migrate
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/app"
	"purl-migrate.io/migrator/internal/config"
	"purl-migrate.io/migrator/internal/infrastructure"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
	"purl-migrate.io/migrator/internal/pkg/logger"
	"purl-migrate.io/migrator/internal/usecase"
)

func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "purl-migrate: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

// cli carries flag values and the application built from them.
type cli struct {
	configFile string
	logLevel   string
	logFormat  string
	domain     string
	workers    int

	app *app.Application
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "purl-migrate IDSPACE [XML_FILE] [YAML_FILE]",
		Short: "Migrate a PURL XML export to a PURL YAML configuration",
		Long: `Reads the <purl> records of an XML export, checks each one and writes a
YAML configuration with exact entries first and prefix entries ordered
longest identifier first. Nothing is written unless every record is valid.`,
		Args:              cobra.RangeArgs(1, 3),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runMigrate,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: purl-migrate.yaml in ., ./config, ~/.config/purl-migrate)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&c.domain, "domain", "", "PURL domain named in the generated header")

	root.AddCommand(c.newBatchCmd(), c.newVerifyCmd())
	return root
}

// setup loads configuration, applies flag overrides and builds the application.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}
	if c.domain != "" {
		cfg.Migrate.Domain = c.domain
	}
	if c.workers > 0 {
		cfg.Worker.PoolSize = c.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return err
	}
	application.Files.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout())
	c.app = application
	return nil
}

func (c *cli) runMigrate(cmd *cobra.Command, args []string) error {
	defer c.app.Shutdown()

	source, target := infrastructure.StdStream, infrastructure.StdStream
	if len(args) > 1 {
		source = args[1]
	}
	if len(args) > 2 {
		target = args[2]
	}

	in, err := c.app.Files.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	// Output is held until the run succeeds so a failure never leaves a
	// partial file behind.
	var buf bytes.Buffer
	out, err := c.app.Migrate.Execute(cmd.Context(), usecase.MigrateInput{
		Idspace:    args[0],
		SourceName: source,
		Source:     in,
		Sink:       &buf,
	})
	if err != nil {
		return err
	}
	if err := c.app.Files.Write(target, buf.Bytes()); err != nil {
		return err
	}

	logger.Info("Configuration written",
		zap.String("run_id", out.RunID),
		zap.String("target", target),
		zap.Int("entries", out.Exact+out.Prefix),
	)
	return nil
}
