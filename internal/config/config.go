// Package config provides configuration management for purl-migrate.
//
// Configuration is loaded from:
// 1. purl-migrate.yaml (optional, or an explicit --config file)
// 2. Environment variables (LOG_LEVEL, MIGRATE_DOMAIN, WORKER_POOL_SIZE, ...)
// 3. Default values
//
// Import Path: purl-migrate.io/migrator/internal/config
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"purl-migrate.io/migrator/internal/domain"
)

// Config is the root configuration structure.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Migrate MigrateConfig `mapstructure:"migrate"`
	Output  OutputConfig  `mapstructure:"output"`
	Worker  WorkerConfig  `mapstructure:"worker"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// MigrateConfig contains the values rendered into every generated header.
type MigrateConfig struct {
	// Domain is the PURL host named in the header comment.
	Domain string `mapstructure:"domain"`
	// BasePathRoot is joined with the lowercased idspace to form base_url.
	BasePathRoot string `mapstructure:"base_path_root"`
	TermBrowser  string `mapstructure:"term_browser"`
}

// Settings converts the migrate section into domain settings.
func (c MigrateConfig) Settings() domain.Settings {
	return domain.Settings{
		Domain:       c.Domain,
		BasePathRoot: c.BasePathRoot,
		TermBrowser:  c.TermBrowser,
	}
}

// OutputConfig controls how generated files are written.
type OutputConfig struct {
	// Atomic writes go to a temp file in the target directory, then rename.
	Atomic   bool   `mapstructure:"atomic"`
	FileMode string `mapstructure:"file_mode"` // octal, e.g. "0644"
}

// Perm parses FileMode as an octal permission.
func (c OutputConfig) Perm() (os.FileMode, error) {
	mode, err := strconv.ParseUint(strings.TrimPrefix(c.FileMode, "0o"), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("output.file_mode %q is not an octal mode: %w", c.FileMode, err)
	}
	if mode > 0o777 {
		return 0, fmt.Errorf("output.file_mode %q exceeds 0777", c.FileMode)
	}
	return os.FileMode(mode), nil
}

// WorkerConfig contains worker pool settings for batch migrations.
type WorkerConfig struct {
	PoolSize int `mapstructure:"pool_size"`
	// ShutdownTimeout bounds the wait for running migrations on exit.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from file and environment variables.
// An empty file searches the default locations; a missing default file is
// not an error, a missing explicit file is.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("purl-migrate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/purl-migrate")
		}
	}

	// Maps nested config: migrate.domain → MIGRATE_DOMAIN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if strings.TrimSpace(c.Migrate.Domain) == "" {
		return fmt.Errorf("migrate.domain must not be empty")
	}
	if strings.Contains(c.Migrate.Domain, "://") {
		return fmt.Errorf("migrate.domain must be a host name without scheme, got %q", c.Migrate.Domain)
	}
	root := c.Migrate.BasePathRoot
	if !strings.HasPrefix(root, "/") || !strings.HasSuffix(root, "/") {
		return fmt.Errorf("migrate.base_path_root must start and end with '/', got %q", root)
	}
	if strings.TrimSpace(c.Migrate.TermBrowser) == "" {
		return fmt.Errorf("migrate.term_browser must not be empty")
	}
	if c.Worker.PoolSize < 1 {
		return fmt.Errorf("worker.pool_size must be at least 1, got %d", c.Worker.PoolSize)
	}
	if c.Worker.ShutdownTimeout < 0 {
		return fmt.Errorf("worker.shutdown_timeout must not be negative, got %s", c.Worker.ShutdownTimeout)
	}
	if _, err := c.Output.Perm(); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Migrate
	v.SetDefault("migrate.domain", "purl.brain-bican.org")
	v.SetDefault("migrate.base_path_root", "/obo/")
	v.SetDefault("migrate.term_browser", "ontobee")

	// Output
	v.SetDefault("output.atomic", true)
	v.SetDefault("output.file_mode", "0644")

	// Worker Pool
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.shutdown_timeout", "30s")
}
