package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("MIGRATE_DOMAIN", "")
	os.Unsetenv("MIGRATE_DOMAIN")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("Log.Format = %q, want console", cfg.Log.Format)
	}
	if cfg.Migrate.Domain != "purl.brain-bican.org" {
		t.Errorf("Migrate.Domain = %q, want purl.brain-bican.org", cfg.Migrate.Domain)
	}
	if cfg.Migrate.BasePathRoot != "/obo/" {
		t.Errorf("Migrate.BasePathRoot = %q, want /obo/", cfg.Migrate.BasePathRoot)
	}
	if cfg.Migrate.TermBrowser != "ontobee" {
		t.Errorf("Migrate.TermBrowser = %q, want ontobee", cfg.Migrate.TermBrowser)
	}
	if !cfg.Output.Atomic {
		t.Error("Output.Atomic = false, want true")
	}
	if cfg.Worker.PoolSize != 4 {
		t.Errorf("Worker.PoolSize = %d, want 4", cfg.Worker.PoolSize)
	}
	if cfg.Worker.ShutdownTimeout != 30*time.Second {
		t.Errorf("Worker.ShutdownTimeout = %v, want 30s", cfg.Worker.ShutdownTimeout)
	}

	perm, err := cfg.Output.Perm()
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), perm)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATE_DOMAIN", "purl.obolibrary.org")
	t.Setenv("WORKER_POOL_SIZE", "9")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("WORKER_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "purl.obolibrary.org", cfg.Migrate.Domain)
	require.Equal(t, 9, cfg.Worker.PoolSize)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 5*time.Second, cfg.Worker.ShutdownTimeout)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "migrate.yaml")
	content := `
log:
  level: debug
migrate:
  domain: purl.example.org
  term_browser: ols
output:
  atomic: false
  file_mode: "0600"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "purl.example.org", cfg.Migrate.Domain)
	require.Equal(t, "ols", cfg.Migrate.TermBrowser)
	require.Equal(t, "/obo/", cfg.Migrate.BasePathRoot)
	require.False(t, cfg.Output.Atomic)

	perm, err := cfg.Output.Perm()
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), perm)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestMigrateConfig_Settings(t *testing.T) {
	s := MigrateConfig{Domain: "d", BasePathRoot: "/obo/", TermBrowser: "ontobee"}.Settings()
	require.Equal(t, "d", s.Domain)
	require.Equal(t, "/obo/", s.BasePathRoot)
	require.Equal(t, "ontobee", s.TermBrowser)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:     LogConfig{Level: "info", Format: "json"},
			Migrate: MigrateConfig{Domain: "purl.example.org", BasePathRoot: "/obo/", TermBrowser: "ontobee"},
			Output:  OutputConfig{Atomic: true, FileMode: "0644"},
			Worker:  WorkerConfig{PoolSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"empty domain", func(c *Config) { c.Migrate.Domain = " " }, true},
		{"domain with scheme", func(c *Config) { c.Migrate.Domain = "http://purl.example.org" }, true},
		{"root without leading slash", func(c *Config) { c.Migrate.BasePathRoot = "obo/" }, true},
		{"root without trailing slash", func(c *Config) { c.Migrate.BasePathRoot = "/obo" }, true},
		{"empty term browser", func(c *Config) { c.Migrate.TermBrowser = "" }, true},
		{"zero pool", func(c *Config) { c.Worker.PoolSize = 0 }, true},
		{"negative shutdown timeout", func(c *Config) { c.Worker.ShutdownTimeout = -time.Second }, true},
		{"non octal mode", func(c *Config) { c.Output.FileMode = "0x1A4" }, true},
		{"mode too large", func(c *Config) { c.Output.FileMode = "1777" }, true},
		{"0o prefix mode", func(c *Config) { c.Output.FileMode = "0o640" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
