// Package app is the composition root: it builds the migration use cases
// from a loaded configuration.
//
// Import Path: purl-migrate.io/migrator/internal/app
package app

import (
	"fmt"

	"purl-migrate.io/migrator/internal/config"
	"purl-migrate.io/migrator/internal/infrastructure"
	"purl-migrate.io/migrator/internal/pkg/worker"
	"purl-migrate.io/migrator/internal/provider"
	"purl-migrate.io/migrator/internal/service"
	"purl-migrate.io/migrator/internal/usecase"
)

// Application holds composed application dependencies.
type Application struct {
	Config   *config.Config
	Files    *infrastructure.FileStore
	Pool     *worker.Pool
	Migrate  *usecase.MigrateUseCase
	Batch    *usecase.BatchMigrateUseCase
	Verifier *service.Verifier
}

// Bootstrap wires all dependencies using manual DI.
func Bootstrap(cfg *config.Config) (*Application, error) {
	perm, err := cfg.Output.Perm()
	if err != nil {
		return nil, fmt.Errorf("output file mode: %w", err)
	}
	files := infrastructure.NewFileStore(infrastructure.FileStoreConfig{
		Atomic:   cfg.Output.Atomic,
		FileMode: perm,
	})

	poolCfg := worker.DefaultPoolConfig()
	poolCfg.Size = cfg.Worker.PoolSize
	if cfg.Worker.ShutdownTimeout > 0 {
		poolCfg.ShutdownTimeout = cfg.Worker.ShutdownTimeout
	}
	pool, err := worker.NewPool(poolCfg)
	if err != nil {
		return nil, fmt.Errorf("init worker pool: %w", err)
	}

	settings := cfg.Migrate.Settings()
	migrate := usecase.NewMigrateUseCase(provider.NewXMLSource(), service.NewComposer(), settings)

	return &Application{
		Config:   cfg,
		Files:    files,
		Pool:     pool,
		Migrate:  migrate,
		Batch:    usecase.NewBatchMigrateUseCase(migrate, pool, files),
		Verifier: service.NewVerifier(settings),
	}, nil
}
