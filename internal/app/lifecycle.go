package app

import (
	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/pkg/logger"
)

// Shutdown releases the worker pool, waiting up to worker.shutdown_timeout
// for running migrations. Safe on a partially built Application.
func (a *Application) Shutdown() {
	if a.Pool == nil {
		return
	}
	metrics := a.Pool.Metrics()
	a.Pool.Release(0)
	logger.Debug("Worker pool released",
		zap.Int("running", metrics["running"]),
		zap.Int("cap", metrics["cap"]),
	)
}
